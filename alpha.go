package avif

import "fmt"

// extractAlpha converts an auxiliary alpha frame into an owned single
// channel image. Only luma is used; chroma planes carried by the frame are
// ignored.
func extractAlpha(f Frame, o *Options) (alphaImage, error) {
	rows, err := f.Rows()
	if err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	mc := matrixOf(f, o.alphaMatrix())
	a, err := toGray(rows, f.Range(), mc)
	if err != nil {
		return nil, err
	}
	o.logger().Debug("avif: extracted alpha",
		"width", a.Width(), "height", a.Height(), "depth", a.alphaDepth(),
		"range", f.Range(), "matrix", mc)
	return a, nil
}
