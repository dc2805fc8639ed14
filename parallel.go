package avif

import "golang.org/x/sync/errgroup"

// minBandPixels is the image size below which row banding is not worth
// the goroutine overhead.
const minBandPixels = 1 << 16

// forEachBand splits the pixels of a width x height image into contiguous
// bands of whole rows and calls fn(p0, p1) for each half-open pixel index
// range, using up to threads goroutines. Pixels are independent of each
// other, so the result does not depend on the banding. It returns the
// number of bands used.
func forEachBand(width, height, threads int, fn func(p0, p1 int)) int {
	bands := 1
	if threads > 1 && width*height >= minBandPixels {
		bands = min(threads, height)
	}
	if bands <= 1 {
		fn(0, width*height)
		return 1
	}

	rowsPer := (height + bands - 1) / bands
	var g errgroup.Group
	g.SetLimit(threads)
	n := 0
	for y0 := 0; y0 < height; y0 += rowsPer {
		y1 := min(y0+rowsPer, height)
		g.Go(func() error {
			fn(y0*width, y1*width)
			return nil
		})
		n++
	}
	// fn cannot fail; Wait only joins the bands.
	_ = g.Wait()
	return n
}
