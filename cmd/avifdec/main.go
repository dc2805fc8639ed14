// Command avifdec converts decoded YUV4MPEG2 (Y4M) frames to PNG, TIFF or
// BMP, optionally merging a separate alpha stream.
//
// Usage:
//
//	avifdec dec [options] <color.y4m>   Y4M (+ alpha Y4M) → PNG/TIFF/BMP (use "-" for stdin, -o - for stdout)
//	avifdec info <input.y4m>            Display stream metadata
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/deepteams/avif"
	"github.com/deepteams/avif/internal/container"
	"github.com/deepteams/avif/yuv"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "dec":
		err = runDec(os.Args[2:])
	case "info":
		err = runInfo(os.Args[2:])
	case "-version", "--version", "version":
		fmt.Printf("avifdec %s\n", version)
		return
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "avifdec: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "avifdec: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  avifdec dec [options] <color.y4m>   Convert a Y4M frame to PNG, TIFF, or BMP
  avifdec info <input.y4m>            Display stream metadata
  avifdec -version                    Print the version

Use "-" as input to read from stdin, "-o -" to write to stdout.
Inputs may be zstd-compressed.

Run "avifdec <command> -h" for command-specific options.
`)
}

// readInput reads the whole file at path, or stdin if path is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// --- dec ---

func runDec(args []string) error {
	fs := flag.NewFlagSet("dec", flag.ContinueOnError)
	alphaPath := fs.String("alpha", "", "Y4M stream holding the alpha plane")
	premultiplied := fs.Bool("premultiplied", false, "color samples are premultiplied by alpha")
	matrix := fs.String("matrix", "", "matrix coefficients for streams without XMATRIX (default bt709)")
	threads := fs.Int("threads", 0, "worker goroutines (0=auto)")
	output := fs.String("o", "", `output path (default: <input>.png, "-" for stdout)`)
	force := fs.Bool("f", false, "overwrite an existing output file")
	fmtFlag := fs.String("fmt", "", "output format: png, tiff, bmp (auto-detect from extension if omitted)")
	verbose := fs.Bool("v", false, "log pipeline details to stderr")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("dec: missing input file\nUsage: avifdec dec [options] <color.y4m>")
	}
	inputPath := fs.Arg(0)

	opts := avif.DefaultOptions()
	if *matrix != "" {
		mc, err := yuv.ParseMatrix(*matrix)
		if err != nil {
			return fmt.Errorf("dec: %w", err)
		}
		opts.ColorMatrix = avif.Matrix(mc)
	}
	if *threads > 0 {
		opts.Threads = *threads
	}
	if *verbose {
		opts.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	var c avif.Container
	var err error
	c.Primary, err = readInput(inputPath)
	if err != nil {
		return fmt.Errorf("dec: reading input: %w", err)
	}
	if *alphaPath != "" {
		c.Alpha, err = readInput(*alphaPath)
		if err != nil {
			return fmt.Errorf("dec: reading alpha: %w", err)
		}
		c.PremultipliedAlpha = *premultiplied
	}

	dec := container.NewDecoder()
	defer dec.Close()
	img, err := avif.Decode(dec, c, opts)
	if err != nil {
		return fmt.Errorf("dec: %w", err)
	}

	outFmt := detectOutputFormat(*fmtFlag, *output)
	if *output == "-" {
		return encodeImage(os.Stdout, img, outFmt)
	}
	outputPath := *output
	if outputPath == "" {
		outputPath = defaultOutputPath(inputPath, outFmt)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !*force {
		flags |= os.O_EXCL
	}
	out, err := os.OpenFile(outputPath, flags, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("dec: %s already exists (use -f to overwrite)", outputPath)
		}
		return err
	}

	if err := encodeImage(out, img, outFmt); err != nil {
		out.Close()
		os.Remove(outputPath)
		return fmt.Errorf("dec: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(outputPath)
		return err
	}

	fmt.Fprintf(os.Stderr, "Decoded %s → %s (%dx%d %v)\n",
		inputPath, outputPath, img.Width(), img.Height(), img.Format())
	return nil
}

// detectOutputFormat returns "png", "tiff", or "bmp" based on flag/extension.
func detectOutputFormat(fmtFlag, outputPath string) string {
	if fmtFlag != "" {
		f := strings.ToLower(fmtFlag)
		if f == "tif" {
			return "tiff"
		}
		return f
	}
	if outputPath != "" && outputPath != "-" {
		switch strings.ToLower(filepath.Ext(outputPath)) {
		case ".tif", ".tiff":
			return "tiff"
		case ".bmp":
			return "bmp"
		}
	}
	return "png"
}

// defaultOutputPath replaces the Y4M (and zstd) extension of inputPath
// with the extension of format.
func defaultOutputPath(inputPath, format string) string {
	ext := "." + format
	if inputPath == "-" {
		return "output" + ext
	}
	base := inputPath
	if strings.EqualFold(filepath.Ext(base), ".zst") {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + ext
}

// encodeImage writes img in the specified format to w.
func encodeImage(w io.Writer, img avif.Image, format string) error {
	m := avif.ToImage(img)
	switch format {
	case "png":
		return png.Encode(w, m)
	case "tiff":
		return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case "bmp":
		return bmp.Encode(w, m)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// --- info ---

func runInfo(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("info: missing input file\nUsage: avifdec info <input.y4m>")
	}
	inputPath := args[0]

	data, err := readInput(inputPath)
	if err != nil {
		return err
	}
	dec := container.NewDecoder()
	defer dec.Close()
	h, err := dec.Header(data)
	if err != nil {
		return fmt.Errorf("info: %w", err)
	}

	name := inputPath
	if inputPath == "-" {
		name = "<stdin>"
	}
	matrix := "unspecified"
	if h.HasMatrix {
		matrix = h.Matrix.String()
	}

	fmt.Printf("File:       %s\n", name)
	fmt.Printf("Colorspace: %s\n", h.Colorspace)
	fmt.Printf("Dimensions: %d x %d\n", h.Width, h.Height)
	fmt.Printf("Sampling:   %v\n", h.Sampling)
	fmt.Printf("Bit depth:  %d\n", h.Depth)
	fmt.Printf("Range:      %v\n", h.Range)
	fmt.Printf("Matrix:     %s\n", matrix)
	fmt.Printf("Frame rate: %v\n", h.FrameRate)

	// Byte counts get digit grouping.
	p := message.NewPrinter(language.English)
	p.Printf("Frame size: %d bytes\n", h.FrameSize())
	p.Printf("Data size:  %d bytes\n", len(data))
	return nil
}
