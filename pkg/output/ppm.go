package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/df07/go-path-tracer/pkg/renderer"
)

// WritePPM writes frame as an ASCII P3 pixmap, one "r g b" line per pixel,
// rows from the top
func WritePPM(w io.Writer, frame *renderer.Frame) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", frame.Width, frame.Height); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}

	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			c := frame.At(x, y)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", Quantize(c.X), Quantize(c.Y), Quantize(c.Z)); err != nil {
				return fmt.Errorf("failed to write PPM pixel (%d,%d): %w", x, y, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush PPM: %w", err)
	}
	return nil
}
