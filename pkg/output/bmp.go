package output

import (
	"fmt"
	"io"

	"golang.org/x/image/bmp"

	"github.com/df07/go-path-tracer/pkg/renderer"
)

// WriteBMP tone maps frame and writes it as an uncompressed bitmap
func WriteBMP(w io.Writer, frame *renderer.Frame) error {
	if err := bmp.Encode(w, ToRGBA(frame)); err != nil {
		return fmt.Errorf("failed to encode BMP: %w", err)
	}
	return nil
}
