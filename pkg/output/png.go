package output

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/nfnt/resize"

	"github.com/df07/go-path-tracer/pkg/renderer"
)

// WritePNG tone maps frame and writes it as PNG
func WritePNG(w io.Writer, frame *renderer.Frame) error {
	if err := png.Encode(w, ToRGBA(frame)); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// EncodePNG encodes any image to PNG bytes
func EncodePNG(img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// Thumbnail scales img down to fit within maxWidth x maxHeight, keeping its
// aspect ratio. Images that already fit are returned unchanged.
func Thumbnail(img image.Image, maxWidth, maxHeight uint) image.Image {
	return resize.Thumbnail(maxWidth, maxHeight, img, resize.Lanczos3)
}

// Encode writes frame to w in the given format
func Encode(w io.Writer, frame *renderer.Frame, format Format) error {
	switch format {
	case FormatPNG:
		return WritePNG(w, frame)
	case FormatPPM:
		return WritePPM(w, frame)
	case FormatBMP:
		return WriteBMP(w, frame)
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}

// EncodeBytes renders frame into an in-memory image file
func EncodeBytes(frame *renderer.Frame, format Format) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := Encode(buf, frame, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveFile writes data to path, creating or truncating it
func SaveFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
