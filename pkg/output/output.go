package output

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/df07/go-path-tracer/pkg/renderer"
)

// Format selects an image encoding
type Format string

const (
	FormatPPM Format = "ppm"
	FormatPNG Format = "png"
	FormatBMP Format = "bmp"
)

// ParseFormat accepts "ppm", "png" or "bmp", case-insensitively
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatPPM:
		return FormatPPM, nil
	case FormatPNG:
		return FormatPNG, nil
	case FormatBMP:
		return FormatBMP, nil
	default:
		return "", fmt.Errorf("unsupported image format %q (want ppm, png or bmp)", s)
	}
}

// Extension returns the file extension without the dot
func (f Format) Extension() string {
	return string(f)
}

// ContentType returns the MIME type for the format
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatBMP:
		return "image/bmp"
	default:
		return "image/x-portable-pixmap"
	}
}

// Quantize maps a linear channel value to 0..255 with a square-root
// gamma curve, truncating 255.99*sqrt(c). Out-of-range input is clamped.
func Quantize(c float64) uint8 {
	if !(c > 0) { // catches NaN too
		return 0
	}
	v := int(255.99 * math.Sqrt(c))
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// ToRGBA tone maps a frame into an opaque 8-bit image
func ToRGBA(frame *renderer.Frame) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, frame.Width, frame.Height))

	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			c := frame.At(x, y)
			img.SetRGBA(x, y, color.RGBA{
				R: Quantize(c.X),
				G: Quantize(c.Y),
				B: Quantize(c.Z),
				A: 255,
			})
		}
	}

	return img
}
