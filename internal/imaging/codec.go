// Package imaging handles byte-level image plumbing for the pipeline:
// decoding opaque panel bytes, producing owned copies, padding, and PNG
// encoding. Every function returns a fresh buffer; callers never share
// pixel memory with their inputs.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"
)

// DecodeBytes decodes encoded image bytes (PNG, JPEG, GIF) into an owned
// NRGBA bitmap. The returned image shares no memory with data.
func DecodeBytes(data []byte) (*image.NRGBA, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image data")
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return imaging.Clone(img), nil
}

// Clone returns an owned NRGBA copy of img.
func Clone(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}

// EncodePNG encodes img as PNG and returns the bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// PadBorder returns img centered on a canvas enlarged by pad pixels on
// every side, filled with fill. Shapes touching the true image edge gain a
// contrasting frame around them, so boundary tracing closes them into
// single contours.
func PadBorder(img image.Image, pad int, fill color.Color) *image.NRGBA {
	if pad <= 0 {
		return imaging.Clone(img)
	}
	b := img.Bounds()
	canvas := imaging.New(b.Dx()+2*pad, b.Dy()+2*pad, fill)
	return imaging.Paste(canvas, img, image.Pt(pad, pad))
}

// Grayscale converts img to its grayscale equivalent as an owned copy.
func Grayscale(img image.Image) *image.NRGBA {
	return imaging.Grayscale(img)
}
