// Package imgcodec converts between the raw RGBA pixel buffers the
// clipboard backend speaks and the compressed PNG form stored in history.
package imgcodec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
)

// ErrBadDimensions reports a width/height pair that cannot describe the
// accompanying pixel buffer.
var ErrBadDimensions = errors.New("imgcodec: invalid image dimensions")

// EncodePNG compresses a raw RGBA buffer (4 bytes per pixel, row-major)
// into PNG bytes. Width and height must both be positive and consistent
// with the buffer length.
func EncodePNG(rgba []byte, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadDimensions, width, height)
	}
	if len(rgba) != width*height*4 {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d", ErrBadDimensions, len(rgba), width, height)
	}
	img := &image.RGBA{
		Pix:    rgba,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodePNG decompresses PNG bytes back into a raw RGBA buffer plus its
// pixel dimensions.
func DecodePNG(data []byte) (rgba []byte, width, height int, err error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decode png: %w", err)
	}
	b := img.Bounds()
	width, height = b.Dx(), b.Dy()
	if width <= 0 || height <= 0 {
		return nil, 0, 0, fmt.Errorf("%w: %dx%d", ErrBadDimensions, width, height)
	}
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			out.Set(x, y, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return out.Pix, width, height, nil
}
