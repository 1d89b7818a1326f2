package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	DefaultMaxWidth = 800
	DefaultQuality  = 80

	maxUploadBytes = 10 << 20
)

// Encoder turns an uploaded JPEG, PNG or WebP into a WebP no wider than
// MaxWidth. Aspect ratio is preserved; smaller images are not upscaled.
// The webp import registers its own decoder with image.Decode.
type Encoder struct {
	MaxWidth int
	Quality  float32
}

func NewEncoder() *Encoder {
	return &Encoder{MaxWidth: DefaultMaxWidth, Quality: DefaultQuality}
}

func (e *Encoder) Encode(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(raw) > maxUploadBytes {
		return nil, ErrTooLarge
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, ErrUnsupportedImage
	}

	img := e.resize(src)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: e.Quality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *Encoder) resize(src image.Image) image.Image {
	b := src.Bounds()
	if e.MaxWidth <= 0 || b.Dx() <= e.MaxWidth {
		return src
	}

	h := b.Dy() * e.MaxWidth / b.Dx()
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, e.MaxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
