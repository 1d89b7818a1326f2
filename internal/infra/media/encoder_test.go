package media

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngOf(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestEncodeDownscalesWideImages(t *testing.T) {
	out, err := NewEncoder().Encode(pngOf(t, 1600, 400))
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
}

func TestEncodeKeepsSmallImages(t *testing.T) {
	out, err := NewEncoder().Encode(pngOf(t, 120, 90))
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Width)
}

func TestEncodeRejectsNonImages(t *testing.T) {
	_, err := NewEncoder().Encode(strings.NewReader("not an image"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestKey(t *testing.T) {
	k := Key("barbers", 5)
	assert.True(t, strings.HasPrefix(k, "barbers/5/"))
	assert.True(t, strings.HasSuffix(k, ".webp"))
}
