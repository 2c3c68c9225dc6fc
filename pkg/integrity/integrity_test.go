package integrity_test

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gallerykit/pkg/integrity"
)

func encode(t *testing.T, format string) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := range 16 {
		for x := range 16 {
			img.Set(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 16), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "jpeg":
		err = jpeg.Encode(&buf, img, nil)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	}
	require.NoError(t, err)
	return buf.Bytes()
}

func TestVerifyImage(t *testing.T) {
	t.Parallel()

	for _, format := range []string{"png", "jpeg", "gif"} {
		t.Run("valid "+format, func(t *testing.T) {
			t.Parallel()
			assert.NoError(t, integrity.VerifyImage(encode(t, format)))
		})
	}

	t.Run("truncated png rejected", func(t *testing.T) {
		t.Parallel()
		data := encode(t, "png")
		err := integrity.VerifyImage(data[:len(data)/2])
		assert.ErrorIs(t, err, integrity.ErrCorruptImage)
	})

	t.Run("header only rejected", func(t *testing.T) {
		t.Parallel()
		// Valid PNG signature with no pixel data behind it.
		err := integrity.VerifyImage([]byte("\x89PNG\r\n\x1a\n"))
		assert.ErrorIs(t, err, integrity.ErrCorruptImage)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		t.Parallel()
		err := integrity.VerifyImage([]byte("definitely not an image"))
		assert.ErrorIs(t, err, integrity.ErrCorruptImage)
	})

	t.Run("empty payload rejected", func(t *testing.T) {
		t.Parallel()
		err := integrity.VerifyImage(nil)
		assert.ErrorIs(t, err, integrity.ErrCorruptImage)
	})
}
