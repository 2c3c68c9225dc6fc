package mediatype_test

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gallerykit/pkg/mediatype"
)

func encodeImage(t *testing.T, format string) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
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

func TestClassify_Images(t *testing.T) {
	t.Parallel()

	t.Run("png content with png extension", func(t *testing.T) {
		t.Parallel()
		c, err := mediatype.Classify("photo.png", "image/png", encodeImage(t, "png"))
		require.NoError(t, err)
		assert.Equal(t, mediatype.KindImage, c.Kind)
		assert.Equal(t, "image/png", c.MIME)
		assert.True(t, c.Sniffed)
	})

	t.Run("jpeg content with uppercase extension", func(t *testing.T) {
		t.Parallel()
		c, err := mediatype.Classify("PHOTO.JPG", "", encodeImage(t, "jpeg"))
		require.NoError(t, err)
		assert.Equal(t, mediatype.KindImage, c.Kind)
		assert.Equal(t, "image/jpeg", c.MIME)
	})

	t.Run("gif content", func(t *testing.T) {
		t.Parallel()
		c, err := mediatype.Classify("anim.gif", "image/gif", encodeImage(t, "gif"))
		require.NoError(t, err)
		assert.Equal(t, mediatype.KindImage, c.Kind)
		assert.Equal(t, "image/gif", c.MIME)
	})

	t.Run("text renamed to jpg rejected", func(t *testing.T) {
		t.Parallel()
		_, err := mediatype.Classify("evil.jpg", "image/jpeg", []byte("#!/bin/sh\nrm -rf /\n"))
		assert.ErrorIs(t, err, mediatype.ErrContentTypeMismatch)
	})

	t.Run("declared MIME never overrides sniff", func(t *testing.T) {
		t.Parallel()
		// PNG bytes behind a .jpg name still classify by content, but a
		// PDF behind image/jpeg declaration must fail.
		_, err := mediatype.Classify("doc.jpg", "image/jpeg", []byte("%PDF-1.4 ..."))
		assert.ErrorIs(t, err, mediatype.ErrContentTypeMismatch)
	})

	t.Run("unsniffable image rejected", func(t *testing.T) {
		t.Parallel()
		_, err := mediatype.Classify("photo.png", "image/png", []byte{0x00, 0x01, 0x02, 0x03})
		assert.ErrorIs(t, err, mediatype.ErrUndetectableContent)
	})

	t.Run("empty payload rejected", func(t *testing.T) {
		t.Parallel()
		_, err := mediatype.Classify("photo.png", "image/png", nil)
		assert.ErrorIs(t, err, mediatype.ErrUndetectableContent)
	})
}

func TestClassify_Videos(t *testing.T) {
	t.Parallel()

	t.Run("mp4 signature", func(t *testing.T) {
		t.Parallel()
		// ftyp box as http.DetectContentType recognizes it.
		head := append([]byte{0x00, 0x00, 0x00, 0x18}, []byte("ftypmp42")...)
		head = append(head, make([]byte, 16)...)
		c, err := mediatype.Classify("clip.mp4", "video/mp4", head)
		require.NoError(t, err)
		assert.Equal(t, mediatype.KindVideo, c.Kind)
		assert.Equal(t, "video/mp4", c.MIME)
		assert.True(t, c.Sniffed)
	})

	t.Run("unsniffable video accepted by extension", func(t *testing.T) {
		t.Parallel()
		c, err := mediatype.Classify("clip.mkv", "video/x-matroska", []byte{0xde, 0xad, 0xbe, 0xef})
		require.NoError(t, err)
		assert.Equal(t, mediatype.KindVideo, c.Kind)
		assert.Equal(t, "video/x-matroska", c.MIME)
		assert.False(t, c.Sniffed)
	})

	t.Run("unsniffable video with bogus declared MIME uses canonical", func(t *testing.T) {
		t.Parallel()
		c, err := mediatype.Classify("clip.mov", "application/evil", []byte{0xde, 0xad, 0xbe, 0xef})
		require.NoError(t, err)
		assert.Equal(t, "video/quicktime", c.MIME)
	})

	t.Run("image content behind video extension rejected", func(t *testing.T) {
		t.Parallel()
		_, err := mediatype.Classify("clip.mp4", "video/mp4", encodeImage(t, "png"))
		assert.ErrorIs(t, err, mediatype.ErrContentTypeMismatch)
	})
}

func TestClassify_Extensions(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"malware.exe", "doc.pdf", "noext", "archive.tar.gz", "photo.png.txt"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := mediatype.Classify(name, "image/png", encodeImage(t, "png"))
			assert.ErrorIs(t, err, mediatype.ErrExtensionNotAllowed)
		})
	}
}

func TestKindForFilename(t *testing.T) {
	t.Parallel()

	kind, ok := mediatype.KindForFilename("a.JPEG")
	require.True(t, ok)
	assert.Equal(t, mediatype.KindImage, kind)

	kind, ok = mediatype.KindForFilename("b.webm")
	require.True(t, ok)
	assert.Equal(t, mediatype.KindVideo, kind)

	_, ok = mediatype.KindForFilename("c.txt")
	assert.False(t, ok)
}

func TestAllowedExtension(t *testing.T) {
	t.Parallel()

	assert.True(t, mediatype.AllowedExtension("x.png"))
	assert.True(t, mediatype.AllowedExtension("x.MOV"))
	assert.False(t, mediatype.AllowedExtension("x.txt"))
	assert.False(t, mediatype.AllowedExtension("x"))
}
