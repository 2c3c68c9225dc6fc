package thumbnail

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

const (
	// MaxWidth and MaxHeight bound the thumbnail box. The source image is
	// scaled to fit inside it with aspect ratio preserved, then centered
	// on a white canvas of exactly this size.
	MaxWidth  = 300
	MaxHeight = 300

	// jpegQuality trades size for quality; thumbnails are previews, not
	// archival copies.
	jpegQuality = 85
)

// Derive produces a JPEG thumbnail from a verified image original.
//
// The larger dimension is scaled down to fit the box, the smaller scales
// proportionally; no cropping, no distortion. Transparent and paletted
// inputs are flattened onto a white background since JPEG has no alpha.
// The output format is JPEG regardless of input format, so gallery serving
// is uniform. Re-encoding is not byte-deterministic, but dimensions and
// aspect ratio are.
func Derive(data []byte) ([]byte, error) {
	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeriveFailed, err)
	}

	fitted := imaging.Fit(src, MaxWidth, MaxHeight, imaging.Lanczos)

	canvas := imaging.New(MaxWidth, MaxHeight, color.White)
	canvas = imaging.PasteCenter(canvas, fitted)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeriveFailed, err)
	}
	return buf.Bytes(), nil
}

// FittedSize reports the dimensions the source content occupies inside the
// thumbnail box, before canvas padding. Exposed for tests and gallery
// metadata.
func FittedSize(srcW, srcH int) (int, int) {
	if srcW <= 0 || srcH <= 0 {
		return 0, 0
	}
	if srcW <= MaxWidth && srcH <= MaxHeight {
		return srcW, srcH
	}
	srcAspect := float64(srcW) / float64(srcH)
	boxAspect := float64(MaxWidth) / float64(MaxHeight)
	if srcAspect > boxAspect {
		w := MaxWidth
		h := int(float64(MaxWidth)/srcAspect + 0.5)
		return w, max(h, 1)
	}
	h := MaxHeight
	w := int(float64(MaxHeight)*srcAspect + 0.5)
	return max(w, 1), h
}

// Bounds decodes only the image config to report source dimensions without
// a full pixel decode.
func Bounds(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrDeriveFailed, err)
	}
	return cfg.Width, cfg.Height, nil
}
