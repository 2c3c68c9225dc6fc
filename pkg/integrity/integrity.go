package integrity

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// VerifyImage confirms the byte stream is a structurally valid, complete
// image by decoding the full pixel data, not just the header. Truncated
// payloads and decoder faults both surface as ErrCorruptImage.
//
// Verification has no side effects: the caller persists the original bytes
// unmodified, never the decode result, so original fidelity is preserved.
func VerifyImage(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty payload", ErrCorruptImage)
	}
	if _, err := imaging.Decode(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptImage, err)
	}
	return nil
}
