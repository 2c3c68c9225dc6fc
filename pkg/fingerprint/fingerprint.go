package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

// Fingerprint is a hex-encoded SHA-256 digest over the complete byte
// sequence of a file. Identical bytes always produce identical fingerprints,
// which is what makes it usable as a dedup key.
type Fingerprint string

// Size is the length of a hex-encoded fingerprint.
const Size = sha256.Size * 2

// Compute digests the entire reader. It never fails for any byte sequence;
// a zero-length stream yields a valid fingerprint like any other. The only
// error source is the reader itself.
func Compute(r io.Reader) (Fingerprint, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToRead, err)
	}
	return Fingerprint(hex.EncodeToString(h.Sum(nil))), nil
}

// ComputeBytes digests an in-memory payload.
func ComputeBytes(data []byte) Fingerprint {
	sum := sha256.Sum256(data)
	return Fingerprint(hex.EncodeToString(sum[:]))
}

// Valid reports whether f looks like a fingerprint produced by this package.
func (f Fingerprint) Valid() bool {
	if len(f) != Size {
		return false
	}
	_, err := hex.DecodeString(string(f))
	return err == nil
}

func (f Fingerprint) String() string { return string(f) }

// Short returns a truncated form for log output.
func (f Fingerprint) Short() string {
	if len(f) < 8 {
		return string(f)
	}
	return string(f[:8])
}
