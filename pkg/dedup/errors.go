package dedup

import "errors"

var (
	// ErrInvalidFingerprint guards the index against keys that are not
	// hex-encoded digests.
	ErrInvalidFingerprint = errors.New("invalid fingerprint")

	// ErrIndexUnavailable wraps backend connectivity failures.
	ErrIndexUnavailable = errors.New("dedup index unavailable")

	// ErrIndexRace signals that an entry vanished between check and read;
	// the caller should retry the Add.
	ErrIndexRace = errors.New("dedup index entry changed concurrently")
)
