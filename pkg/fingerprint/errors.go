package fingerprint

import "errors"

// ErrFailedToRead wraps reader failures during digest computation.
var ErrFailedToRead = errors.New("failed to read content for fingerprinting")
