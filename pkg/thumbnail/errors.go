package thumbnail

import "errors"

// ErrDeriveFailed wraps decode and encode failures during thumbnail
// derivation. Non-fatal for the upload: a missing thumbnail degrades the
// gallery view, it does not reject the original.
var ErrDeriveFailed = errors.New("failed to derive thumbnail")
