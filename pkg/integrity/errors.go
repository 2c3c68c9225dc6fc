package integrity

import "errors"

// ErrCorruptImage marks payloads that fail full pixel decode.
var ErrCorruptImage = errors.New("corrupt or incomplete image")
