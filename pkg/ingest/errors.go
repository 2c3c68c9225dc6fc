package ingest

import "errors"

var (
	// ErrBatchTooLarge rejects a whole batch before any file is touched
	// when the per-request file count limit is exceeded.
	ErrBatchTooLarge = errors.New("too many files in one batch")

	// ErrEmptyBatch rejects requests carrying no files at all.
	ErrEmptyBatch = errors.New("batch contains no files")

	// ErrFileTooLarge marks a single file over the per-file byte limit.
	// Reported per-candidate, never as a batch-level fault.
	ErrFileTooLarge = errors.New("file exceeds maximum allowed size")

	// Construction errors
	ErrNilStorage = errors.New("storage is nil")
	ErrNilIndex   = errors.New("dedup index is nil")
)
