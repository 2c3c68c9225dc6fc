package ingest

import (
	"io"

	"github.com/dmitrymomot/gallerykit/pkg/mediatype"
)

// Candidate is one uploaded file prior to acceptance: its raw content plus
// client-declared metadata. It lives for a single pipeline invocation.
type Candidate struct {
	Filename     string
	DeclaredMIME string
	Content      io.Reader
}

// Status is the terminal outcome of one candidate.
type Status string

const (
	// StatusAccepted means the original was durably stored and indexed.
	StatusAccepted Status = "accepted"
	// StatusDuplicate means identical bytes are already stored; nothing
	// was written.
	StatusDuplicate Status = "duplicate"
	// StatusRejected means the candidate failed validation.
	StatusRejected Status = "rejected"
	// StatusErrored means an infrastructure failure, not the file's
	// content, terminated the candidate.
	StatusErrored Status = "error"
)

// Reason narrows a rejection or error to a stable, machine-readable code.
type Reason string

const (
	// ReasonInvalidType covers extension, MIME and content-sniff mismatches.
	ReasonInvalidType Reason = "invalid_type"
	// ReasonCorruptContent marks images that failed full pixel decode.
	ReasonCorruptContent Reason = "corrupt_content"
	// ReasonTooLarge marks files over the per-file byte limit.
	ReasonTooLarge Reason = "too_large"
	// ReasonTransferFailed marks payloads whose read failed mid-stream.
	ReasonTransferFailed Reason = "transfer_failed"
	// ReasonCanceled marks candidates aborted by context cancellation,
	// typically a client disconnect.
	ReasonCanceled Reason = "canceled"
	// ReasonStorageFailure marks disk write failures for the original.
	ReasonStorageFailure Reason = "storage_failure"
	// ReasonIndexFailure marks dedup index backend failures.
	ReasonIndexFailure Reason = "index_failure"
)

// Warning flags a degraded, non-fatal condition on an accepted result.
type Warning string

// WarningThumbnailFailed means the original was stored but its thumbnail
// could not be derived or written.
const WarningThumbnailFailed Warning = "thumbnail_failed"

// Result is the per-candidate outcome record. Index ties it back to the
// candidate's position in the submitted batch regardless of processing
// order.
type Result struct {
	Index         int            `json:"index"`
	Filename      string         `json:"filename"`
	Status        Status         `json:"status"`
	Reason        Reason         `json:"reason,omitempty"`
	Kind          mediatype.Kind `json:"kind,omitempty"`
	StorageName   string         `json:"storage_name,omitempty"`
	ThumbnailName string         `json:"thumbnail_name,omitempty"`
	DuplicateOf   string         `json:"duplicate_of,omitempty"`
	Size          int64          `json:"size,omitempty"`
	Warning       Warning        `json:"warning,omitempty"`
}

// BatchResult aggregates every candidate's outcome plus summary counts, so
// a guest sees exactly which files succeeded without losing progress on
// the rest.
type BatchResult struct {
	Results    []Result `json:"results"`
	Accepted   int      `json:"accepted"`
	Rejected   int      `json:"rejected"`
	Duplicates int      `json:"duplicates"`
	Errored    int      `json:"errored"`
}
