package storage

import (
	"context"
	"io"
	"time"
)

// File describes a stored artifact on disk.
type File struct {
	Name         string
	Size         int64
	AbsolutePath string
	ModTime      time.Time
}

// Storage is the durable persistence primitive the ingestion pipeline
// writes through. Implementations confine every operation to a single
// storage root; names never resolve outside it.
type Storage interface {
	// Save durably writes the reader's content under the given name.
	// Partial files are cleaned up on error or cancellation.
	Save(ctx context.Context, r io.Reader, name string) (*File, error)
	// Open returns a reader over a stored file.
	Open(ctx context.Context, name string) (io.ReadSeekCloser, error)
	// Delete removes a single stored file.
	Delete(ctx context.Context, name string) error
	// Exists reports whether a file is present.
	Exists(ctx context.Context, name string) bool
	// List returns every regular file in the storage root.
	List(ctx context.Context) ([]File, error)
}
