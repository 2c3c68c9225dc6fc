// Package storage provides the durable write primitive behind the
// ingestion pipeline: flat, traversal-safe file storage rooted at a single
// directory.
//
// The pipeline uses two independent roots, one for originals and one for
// thumbnails. Names are produced by pkg/naming and are always flat; any
// name that would resolve outside the root, or into a subdirectory, is
// rejected with ErrInvalidPath.
//
//	originals, err := storage.NewLocalStorage("uploads")
//	if err != nil { ... }
//	f, err := originals.Save(ctx, bytes.NewReader(data), id.Name)
//
// Save copies with a small buffer and checks the context between chunks,
// so a client disconnect mid-upload aborts the write and removes the
// partial file.
package storage
