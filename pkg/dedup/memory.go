package dedup

import (
	"context"
	"sync"

	"github.com/dmitrymomot/gallerykit/pkg/fingerprint"
)

// MemoryIndex is a process-local Index guarded by a single mutex. The lock
// covers only the map operations; hashing and disk I/O happen outside it.
// Suitable for single-process deployments; use RedisIndex when several
// instances share one storage root.
type MemoryIndex struct {
	mu      sync.RWMutex
	entries map[fingerprint.Fingerprint]string
}

// NewMemoryIndex returns an empty in-memory index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{entries: make(map[fingerprint.Fingerprint]string)}
}

func (idx *MemoryIndex) Add(ctx context.Context, fp fingerprint.Fingerprint, storageName string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if !fp.Valid() {
		return "", false, ErrInvalidFingerprint
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if existing, ok := idx.entries[fp]; ok {
		return existing, false, nil
	}
	idx.entries[fp] = storageName
	return storageName, true, nil
}

func (idx *MemoryIndex) Lookup(ctx context.Context, fp fingerprint.Fingerprint) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	name, ok := idx.entries[fp]
	return name, ok, nil
}

func (idx *MemoryIndex) Remove(ctx context.Context, fp fingerprint.Fingerprint) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	delete(idx.entries, fp)
	return nil
}

func (idx *MemoryIndex) Len(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.entries), nil
}
