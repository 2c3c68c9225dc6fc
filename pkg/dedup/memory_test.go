package dedup_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gallerykit/pkg/dedup"
	"github.com/dmitrymomot/gallerykit/pkg/fingerprint"
)

func TestMemoryIndex_Add(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("first insert wins", func(t *testing.T) {
		t.Parallel()
		idx := dedup.NewMemoryIndex()
		fp := fingerprint.ComputeBytes([]byte("content"))

		name, added, err := idx.Add(ctx, fp, "token1_a.png")
		require.NoError(t, err)
		assert.True(t, added)
		assert.Equal(t, "token1_a.png", name)

		name, added, err = idx.Add(ctx, fp, "token2_b.png")
		require.NoError(t, err)
		assert.False(t, added)
		assert.Equal(t, "token1_a.png", name)
	})

	t.Run("rejects malformed fingerprint", func(t *testing.T) {
		t.Parallel()
		idx := dedup.NewMemoryIndex()
		_, _, err := idx.Add(ctx, fingerprint.Fingerprint("not-a-digest"), "x.png")
		assert.ErrorIs(t, err, dedup.ErrInvalidFingerprint)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()
		idx := dedup.NewMemoryIndex()
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, _, err := idx.Add(canceled, fingerprint.ComputeBytes([]byte("x")), "x.png")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestMemoryIndex_LookupRemoveLen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	idx := dedup.NewMemoryIndex()
	fp := fingerprint.ComputeBytes([]byte("content"))

	_, ok, err := idx.Lookup(ctx, fp)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = idx.Add(ctx, fp, "stored.png")
	require.NoError(t, err)

	name, ok, err := idx.Lookup(ctx, fp)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "stored.png", name)

	n, err := idx.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, idx.Remove(ctx, fp))

	_, ok, err = idx.Lookup(ctx, fp)
	require.NoError(t, err)
	assert.False(t, ok)

	n, err = idx.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMemoryIndex_ConcurrentAdd(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	idx := dedup.NewMemoryIndex()
	fp := fingerprint.ComputeBytes([]byte("hot content"))

	const workers = 32
	winners := make(chan string, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fingerprint.ComputeBytes([]byte{byte(i)}).Short() + ".png"
			_, added, err := idx.Add(ctx, fp, name)
			assert.NoError(t, err)
			if added {
				winners <- name
			}
		}(i)
	}
	wg.Wait()
	close(winners)

	var won []string
	for name := range winners {
		won = append(won, name)
	}
	require.Len(t, won, 1, "exactly one concurrent Add must win")

	stored, ok, err := idx.Lookup(ctx, fp)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, won[0], stored)

	n, err := idx.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
