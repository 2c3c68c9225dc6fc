package ingest_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gallerykit/pkg/dedup"
	"github.com/dmitrymomot/gallerykit/pkg/ingest"
	"github.com/dmitrymomot/gallerykit/pkg/storage"
)

func TestRebuildIndex(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	originalsDir := t.TempDir()
	thumbsDir := t.TempDir()

	originals, err := storage.NewLocalStorage(originalsDir)
	require.NoError(t, err)
	thumbs, err := storage.NewLocalStorage(thumbsDir)
	require.NoError(t, err)

	svc, err := ingest.New(ingest.Config{}, originals, thumbs, dedup.NewMemoryIndex(),
		ingest.WithLogger(slog.New(slog.DiscardHandler)))
	require.NoError(t, err)

	photo := pngBytes(t, 120, 90, 11)
	clip := []byte{0x1a, 0x45, 0xdf, 0xa3, 0x42, 0x86}

	res, err := svc.Ingest(ctx, []ingest.Candidate{
		candidate("photo.png", "image/png", photo),
		candidate("clip.mkv", "video/x-matroska", clip),
	})
	require.NoError(t, err)
	require.Equal(t, 2, res.Accepted)
	storedName := res.Results[0].StorageName

	// A foreign file in the root must not be indexed.
	_, err = originals.Save(ctx, bytes.NewReader([]byte("noise")), "readme.txt")
	require.NoError(t, err)

	// Simulate a restart: same storage roots, fresh index.
	restartedOriginals, err := storage.NewLocalStorage(originalsDir)
	require.NoError(t, err)
	restarted, err := ingest.New(ingest.Config{}, restartedOriginals, thumbs, dedup.NewMemoryIndex(),
		ingest.WithLogger(slog.New(slog.DiscardHandler)))
	require.NoError(t, err)

	indexed, err := restarted.RebuildIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, indexed)

	// Re-submitting previously accepted bytes is a duplicate after rebuild.
	res, err = restarted.Ingest(ctx, []ingest.Candidate{candidate("photo again.png", "image/png", photo)})
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Equal(t, ingest.StatusDuplicate, res.Results[0].Status)
	assert.Equal(t, storedName, res.Results[0].DuplicateOf)

	// New content is still accepted.
	res, err = restarted.Ingest(ctx, []ingest.Candidate{candidate("new.png", "image/png", pngBytes(t, 60, 60, 12))})
	require.NoError(t, err)
	assert.Equal(t, ingest.StatusAccepted, res.Results[0].Status)
}

func TestRebuildIndex_EmptyRoot(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newService(t, ingest.Config{})

	indexed, err := svc.RebuildIndex(context.Background())
	require.NoError(t, err)
	assert.Zero(t, indexed)
}
