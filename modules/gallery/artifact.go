package gallery

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dmitrymomot/gallerykit/pkg/mediatype"
	"github.com/dmitrymomot/gallerykit/pkg/naming"
	"github.com/dmitrymomot/gallerykit/pkg/storage"
)

// Artifact is one stored upload as the gallery view sees it.
type Artifact struct {
	Name       string         `json:"name"`
	Kind       mediatype.Kind `json:"kind"`
	Size       int64          `json:"size"`
	UploadedAt time.Time      `json:"uploaded_at"`
	// Thumbnail is the serving name of the derived preview, empty for
	// videos and for images whose derivation failed.
	Thumbnail string `json:"thumbnail,omitempty"`
}

// ListArtifacts builds the gallery listing from the storage roots, newest
// first. Files without an accepted extension are ignored; the storage
// directory may contain foreign files that were never pipeline artifacts.
func ListArtifacts(ctx context.Context, originals, thumbnails storage.Storage) ([]Artifact, error) {
	files, err := originals.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list originals: %w", err)
	}

	artifacts := make([]Artifact, 0, len(files))
	for _, f := range files {
		kind, ok := mediatype.KindForFilename(f.Name)
		if !ok {
			continue
		}

		a := Artifact{
			Name:       f.Name,
			Kind:       kind,
			Size:       f.Size,
			UploadedAt: f.ModTime,
		}
		if kind == mediatype.KindImage {
			if token, ok := naming.Token(f.Name); ok {
				thumbName := naming.ThumbnailName(token)
				if thumbnails.Exists(ctx, thumbName) {
					a.Thumbnail = thumbName
				}
			}
		}
		artifacts = append(artifacts, a)
	}

	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].UploadedAt.After(artifacts[j].UploadedAt)
	})
	return artifacts, nil
}
