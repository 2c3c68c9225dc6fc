package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/gallerykit/pkg/fingerprint"
	"github.com/dmitrymomot/gallerykit/pkg/mediatype"
)

// RebuildIndex repopulates the dedup index from the originals already on
// disk. A fresh process must call it once at startup, otherwise re-uploads
// of previously accepted files would be stored as new artifacts.
//
// Files without an accepted extension are skipped; the storage root may
// contain foreign files that were never pipeline artifacts. Returns the
// number of artifacts indexed.
func (s *Service) RebuildIndex(ctx context.Context) (int, error) {
	files, err := s.originals.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("rebuild index: %w", err)
	}

	indexed := 0
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return indexed, err
		}
		if !mediatype.AllowedExtension(f.Name) {
			continue
		}

		rc, err := s.originals.Open(ctx, f.Name)
		if err != nil {
			s.log.WarnContext(ctx, "rebuild: cannot open stored file",
				slog.String("name", f.Name),
				slog.Any("error", err),
			)
			continue
		}
		fp, err := fingerprint.Compute(rc)
		_ = rc.Close()
		if err != nil {
			s.log.WarnContext(ctx, "rebuild: cannot fingerprint stored file",
				slog.String("name", f.Name),
				slog.Any("error", err),
			)
			continue
		}

		// First stored artifact wins; later files with identical bytes
		// stay on disk but never become dedup targets.
		if _, added, err := s.index.Add(ctx, fp, f.Name); err != nil {
			return indexed, fmt.Errorf("rebuild index: %w", err)
		} else if added {
			indexed++
		}
	}

	s.log.InfoContext(ctx, "dedup index rebuilt",
		slog.Int("files", len(files)),
		slog.Int("indexed", indexed),
	)
	return indexed, nil
}
