package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/gallerykit/pkg/dedup"
	"github.com/dmitrymomot/gallerykit/pkg/fingerprint"
	"github.com/dmitrymomot/gallerykit/pkg/integrity"
	"github.com/dmitrymomot/gallerykit/pkg/mediatype"
	"github.com/dmitrymomot/gallerykit/pkg/naming"
	"github.com/dmitrymomot/gallerykit/pkg/storage"
	"github.com/dmitrymomot/gallerykit/pkg/thumbnail"
)

// Config holds the orchestrator's hard limits and scheduling knobs.
type Config struct {
	// MaxFilesPerBatch rejects the entire request before processing when
	// exceeded.
	MaxFilesPerBatch int `env:"INGEST_MAX_FILES_PER_BATCH" envDefault:"10"`
	// MaxFileBytes rejects a single oversized file, leaving the rest of
	// the batch untouched. Default 50MiB.
	MaxFileBytes int64 `env:"INGEST_MAX_FILE_BYTES" envDefault:"52428800"`
	// Workers bounds in-batch parallelism. 1 processes sequentially.
	Workers int `env:"INGEST_WORKERS" envDefault:"4"`
}

// Service is the batch orchestrator: it runs every candidate through
// classification, naming, dedup, integrity verification, persistence and
// thumbnail derivation, aggregating per-candidate outcomes so one file's
// failure never aborts the batch.
type Service struct {
	cfg       Config
	originals storage.Storage
	thumbs    storage.Storage
	index     dedup.Index
	log       *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New builds a Service over the originals root, the thumbnails root and a
// dedup index. Zero or negative limits fall back to their defaults.
func New(cfg Config, originals, thumbs storage.Storage, index dedup.Index, opts ...Option) (*Service, error) {
	if originals == nil || thumbs == nil {
		return nil, ErrNilStorage
	}
	if index == nil {
		return nil, ErrNilIndex
	}

	if cfg.MaxFilesPerBatch <= 0 {
		cfg.MaxFilesPerBatch = 10
	}
	if cfg.MaxFileBytes <= 0 {
		cfg.MaxFileBytes = 50 << 20
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	s := &Service{
		cfg:       cfg,
		originals: originals,
		thumbs:    thumbs,
		index:     index,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Ingest runs the full pipeline over an ordered batch of candidates.
//
// The batch-level file count limit is the only check that fails the whole
// request; every other failure is captured in that candidate's Result.
// Results keep the submitted order via their Index field even when
// candidates are processed in parallel.
func (s *Service) Ingest(ctx context.Context, batch []Candidate) (*BatchResult, error) {
	if len(batch) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(batch) > s.cfg.MaxFilesPerBatch {
		return nil, fmt.Errorf("%w: got %d, limit %d", ErrBatchTooLarge, len(batch), s.cfg.MaxFilesPerBatch)
	}

	results := make([]Result, len(batch))

	g := new(errgroup.Group)
	g.SetLimit(s.cfg.Workers)
	for i, c := range batch {
		g.Go(func() error {
			results[i] = s.process(ctx, i, c)
			return nil
		})
	}
	_ = g.Wait() // workers report through results, never through errors

	out := &BatchResult{Results: results}
	for _, r := range results {
		switch r.Status {
		case StatusAccepted:
			out.Accepted++
		case StatusDuplicate:
			out.Duplicates++
		case StatusRejected:
			out.Rejected++
		case StatusErrored:
			out.Errored++
		}
	}

	s.log.InfoContext(ctx, "batch ingested",
		slog.Int("files", len(batch)),
		slog.Int("accepted", out.Accepted),
		slog.Int("duplicates", out.Duplicates),
		slog.Int("rejected", out.Rejected),
		slog.Int("errored", out.Errored),
	)
	return out, nil
}

// process runs one candidate through every stage. It never panics or
// returns an error; all failures land in the Result.
func (s *Service) process(ctx context.Context, idx int, c Candidate) Result {
	res := Result{Index: idx, Filename: c.Filename}

	data, err := readBounded(c.Content, s.cfg.MaxFileBytes)
	switch {
	case errors.Is(err, ErrFileTooLarge):
		s.log.WarnContext(ctx, "file too large", slog.String("filename", c.Filename))
		return rejected(res, ReasonTooLarge)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return errored(res, ReasonCanceled)
	case err != nil:
		s.log.WarnContext(ctx, "payload read failed", slog.String("filename", c.Filename), slog.Any("error", err))
		return errored(res, ReasonTransferFailed)
	}
	res.Size = int64(len(data))

	head := data
	if len(head) > mediatype.SniffLen {
		head = head[:mediatype.SniffLen]
	}
	class, err := mediatype.Classify(c.Filename, c.DeclaredMIME, head)
	if err != nil {
		s.log.WarnContext(ctx, "file type rejected",
			slog.String("filename", c.Filename),
			slog.Any("error", err),
		)
		return rejected(res, ReasonInvalidType)
	}
	res.Kind = class.Kind

	id := naming.New(c.Filename)
	fp := fingerprint.ComputeBytes(data)

	// Integrity runs before the index reservation so identical corrupt
	// uploads racing each other both reject instead of one reporting a
	// duplicate of an artifact that was rolled back.
	if class.Kind == mediatype.KindImage {
		if err := integrity.VerifyImage(data); err != nil {
			s.log.WarnContext(ctx, "corrupt image rejected",
				slog.String("filename", c.Filename),
				slog.Any("error", err),
			)
			return rejected(res, ReasonCorruptContent)
		}
	}

	existing, added, err := s.index.Add(ctx, fp, id.Name)
	if errors.Is(err, dedup.ErrIndexRace) {
		existing, added, err = s.index.Add(ctx, fp, id.Name)
	}
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return errored(res, ReasonCanceled)
	case err != nil:
		s.log.ErrorContext(ctx, "dedup index failure", slog.String("filename", c.Filename), slog.Any("error", err))
		return errored(res, ReasonIndexFailure)
	case !added:
		s.log.InfoContext(ctx, "duplicate upload",
			slog.String("filename", c.Filename),
			slog.String("hash", fp.Short()),
			slog.String("existing", existing),
		)
		res.Status = StatusDuplicate
		res.DuplicateOf = existing
		return res
	}

	if _, err := s.originals.Save(ctx, bytes.NewReader(data), id.Name); err != nil {
		// Roll back the reservation so a retry of the same bytes is not
		// reported as a duplicate of a file that was never written.
		_ = s.index.Remove(context.WithoutCancel(ctx), fp)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return errored(res, ReasonCanceled)
		}
		s.log.ErrorContext(ctx, "failed to store original", slog.String("filename", c.Filename), slog.Any("error", err))
		return errored(res, ReasonStorageFailure)
	}
	res.StorageName = id.Name

	if class.Kind == mediatype.KindImage {
		res.ThumbnailName, res.Warning = s.deriveThumbnail(ctx, id, data)
	}

	res.Status = StatusAccepted
	s.log.InfoContext(ctx, "file accepted",
		slog.String("filename", c.Filename),
		slog.String("stored_as", id.Name),
		slog.String("kind", string(class.Kind)),
		slog.String("hash", fp.Short()),
		slog.Int64("size", res.Size),
	)
	return res
}

// deriveThumbnail runs after the original is durably stored; any failure
// degrades to accepted-without-thumbnail.
func (s *Service) deriveThumbnail(ctx context.Context, id naming.Identity, data []byte) (string, Warning) {
	thumbName := naming.ThumbnailName(id.Token)

	thumbData, err := thumbnail.Derive(data)
	if err != nil {
		s.log.WarnContext(ctx, "thumbnail derivation failed",
			slog.String("original", id.Name),
			slog.Any("error", err),
		)
		return "", WarningThumbnailFailed
	}

	if _, err := s.thumbs.Save(ctx, bytes.NewReader(thumbData), thumbName); err != nil {
		s.log.WarnContext(ctx, "thumbnail write failed",
			slog.String("original", id.Name),
			slog.Any("error", err),
		)
		return "", WarningThumbnailFailed
	}
	return thumbName, ""
}

func rejected(res Result, reason Reason) Result {
	res.Status = StatusRejected
	res.Reason = reason
	return res
}

func errored(res Result, reason Reason) Result {
	res.Status = StatusErrored
	res.Reason = reason
	return res
}

// readBounded reads at most limit bytes, reporting ErrFileTooLarge when the
// stream exceeds it. Reading one byte past the limit avoids buffering an
// unbounded payload just to measure it.
func readBounded(r io.Reader, limit int64) ([]byte, error) {
	if r == nil {
		return nil, errors.New("nil content reader")
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, ErrFileTooLarge
	}
	return data, nil
}
