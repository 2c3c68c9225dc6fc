package gallery

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/gallerykit/pkg/clientip"
	"github.com/dmitrymomot/gallerykit/pkg/ingest"
	"github.com/dmitrymomot/gallerykit/pkg/storage"
)

// maxMultipartMemory bounds how much of a multipart form is held in memory
// before spilling to temp files. Per-file size limits are enforced by the
// pipeline itself.
const maxMultipartMemory = 32 << 20

// uploadFieldName is the multipart form field carrying the files.
const uploadFieldName = "files"

// RouterOptions wires the gallery module's collaborators.
type RouterOptions struct {
	Service    *ingest.Service
	Originals  storage.Storage
	Thumbnails storage.Storage
	Logger     *slog.Logger
}

// Router exposes the ingestion pipeline and the stored artifacts over HTTP:
//
//	POST /upload            multipart upload, returns the batch result
//	GET  /gallery           JSON listing of stored artifacts, newest first
//	GET  /uploads/{name}    serves an original
//	GET  /thumbnails/{name} serves a derived thumbnail
func Router(opts RouterOptions) chi.Router {
	h := &handlers{
		service:    opts.Service,
		originals:  opts.Originals,
		thumbnails: opts.Thumbnails,
		log:        opts.Logger,
	}
	if h.log == nil {
		h.log = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(clientip.Middleware)
	r.Use(SecurityHeaders)
	r.Use(RequestLogger(h.log))

	r.Post("/upload", h.upload)
	r.Get("/gallery", h.listArtifacts)
	r.Get("/uploads/{name}", h.serveFrom(opts.Originals))
	r.Get("/thumbnails/{name}", h.serveFrom(opts.Thumbnails))

	return r
}

type handlers struct {
	service    *ingest.Service
	originals  storage.Storage
	thumbnails storage.Storage
	log        *slog.Logger
}

func (h *handlers) upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "malformed multipart request")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	headers := r.MultipartForm.File[uploadFieldName]
	batch := make([]ingest.Candidate, 0, len(headers))
	var closers []interface{ Close() error }
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()

	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			h.log.WarnContext(ctx, "cannot open uploaded part",
				slog.String("filename", fh.Filename),
				slog.Any("error", err),
			)
			writeError(w, http.StatusBadRequest, "unreadable upload")
			return
		}
		closers = append(closers, f)
		batch = append(batch, ingest.Candidate{
			Filename:     fh.Filename,
			DeclaredMIME: fh.Header.Get("Content-Type"),
			Content:      f,
		})
	}

	result, err := h.service.Ingest(ctx, batch)
	switch {
	case errors.Is(err, ingest.ErrEmptyBatch):
		writeError(w, http.StatusBadRequest, "no files selected")
		return
	case errors.Is(err, ingest.ErrBatchTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "too many files in one upload")
		return
	case err != nil:
		h.log.ErrorContext(ctx, "ingest failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "upload processing failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *handlers) listArtifacts(w http.ResponseWriter, r *http.Request) {
	artifacts, err := ListArtifacts(r.Context(), h.originals, h.thumbnails)
	if err != nil {
		h.log.ErrorContext(r.Context(), "gallery listing failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "cannot list gallery")
		return
	}
	writeJSON(w, http.StatusOK, artifacts)
}

// serveFrom streams a stored file from the given root. Storage resolves
// names inside its base directory, so traversal attempts fail as not found.
func (h *handlers) serveFrom(s storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")

		rc, err := s.Open(r.Context(), name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer func() { _ = rc.Close() }()

		http.ServeContent(w, r, name, time.Time{}, rc)
	}
}
