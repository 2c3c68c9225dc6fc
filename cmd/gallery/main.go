package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/gallerykit/modules/gallery"
	"github.com/dmitrymomot/gallerykit/pkg/config"
	"github.com/dmitrymomot/gallerykit/pkg/dedup"
	"github.com/dmitrymomot/gallerykit/pkg/httpserver"
	"github.com/dmitrymomot/gallerykit/pkg/ingest"
	"github.com/dmitrymomot/gallerykit/pkg/logger"
	"github.com/dmitrymomot/gallerykit/pkg/storage"
)

type appConfig struct {
	Addr          string `env:"SERVER_ADDR" envDefault:":8080"`
	UploadsDir    string `env:"UPLOADS_DIR" envDefault:"uploads"`
	ThumbnailsDir string `env:"THUMBNAILS_DIR" envDefault:"thumbnails"`
	RedisURL      string `env:"REDIS_URL"`
	LogFormat     string `env:"LOG_FORMAT" envDefault:"json"`

	Ingest ingest.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithFormat(logger.Format(cfg.LogFormat)),
		logger.WithAttr(slog.String("app", "gallery")),
	)
	logger.SetAsDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("gallery server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	originals, err := storage.NewLocalStorage(cfg.UploadsDir)
	if err != nil {
		return err
	}
	thumbnails, err := storage.NewLocalStorage(cfg.ThumbnailsDir)
	if err != nil {
		return err
	}

	index, err := newIndex(ctx, cfg.RedisURL, log)
	if err != nil {
		return err
	}

	svc, err := ingest.New(cfg.Ingest, originals, thumbnails, index, ingest.WithLogger(log))
	if err != nil {
		return err
	}

	// The dedup index is in-memory unless Redis is configured, so rebuild
	// it from the files already on disk before accepting uploads.
	restored, err := svc.RebuildIndex(ctx)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "dedup index ready", "fingerprints", restored)

	router := chi.NewRouter()
	router.Mount("/", gallery.Router(gallery.RouterOptions{
		Service:    svc,
		Originals:  originals,
		Thumbnails: thumbnails,
		Logger:     log,
	}))
	router.Get("/health", httpserver.HealthCheckHandler(ctx, log, func(ctx context.Context) error {
		_, err := index.Len(ctx)
		return err
	}))

	srv := httpserver.New(
		httpserver.WithAddr(cfg.Addr),
		httpserver.WithLogger(log),
	)
	return srv.Run(ctx, router)
}

func newIndex(ctx context.Context, redisURL string, log *slog.Logger) (dedup.Index, error) {
	if redisURL == "" {
		log.InfoContext(ctx, "using in-memory dedup index")
		return dedup.NewMemoryIndex(), nil
	}
	log.InfoContext(ctx, "using redis dedup index")
	return dedup.NewRedisIndexFromURL(ctx, redisURL)
}
