// Package app wires configuration, storage, and HTTP handlers into the
// runnable myFlix commands.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JanTran/movie-api/internal/config"
	"github.com/JanTran/movie-api/internal/db"
	"github.com/JanTran/movie-api/internal/handlers"
	"github.com/JanTran/movie-api/internal/httpserver"
	"github.com/JanTran/movie-api/internal/middleware"
	"github.com/JanTran/movie-api/internal/posters"
	"github.com/JanTran/movie-api/internal/repositories"
	"github.com/JanTran/movie-api/internal/storage"
)

// Run dispatches the requested subcommand.
func Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("expected command: serve, migrate, seed, or posters")
	}

	switch args[0] {
	case "serve":
		return serve(ctx)
	case "migrate":
		return runMigrations(ctx, args[1:])
	case "seed":
		return runSeed(ctx, args[1:])
	case "posters":
		return runPosterIngest(ctx)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	deps, err := buildDependencies(pool, cfg)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux, deps)

	handler := middleware.RequestLogger(logger)(mux)

	srv := httpserver.New(cfg.AppPort, handler)

	logger.Info("starting http server", "port", cfg.AppPort)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- srv.Start()
	}()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-ctx.Done():
		logger.Info("context canceled, shutting down server")
	case sig := <-signalCh:
		logger.Info("received signal, shutting down", "signal", sig.String())
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), httpserver.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// runPosterIngest downloads pending poster images into object storage.
func runPosterIngest(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{}))
	slog.SetDefault(logger)

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	store, err := storage.NewS3Storage(ctx, cfg.ObjectStore)
	if err != nil {
		return err
	}

	movies := repositories.NewPostgresMovieRepository(pool)
	fetcher := posters.NewFetcher(cfg.PosterFetchTimeout, cfg.PosterFetchPerSecond, 0)

	ingestor := posters.NewIngestor(fetcher, store, movies, posters.IngestorConfig{
		QueueSize:    cfg.PosterQueueSize,
		Workers:      cfg.PosterWorkers,
		FetchTimeout: cfg.PosterFetchTimeout,
	}, logger)

	pending, err := movies.ListPendingPosters(ctx)
	if err != nil {
		return err
	}

	if len(pending) == 0 {
		logger.Info("no pending posters")
		return nil
	}

	for _, movie := range pending {
		if err := ingestor.Enqueue(ctx, movie); err != nil {
			return fmt.Errorf("enqueue poster for %s: %w", movie.Title, err)
		}
	}

	logger.Info("ingesting posters", "count", len(pending))

	drainCtx, cancel := context.WithTimeout(ctx, time.Duration(len(pending))*cfg.PosterFetchTimeout)
	defer cancel()

	return ingestor.Shutdown(drainCtx)
}
