package posters

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"path"
	"sync"
	"time"

	"github.com/JanTran/movie-api/internal/logging"
	"github.com/JanTran/movie-api/internal/models"
)

// ImageFetcher downloads a poster image and reports a file extension for it.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, string, error)
}

// Storage persists poster bytes and returns their public location.
type Storage interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}

// PosterUpdater records per-movie ingestion outcomes.
type PosterUpdater interface {
	MarkPosterReady(ctx context.Context, movieID, location string) error
	MarkPosterFailed(ctx context.Context, movieID string) error
}

// IngestorConfig controls the concurrency characteristics of the ingestor.
type IngestorConfig struct {
	QueueSize    int
	Workers      int
	FetchTimeout time.Duration
}

// Ingestor copies upstream poster images into object storage using a small
// worker pool, recording ready/failed status per movie.
type Ingestor struct {
	fetcher ImageFetcher
	storage Storage
	updater PosterUpdater
	logger  *slog.Logger

	fetchTimeout time.Duration

	jobs   chan ingestJob
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

type ingestJob struct {
	movie models.Movie
}

var errIngestorClosed = errors.New("poster ingestor closed")

// NewIngestor constructs a background worker pool that ingests posters.
func NewIngestor(fetcher ImageFetcher, storage Storage, updater PosterUpdater, cfg IngestorConfig, logger *slog.Logger) *Ingestor {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 16
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	ing := &Ingestor{
		fetcher:      fetcher,
		storage:      storage,
		updater:      updater,
		logger:       logger,
		fetchTimeout: cfg.FetchTimeout,
		jobs:         make(chan ingestJob, cfg.QueueSize),
		ctx:          ctx,
		cancel:       cancel,
	}

	ing.wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go ing.worker()
	}

	return ing
}

// Enqueue schedules poster ingestion for the supplied movie.
func (i *Ingestor) Enqueue(ctx context.Context, movie models.Movie) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-i.ctx.Done():
		return errIngestorClosed
	default:
	}

	job := ingestJob{movie: movie}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-i.ctx.Done():
		return errIngestorClosed
	case i.jobs <- job:
		return nil
	}
}

// Shutdown stops accepting new jobs, drains the queue, and waits for the
// worker pool. When ctx expires first the remaining jobs are abandoned.
func (i *Ingestor) Shutdown(ctx context.Context) error {
	i.once.Do(func() {
		close(i.jobs)
	})

	done := make(chan struct{})
	go func() {
		i.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		i.cancel()
		return ctx.Err()
	case <-done:
		i.cancel()
		return nil
	}
}

func (i *Ingestor) worker() {
	defer i.wg.Done()

	for {
		select {
		case <-i.ctx.Done():
			return
		case job, ok := <-i.jobs:
			if !ok {
				return
			}
			i.handleJob(job)
		}
	}
}

func (i *Ingestor) handleJob(job ingestJob) {
	if i.fetcher == nil || i.storage == nil || i.updater == nil {
		i.logger.Error("poster ingestor missing dependencies",
			"hasFetcher", i.fetcher != nil, "hasStorage", i.storage != nil, "hasUpdater", i.updater != nil)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), i.fetchTimeout)
	defer cancel()

	ctx = logging.WithLogger(ctx, i.logger)
	ctx, span := logging.StartSpan(ctx, "poster.ingest")
	defer span.End()

	logger := logging.FromContext(ctx)

	data, ext, err := i.fetcher.Fetch(ctx, job.movie.ImagePath)
	if err != nil {
		logger.Error("poster fetch failed", "movieId", job.movie.ID, "url", job.movie.ImagePath, "error", err)
		i.recordFailure(job.movie.ID)
		return
	}

	key := path.Join(job.movie.ID, "poster"+ext)
	location, err := i.storage.Save(ctx, key, bytes.NewReader(data))
	if err != nil {
		logger.Error("poster upload failed", "movieId", job.movie.ID, "key", key, "error", err)
		i.recordFailure(job.movie.ID)
		return
	}

	if err := i.recordSuccess(job.movie.ID, location); err != nil {
		logger.Error("mark poster ready", "movieId", job.movie.ID, "error", err)
		i.recordFailure(job.movie.ID)
		return
	}

	logger.Info("poster ingested", "movieId", job.movie.ID, "location", location)
}

func (i *Ingestor) recordFailure(movieID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := i.updater.MarkPosterFailed(ctx, movieID); err != nil {
		i.logger.Error("record poster failure", "movieId", movieID, "error", err)
	}
}

func (i *Ingestor) recordSuccess(movieID, location string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return i.updater.MarkPosterReady(ctx, movieID, location)
}
