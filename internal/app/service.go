// Package app provides the core business service that implements the
// dependencies required by the HTTP API.
package app

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/evpulse/evpulse/internal/adapters/feed"
	"github.com/evpulse/evpulse/internal/adapters/ingest"
	"github.com/evpulse/evpulse/internal/adapters/repository"
	"github.com/evpulse/evpulse/internal/domain/artifact"
	"github.com/evpulse/evpulse/internal/domain/inference"
	"github.com/evpulse/evpulse/internal/domain/model"
	"github.com/evpulse/evpulse/internal/domain/simulate"
	"github.com/evpulse/evpulse/pkg/logger"
	"github.com/evpulse/evpulse/pkg/metrics"
)

// Service owns the predictive-maintenance components: the artifact loader,
// the inference engine, the upload/run stores and the live feed.
type Service struct {
	mu sync.RWMutex

	// Core components
	loader     *artifact.Loader
	engine     *inference.Engine
	liveFeed   *feed.Feed
	batchStore repository.BatchStore
	runStore   repository.RunStore

	// Configuration
	rulPath        string
	failurePath    string
	feedInterval   time.Duration
	maxUploadRows  int
	runHistorySize int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithModelPaths sets the two artifact paths.
func WithModelPaths(rulPath, failurePath string) Option {
	return func(s *Service) {
		if rulPath != "" {
			s.rulPath = rulPath
		}
		if failurePath != "" {
			s.failurePath = failurePath
		}
	}
}

// WithFeedInterval sets the live feed cadence.
func WithFeedInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.feedInterval = d
		}
	}
}

// WithMaxUploadRows caps the rows accepted from one CSV upload.
func WithMaxUploadRows(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxUploadRows = n
		}
	}
}

// WithRunHistorySize bounds the retained run history.
func WithRunHistorySize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.runHistorySize = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		rulPath:        "models/rul_pipeline.json",
		failurePath:    "models/failure_probability_pipeline.json",
		feedInterval:   2 * time.Second,
		maxUploadRows:  10_000,
		runHistorySize: 50,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes components and launches the live feed loop. Model
// artifacts are loaded once here; missing files are surfaced as warnings
// and leave prediction unavailable rather than failing startup.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting maintenance service...")

	s.loader = artifact.NewLoader(
		artifact.WithRULPath(s.rulPath),
		artifact.WithFailurePath(s.failurePath),
		artifact.WithLogger(s.logger.Named("artifact")),
	)
	s.loader.LoadAll(ctx)

	s.engine = inference.NewEngine(s.loader,
		inference.WithLogger(s.logger.Named("inference")),
	)

	s.batchStore = repository.NewMemoryBatchStore()
	s.runStore = repository.NewMemoryRunStore(
		repository.WithHistorySize(s.runHistorySize),
	)

	s.liveFeed = feed.New(
		feed.WithInterval(s.feedInterval),
		feed.WithGenerator(simulate.NewGenerator()),
		feed.WithLogger(s.logger.Named("feed")),
	)
	s.liveFeed.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "maintenance service started",
		logger.String("rul_model", s.rulPath),
		logger.String("failure_model", s.failurePath),
		logger.Int("run_history_size", s.runHistorySize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.liveFeed != nil {
		if err := s.liveFeed.Shutdown(ctx); err != nil {
			s.logger.Warn(ctx, "live feed shutdown", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(context.Background(), "maintenance service stopped")
}

// Predict runs both models over the manual record plus, when requested, the
// stored upload batch. The manual row always comes first in the combined
// batch, mirroring how results are presented.
func (s *Service) Predict(ctx context.Context, record model.SensorRecord, includeUpload bool) (model.Run, error) {
	if err := record.Validate(); err != nil {
		return model.Run{}, err
	}

	batch := [][]float64{record.Vector()}
	if includeUpload {
		if upload, ok := s.batchStore.Get(ctx); ok {
			batch = append(batch, upload.Rows...)
		}
	}

	run, err := s.engine.Run(ctx, batch, record.DistanceTraveledKM)
	if err != nil {
		return model.Run{}, err
	}

	s.runStore.Add(ctx, run)
	return run, nil
}

// Upload parses a CSV stream and stores it as the session's upload batch.
// On parse failure the previous batch is left untouched.
func (s *Service) Upload(ctx context.Context, filename string, r io.Reader) (repository.UploadBatch, error) {
	rows, err := ingest.DecodeCSV(r, s.maxUploadRows)
	if err != nil {
		metrics.RecordCSVUploadError()
		s.logger.Warn(ctx, "csv upload rejected",
			logger.String("filename", filename),
			logger.Error(err),
		)
		return repository.UploadBatch{}, fmt.Errorf("upload %s: %w", filename, err)
	}

	batch := repository.UploadBatch{
		ID:         uuid.NewString(),
		Filename:   filename,
		Rows:       rows,
		RowCount:   len(rows),
		UploadedAt: time.Now().UTC(),
	}
	s.batchStore.Put(ctx, batch)
	metrics.RecordCSVUpload(len(rows))

	s.logger.Info(ctx, "csv upload accepted",
		logger.String("batch_id", batch.ID),
		logger.String("filename", filename),
		logger.Int("rows", len(rows)),
	)
	return batch, nil
}

// UploadStatus returns the stored upload batch, if any.
func (s *Service) UploadStatus(ctx context.Context) (repository.UploadBatch, bool) {
	return s.batchStore.Get(ctx)
}

// ClearUpload drops the stored upload batch.
func (s *Service) ClearUpload(ctx context.Context) {
	s.batchStore.Clear(ctx)
}

// ModelStatuses reports both artifact slots.
func (s *Service) ModelStatuses(ctx context.Context) []artifact.Status {
	return s.loader.Statuses(ctx)
}

// Runs returns up to n recent prediction runs, newest first.
func (s *Service) Runs(ctx context.Context, n int) []model.Run {
	return s.runStore.Recent(ctx, n)
}

// Live feed controls.

// FeedEnable turns the simulated feed on.
func (s *Service) FeedEnable() { s.liveFeed.Enable() }

// FeedDisable turns the simulated feed off.
func (s *Service) FeedDisable() { s.liveFeed.Disable() }

// FeedRunning reports the feed toggle state.
func (s *Service) FeedRunning() bool { return s.liveFeed.Running() }

// FeedLatest returns the most recent synthetic sample, if any.
func (s *Service) FeedLatest() (model.LiveSample, bool) { return s.liveFeed.Latest() }

// FeedSubscribe registers a live sample subscriber.
func (s *Service) FeedSubscribe() (<-chan model.LiveSample, func()) { return s.liveFeed.Subscribe() }

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":          s.started,
		"run_history_size": s.runHistorySize,
		"max_upload_rows":  s.maxUploadRows,
		"feed_interval_ms": s.feedInterval.Milliseconds(),
	}

	if s.started {
		stats["runs_retained"] = s.runStore.Len(ctx)
		stats["feed_running"] = s.liveFeed.Running()

		if batch, ok := s.batchStore.Get(ctx); ok {
			stats["upload_rows"] = batch.RowCount
		} else {
			stats["upload_rows"] = 0
		}

		loaded := 0
		for _, st := range s.loader.Statuses(ctx) {
			if st.Loaded {
				loaded++
			}
		}
		stats["models_loaded"] = loaded
	}

	return stats
}
