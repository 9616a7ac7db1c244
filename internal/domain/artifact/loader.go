package artifact

import (
	"context"
	"sync"

	"github.com/evpulse/evpulse/pkg/logger"
	"github.com/evpulse/evpulse/pkg/metrics"
)

// Model roles served by the loader.
const (
	ModelRUL     = "rul"
	ModelFailure = "failure_probability"
)

// Status reports one artifact slot for operator-facing surfaces.
type Status struct {
	Model  string `json:"model"`
	Path   string `json:"path"`
	Loaded bool   `json:"loaded"`
	Error  string `json:"error,omitempty"`
}

type slot struct {
	model string
	path  string

	once     sync.Once
	pipeline *Pipeline
	err      error
}

func (s *slot) load(ctx context.Context, log logger.Logger) {
	s.once.Do(func() {
		s.pipeline, s.err = Load(s.path)
		if s.err != nil {
			metrics.RecordArtifactLoad(s.model, "error")
			// Missing or broken artifacts disable prediction but never
			// terminate the process.
			log.Warn(ctx, "model artifact unavailable",
				logger.String("model", s.model),
				logger.String("path", s.path),
				logger.Error(s.err),
			)
			return
		}
		metrics.RecordArtifactLoad(s.model, "ok")
		log.Info(ctx, "model artifact loaded",
			logger.String("model", s.model),
			logger.String("path", s.path),
			logger.Int("width", s.pipeline.Width()),
		)
	})
}

// Loader reads both model artifacts at most once per process and caches the
// outcome, success or failure. Constructed once at startup and passed by
// reference to whichever component performs inference.
type Loader struct {
	rul     slot
	failure slot
	log     logger.Logger
}

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithRULPath sets the remaining-useful-life artifact path.
func WithRULPath(path string) Option {
	return func(l *Loader) {
		if path != "" {
			l.rul.path = path
		}
	}
}

// WithFailurePath sets the failure-probability artifact path.
func WithFailurePath(path string) Option {
	return func(l *Loader) {
		if path != "" {
			l.failure.path = path
		}
	}
}

// WithLogger sets a custom logger for the loader.
func WithLogger(log logger.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

// NewLoader creates a loader for the two model artifacts.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		rul:     slot{model: ModelRUL, path: "models/rul_pipeline.json"},
		failure: slot{model: ModelFailure, path: "models/failure_probability_pipeline.json"},
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.log == nil {
		l.log = logger.Get().Named("artifact")
	}
	return l
}

// LoadAll attempts to load both artifacts. Safe to call repeatedly; files
// are read once per process lifetime.
func (l *Loader) LoadAll(ctx context.Context) {
	l.rul.load(ctx, l.log)
	l.failure.load(ctx, l.log)
}

// RUL returns the remaining-useful-life pipeline or the cached load error.
func (l *Loader) RUL(ctx context.Context) (*Pipeline, error) {
	l.rul.load(ctx, l.log)
	return l.rul.pipeline, l.rul.err
}

// Failure returns the failure-probability pipeline or the cached load error.
func (l *Loader) Failure(ctx context.Context) (*Pipeline, error) {
	l.failure.load(ctx, l.log)
	return l.failure.pipeline, l.failure.err
}

// Statuses reports both slots without triggering loads beyond the first.
func (l *Loader) Statuses(ctx context.Context) []Status {
	l.LoadAll(ctx)
	out := make([]Status, 0, 2)
	for _, s := range []*slot{&l.rul, &l.failure} {
		st := Status{Model: s.model, Path: s.path, Loaded: s.err == nil && s.pipeline != nil}
		if s.err != nil {
			st.Error = s.err.Error()
		}
		out = append(out, st)
	}
	return out
}
