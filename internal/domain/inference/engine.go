// Package inference runs the loaded model pipelines over input batches and
// derives the maintenance outputs shown to operators.
package inference

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/evpulse/evpulse/internal/domain/artifact"
	"github.com/evpulse/evpulse/internal/domain/model"
	"github.com/evpulse/evpulse/pkg/logger"
	"github.com/evpulse/evpulse/pkg/metrics"
)

// Engine evaluates both pipelines over combined input batches. The loader is
// shared, read-only state; Engine itself is stateless and safe for
// concurrent use.
type Engine struct {
	loader *artifact.Loader
	log    logger.Logger
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithLogger sets a custom logger for the engine.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// NewEngine creates an engine over the given artifact loader.
func NewEngine(loader *artifact.Loader, opts ...Option) *Engine {
	e := &Engine{loader: loader}

	for _, opt := range opts {
		opt(e)
	}

	if e.log == nil {
		e.log = logger.Get().Named("inference")
	}
	return e
}

// Run scores every row of the batch with both models and derives per-row
// outputs, batch averages and the maintenance plan. distanceKM is the manual
// record's total distance, used for the tire rotation interval.
//
// Failures are typed so callers can present distinct causes while keeping
// the session alive: ErrModelUnavailable, ErrEmptyBatch, ErrBadVector.
func (e *Engine) Run(ctx context.Context, batch [][]float64, distanceKM float64) (model.Run, error) {
	if len(batch) == 0 {
		return model.Run{}, ErrEmptyBatch
	}
	if err := ctx.Err(); err != nil {
		return model.Run{}, fmt.Errorf("run cancelled: %w", err)
	}

	rulModel, err := e.loader.RUL(ctx)
	if err != nil {
		metrics.RecordPredictionError("model_unavailable")
		return model.Run{}, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}
	failureModel, err := e.loader.Failure(ctx)
	if err != nil {
		metrics.RecordPredictionError("model_unavailable")
		return model.Run{}, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}

	start := time.Now()

	rul, err := rulModel.Predict(batch)
	if err != nil {
		return model.Run{}, e.vectorError(ctx, "rul prediction failed", err)
	}
	failure, err := failureModel.PredictProbability(batch)
	if err != nil {
		return model.Run{}, e.vectorError(ctx, "failure prediction failed", err)
	}

	metrics.RecordInferenceLatency(float64(time.Since(start).Milliseconds()))

	rows := make([]model.PredictionRow, len(batch))
	var sumRUL, sumFailure float64
	for i := range batch {
		decision := model.DecideWarranty(rul[i], failure[i])
		rows[i] = model.PredictionRow{
			RULDays:            rul[i],
			FailureProbability: failure[i],
			VehicleHealth:      1 - failure[i],
			Warranty:           decision,
		}
		sumRUL += rul[i]
		sumFailure += failure[i]
		metrics.RecordWarrantyDecision(decision)
	}

	avgRUL := sumRUL / float64(len(rows))
	avgFailure := sumFailure / float64(len(rows))

	run := model.Run{
		ID:                    uuid.NewString(),
		CreatedAt:             time.Now().UTC(),
		Rows:                  rows,
		AvgRULDays:            avgRUL,
		AvgFailureProbability: avgFailure,
		Plan:                  model.NewMaintenancePlan(avgRUL, distanceKM),
	}

	metrics.RecordPredictionRun(len(rows))
	metrics.UpdateLastRunAverages(avgRUL, avgFailure)

	e.log.Info(ctx, "prediction run completed",
		logger.String("run_id", run.ID),
		logger.Int("rows", len(rows)),
		logger.Float64("avg_rul_days", avgRUL),
		logger.Float64("avg_failure_probability", avgFailure),
	)

	return run, nil
}

// vectorError classifies per-row evaluation failures.
func (e *Engine) vectorError(ctx context.Context, msg string, err error) error {
	if errors.Is(err, artifact.ErrBadInput) {
		metrics.RecordPredictionError("bad_vector")
		e.log.Warn(ctx, msg, logger.Error(err))
		return fmt.Errorf("%w: %w", ErrBadVector, err)
	}
	metrics.RecordPredictionError("inference")
	e.log.Error(ctx, msg, logger.Error(err))
	return err
}
