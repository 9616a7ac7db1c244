// Package artifact loads and evaluates serialized model pipelines.
//
// An artifact is a JSON file holding an optional standard scaler and the
// weights of a linear pipeline: regression artifacts predict a value,
// classification artifacts predict a probability through the logistic
// function. The file format is opaque to callers; mismatches against the
// expected feature width surface as typed errors at load or predict time.
package artifact

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Supported pipeline tasks.
const (
	TaskRegression     = "regression"
	TaskClassification = "classification"
)

// Scaler standardizes input rows: (x - mean) / scale, element-wise.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Pipeline is a trained predictor loaded from disk. Immutable after load.
type Pipeline struct {
	Task         string    `json:"task"`
	Features     []string  `json:"features"`
	Scaler       *Scaler   `json:"scaler,omitempty"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

// Load reads and validates a pipeline from path. A missing file maps to
// ErrNotFound so callers can treat it as a non-fatal condition.
func Load(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreadable, path, err)
	}

	var p Pipeline
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, path, err)
	}
	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &p, nil
}

func (p *Pipeline) validate() error {
	switch p.Task {
	case TaskRegression, TaskClassification:
	default:
		return fmt.Errorf("%w: unknown task %q", ErrMalformed, p.Task)
	}
	if len(p.Coefficients) == 0 {
		return fmt.Errorf("%w: no coefficients", ErrMalformed)
	}
	if len(p.Features) > 0 && len(p.Features) != len(p.Coefficients) {
		return fmt.Errorf("%w: %d features vs %d coefficients", ErrMalformed, len(p.Features), len(p.Coefficients))
	}
	if p.Scaler != nil {
		if len(p.Scaler.Mean) != len(p.Coefficients) || len(p.Scaler.Scale) != len(p.Coefficients) {
			return fmt.Errorf("%w: scaler width mismatch", ErrMalformed)
		}
		for i, s := range p.Scaler.Scale {
			if s == 0 {
				return fmt.Errorf("%w: zero scale at index %d", ErrMalformed, i)
			}
		}
	}
	return nil
}

// Width returns the input row width the pipeline expects.
func (p *Pipeline) Width() int {
	return len(p.Coefficients)
}

// decision computes the linear term for one row, applying the scaler first.
func (p *Pipeline) decision(row []float64) (float64, error) {
	if len(row) != p.Width() {
		return 0, fmt.Errorf("%w: got %d values, want %d", ErrBadInput, len(row), p.Width())
	}
	sum := p.Intercept
	for i, v := range row {
		if p.Scaler != nil {
			v = (v - p.Scaler.Mean[i]) / p.Scaler.Scale[i]
		}
		sum += p.Coefficients[i] * v
	}
	return sum, nil
}

// Predict evaluates the pipeline over a batch of rows. Regression returns
// raw estimates; classification returns the 0/1 class at threshold 0.5.
func (p *Pipeline) Predict(rows [][]float64) ([]float64, error) {
	out := make([]float64, len(rows))
	for i, row := range rows {
		d, err := p.decision(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if p.Task == TaskClassification {
			if sigmoid(d) > 0.5 {
				d = 1
			} else {
				d = 0
			}
		}
		out[i] = d
	}
	return out, nil
}

// PredictProbability evaluates positive-class probabilities over a batch.
// Only classification pipelines support it.
func (p *Pipeline) PredictProbability(rows [][]float64) ([]float64, error) {
	if p.Task != TaskClassification {
		return nil, fmt.Errorf("%w: task %q has no probabilities", ErrWrongTask, p.Task)
	}
	out := make([]float64, len(rows))
	for i, row := range rows {
		d, err := p.decision(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = sigmoid(d)
	}
	return out, nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
