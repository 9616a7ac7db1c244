// Command seed-models writes sample model artifacts so the service can run
// predictions locally without the externally trained pipelines.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/evpulse/evpulse/internal/domain/artifact"
	"github.com/evpulse/evpulse/internal/domain/model"
)

func main() {
	dir := flag.String("dir", "models", "directory to write the sample artifacts into")
	flag.Parse()

	if err := run(*dir); err != nil {
		fmt.Fprintln(os.Stderr, "seed-models:", err)
		os.Exit(1)
	}
}

func run(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	features := model.FeatureNames()

	// Sample RUL regressor: anchored at one year, pushed down by wear
	// signals (charge cycles, brake wear, vibration, distance) and pulled
	// up by battery state of health.
	rul := artifact.Pipeline{
		Task:         artifact.TaskRegression,
		Features:     features,
		Coefficients: coefficients(features, map[string]float64{
			"SoH":                 220,
			"SoC":                 15,
			"Charge_Cycles":       -0.04,
			"Battery_Temperature": -0.8,
			"Motor_Vibration":     -12,
			"Motor_Temperature":   -0.3,
			"Brake_Pad_Wear":      -90,
			"Distance_Traveled":   -0.0004,
			"Route_Roughness":     -4,
		}),
		Intercept: 180,
	}

	// Sample failure classifier: logistic over the same wear signals.
	failure := artifact.Pipeline{
		Task:         artifact.TaskClassification,
		Features:     features,
		Coefficients: coefficients(features, map[string]float64{
			"SoH":                 -4.0,
			"Charge_Cycles":       0.0008,
			"Battery_Temperature": 0.03,
			"Motor_Vibration":     0.5,
			"Motor_Temperature":   0.01,
			"Brake_Pad_Wear":      2.2,
			"Distance_Traveled":   0.000004,
			"Route_Roughness":     0.12,
		}),
		Intercept: -1.5,
	}

	for name, p := range map[string]artifact.Pipeline{
		"rul_pipeline.json":                 rul,
		"failure_probability_pipeline.json": failure,
	} {
		path := filepath.Join(dir, name)
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal %s: %w", name, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Println("wrote", path)
	}
	return nil
}

// coefficients expands a sparse name->weight map into the dense vector the
// pipeline format expects.
func coefficients(features []string, weights map[string]float64) []float64 {
	out := make([]float64, len(features))
	for i, name := range features {
		out[i] = weights[name]
	}
	return out
}
