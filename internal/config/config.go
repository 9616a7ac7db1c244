// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) returning defaults; Load layers file and env on top.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// RULModelPath points at the serialized remaining-useful-life model.
	RULModelPath string `koanf:"rul_model_path"`

	// FailureModelPath points at the serialized failure-probability model.
	FailureModelPath string `koanf:"failure_model_path"`

	// FeedIntervalMS is the live feed cadence in milliseconds.
	FeedIntervalMS int `koanf:"feed_interval_ms"`

	// MaxUploadRows caps the number of rows accepted from one CSV upload.
	MaxUploadRows int `koanf:"max_upload_rows"`

	// RunHistorySize bounds the retained prediction run history.
	RunHistorySize int `koanf:"run_history_size"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":8080",
		RULModelPath:     "models/rul_pipeline.json",
		FailureModelPath: "models/failure_probability_pipeline.json",
		FeedIntervalMS:   2000,
		MaxUploadRows:    10_000,
		RunHistorySize:   50,
	}
}
