package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if EVPULSE_CONFIG is set
//  3. env (prefix EVPULSE_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("EVPULSE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: EVPULSE_ADDR, EVPULSE_RUL_MODEL_PATH, ...
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("EVPULSE_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "evpulse_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.RULModelPath == "":
		return fmt.Errorf("%w: rul_model_path must not be empty", ErrInvalidConfig)
	case c.FailureModelPath == "":
		return fmt.Errorf("%w: failure_model_path must not be empty", ErrInvalidConfig)
	case c.FeedIntervalMS <= 0:
		return fmt.Errorf("%w: feed_interval_ms must be positive", ErrInvalidConfig)
	case c.MaxUploadRows <= 0:
		return fmt.Errorf("%w: max_upload_rows must be positive", ErrInvalidConfig)
	case c.RunHistorySize <= 0:
		return fmt.Errorf("%w: run_history_size must be positive", ErrInvalidConfig)
	}
	return nil
}
