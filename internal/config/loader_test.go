package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/evpulse/evpulse/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("Given a clean environment", t, func() {
		t.Setenv("EVPULSE_CONFIG", "")

		// Convey re-runs this tree for every leaf, but t.Setenv only
		// restores values when the whole test ends, so overrides set in
		// one branch would leak into its siblings without this Reset.
		Reset(func() {
			for _, key := range []string{
				"EVPULSE_ADDR",
				"EVPULSE_LOG_LEVEL",
				"EVPULSE_RUN_HISTORY_SIZE",
				"EVPULSE_FEED_INTERVAL_MS",
				"EVPULSE_RUL_MODEL_PATH",
			} {
				So(os.Unsetenv(key), ShouldBeNil)
			}
		})

		Convey("When loading with no overrides", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then defaults should apply", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":8080")
				So(cfg.LogLevel, ShouldEqual, "info")
				So(cfg.RULModelPath, ShouldEqual, "models/rul_pipeline.json")
				So(cfg.FailureModelPath, ShouldEqual, "models/failure_probability_pipeline.json")
				So(cfg.FeedIntervalMS, ShouldEqual, 2000)
				So(cfg.MaxUploadRows, ShouldEqual, 10_000)
				So(cfg.RunHistorySize, ShouldEqual, 50)
			})
		})

		Convey("When environment variables override defaults", func() {
			t.Setenv("EVPULSE_ADDR", ":9090")
			t.Setenv("EVPULSE_LOG_LEVEL", "debug")
			t.Setenv("EVPULSE_RUN_HISTORY_SIZE", "5")

			cfg, err := config.Load(context.Background())

			Convey("Then the overridden values should win", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9090")
				So(cfg.LogLevel, ShouldEqual, "debug")
				So(cfg.RunHistorySize, ShouldEqual, 5)
			})

			Convey("And untouched values should keep their defaults", func() {
				So(cfg.FeedIntervalMS, ShouldEqual, 2000)
			})
		})

		Convey("When a YAML file is provided", func() {
			path := filepath.Join(t.TempDir(), "config.yaml")
			content := "addr: \":7070\"\nfeed_interval_ms: 500\n"
			So(os.WriteFile(path, []byte(content), 0o600), ShouldBeNil)
			t.Setenv("EVPULSE_CONFIG", path)

			Convey("Then file values should override defaults", func() {
				cfg, err := config.Load(context.Background())
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.FeedIntervalMS, ShouldEqual, 500)
			})

			Convey("And environment variables should override the file", func() {
				t.Setenv("EVPULSE_ADDR", ":6060")
				cfg, err := config.Load(context.Background())
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":6060")
				So(cfg.FeedIntervalMS, ShouldEqual, 500)
			})
		})

		Convey("When the config file does not exist", func() {
			t.Setenv("EVPULSE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

			Convey("Then loading should fail with the load kind", func() {
				_, err := config.Load(context.Background())
				So(err, ShouldNotBeNil)
				So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
			})
		})

		Convey("When an override violates validation", func() {
			t.Setenv("EVPULSE_FEED_INTERVAL_MS", "-5")

			Convey("Then loading should fail with the invalid kind", func() {
				_, err := config.Load(context.Background())
				So(err, ShouldNotBeNil)
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})

		Convey("When a required path is blanked out", func() {
			t.Setenv("EVPULSE_RUL_MODEL_PATH", "")

			Convey("Then loading should fail with the invalid kind", func() {
				// An empty env value still overrides the default path.
				_, err := config.Load(context.Background())
				So(err, ShouldNotBeNil)
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})
	})
}

func TestNew(t *testing.T) {
	Convey("Given the default constructor", t, func() {
		cfg := config.New()

		Convey("Then every field should be populated", func() {
			So(cfg.Addr, ShouldNotBeEmpty)
			So(cfg.LogLevel, ShouldNotBeEmpty)
			So(cfg.RULModelPath, ShouldNotBeEmpty)
			So(cfg.FailureModelPath, ShouldNotBeEmpty)
			So(cfg.FeedIntervalMS, ShouldBeGreaterThan, 0)
			So(cfg.MaxUploadRows, ShouldBeGreaterThan, 0)
			So(cfg.RunHistorySize, ShouldBeGreaterThan, 0)
		})
	})
}
