package main

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"

	"github.com/evpulse/evpulse/internal/adapters/http/api"
	"github.com/evpulse/evpulse/internal/adapters/http/swagger"
	"github.com/evpulse/evpulse/internal/app"
	"github.com/evpulse/evpulse/internal/config"
	"github.com/evpulse/evpulse/pkg/logger"
	"github.com/evpulse/evpulse/pkg/metrics"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			// Test with environment variables
			_ = os.Setenv("EVPULSE_ADDR", ":8080")
			_ = os.Setenv("EVPULSE_FEED_INTERVAL_MS", "500")
			_ = os.Setenv("EVPULSE_RUN_HISTORY_SIZE", "25")
			defer func() {
				_ = os.Unsetenv("EVPULSE_ADDR")
				_ = os.Unsetenv("EVPULSE_FEED_INTERVAL_MS")
				_ = os.Unsetenv("EVPULSE_RUN_HISTORY_SIZE")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.FeedIntervalMS, convey.ShouldEqual, 500)
				convey.So(cfg.RunHistorySize, convey.ShouldEqual, 25)
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := app.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := app.New(
					app.WithModelPaths("models/rul.json", "models/failure.json"),
					app.WithFeedInterval(time.Second),
					app.WithMaxUploadRows(500),
					app.WithRunHistorySize(10),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When wiring the HTTP routes", func() {
			svc := app.New(app.WithModelPaths(
				"testdata/absent_rul.json",
				"testdata/absent_failure.json",
			))
			err := svc.Start(context.Background())
			convey.So(err, convey.ShouldBeNil)
			defer svc.Stop()

			mux := http.NewServeMux()
			swagger.Register(context.Background(), mux)
			apiServer := api.NewServer(svc, svc)
			apiServer.Register(context.Background(), mux)

			convey.Convey("Then the mux should be populated", func() {
				convey.So(mux, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When checking the metrics registry", func() {
			convey.Convey("Then the custom registry should be available", func() {
				registry := metrics.GetRegistry()
				convey.So(registry, convey.ShouldNotBeNil)
				convey.So(registry, convey.ShouldHaveSameTypeAs, prometheus.NewRegistry())
			})
		})
	})
}
