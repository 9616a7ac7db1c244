// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/evpulse/evpulse/internal/adapters/repository"
	"github.com/evpulse/evpulse/internal/domain/artifact"
	"github.com/evpulse/evpulse/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Predict runs inference over the manual record plus, optionally, the
	// stored upload batch.
	Predict(ctx context.Context, record model.SensorRecord, includeUpload bool) (model.Run, error)

	// Upload operations manage the session's CSV batch.
	Upload(ctx context.Context, filename string, r io.Reader) (repository.UploadBatch, error)
	UploadStatus(ctx context.Context) (repository.UploadBatch, bool)
	ClearUpload(ctx context.Context)

	// ModelStatuses reports the two artifact slots.
	ModelStatuses(ctx context.Context) []artifact.Status

	// Runs exposes the bounded prediction history, newest first.
	Runs(ctx context.Context, n int) []model.Run

	// Live feed controls.
	FeedEnable()
	FeedDisable()
	FeedRunning() bool
	FeedLatest() (model.LiveSample, bool)
	FeedSubscribe() (<-chan model.LiveSample, func())
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	fieldsHandler    *FieldsHandler
	predictHandler   *PredictHandler
	uploadHandler    *UploadHandler
	modelsHandler    *ModelsHandler
	runsHandler      *RunsHandler
	liveHandler      *LiveHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		fieldsHandler:    NewFieldsHandler(),
		predictHandler:   NewPredictHandler(deps),
		uploadHandler:    NewUploadHandler(deps),
		modelsHandler:    NewModelsHandler(deps),
		runsHandler:      NewRunsHandler(deps),
		liveHandler:      NewLiveHandler(deps),
		dashboardHandler: newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)

	mux.HandleFunc("/api/v1/fields", MetricsMiddleware(s.fieldsHandler.HandleGetFields, "fields"))
	mux.HandleFunc("/api/v1/predict", MetricsMiddleware(s.predictHandler.HandlePredict, "predict"))
	mux.HandleFunc("/api/v1/upload", MetricsMiddleware(s.uploadHandler.HandleUpload, "upload"))
	mux.HandleFunc("/api/v1/models", MetricsMiddleware(s.modelsHandler.HandleGetModels, "models"))
	mux.HandleFunc("/api/v1/runs", MetricsMiddleware(s.runsHandler.HandleGetRuns, "runs"))

	mux.HandleFunc("/api/v1/live/start", MetricsMiddleware(s.liveHandler.HandleStart, "live_start"))
	mux.HandleFunc("/api/v1/live/stop", MetricsMiddleware(s.liveHandler.HandleStop, "live_stop"))
	mux.HandleFunc("/api/v1/live/latest", MetricsMiddleware(s.liveHandler.HandleLatest, "live_latest"))
	// The websocket route skips the middleware: hijacked connections have no
	// meaningful status code to record.
	mux.HandleFunc("/api/v1/live/ws", s.liveHandler.HandleStream)

	// Root serves the dashboard page.
	mux.HandleFunc("/", s.dashboardHandler.HandleRoot)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
