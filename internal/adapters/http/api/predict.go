// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/evpulse/evpulse/internal/domain/inference"
	"github.com/evpulse/evpulse/internal/domain/model"
)

// predictRequest mirrors the OpenAPI schema for POST /api/v1/predict.
// The record carries raw control values; percent fields are still 0..100.
type predictRequest struct {
	Record        model.SensorRecord `json:"record"`
	IncludeUpload bool               `json:"include_upload"`
}

// PredictHandler handles prediction requests.
type PredictHandler struct {
	deps Dependencies
}

// NewPredictHandler creates a new prediction handler.
func NewPredictHandler(deps Dependencies) *PredictHandler {
	return &PredictHandler{deps: deps}
}

// HandlePredict handles POST /api/v1/predict requests.
//
// Inference failures are reported, never fatal: each typed cause maps to its
// own status so the operator can tell a missing model from a width mismatch.
func (h *PredictHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	const op = "api.predict"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	run, err := h.deps.Predict(r.Context(), req.Record, req.IncludeUpload)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrOutOfRange):
			writeError(w, http.StatusBadRequest, "out_of_range", err)
		case errors.Is(err, inference.ErrModelUnavailable):
			writeError(w, http.StatusConflict, "model_unavailable", err)
		case errors.Is(err, inference.ErrBadVector):
			writeError(w, http.StatusUnprocessableEntity, "vector_mismatch", err)
		case errors.Is(err, inference.ErrEmptyBatch):
			writeError(w, http.StatusBadRequest, "empty_batch", err)
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, run)
}
