// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"
)

const defaultRunsLimit = 10

// RunsHandler exposes the recent prediction run history.
type RunsHandler struct {
	deps Dependencies
}

// NewRunsHandler creates a new runs handler.
func NewRunsHandler(deps Dependencies) *RunsHandler {
	return &RunsHandler{deps: deps}
}

// HandleGetRuns handles GET /api/v1/runs?limit=N requests.
func (h *RunsHandler) HandleGetRuns(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_runs"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	n := defaultRunsLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		n = parsed
	}

	writeJSON(w, http.StatusOK, h.deps.Runs(r.Context(), n))
}
