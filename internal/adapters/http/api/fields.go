// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/evpulse/evpulse/internal/domain/model"
)

// FieldsHandler describes the manual input controls.
type FieldsHandler struct{}

// NewFieldsHandler creates a new fields handler.
func NewFieldsHandler() *FieldsHandler {
	return &FieldsHandler{}
}

// HandleGetFields handles GET /api/v1/fields requests. The dashboard builds
// its bounded controls (min, max, default) from this description.
func (h *FieldsHandler) HandleGetFields(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, model.FieldSpecs())
}
