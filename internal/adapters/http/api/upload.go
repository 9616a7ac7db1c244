// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// Multipart form limits for CSV uploads.
const maxUploadBytes = 32 << 20 // 32 MiB

// UploadHandler handles CSV batch uploads.
type UploadHandler struct {
	deps Dependencies
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(deps Dependencies) *UploadHandler {
	return &UploadHandler{deps: deps}
}

// HandleUpload dispatches /api/v1/upload by method:
//
//	POST   multipart form with a "file" part -> parse and store the batch
//	GET    -> status of the stored batch
//	DELETE -> drop the stored batch
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handlePost(w, r)
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodDelete:
		h.handleDelete(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *UploadHandler) handlePost(w http.ResponseWriter, r *http.Request) {
	const op = "api.upload"

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	defer func() { _ = file.Close() }()

	batch, err := h.deps.Upload(r.Context(), header.Filename, file)
	if err != nil {
		// Malformed upload: reported and treated as absent, session continues.
		writeError(w, http.StatusUnprocessableEntity, "bad_upload", err)
		return
	}

	writeJSON(w, http.StatusCreated, batch)
}

func (h *UploadHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	batch, ok := h.deps.UploadStatus(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"present": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"present": true, "batch": batch})
}

func (h *UploadHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	h.deps.ClearUpload(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
