// Package repository holds the service's session state: the uploaded sensor
// batch and a bounded history of prediction runs.
package repository

import (
	"context"
	"time"

	"github.com/evpulse/evpulse/internal/domain/model"
)

// UploadBatch is the most recently accepted CSV upload.
type UploadBatch struct {
	ID         string      `json:"id"`
	Filename   string      `json:"filename"`
	Rows       [][]float64 `json:"-"`
	RowCount   int         `json:"row_count"`
	UploadedAt time.Time   `json:"uploaded_at"`
}

// BatchStore keeps at most one uploaded batch; a new upload replaces it.
type BatchStore interface {
	// Put stores batch as the current upload.
	Put(ctx context.Context, batch UploadBatch)

	// Get returns the current upload, if any.
	Get(ctx context.Context) (UploadBatch, bool)

	// Clear removes the current upload.
	Clear(ctx context.Context)
}

// RunStore retains recent prediction runs, newest first, up to a cap.
type RunStore interface {
	// Add records a completed run, evicting the oldest beyond the cap.
	Add(ctx context.Context, run model.Run)

	// Recent returns up to n runs, newest first.
	Recent(ctx context.Context, n int) []model.Run

	// Len returns the number of retained runs.
	Len(ctx context.Context) int
}
