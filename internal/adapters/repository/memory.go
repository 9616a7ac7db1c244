package repository

import (
	"context"
	"sync"

	"github.com/evpulse/evpulse/internal/domain/model"
	"github.com/evpulse/evpulse/pkg/metrics"
)

const defaultHistorySize = 50

// memoryBatchStore implements BatchStore behind a mutex.
type memoryBatchStore struct {
	mu    sync.RWMutex
	batch UploadBatch
	set   bool
}

// NewMemoryBatchStore creates an empty in-memory batch store.
func NewMemoryBatchStore() BatchStore {
	return &memoryBatchStore{}
}

func (s *memoryBatchStore) Put(_ context.Context, batch UploadBatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batch = batch
	s.set = true
	metrics.UpdateUploadBatchRows(batch.RowCount)
}

func (s *memoryBatchStore) Get(_ context.Context) (UploadBatch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.batch, s.set
}

func (s *memoryBatchStore) Clear(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batch = UploadBatch{}
	s.set = false
	metrics.UpdateUploadBatchRows(0)
}

// memoryRunStore implements RunStore as a bounded ring, newest first.
type memoryRunStore struct {
	mu      sync.RWMutex
	runs    []model.Run
	maxSize int
}

// RunStoreOption applies a configuration option to the run store.
type RunStoreOption func(*memoryRunStore)

// WithHistorySize bounds the number of retained runs.
func WithHistorySize(n int) RunStoreOption {
	return func(s *memoryRunStore) {
		if n > 0 {
			s.maxSize = n
		}
	}
}

// NewMemoryRunStore creates an empty in-memory run history.
func NewMemoryRunStore(opts ...RunStoreOption) RunStore {
	s := &memoryRunStore{maxSize: defaultHistorySize}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *memoryRunStore) Add(_ context.Context, run model.Run) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs = append([]model.Run{run}, s.runs...)
	if len(s.runs) > s.maxSize {
		s.runs = s.runs[:s.maxSize]
	}
	metrics.UpdateRunHistorySize(len(s.runs))
}

func (s *memoryRunStore) Recent(_ context.Context, n int) []model.Run {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || n > len(s.runs) {
		n = len(s.runs)
	}
	out := make([]model.Run, n)
	copy(out, s.runs[:n])
	return out
}

func (s *memoryRunStore) Len(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}
