package store

import (
	"context"
	"sync"
)

// MemoryRepository keeps records in process memory. It is the default
// backing when no Redis address is configured, and the test double.
type MemoryRepository struct {
	mu   sync.RWMutex
	recs map[string]GameRecord
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{recs: make(map[string]GameRecord)}
}

func (r *MemoryRepository) Save(_ context.Context, rec GameRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.Moves = append([]string(nil), rec.Moves...)
	r.recs[rec.ID] = rec
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (GameRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.recs[id]
	if !ok {
		return GameRecord{}, ErrNotFound
	}
	rec.Moves = append([]string(nil), rec.Moves...)
	return rec, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.recs, id)
	return nil
}
