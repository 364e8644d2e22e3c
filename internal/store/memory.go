// internal/store/memory.go
//
// In-memory implementation of Store.
//
// Characteristics:
//   - Keeps *Run values keyed by ID plus the save order for Latest.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"fmt"
	"sync"
)

type memory struct {
	mu    sync.RWMutex
	runs  map[string]*Run
	order []string // IDs in save order
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{runs: make(map[string]*Run)}
}

// Save adds or replaces the run.
func (m *memory) Save(_ context.Context, r *Run) error {
	if r == nil || r.ID == "" {
		return fmt.Errorf("store: memory: run without id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.runs[r.ID]; !exists {
		m.order = append(m.order, r.ID)
	}
	m.runs[r.ID] = r
	return nil
}

func (m *memory) Get(_ context.Context, id string) (*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.runs[id]; ok {
		return r, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Latest(_ context.Context) (*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.order) == 0 {
		return nil, ErrNotFound
	}
	return m.runs[m.order[len(m.order)-1]], nil
}
