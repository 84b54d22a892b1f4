package report

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"tiercheck/internal/verify"
	"tiercheck/pkg/platform/sentinel"
)

// MemoryStore keeps step results in memory for the HTTP surface and for
// tests. Results are listed in insertion order.
type MemoryStore struct {
	mu    sync.RWMutex
	steps map[uuid.UUID]*verify.StepResult
	order []uuid.UUID
}

// NewMemoryStore constructs an empty in-memory result store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{steps: make(map[uuid.UUID]*verify.StepResult)}
}

func (s *MemoryStore) Save(_ context.Context, result *verify.StepResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.steps[result.ID]; !ok {
		s.order = append(s.order, result.ID)
	}
	s.steps[result.ID] = result
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (*verify.StepResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if result, ok := s.steps[id]; ok {
		return result, nil
	}
	return nil, fmt.Errorf("step %s: %w", id, sentinel.ErrNotFound)
}

func (s *MemoryStore) List(_ context.Context) ([]*verify.StepResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	results := make([]*verify.StepResult, 0, len(s.order))
	for _, id := range s.order {
		results = append(results, s.steps[id])
	}
	return results, nil
}
