package risk

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore is an in-memory Store for demo and test use.
type MemoryStore struct {
	mu          sync.RWMutex
	validations []*Validation // insertion order
}

// NewMemoryStore creates an in-memory validation store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Record(ctx context.Context, v *Validation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.validations = append(s.validations, copyValidation(v))
	return nil
}

func (s *MemoryStore) ListByToken(ctx context.Context, address string, chainID ChainID, limit int) ([]*Validation, error) {
	addr := strings.ToLower(address)

	s.mu.RLock()
	defer s.mu.RUnlock()

	// Most recent first.
	var result []*Validation
	for i := len(s.validations) - 1; i >= 0 && len(result) < limit; i-- {
		v := s.validations[i]
		if v.Address == addr && v.ChainID == chainID {
			result = append(result, copyValidation(v))
		}
	}
	return result, nil
}

func (s *MemoryStore) RecentCritical(ctx context.Context, limit int) ([]*Validation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*Validation
	for i := len(s.validations) - 1; i >= 0 && len(result) < limit; i-- {
		if s.validations[i].Level == LevelCritical {
			result = append(result, copyValidation(s.validations[i]))
		}
	}
	return result, nil
}

func copyValidation(v *Validation) *Validation {
	out := *v
	out.Issues = append([]Issue(nil), v.Issues...)
	return &out
}
