// File: internal/repository/otp/memory_code_store.go
package otp

import (
	"context"
	"sync"

	"github.com/nimakarimi/portfolio-api/internal/domain"
)

// MemoryCodeStore implements CodeStore with a mutex-guarded map. Suitable for
// tests and single-process deployments; the mutex is what makes Replace and
// DeleteIfMatch critical sections.
type MemoryCodeStore struct {
	mu    sync.Mutex
	codes map[string]domain.OneTimeCode
}

// NewMemoryCodeStore creates an empty in-memory code store.
func NewMemoryCodeStore() *MemoryCodeStore {
	return &MemoryCodeStore{codes: make(map[string]domain.OneTimeCode)}
}

// FindByIdentity finds the live code for an identity.
func (s *MemoryCodeStore) FindByIdentity(ctx context.Context, identity string) (*domain.OneTimeCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.codes[identity]
	if !ok {
		return nil, nil
	}
	cp := code
	return &cp, nil
}

// Replace installs the given code as the single live code for its identity.
func (s *MemoryCodeStore) Replace(ctx context.Context, code *domain.OneTimeCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[code.Identity] = *code
	return nil
}

// DeleteIfMatch removes the code only if the stored value matches.
func (s *MemoryCodeStore) DeleteIfMatch(ctx context.Context, identity, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.codes[identity]
	if !ok || existing.Code != code {
		return false, nil
	}
	delete(s.codes, identity)
	return true, nil
}
