package secrets

import (
	"context"
	"sync"

	"github.com/mspsec/riskboard/pkg/errors"
)

// MemoryStore keeps secrets in process memory. Used when Vault is disabled,
// typically in development and tests. Contents do not survive a restart.
type MemoryStore struct {
	mu      sync.RWMutex
	secrets map[string]map[string]string
}

// NewMemoryStore creates an empty in-memory secret store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{secrets: make(map[string]map[string]string)}
}

func (s *MemoryStore) Put(_ context.Context, ref string, secret map[string]string) error {
	cp := make(map[string]string, len(secret))
	for k, v := range secret {
		cp[k] = v
	}
	s.mu.Lock()
	s.secrets[ref] = cp
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, ref string) (map[string]string, error) {
	s.mu.RLock()
	secret, ok := s.secrets[ref]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.ErrNotFound("secret", ref)
	}
	cp := make(map[string]string, len(secret))
	for k, v := range secret {
		cp[k] = v
	}
	return cp, nil
}

func (s *MemoryStore) Delete(_ context.Context, ref string) error {
	s.mu.Lock()
	delete(s.secrets, ref)
	s.mu.Unlock()
	return nil
}
