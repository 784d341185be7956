// Package credential owns the per-role bearer-token store and the single
// resolution function every outbound backend call goes through. The cardinal
// rule lives here: a request for one role's endpoint never falls back to
// another role's credential.
package credential

import (
	"sync"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/domain"
)

// Store keeps at most one live credential per role. Presence of a key is the
// sole signal that the role is logged in; expiry is only discovered when the
// backend rejects the token.
type Store interface {
	Get(role domain.Role) (string, bool)
	Set(role domain.Role, token string)
	Clear(role domain.Role)
}

// MemStore is a map-backed Store used in tests and anywhere a Store is
// needed outside a live request.
type MemStore struct {
	mu     sync.RWMutex
	tokens map[domain.Role]string
}

func NewMemStore() *MemStore {
	return &MemStore{tokens: make(map[domain.Role]string)}
}

func (s *MemStore) Get(role domain.Role) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tok, ok := s.tokens[role]
	return tok, ok && tok != ""
}

func (s *MemStore) Set(role domain.Role, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[role] = token
}

func (s *MemStore) Clear(role domain.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, role)
}
