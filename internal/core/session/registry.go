// Package session reconciles durable per-role credentials with in-memory
// role state for the duration of a request, and refreshes profiles through
// the backend. It replaces the ambient four-parallel-globals shape of the
// legacy client with an explicit role-keyed registry: lookups are by role
// and have no cross-role branch, so the no-fallback rule holds by
// construction.
package session

import (
	"sync"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/credential"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/domain"
)

// Registry is the per-request mapping from role identity to its session.
// It is rebuilt from the credential store on every navigation; nothing
// survives between requests except the store itself.
type Registry struct {
	mu       sync.RWMutex
	store    credential.Store
	resolver *credential.Resolver
	profiles map[domain.Role]*domain.Profile
}

func NewRegistry(store credential.Store, resolver *credential.Resolver) *Registry {
	return &Registry{
		store:    store,
		resolver: resolver,
		profiles: make(map[domain.Role]*domain.Profile),
	}
}

// Credential returns the stored token for exactly the given role.
func (r *Registry) Credential(role domain.Role) (string, bool) {
	return r.store.Get(role)
}

// CredentialForEndpoint runs the dispatcher resolution for an outbound
// backend call: endpoint classification first, current path as fallback,
// explicit token winning over both.
func (r *Registry) CredentialForEndpoint(endpoint, currentPath, explicit string) (string, domain.Role) {
	return r.resolver.Credential(r.store, endpoint, currentPath, explicit)
}

// SetCredential stores a freshly issued token under its role.
func (r *Registry) SetCredential(role domain.Role, token string) {
	r.store.Set(role, token)
}

// ClearCredential drops a role's token and any cached profile, leaving all
// other roles untouched.
func (r *Registry) ClearCredential(role domain.Role) {
	r.store.Clear(role)
	r.mu.Lock()
	delete(r.profiles, role)
	r.mu.Unlock()
}

// Profile returns the profile last fetched for the role during this request.
func (r *Registry) Profile(role domain.Role) (*domain.Profile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[role]
	return p, ok
}

// SetProfile records a freshly fetched profile for the role.
func (r *Registry) SetProfile(role domain.Role, p *domain.Profile) {
	r.mu.Lock()
	r.profiles[role] = p
	r.mu.Unlock()
}

// Session returns the transient role/credential/profile triple, or false
// when the role holds no credential.
func (r *Registry) Session(role domain.Role) (domain.Session, bool) {
	tok, ok := r.store.Get(role)
	if !ok {
		return domain.Session{}, false
	}
	p, _ := r.Profile(role)
	return domain.Session{Role: role, Token: tok, Profile: p}, true
}
