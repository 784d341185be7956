package session

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/domain"
)

// ProfileAPI is the slice of the backend client the bootstrapper needs.
// Super-admins and admins share the admin profile endpoint.
type ProfileAPI interface {
	CurrentAdmin(ctx context.Context, token string) (*domain.Profile, error)
	CurrentClient(ctx context.Context, token string) (*domain.Profile, error)
	CurrentUser(ctx context.Context, token string) (*domain.Profile, error)
}

// ProfileCache is a short-TTL cache keyed by role and token, so that the
// per-navigation refresh does not hammer the backend. A nil-safe no-op
// implementation is acceptable.
type ProfileCache interface {
	Get(ctx context.Context, role domain.Role, token string) (*domain.Profile, bool)
	Set(ctx context.Context, role domain.Role, token string, p *domain.Profile)
}

// Bootstrapper refreshes the acting role's profile on navigation. A 401
// during refresh means the stored credential is dead; the caller clears it.
type Bootstrapper struct {
	api   ProfileAPI
	cache ProfileCache
	log   zerolog.Logger
}

func NewBootstrapper(api ProfileAPI, cache ProfileCache, log zerolog.Logger) *Bootstrapper {
	return &Bootstrapper{api: api, cache: cache, log: log}
}

// Current fetches the profile for role using its own token, consulting the
// cache first. The role claim inside the profile is normalised to the
// requesting role when the backend omits it.
func (b *Bootstrapper) Current(ctx context.Context, role domain.Role, token string) (*domain.Profile, error) {
	if b.cache != nil {
		if p, ok := b.cache.Get(ctx, role, token); ok {
			return p, nil
		}
	}

	var (
		p   *domain.Profile
		err error
	)
	switch role {
	case domain.RoleSuperAdmin, domain.RoleAdmin:
		p, err = b.api.CurrentAdmin(ctx, token)
	case domain.RoleClient:
		p, err = b.api.CurrentClient(ctx, token)
	case domain.RoleUser:
		p, err = b.api.CurrentUser(ctx, token)
	default:
		return nil, domain.ErrNoRole
	}
	if err != nil {
		return nil, err
	}

	if p.Role == "" {
		p.Role = role
	}
	if b.cache != nil {
		b.cache.Set(ctx, role, token, p)
	}
	return p, nil
}
