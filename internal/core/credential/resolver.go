package credential

import (
	"github.com/rs/zerolog"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/api/metrics"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/domain"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/identity"
)

// Resolver decides which stored credential, if any, accompanies an outbound
// backend call. Every call site resolves through Credential so the
// role-claim mismatch check is applied exactly once and uniformly.
type Resolver struct {
	log zerolog.Logger
}

func NewResolver(log zerolog.Logger) *Resolver {
	return &Resolver{log: log}
}

// Credential returns the bearer token to attach for endpoint, plus the role
// it belongs to.
//
//  1. An explicit caller-supplied token wins unconditionally.
//  2. Otherwise the endpoint is classified into a role; unclassifiable
//     endpoints fall back to the current navigation path.
//  3. The matching role's stored credential is fetched. No role means no
//     credential — never guess across roles.
//  4. A fetched credential whose decodable role claim disagrees with the
//     expected role is discarded and the mismatch logged; this stops a stale
//     token for one role being replayed against another role's endpoint
//     after a role switch in the same tab.
func (r *Resolver) Credential(store Store, endpoint, currentPath, explicit string) (string, domain.Role) {
	if explicit != "" {
		role, _ := identity.RoleFromToken(explicit)
		return explicit, role
	}

	role, ok := identity.RoleForEndpoint(endpoint)
	if !ok {
		role, ok = identity.RoleFromPath(currentPath)
	}
	if !ok {
		return "", ""
	}

	token, ok := store.Get(role)
	if !ok {
		return "", role
	}

	// Tokens with an undecodable payload pass through unchanged; the
	// backend is the authority on whether they are usable.
	if claimRole, decodable := identity.RoleFromToken(token); decodable && claimRole != role {
		r.log.Warn().
			Str("endpoint", endpoint).
			Str("expected_role", string(role)).
			Str("token_role", string(claimRole)).
			Msg("discarding credential with mismatched role claim")
		metrics.CredentialMismatchTotal.WithLabelValues(string(role), string(claimRole)).Inc()
		return "", role
	}

	return token, role
}
