// Package identity resolves which role a navigation path, backend endpoint,
// or bearer token belongs to. Resolution is a UI-level hint only: decoded
// token claims are never verified here and must never be treated as proof of
// identity — real authorization happens in the backend.
package identity

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/domain"
)

// pathPrefixes maps route prefixes to roles. Order matters: the most
// specific prefix must come first so /mobile/user/... resolves to the user
// role and never to a shorter textual match.
var pathPrefixes = []struct {
	prefix string
	role   domain.Role
}{
	{"/mobile/user", domain.RoleUser},
	{"/super-admin", domain.RoleSuperAdmin},
	{"/admin", domain.RoleAdmin},
	{"/client", domain.RoleClient},
	{"/user", domain.RoleUser},
}

// endpointFragments classify backend API endpoints, checked in fixed
// priority order. Mobile chat/voice endpoints are user-only; they must never
// pick up another role's credential.
var endpointFragments = []struct {
	fragments []string
	role      domain.Role
}{
	{[]string{"/super-admin/", "/auth/super-admin/"}, domain.RoleSuperAdmin},
	{[]string{"/admin/", "/auth/admin/"}, domain.RoleAdmin},
	{[]string{"/client/", "/auth/client/"}, domain.RoleClient},
	{[]string{"/user/", "/auth/user/", "/users/", "/mobile/chat", "/mobile/voice", "/mobile/user/"}, domain.RoleUser},
}

// RoleFromPath maps a navigation path to the role owning that route prefix.
// Pure and total: unknown paths return ("", false), never an error.
func RoleFromPath(path string) (domain.Role, bool) {
	for _, p := range pathPrefixes {
		if strings.HasPrefix(path, p.prefix) {
			return p.role, true
		}
	}
	return "", false
}

// RoleFromToken reads the role claim from a JWT's payload without verifying
// the signature. Malformed tokens and unknown role claims yield ("", false).
func RoleFromToken(token string) (domain.Role, bool) {
	if token == "" {
		return "", false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", false
	}
	role, _ := claims["role"].(string)
	if r := domain.Role(role); r.Valid() {
		return r, true
	}
	return "", false
}

// RoleForEndpoint classifies a backend endpoint into the role whose
// credential must be attached. Unclassifiable endpoints return ("", false);
// the dispatcher then falls back to the current navigation path, and failing
// that attaches no credential at all.
func RoleForEndpoint(endpoint string) (domain.Role, bool) {
	for _, e := range endpointFragments {
		for _, f := range e.fragments {
			if strings.Contains(endpoint, f) {
				return e.role, true
			}
		}
	}
	return "", false
}
