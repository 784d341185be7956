package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/api/middleware"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/domain"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/identity"
)

// dispatchToken resolves the credential accompanying a backend call through
// the request's session registry. Endpoint classification decides the role;
// the current navigation path (or the referring page for role-less paths
// like /upload/...) is the fallback. An empty result means the call goes
// out without an Authorization header.
func dispatchToken(c echo.Context, endpoint string) string {
	token, _ := middleware.Registry(c).CredentialForEndpoint(endpoint, currentPath(c), "")
	return token
}

// currentPath approximates the browser's location for role resolution. When
// the request path itself carries no role prefix, the Referer header names
// the page the action was triggered from.
func currentPath(c echo.Context) string {
	p := c.Request().URL.Path
	if _, ok := identity.RoleFromPath(p); ok {
		return p
	}
	if ref := c.Request().Referer(); ref != "" {
		if u, err := url.Parse(ref); err == nil && u.Path != "" {
			return u.Path
		}
	}
	return p
}

// actingProfile returns the profile the guard bootstrapped for this
// navigation, when available.
func actingProfile(c echo.Context) *domain.Profile {
	role, ok := middleware.ActingRole(c)
	if !ok {
		return nil
	}
	p, _ := middleware.Registry(c).Profile(role)
	return p
}

// requireCredential fast-fails an action whose role slot is empty, with a
// role-specific remediation hint, before any network call is made.
func requireCredential(c echo.Context, role domain.Role) (string, error) {
	token, ok := middleware.Registry(c).Credential(role)
	if !ok {
		return "", echo.NewHTTPError(http.StatusUnauthorized,
			"not logged in as "+string(role)+"; please log in at "+role.LoginPath())
	}
	return token, nil
}
