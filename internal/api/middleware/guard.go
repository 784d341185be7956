package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/api/metrics"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/domain"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/identity"
)

// ProfileService refreshes a role's profile from the backend; implemented by
// session.Bootstrapper.
type ProfileService interface {
	Current(ctx context.Context, role domain.Role, token string) (*domain.Profile, error)
}

// Guard enforces a route's authentication and role requirements before the
// handler runs. Each evaluation ends in exactly one of: the handler runs, or
// a single redirect is issued. A bounced navigation always lands on the
// resolved role's own login or dashboard — never another role's.
type Guard struct {
	profiles ProfileService
	log      zerolog.Logger
}

func NewGuard(profiles ProfileService, log zerolog.Logger) *Guard {
	return &Guard{profiles: profiles, log: log}
}

// RequireRoles guards authenticated routes. The navigation's role comes
// from the path prefix; it must be a member of allowed (any role when
// allowed is empty) and must hold a stored credential. On success the
// role's profile is refreshed through the bootstrapper; a 401 during
// refresh kills the stored credential and bounces to login.
func (g *Guard) RequireRoles(allowed ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path

			role, ok := identity.RoleFromPath(path)
			if !ok {
				metrics.GuardRedirectsTotal.WithLabelValues("unauthorized", "").Inc()
				return c.Redirect(http.StatusFound, domain.RoleUser.LoginPath())
			}

			if len(allowed) > 0 && !roleIn(role, allowed) {
				metrics.GuardRedirectsTotal.WithLabelValues("role_denied", string(role)).Inc()
				return c.Redirect(http.StatusFound, role.LoginPath())
			}

			reg := Registry(c)
			token, ok := reg.Credential(role)
			if !ok {
				metrics.GuardRedirectsTotal.WithLabelValues("unauthorized", string(role)).Inc()
				return c.Redirect(http.StatusFound, role.LoginPath())
			}

			profile, err := g.profiles.Current(c.Request().Context(), role, token)
			switch {
			case err == nil:
				reg.SetProfile(role, profile)
			case domain.IsUnauthorized(err):
				// The stored credential is dead. Clear exactly this
				// role's slot and send the user back to its login.
				reg.ClearCredential(role)
				metrics.GuardRedirectsTotal.WithLabelValues("unauthorized", string(role)).Inc()
				g.log.Info().Str("role", string(role)).Msg("stored credential rejected, clearing")
				return c.Redirect(http.StatusFound, role.LoginPath())
			default:
				// Transient refresh failure: the navigation proceeds
				// without a profile rather than blocking the page.
				g.log.Warn().Err(err).Str("role", string(role)).Msg("profile refresh failed")
			}

			setActingRole(c, role)
			return next(c)
		}
	}
}

// RequireGuest guards login and register pages: a role that already holds a
// credential is sent to its dashboard instead.
func (g *Guard) RequireGuest() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := identity.RoleFromPath(c.Request().URL.Path)
			if ok {
				if _, has := Registry(c).Credential(role); has {
					metrics.GuardRedirectsTotal.WithLabelValues("guest_violation", string(role)).Inc()
					return c.Redirect(http.StatusFound, role.DashboardPath())
				}
				setActingRole(c, role)
			}
			return next(c)
		}
	}
}

func roleIn(role domain.Role, set []domain.Role) bool {
	for _, r := range set {
		if r == role {
			return true
		}
	}
	return false
}
