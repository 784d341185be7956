package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/credential"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/domain"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/session"
)

const (
	registryKey   = "portal.session.registry"
	actingRoleKey = "portal.session.role"
)

// Sessions builds the per-request session registry over the browser's
// cookie jar and injects it into the echo context. Every other middleware
// and handler reaches credentials through this registry, never through raw
// cookies.
func Sessions(resolver *credential.Resolver, secure bool, maxAge time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			store := credential.NewCookieStore(c.Response(), c.Request(), secure, maxAge)
			c.Set(registryKey, session.NewRegistry(store, resolver))
			return next(c)
		}
	}
}

// Registry returns the request's session registry. It is nil only when the
// Sessions middleware is not installed, which is a wiring bug.
func Registry(c echo.Context) *session.Registry {
	reg, _ := c.Get(registryKey).(*session.Registry)
	return reg
}

// ActingRole returns the role the guard resolved for this navigation.
func ActingRole(c echo.Context) (domain.Role, bool) {
	role, ok := c.Get(actingRoleKey).(domain.Role)
	return role, ok
}

func setActingRole(c echo.Context, role domain.Role) {
	c.Set(actingRoleKey, role)
}
