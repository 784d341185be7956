package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/api/metrics"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/identity"
)

// Impersonation intercepts the one-shot ?token= query parameter used by the
// admin "login as client" flow. The credential is stored under the role
// resolved from the path (or, failing that, from the token's own role
// claim), the parameter is stripped, and the browser is re-navigated to the
// clean URL. This must run before any guard so the guard evaluates the
// clean path with the credential already persisted.
func Impersonation(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.QueryParam("token")
			if token == "" {
				return next(c)
			}

			path := c.Request().URL.Path
			role, ok := identity.RoleFromPath(path)
			if !ok {
				role, ok = identity.RoleFromToken(token)
			}
			if ok {
				Registry(c).SetCredential(role, token)
				metrics.ImpersonationGrantsTotal.WithLabelValues(string(role)).Inc()
				log.Info().Str("role", string(role)).Str("path", path).Msg("credential accepted from query parameter")
			}

			q := c.Request().URL.Query()
			q.Del("token")
			clean := path
			if encoded := q.Encode(); encoded != "" {
				clean += "?" + encoded
			}
			return c.Redirect(http.StatusFound, clean)
		}
	}
}
