package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/credential"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/domain"
)

type stubProfiles struct {
	currentFn func(ctx context.Context, role domain.Role, token string) (*domain.Profile, error)
}

func (s *stubProfiles) Current(ctx context.Context, role domain.Role, token string) (*domain.Profile, error) {
	if s.currentFn != nil {
		return s.currentFn(ctx, role, token)
	}
	return &domain.Profile{Email: "someone@x.com", Role: role}, nil
}

func roleToken(t *testing.T, role string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": role})
	signed, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

// newGuardContext builds an echo context with the Sessions middleware
// already applied, returning the context and recorder.
func newGuardContext(t *testing.T, target string, cookies map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for name, value := range cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	resolver := credential.NewResolver(zerolog.Nop())
	installed := Sessions(resolver, false, time.Hour)
	if err := installed(func(echo.Context) error { return nil })(c); err != nil {
		t.Fatalf("sessions middleware: %v", err)
	}
	return c, rec
}

func runGuarded(t *testing.T, c echo.Context, mw echo.MiddlewareFunc) (called bool, err error) {
	t.Helper()
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	return called, handler(c)
}

func TestGuardRedirectsToOwnLoginWhenUnauthenticated(t *testing.T) {
	g := NewGuard(&stubProfiles{}, zerolog.Nop())

	// A client credential exists, but the admin area is requested: the
	// guard must bounce to the ADMIN login, leaving token_client alone.
	c, rec := newGuardContext(t, "/admin/overview", map[string]string{
		"token_client": roleToken(t, "client"),
	})

	called, err := runGuarded(t, c, g.RequireRoles(domain.RoleAdmin, domain.RoleSuperAdmin))
	if err != nil {
		t.Fatalf("guard: %v", err)
	}
	if called {
		t.Fatalf("handler must not run")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/admin/login" {
		t.Fatalf("expected /admin/login, got %q", loc)
	}
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "token_client" && ck.MaxAge < 0 {
			t.Fatalf("client credential must be left untouched")
		}
	}
}

func TestGuardAuthorizesMatchingRole(t *testing.T) {
	g := NewGuard(&stubProfiles{}, zerolog.Nop())

	c, rec := newGuardContext(t, "/client/overview", map[string]string{
		"token_client": roleToken(t, "client"),
	})

	called, err := runGuarded(t, c, g.RequireRoles(domain.RoleClient, domain.RoleAdmin, domain.RoleSuperAdmin))
	if err != nil {
		t.Fatalf("guard: %v", err)
	}
	if !called {
		t.Fatalf("handler must run, got %d redirect to %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}

	role, ok := ActingRole(c)
	if !ok || role != domain.RoleClient {
		t.Fatalf("acting role not recorded: (%q, %v)", role, ok)
	}
	if prof, ok := Registry(c).Profile(domain.RoleClient); !ok || prof.Email != "someone@x.com" {
		t.Fatalf("profile not bootstrapped")
	}
}

func TestGuardDeniedRoleRedirectsToTargetLogin(t *testing.T) {
	g := NewGuard(&stubProfiles{}, zerolog.Nop())

	// User area restricted to user role; a client navigating there is
	// bounced to the user login, not the client login.
	c, rec := newGuardContext(t, "/mobile/user/dashboard", map[string]string{
		"token_client": roleToken(t, "client"),
	})

	called, err := runGuarded(t, c, g.RequireRoles(domain.RoleUser))
	if err != nil {
		t.Fatalf("guard: %v", err)
	}
	if called {
		t.Fatalf("handler must not run")
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/user/login" {
		t.Fatalf("expected /user/login, got %q", loc)
	}
}

func TestGuardClearsCredentialOn401(t *testing.T) {
	g := NewGuard(&stubProfiles{
		currentFn: func(ctx context.Context, role domain.Role, token string) (*domain.Profile, error) {
			return nil, &domain.UpstreamError{Status: http.StatusUnauthorized, Message: "token expired"}
		},
	}, zerolog.Nop())

	c, rec := newGuardContext(t, "/mobile/user/dashboard", map[string]string{
		"token_user": roleToken(t, "user"),
	})

	called, err := runGuarded(t, c, g.RequireRoles(domain.RoleUser))
	if err != nil {
		t.Fatalf("guard: %v", err)
	}
	if called {
		t.Fatalf("handler must not run with a dead credential")
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/user/login" {
		t.Fatalf("expected /user/login, got %q", loc)
	}

	cleared := false
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "token_user" && ck.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("dead credential must be cleared")
	}
}

func TestGuardToleratesTransientRefreshFailure(t *testing.T) {
	g := NewGuard(&stubProfiles{
		currentFn: func(ctx context.Context, role domain.Role, token string) (*domain.Profile, error) {
			return nil, &domain.UpstreamError{Status: http.StatusBadGateway, Message: "backend unreachable"}
		},
	}, zerolog.Nop())

	c, _ := newGuardContext(t, "/client/users", map[string]string{
		"token_client": roleToken(t, "client"),
	})

	called, err := runGuarded(t, c, g.RequireRoles(domain.RoleClient))
	if err != nil {
		t.Fatalf("guard: %v", err)
	}
	if !called {
		t.Fatalf("transient refresh failure must not block navigation")
	}
}

func TestRequireGuestRedirectsAuthenticatedRole(t *testing.T) {
	g := NewGuard(&stubProfiles{}, zerolog.Nop())

	c, rec := newGuardContext(t, "/client/login", map[string]string{
		"token_client": roleToken(t, "client"),
	})

	called, err := runGuarded(t, c, g.RequireGuest())
	if err != nil {
		t.Fatalf("guard: %v", err)
	}
	if called {
		t.Fatalf("login page must not render for an authenticated client")
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/client/overview" {
		t.Fatalf("expected /client/overview, got %q", loc)
	}
}

func TestRequireGuestMobileUserLandsOnMobileDashboard(t *testing.T) {
	g := NewGuard(&stubProfiles{}, zerolog.Nop())

	c, rec := newGuardContext(t, "/user/login", map[string]string{
		"token_user": roleToken(t, "user"),
	})

	called, err := runGuarded(t, c, g.RequireGuest())
	if err != nil {
		t.Fatalf("guard: %v", err)
	}
	if called {
		t.Fatalf("login page must not render")
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/mobile/user/dashboard" {
		t.Fatalf("expected /mobile/user/dashboard, got %q", loc)
	}
}

func TestRequireGuestAllowsAnonymous(t *testing.T) {
	g := NewGuard(&stubProfiles{}, zerolog.Nop())

	c, _ := newGuardContext(t, "/client/login", nil)

	called, err := runGuarded(t, c, g.RequireGuest())
	if err != nil {
		t.Fatalf("guard: %v", err)
	}
	if !called {
		t.Fatalf("anonymous visitor must reach the login page")
	}
}
