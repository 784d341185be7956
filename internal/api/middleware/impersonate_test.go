package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/credential"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/domain"
)

func runImpersonation(t *testing.T, target string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := Sessions(credential.NewResolver(zerolog.Nop()), false, time.Hour)(func(echo.Context) error { return nil })(c); err != nil {
		t.Fatalf("sessions middleware: %v", err)
	}

	called := false
	handler := Impersonation(zerolog.Nop())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("impersonation middleware: %v", err)
	}
	return rec, called
}

func TestImpersonationStoresTokenAndStripsQuery(t *testing.T) {
	rec, called := runImpersonation(t, "/client/overview?token=one-time-tok")

	if called {
		t.Fatalf("navigation must be replayed, not continued")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/client/overview" {
		t.Fatalf("token must be stripped from the URL, got %q", loc)
	}

	var stored *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == domain.RoleClient.CredentialKey() {
			stored = ck
		}
	}
	if stored == nil || stored.Value != "one-time-tok" {
		t.Fatalf("credential not persisted under token_client: %+v", stored)
	}
}

func TestImpersonationPreservesOtherQueryParams(t *testing.T) {
	rec, _ := runImpersonation(t, "/client/overview?token=tok&tab=users")

	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/client/overview?tab=users" {
		t.Fatalf("other params must survive, got %q", loc)
	}
}

func TestImpersonationWithoutTokenIsTransparent(t *testing.T) {
	rec, called := runImpersonation(t, "/client/overview")

	if !called {
		t.Fatalf("middleware must pass through without a token param")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
