package credential

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/domain"
)

func TestCookieStoreRoundTrip(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/client/overview", nil)
	req.AddCookie(&http.Cookie{Name: "token_client", Value: "tok-client"})
	rec := httptest.NewRecorder()

	s := NewCookieStore(rec, req, false, 720*time.Hour)

	if tok, ok := s.Get(domain.RoleClient); !ok || tok != "tok-client" {
		t.Fatalf("expected stored client token, got (%q, %v)", tok, ok)
	}
	if _, ok := s.Get(domain.RoleAdmin); ok {
		t.Fatalf("admin slot must be empty")
	}
}

func TestCookieStoreSetVisibleInSameRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/client/overview", nil)
	rec := httptest.NewRecorder()

	s := NewCookieStore(rec, req, true, time.Hour)
	s.Set(domain.RoleClient, "fresh")

	if tok, ok := s.Get(domain.RoleClient); !ok || tok != "fresh" {
		t.Fatalf("Set must be observable through Get in the same request")
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != "token_client" || c.Value != "fresh" {
		t.Fatalf("unexpected cookie %s=%s", c.Name, c.Value)
	}
	if !c.HttpOnly || !c.Secure || c.Path != "/" {
		t.Fatalf("cookie attributes wrong: %+v", c)
	}
}

func TestCookieStoreClear(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/user/login", nil)
	req.AddCookie(&http.Cookie{Name: "token_user", Value: "expired"})
	rec := httptest.NewRecorder()

	s := NewCookieStore(rec, req, false, time.Hour)
	s.Clear(domain.RoleUser)

	if _, ok := s.Get(domain.RoleUser); ok {
		t.Fatalf("cleared slot must read as absent")
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Fatalf("expected expiring cookie, got %+v", cookies)
	}
}
