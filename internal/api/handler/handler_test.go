package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/api/middleware"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/credential"
)

// newTestContext builds an echo context carrying the given cookies, with
// the portal's validator installed.
func newTestContext(t *testing.T, method, target, body string, cookies map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for name, value := range cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// runWithSession invokes a handler behind the real session middleware, the
// same wiring the router installs.
func runWithSession(t *testing.T, c echo.Context, h echo.HandlerFunc) error {
	t.Helper()
	mw := middleware.Sessions(credential.NewResolver(zerolog.Nop()), false, time.Hour)
	return mw(h)(c)
}

// clearedCookie reports whether the response clears the named cookie.
func clearedCookie(rec *httptest.ResponseRecorder, name string) bool {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name && ck.MaxAge < 0 {
			return true
		}
	}
	return false
}

// setCookieValue returns the value the response assigns to the named
// cookie, if any.
func setCookieValue(rec *httptest.ResponseRecorder, name string) (string, bool) {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name && ck.MaxAge >= 0 {
			return ck.Value, true
		}
	}
	return "", false
}
