package credential

import (
	"net/http"
	"time"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/domain"
)

// CookieStore is the browser-durable Store: one HttpOnly cookie per role,
// named after the role's credential key. Concurrent tabs share the cookie
// jar with last-write-wins semantics; no cross-tab invalidation exists, and
// staleness is resolved on the next guard evaluation.
type CookieStore struct {
	req    *http.Request
	res    http.ResponseWriter
	secure bool
	maxAge time.Duration

	// written overlays cookies set during this request so that a Set
	// followed by a Get in the same request observes the new value.
	written map[domain.Role]string
	cleared map[domain.Role]bool
}

// NewCookieStore builds a Store over the given request/response pair.
// secure controls the cookie Secure flag; maxAge bounds credential cookies
// (zero means session cookies).
func NewCookieStore(res http.ResponseWriter, req *http.Request, secure bool, maxAge time.Duration) *CookieStore {
	return &CookieStore{
		req:     req,
		res:     res,
		secure:  secure,
		maxAge:  maxAge,
		written: make(map[domain.Role]string),
		cleared: make(map[domain.Role]bool),
	}
}

func (s *CookieStore) Get(role domain.Role) (string, bool) {
	if s.cleared[role] {
		return "", false
	}
	if tok, ok := s.written[role]; ok {
		return tok, tok != ""
	}
	c, err := s.req.Cookie(role.CredentialKey())
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

func (s *CookieStore) Set(role domain.Role, token string) {
	s.written[role] = token
	delete(s.cleared, role)
	http.SetCookie(s.res, &http.Cookie{
		Name:     role.CredentialKey(),
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *CookieStore) Clear(role domain.Role) {
	delete(s.written, role)
	s.cleared[role] = true
	http.SetCookie(s.res, &http.Cookie{
		Name:     role.CredentialKey(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
