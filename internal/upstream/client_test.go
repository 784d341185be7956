package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, zerolog.Nop())
}

func TestClientLoginDecodesEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/client/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Errorf("login must not carry a credential")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"token":"tok123","client":{"email":"c@x.com"}}}`))
	})

	res, err := c.ClientLogin(context.Background(), "c@x.com", "pw123456")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Token != "tok123" {
		t.Fatalf("token not decoded: %q", res.Token)
	}
	acct := res.Account()
	if acct == nil || acct.Email != "c@x.com" {
		t.Fatalf("account not decoded: %+v", acct)
	}
}

func TestClientAttachesBearerToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-user" {
			t.Errorf("expected bearer header, got %q", got)
		}
		w.Write([]byte(`{"success":true,"data":{"chats":[{"chatId":"c1","title":"hello"}]}}`))
	})

	chats, err := c.Chats(context.Background(), "tok-user")
	if err != nil {
		t.Fatalf("chats: %v", err)
	}
	if len(chats) != 1 || chats[0].ChatID != "c1" {
		t.Fatalf("chats not decoded: %+v", chats)
	}
}

func TestClientRoleMismatchError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"success":false,"error":"INVALID_ROLE","currentRole":"client","requiredRole":"user","message":"wrong role"}`))
	})

	_, err := c.Chats(context.Background(), "tok-client")
	var rme *domain.RoleMismatchError
	if !errors.As(err, &rme) {
		t.Fatalf("expected RoleMismatchError, got %v", err)
	}
	if rme.CurrentRole != domain.RoleClient || rme.RequiredRole != domain.RoleUser {
		t.Fatalf("roles not carried: %+v", rme)
	}
}

func TestClientExpiredCredential(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"token expired"}`))
	})

	_, err := c.SendChatMessage(context.Background(), "dead-token", "chat1", "hi")
	if !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	var ue *domain.UpstreamError
	if !errors.As(err, &ue) || ue.Message != "token expired" {
		t.Fatalf("backend message not carried: %v", err)
	}
}

func TestClientBackendUnreachable(t *testing.T) {
	c := New("http://127.0.0.1:1", 200*time.Millisecond, zerolog.Nop())

	_, err := c.UserLogin(context.Background(), "u@x.com", "pw123456")
	var ue *domain.UpstreamError
	if !errors.As(err, &ue) || ue.Status != http.StatusBadGateway {
		t.Fatalf("expected bad gateway, got %v", err)
	}
}

func TestClientRegisterReturnsBackendMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"message":"registration submitted for approval"}`))
	})

	msg, err := c.ClientRegister(context.Background(), ClientRegistration{Email: "c@x.com", Password: "pw123456"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if msg != "registration submitted for approval" {
		t.Fatalf("message not carried: %q", msg)
	}
}

func TestClientCurrentProfileMissing(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{}}`))
	})

	_, err := c.CurrentUser(context.Background(), "tok")
	var ue *domain.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected upstream error for missing profile, got %v", err)
	}
}
