package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/domain"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/upstream"
)

type stubAdminBackend struct {
	loginTokenFn func(ctx context.Context, token, clientID string) (string, error)
}

func (s *stubAdminBackend) Clients(ctx context.Context, token string) ([]upstream.ClientAccount, error) {
	return []upstream.ClientAccount{{ID: "abc123", BusinessName: "Vedic Wellness"}}, nil
}

func (s *stubAdminBackend) CreateClient(ctx context.Context, token string, client upstream.ClientAccount) (string, error) {
	return "client created", nil
}

func (s *stubAdminBackend) UpdateClient(ctx context.Context, token, id string, fields map[string]any) (string, error) {
	return "client updated", nil
}

func (s *stubAdminBackend) DeleteClient(ctx context.Context, token, id string) (string, error) {
	return "client deleted", nil
}

func (s *stubAdminBackend) ClientLoginToken(ctx context.Context, token, clientID string) (string, error) {
	return s.loginTokenFn(ctx, token, clientID)
}

func (s *stubAdminBackend) AdminUsers(ctx context.Context, token string) ([]domain.Profile, error) {
	return nil, nil
}

func (s *stubAdminBackend) AdminDashboard(ctx context.Context, token string) (*upstream.AdminStats, error) {
	return &upstream.AdminStats{}, nil
}

func TestAdminHandler_LoginAsClient_BuildsImpersonationURL(t *testing.T) {
	stub := &stubAdminBackend{
		loginTokenFn: func(ctx context.Context, token, clientID string) (string, error) {
			if token != "admin-token" {
				t.Fatalf("expected the admin credential, got %q", token)
			}
			if clientID != "abc123" {
				t.Fatalf("unexpected client id: %q", clientID)
			}
			return "one-time-token", nil
		},
	}
	h := NewAdminHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/admin/clients/abc123/login-as", "",
		map[string]string{"token_admin": "admin-token"})
	c.SetParamNames("id")
	c.SetParamValues("abc123")
	if err := runWithSession(t, c, h.LoginAsClient); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["url"] != "/client/overview?token=one-time-token" {
		t.Fatalf("unexpected impersonation url: %q", resp["url"])
	}
	// Issuing the link must not log the admin in as the client.
	if _, ok := setCookieValue(rec, "token_client"); ok {
		t.Fatal("token_client must not be set until the link is opened")
	}
}

func TestAdminHandler_Clients(t *testing.T) {
	h := NewAdminHandler(&stubAdminBackend{})

	c, rec := newTestContext(t, http.MethodGet, "/admin/clients", "",
		map[string]string{"token_admin": "admin-token"})
	if err := runWithSession(t, c, h.Clients); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	clients, ok := resp["clients"].([]any)
	if !ok || len(clients) != 1 {
		t.Fatalf("expected one client, got %v", resp["clients"])
	}
}
