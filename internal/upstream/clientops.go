package upstream

import (
	"context"
	"net/http"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/domain"
)

// ClientUsers lists the end users belonging to the authenticated client.
func (c *Client) ClientUsers(ctx context.Context, token string) ([]domain.Profile, error) {
	var out usersData
	if _, err := c.do(ctx, http.MethodGet, "/client/users", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

type createClientUserRequest struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Profile  map[string]any `json:"profile"`
}

func (c *Client) CreateClientUser(ctx context.Context, token, email, password string, profile map[string]any) (string, error) {
	req := createClientUserRequest{Email: email, Password: password, Profile: profile}
	return c.do(ctx, http.MethodPost, "/client/users", token, req, nil)
}

func (c *Client) UpdateClientUser(ctx context.Context, token, id string, fields map[string]any) (string, error) {
	return c.do(ctx, http.MethodPut, "/client/users/"+id, token, fields, nil)
}

func (c *Client) DeleteClientUser(ctx context.Context, token, id string) (string, error) {
	return c.do(ctx, http.MethodDelete, "/client/users/"+id, token, nil, nil)
}

// ClientStats is the client dashboard overview payload.
type ClientStats struct {
	TotalUsers int `json:"totalUsers"`
}

func (c *Client) ClientDashboard(ctx context.Context, token string) (*ClientStats, error) {
	var out ClientStats
	if _, err := c.do(ctx, http.MethodGet, "/client/dashboard/overview", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
