package upstream

import (
	"context"
	"net/http"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/domain"
)

// ClientAccount is a tenant business account managed by admins.
type ClientAccount struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Password      string `json:"password,omitempty"`
	BusinessName  string `json:"businessName,omitempty"`
	BusinessType  string `json:"businessType,omitempty"`
	ContactNumber string `json:"contactNumber,omitempty"`
	Address       string `json:"address,omitempty"`
	Status        string `json:"status,omitempty"`
	LogoURL       string `json:"logoUrl,omitempty"`
}

type clientsData struct {
	Clients []ClientAccount `json:"clients"`
}

func (c *Client) Clients(ctx context.Context, token string) ([]ClientAccount, error) {
	var out clientsData
	if _, err := c.do(ctx, http.MethodGet, "/admin/clients", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Clients, nil
}

func (c *Client) CreateClient(ctx context.Context, token string, client ClientAccount) (string, error) {
	return c.do(ctx, http.MethodPost, "/admin/clients", token, client, nil)
}

func (c *Client) UpdateClient(ctx context.Context, token, id string, fields map[string]any) (string, error) {
	return c.do(ctx, http.MethodPut, "/admin/clients/"+id, token, fields, nil)
}

func (c *Client) DeleteClient(ctx context.Context, token, id string) (string, error) {
	return c.do(ctx, http.MethodDelete, "/admin/clients/"+id, token, nil, nil)
}

type loginTokenData struct {
	Token string `json:"token"`
}

// ClientLoginToken asks the backend for a one-time client credential so an
// admin can open that client's portal ("login as").
func (c *Client) ClientLoginToken(ctx context.Context, token, clientID string) (string, error) {
	var out loginTokenData
	if _, err := c.do(ctx, http.MethodPost, "/admin/clients/"+clientID+"/login-token", token, nil, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

type usersData struct {
	Users []domain.Profile `json:"users"`
}

// AdminUsers lists all end users across clients.
func (c *Client) AdminUsers(ctx context.Context, token string) ([]domain.Profile, error) {
	var out usersData
	if _, err := c.do(ctx, http.MethodGet, "/admin/users", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// AdminStats is the admin dashboard overview payload.
type AdminStats struct {
	TotalClients int `json:"totalClients"`
	TotalUsers   int `json:"totalUsers"`
}

func (c *Client) AdminDashboard(ctx context.Context, token string) (*AdminStats, error) {
	var out AdminStats
	if _, err := c.do(ctx, http.MethodGet, "/admin/dashboard/overview", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
