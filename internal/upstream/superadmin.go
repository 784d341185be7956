package upstream

import (
	"context"
	"net/http"
)

// Admin is an administrator account as listed in the super-admin console.
type Admin struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Status    string `json:"status,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type adminsData struct {
	Admins []Admin `json:"admins"`
}

func (c *Client) Admins(ctx context.Context, token string) ([]Admin, error) {
	var out adminsData
	if _, err := c.do(ctx, http.MethodGet, "/super-admin/admins", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Admins, nil
}

type createAdminRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) CreateAdmin(ctx context.Context, token, email, password string) (string, error) {
	return c.do(ctx, http.MethodPost, "/super-admin/admins", token, createAdminRequest{Email: email, Password: password}, nil)
}

func (c *Client) UpdateAdmin(ctx context.Context, token, id string, fields map[string]any) (string, error) {
	return c.do(ctx, http.MethodPut, "/super-admin/admins/"+id, token, fields, nil)
}

func (c *Client) DeleteAdmin(ctx context.Context, token, id string) (string, error) {
	return c.do(ctx, http.MethodDelete, "/super-admin/admins/"+id, token, nil, nil)
}

// SuperAdminStats is the super-admin dashboard overview payload.
type SuperAdminStats struct {
	TotalAdmins      int `json:"totalAdmins"`
	ActiveAdmins     int `json:"activeAdmins"`
	TotalClients     int `json:"totalClients"`
	TotalUsers       int `json:"totalUsers"`
	PendingApprovals int `json:"pendingApprovals"`
}

func (c *Client) SuperAdminDashboard(ctx context.Context, token string) (*SuperAdminStats, error) {
	var out SuperAdminStats
	if _, err := c.do(ctx, http.MethodGet, "/super-admin/dashboard/overview", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PendingUser is a registration awaiting super-admin approval. Type is
// "client" or "user".
type PendingUser struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Type        string `json:"type"`
	RequestedAt string `json:"requestedAt,omitempty"`
}

type pendingApprovalsData struct {
	PendingUsers []PendingUser `json:"pendingUsers"`
}

func (c *Client) PendingApprovals(ctx context.Context, token string) ([]PendingUser, error) {
	var out pendingApprovalsData
	if _, err := c.do(ctx, http.MethodGet, "/super-admin/pending-approvals", token, nil, &out); err != nil {
		return nil, err
	}
	return out.PendingUsers, nil
}

func (c *Client) ApproveLogin(ctx context.Context, token, accountType, id string) (string, error) {
	return c.do(ctx, http.MethodPost, "/super-admin/approve-login/"+accountType+"/"+id, token, nil, nil)
}

func (c *Client) RejectLogin(ctx context.Context, token, accountType, id string) (string, error) {
	return c.do(ctx, http.MethodPost, "/super-admin/reject-login/"+accountType+"/"+id, token, nil, nil)
}
