package upstream

import (
	"context"
	"net/http"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/domain"
)

// LoginResult is the payload of a successful login. The backend returns the
// account under "user" for most roles and "client" for client logins.
type LoginResult struct {
	Token  string          `json:"token"`
	User   *domain.Profile `json:"user"`
	Client *domain.Profile `json:"client"`
}

// Account returns whichever profile field the backend populated.
func (l *LoginResult) Account() *domain.Profile {
	if l.User != nil {
		return l.User
	}
	return l.Client
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileData struct {
	User   *domain.Profile `json:"user"`
	Client *domain.Profile `json:"client"`
}

func (p profileData) profile() *domain.Profile {
	if p.User != nil {
		return p.User
	}
	return p.Client
}

func (c *Client) login(ctx context.Context, endpoint, email, password string) (*LoginResult, error) {
	var out LoginResult
	if _, err := c.do(ctx, http.MethodPost, endpoint, "", loginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SuperAdminLogin(ctx context.Context, email, password string) (*LoginResult, error) {
	return c.login(ctx, "/auth/super-admin/login", email, password)
}

func (c *Client) AdminLogin(ctx context.Context, email, password string) (*LoginResult, error) {
	return c.login(ctx, "/auth/admin/login", email, password)
}

func (c *Client) ClientLogin(ctx context.Context, email, password string) (*LoginResult, error) {
	return c.login(ctx, "/auth/client/login", email, password)
}

func (c *Client) UserLogin(ctx context.Context, email, password string) (*LoginResult, error) {
	return c.login(ctx, "/auth/user/login", email, password)
}

// ClientRegistration is the self-service client signup payload. Accounts
// wait for super-admin approval; no token is issued here.
type ClientRegistration struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	BusinessName  string `json:"businessName"`
	BusinessType  string `json:"businessType"`
	ContactNumber string `json:"contactNumber"`
	Address       string `json:"address"`
}

func (c *Client) ClientRegister(ctx context.Context, reg ClientRegistration) (string, error) {
	return c.do(ctx, http.MethodPost, "/auth/client/register", "", reg, nil)
}

// UserRegistration is the basic (non-OTP) end-user signup payload.
type UserRegistration struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Profile  map[string]any `json:"profile"`
}

func (c *Client) UserRegister(ctx context.Context, reg UserRegistration) (string, error) {
	return c.do(ctx, http.MethodPost, "/auth/user/register", "", reg, nil)
}

func (c *Client) currentProfile(ctx context.Context, endpoint, token string) (*domain.Profile, error) {
	var out profileData
	if _, err := c.do(ctx, http.MethodGet, endpoint, token, nil, &out); err != nil {
		return nil, err
	}
	p := out.profile()
	if p == nil {
		return nil, &domain.UpstreamError{Status: http.StatusBadGateway, Message: "profile missing from response"}
	}
	return p, nil
}

// CurrentAdmin serves both super_admin and admin sessions.
func (c *Client) CurrentAdmin(ctx context.Context, token string) (*domain.Profile, error) {
	return c.currentProfile(ctx, "/auth/admin/me", token)
}

func (c *Client) CurrentClient(ctx context.Context, token string) (*domain.Profile, error) {
	return c.currentProfile(ctx, "/auth/client/me", token)
}

func (c *Client) CurrentUser(ctx context.Context, token string) (*domain.Profile, error) {
	return c.currentProfile(ctx, "/auth/user/me", token)
}

type firebaseRequest struct {
	IDToken string `json:"idToken"`
}

// FirebaseSignIn exchanges a Firebase ID token for a user-role session.
func (c *Client) FirebaseSignIn(ctx context.Context, idToken string) (*LoginResult, error) {
	var out LoginResult
	if _, err := c.do(ctx, http.MethodPost, "/mobile/user/login/firebase", "", firebaseRequest{IDToken: idToken}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) FirebaseSignUp(ctx context.Context, idToken string) (string, error) {
	return c.do(ctx, http.MethodPost, "/mobile/user/register/firebase", "", firebaseRequest{IDToken: idToken}, nil)
}
