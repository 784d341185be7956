// Package ports declares the backend capabilities each handler depends on.
// The upstream client satisfies all of them; tests substitute stubs.
package ports

import (
	"context"
	"io"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/domain"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/upstream"
)

// AuthBackend covers the per-role login, registration and profile
// endpoints.
type AuthBackend interface {
	SuperAdminLogin(ctx context.Context, email, password string) (*upstream.LoginResult, error)
	AdminLogin(ctx context.Context, email, password string) (*upstream.LoginResult, error)
	ClientLogin(ctx context.Context, email, password string) (*upstream.LoginResult, error)
	UserLogin(ctx context.Context, email, password string) (*upstream.LoginResult, error)
	ClientRegister(ctx context.Context, reg upstream.ClientRegistration) (string, error)
	UserRegister(ctx context.Context, reg upstream.UserRegistration) (string, error)
	FirebaseSignIn(ctx context.Context, idToken string) (*upstream.LoginResult, error)
	FirebaseSignUp(ctx context.Context, idToken string) (string, error)
}

// SuperAdminBackend covers the super-admin console operations.
type SuperAdminBackend interface {
	Admins(ctx context.Context, token string) ([]upstream.Admin, error)
	CreateAdmin(ctx context.Context, token, email, password string) (string, error)
	UpdateAdmin(ctx context.Context, token, id string, fields map[string]any) (string, error)
	DeleteAdmin(ctx context.Context, token, id string) (string, error)
	SuperAdminDashboard(ctx context.Context, token string) (*upstream.SuperAdminStats, error)
	PendingApprovals(ctx context.Context, token string) ([]upstream.PendingUser, error)
	ApproveLogin(ctx context.Context, token, accountType, id string) (string, error)
	RejectLogin(ctx context.Context, token, accountType, id string) (string, error)
}

// AdminBackend covers the admin console operations.
type AdminBackend interface {
	Clients(ctx context.Context, token string) ([]upstream.ClientAccount, error)
	CreateClient(ctx context.Context, token string, client upstream.ClientAccount) (string, error)
	UpdateClient(ctx context.Context, token, id string, fields map[string]any) (string, error)
	DeleteClient(ctx context.Context, token, id string) (string, error)
	ClientLoginToken(ctx context.Context, token, clientID string) (string, error)
	AdminUsers(ctx context.Context, token string) ([]domain.Profile, error)
	AdminDashboard(ctx context.Context, token string) (*upstream.AdminStats, error)
}

// ClientBackend covers the client portal operations.
type ClientBackend interface {
	ClientUsers(ctx context.Context, token string) ([]domain.Profile, error)
	CreateClientUser(ctx context.Context, token, email, password string, profile map[string]any) (string, error)
	UpdateClientUser(ctx context.Context, token, id string, fields map[string]any) (string, error)
	DeleteClientUser(ctx context.Context, token, id string) (string, error)
	ClientDashboard(ctx context.Context, token string) (*upstream.ClientStats, error)
}

// ChatBackend covers the mobile chat surface.
type ChatBackend interface {
	CreateChat(ctx context.Context, token, title string) (string, error)
	Chats(ctx context.Context, token string) ([]upstream.ChatSummary, error)
	Chat(ctx context.Context, token, chatID string) ([]upstream.ChatMessage, error)
	SendChatMessage(ctx context.Context, token, chatID, message string) (*upstream.ChatMessage, error)
	DeleteChat(ctx context.Context, token, chatID string) (string, error)
}

// VoiceBackend covers the mobile voice surface.
type VoiceBackend interface {
	StartVoiceSession(ctx context.Context, token, chatID string) (string, error)
	ProcessVoice(ctx context.Context, token, chatID, audioData, audioFormat string) (*upstream.VoiceResult, error)
}

// RegistrationBackend covers the multi-step OTP registration flow.
type RegistrationBackend interface {
	RegisterStep1(ctx context.Context, email, password string) (string, error)
	RegisterStep1Verify(ctx context.Context, email, otp string) (string, error)
	RegisterStep2(ctx context.Context, email, mobile string) (string, error)
	RegisterStep2Verify(ctx context.Context, email, otp string) (string, error)
	RegisterStep3(ctx context.Context, in upstream.RegisterStep3Input) (string, error)
	ResendEmailOTP(ctx context.Context, email string) (string, error)
	ResendMobileOTP(ctx context.Context, email string) (string, error)
}

// ProfileBackend covers the end-user profile endpoints.
type ProfileBackend interface {
	UserProfile(ctx context.Context, token string) (*domain.Profile, error)
	UpdateUserProfile(ctx context.Context, token string, fields map[string]any) (string, error)
}

// UploadBackend covers the presigned upload flow.
type UploadBackend interface {
	PresignedUploadURL(ctx context.Context, token, fileName, contentType string) (*upstream.PresignedUpload, error)
	UploadPresigned(ctx context.Context, presignedURL, contentType string, body io.Reader) error
}
