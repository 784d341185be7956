package upstream

import (
	"context"
	"net/http"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/domain"
)

// --- Chat ---

// ChatSummary is one conversation in the chat list.
type ChatSummary struct {
	ChatID    string `json:"chatId"`
	Title     string `json:"title,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// ChatMessage is a single transcript entry; Role is "user" or "assistant".
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatsData struct {
	Chats []ChatSummary `json:"chats"`
}

type chatDetailData struct {
	Messages []ChatMessage `json:"messages"`
}

type createChatData struct {
	ChatID string `json:"chatId"`
}

type sendMessageData struct {
	AssistantMessage ChatMessage `json:"assistantMessage"`
}

func (c *Client) CreateChat(ctx context.Context, token, title string) (string, error) {
	body := map[string]any{}
	if title != "" {
		body["title"] = title
	}
	var out createChatData
	if _, err := c.do(ctx, http.MethodPost, "/mobile/chat", token, body, &out); err != nil {
		return "", err
	}
	return out.ChatID, nil
}

func (c *Client) Chats(ctx context.Context, token string) ([]ChatSummary, error) {
	var out chatsData
	if _, err := c.do(ctx, http.MethodGet, "/mobile/chat", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Chats, nil
}

func (c *Client) Chat(ctx context.Context, token, chatID string) ([]ChatMessage, error) {
	var out chatDetailData
	if _, err := c.do(ctx, http.MethodGet, "/mobile/chat/"+chatID, token, nil, &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

// SendChatMessage forwards one user message and returns the assistant's
// reply. Nothing is persisted portal-side: if the backend rejects the call,
// the transcript never contained the message.
func (c *Client) SendChatMessage(ctx context.Context, token, chatID, message string) (*ChatMessage, error) {
	var out sendMessageData
	if _, err := c.do(ctx, http.MethodPost, "/mobile/chat/"+chatID+"/message", token, map[string]string{"message": message}, &out); err != nil {
		return nil, err
	}
	return &out.AssistantMessage, nil
}

func (c *Client) DeleteChat(ctx context.Context, token, chatID string) (string, error) {
	return c.do(ctx, http.MethodDelete, "/mobile/chat/"+chatID, token, nil, nil)
}

// --- Voice ---

type voiceStartData struct {
	ChatID string `json:"chatId"`
}

// StartVoiceSession opens a voice conversation, reusing chatID when given.
func (c *Client) StartVoiceSession(ctx context.Context, token, chatID string) (string, error) {
	body := map[string]any{}
	if chatID != "" {
		body["chatId"] = chatID
	}
	var out voiceStartData
	if _, err := c.do(ctx, http.MethodPost, "/mobile/voice/start", token, body, &out); err != nil {
		return "", err
	}
	return out.ChatID, nil
}

type voiceProcessRequest struct {
	ChatID      string `json:"chatId"`
	AudioData   string `json:"audioData"`
	AudioFormat string `json:"audioFormat"`
}

// VoiceResult is one processed voice turn: the transcript of what was said,
// the assistant's text reply, and optionally synthesized reply audio.
type VoiceResult struct {
	Transcript   string `json:"transcript,omitempty"`
	ResponseText string `json:"responseText,omitempty"`
	AudioData    string `json:"audioData,omitempty"`
	AudioFormat  string `json:"audioFormat,omitempty"`
}

func (c *Client) ProcessVoice(ctx context.Context, token, chatID, audioData, audioFormat string) (*VoiceResult, error) {
	if audioFormat == "" {
		audioFormat = "linear16"
	}
	var out VoiceResult
	req := voiceProcessRequest{ChatID: chatID, AudioData: audioData, AudioFormat: audioFormat}
	if _, err := c.do(ctx, http.MethodPost, "/mobile/voice/process", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Multi-step OTP registration ---

type otpStepRequest struct {
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Mobile   string `json:"mobile,omitempty"`
	OTP      string `json:"otp,omitempty"`
}

func (c *Client) RegisterStep1(ctx context.Context, email, password string) (string, error) {
	return c.do(ctx, http.MethodPost, "/mobile/user/register/step1", "", otpStepRequest{Email: email, Password: password}, nil)
}

func (c *Client) RegisterStep1Verify(ctx context.Context, email, otp string) (string, error) {
	return c.do(ctx, http.MethodPost, "/mobile/user/register/step1/verify", "", otpStepRequest{Email: email, OTP: otp}, nil)
}

func (c *Client) RegisterStep2(ctx context.Context, email, mobile string) (string, error) {
	return c.do(ctx, http.MethodPost, "/mobile/user/register/step2", "", otpStepRequest{Email: email, Mobile: mobile}, nil)
}

func (c *Client) RegisterStep2Verify(ctx context.Context, email, otp string) (string, error) {
	return c.do(ctx, http.MethodPost, "/mobile/user/register/step2/verify", "", otpStepRequest{Email: email, OTP: otp}, nil)
}

// RegisterStep3Input completes registration with the user's profile and an
// optional pre-uploaded profile image.
type RegisterStep3Input struct {
	Email            string `json:"email"`
	Name             string `json:"name"`
	DOB              string `json:"dob"`
	TimeOfBirth      string `json:"timeOfBirth"`
	PlaceOfBirth     string `json:"placeOfBirth"`
	Gowthra          string `json:"gowthra"`
	ImageFileName    string `json:"imageFileName,omitempty"`
	ImageContentType string `json:"imageContentType,omitempty"`
}

func (c *Client) RegisterStep3(ctx context.Context, in RegisterStep3Input) (string, error) {
	return c.do(ctx, http.MethodPost, "/mobile/user/register/step3", "", in, nil)
}

func (c *Client) ResendEmailOTP(ctx context.Context, email string) (string, error) {
	return c.do(ctx, http.MethodPost, "/mobile/user/register/resend-email-otp", "", otpStepRequest{Email: email}, nil)
}

func (c *Client) ResendMobileOTP(ctx context.Context, email string) (string, error) {
	return c.do(ctx, http.MethodPost, "/mobile/user/register/resend-mobile-otp", "", otpStepRequest{Email: email}, nil)
}

// --- Profile ---

func (c *Client) UserProfile(ctx context.Context, token string) (*domain.Profile, error) {
	return c.currentProfile(ctx, "/users/profile", token)
}

func (c *Client) UpdateUserProfile(ctx context.Context, token string, fields map[string]any) (string, error) {
	return c.do(ctx, http.MethodPut, "/users/profile", token, fields, nil)
}
