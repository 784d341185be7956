package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/api/middleware"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/domain"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/ports"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/upstream"
)

type ChatHandler struct {
	backend ports.ChatBackend
	log     zerolog.Logger
}

func NewChatHandler(backend ports.ChatBackend, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{backend: backend, log: log}
}

type chatListResponse struct {
	Page  string                 `json:"page"`
	Chats []upstream.ChatSummary `json:"chats"`
}

// List shows the user's conversations.
//
// @Summary      List chats
// @Tags         chat
// @Produce      json
// @Success      200  {object}  chatListResponse
// @Router       /mobile/user/chat [get]
func (h *ChatHandler) List(c echo.Context) error {
	token, err := requireCredential(c, domain.RoleUser)
	if err != nil {
		return err
	}
	chats, err := h.backend.Chats(c.Request().Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chatListResponse{Page: "chat", Chats: chats})
}

type createChatRequest struct {
	Title string `json:"title" form:"title"`
}

type createChatResponse struct {
	ChatID string `json:"chatId"`
}

// Create opens a new conversation.
//
// @Summary      Create chat
// @Tags         chat
// @Router       /mobile/user/chat [post]
func (h *ChatHandler) Create(c echo.Context) error {
	var req createChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	token, err := requireCredential(c, domain.RoleUser)
	if err != nil {
		return err
	}
	chatID, err := h.backend.CreateChat(c.Request().Context(), token, req.Title)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createChatResponse{ChatID: chatID})
}

type chatTranscriptResponse struct {
	ChatID   string                 `json:"chatId"`
	Messages []upstream.ChatMessage `json:"messages"`
}

// Transcript returns one conversation's messages.
//
// @Summary      Chat transcript
// @Tags         chat
// @Router       /mobile/user/chat/{id} [get]
func (h *ChatHandler) Transcript(c echo.Context) error {
	token, err := requireCredential(c, domain.RoleUser)
	if err != nil {
		return err
	}
	messages, err := h.backend.Chat(c.Request().Context(), token, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chatTranscriptResponse{ChatID: c.Param("id"), Messages: messages})
}

type sendMessageRequest struct {
	Message string `json:"message" form:"message" validate:"required"`
}

type sendMessageResponse struct {
	Reply *upstream.ChatMessage `json:"reply"`
}

// Send relays one user message and returns the assistant's reply. The
// message reaches the transcript only once the backend accepts it; a failed
// send leaves the conversation unchanged. A 401 clears the user credential
// so the next navigation lands on the login page.
//
// @Summary      Send chat message
// @Tags         chat
// @Router       /mobile/user/chat/{id}/messages [post]
func (h *ChatHandler) Send(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := requireCredential(c, domain.RoleUser)
	if err != nil {
		return err
	}
	reply, err := h.backend.SendChatMessage(c.Request().Context(), token, c.Param("id"), req.Message)
	if err != nil {
		if domain.IsUnauthorized(err) {
			middleware.Registry(c).ClearCredential(domain.RoleUser)
			h.log.Warn().Str("chat_id", c.Param("id")).Msg("user session expired mid-chat")
		}
		return err
	}
	return c.JSON(http.StatusOK, sendMessageResponse{Reply: reply})
}

// Delete removes a conversation.
func (h *ChatHandler) Delete(c echo.Context) error {
	token, err := requireCredential(c, domain.RoleUser)
	if err != nil {
		return err
	}
	msg, err := h.backend.DeleteChat(c.Request().Context(), token, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}
