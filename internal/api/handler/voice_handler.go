package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/domain"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/ports"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/voice"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/upstream"
)

type VoiceHandler struct {
	backend  ports.VoiceBackend
	sessions *voice.Sessions
	log      zerolog.Logger
}

func NewVoiceHandler(backend ports.VoiceBackend, sessions *voice.Sessions, log zerolog.Logger) *VoiceHandler {
	return &VoiceHandler{backend: backend, sessions: sessions, log: log}
}

type voicePageResponse struct {
	Page    string          `json:"page"`
	Profile *domain.Profile `json:"profile,omitempty"`
}

// Page renders the voice surface view model.
func (h *VoiceHandler) Page(c echo.Context) error {
	return c.JSON(http.StatusOK, voicePageResponse{Page: "voice", Profile: actingProfile(c)})
}

type startVoiceRequest struct {
	ChatID     string `json:"chatId" form:"chatId"`
	Continuous bool   `json:"continuous" form:"continuous"`
}

type voiceSessionResponse struct {
	SessionID  string      `json:"sessionId"`
	ChatID     string      `json:"chatId"`
	State      voice.State `json:"state"`
	Continuous bool        `json:"continuous"`
}

func sessionResponse(m *voice.Machine) voiceSessionResponse {
	return voiceSessionResponse{
		SessionID:  m.ID(),
		ChatID:     m.ChatID(),
		State:      m.State(),
		Continuous: m.Continuous(),
	}
}

// Start opens a voice session. When no chat is named, the backend creates a
// dedicated voice conversation first.
//
// @Summary      Start voice session
// @Tags         voice
// @Produce      json
// @Success      201  {object}  voiceSessionResponse
// @Router       /mobile/user/voice/sessions [post]
func (h *VoiceHandler) Start(c echo.Context) error {
	var req startVoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	token, err := requireCredential(c, domain.RoleUser)
	if err != nil {
		return err
	}

	chatID := req.ChatID
	if chatID == "" {
		chatID, err = h.backend.StartVoiceSession(c.Request().Context(), token, "")
		if err != nil {
			return err
		}
	}

	m := h.sessions.Create(uuid.NewString(), chatID, req.Continuous)
	h.log.Info().Str("session_id", m.ID()).Str("chat_id", chatID).
		Bool("continuous", req.Continuous).Msg("voice session started")
	return c.JSON(http.StatusCreated, sessionResponse(m))
}

func (h *VoiceHandler) session(c echo.Context) (*voice.Machine, error) {
	m, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		return nil, domain.ErrVoiceSessionNotFound
	}
	return m, nil
}

// Record moves an idle session into the recording state.
//
// @Summary      Begin recording
// @Tags         voice
// @Router       /mobile/user/voice/sessions/{id}/record [post]
func (h *VoiceHandler) Record(c echo.Context) error {
	m, err := h.session(c)
	if err != nil {
		return err
	}
	if err := m.Record(); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse(m))
}

type processVoiceRequest struct {
	AudioData   string `json:"audioData" form:"audioData" validate:"required"`
	AudioFormat string `json:"audioFormat" form:"audioFormat"`
}

type processVoiceResponse struct {
	Session voiceSessionResponse  `json:"session"`
	Result  *upstream.VoiceResult `json:"result"`
}

// Process submits the captured utterance. The session is held in the
// processing state for the duration of the backend call, then returns to
// recording when continuous mode is on, idle otherwise.
//
// @Summary      Process recorded audio
// @Tags         voice
// @Router       /mobile/user/voice/sessions/{id}/process [post]
func (h *VoiceHandler) Process(c echo.Context) error {
	var req processVoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	m, err := h.session(c)
	if err != nil {
		return err
	}
	token, err := requireCredential(c, domain.RoleUser)
	if err != nil {
		return err
	}

	if err := m.Process(); err != nil {
		return err
	}

	result, err := h.backend.ProcessVoice(c.Request().Context(), token, m.ChatID(), req.AudioData, req.AudioFormat)
	if err != nil {
		// A failed utterance must not wedge the session in processing.
		m.Stop()
		return err
	}

	if _, err := m.Complete(); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, processVoiceResponse{Session: sessionResponse(m), Result: result})
}

// Stop ends the session from whatever state it is in and discards it.
//
// @Summary      Stop voice session
// @Tags         voice
// @Router       /mobile/user/voice/sessions/{id}/stop [post]
func (h *VoiceHandler) Stop(c echo.Context) error {
	m, err := h.session(c)
	if err != nil {
		return err
	}
	m.Stop()
	h.sessions.Delete(m.ID())
	return c.JSON(http.StatusOK, sessionResponse(m))
}

type continuousRequest struct {
	Continuous bool `json:"continuous" form:"continuous"`
}

// SetContinuous toggles hands-free mode for a live session.
func (h *VoiceHandler) SetContinuous(c echo.Context) error {
	var req continuousRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	m, err := h.session(c)
	if err != nil {
		return err
	}
	m.SetContinuous(req.Continuous)
	return c.JSON(http.StatusOK, sessionResponse(m))
}
