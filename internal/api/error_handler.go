package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. Role
// mismatches additionally name both roles so the client can explain which
// login would help.
type errorResponse struct {
	Error        string `json:"error"`
	CurrentRole  string `json:"currentRole,omitempty"`
	RequiredRole string `json:"requiredRole,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Relays backend failures with the backend's own status and message.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	// A credential decoded to the wrong role, or the backend said so.
	var mismatch *domain.RoleMismatchError
	if errors.As(err, &mismatch) {
		return http.StatusForbidden, errorResponse{
			Error:        mismatch.Error(),
			CurrentRole:  string(mismatch.CurrentRole),
			RequiredRole: string(mismatch.RequiredRole),
		}
	}

	// Backend failures keep their original status and message.
	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		return upstream.Status, errorResponse{Error: upstream.Message}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrNoRole), errors.Is(err, domain.ErrNoCredential):
		return http.StatusUnauthorized, errorResponse{Error: "not logged in"}
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrVoiceSessionNotFound):
		return http.StatusNotFound, errorResponse{Error: "voice session not found"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
