package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNoRole means neither the path nor a token claim yielded a role.
	ErrNoRole = errors.New("no role resolved")

	// ErrNoCredential means the resolved role has no stored token.
	ErrNoCredential = errors.New("no credential for role")

	// ErrInvalidTransition is returned by the voice state machine.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrVoiceSessionNotFound means the referenced voice session has expired
	// or never existed.
	ErrVoiceSessionNotFound = errors.New("voice session not found")
)

// UpstreamError carries a non-2xx response from the backend API. The
// backend-provided message is surfaced to the user as-is.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("upstream request failed with status %d", e.Status)
}

// RoleMismatchError is the backend's INVALID_ROLE rejection: the attached
// credential belongs to CurrentRole but the endpoint demands RequiredRole.
type RoleMismatchError struct {
	CurrentRole  Role
	RequiredRole Role
}

func (e *RoleMismatchError) Error() string {
	return fmt.Sprintf("you are logged in as '%s' but this feature requires '%s'", e.CurrentRole, e.RequiredRole)
}

// IsUnauthorized reports whether err is an upstream 401, i.e. the stored
// credential has expired or been revoked and must be cleared.
func IsUnauthorized(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.Status == http.StatusUnauthorized
}
