package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/domain"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/ports"
)

type MobileHandler struct {
	backend ports.ProfileBackend
}

func NewMobileHandler(backend ports.ProfileBackend) *MobileHandler {
	return &MobileHandler{backend: backend}
}

type mobilePageResponse struct {
	Page    string          `json:"page"`
	Profile *domain.Profile `json:"profile,omitempty"`
}

// Dashboard renders the mobile home view model.
//
// @Summary      Mobile dashboard
// @Tags         mobile
// @Produce      json
// @Success      200  {object}  mobilePageResponse
// @Router       /mobile/user/dashboard [get]
func (h *MobileHandler) Dashboard(c echo.Context) error {
	return c.JSON(http.StatusOK, mobilePageResponse{Page: "dashboard", Profile: actingProfile(c)})
}

// ProfilePage fetches the full user profile, including the birth details
// used for personalised guidance.
//
// @Summary      Mobile profile
// @Tags         mobile
// @Router       /mobile/user/profile [get]
func (h *MobileHandler) ProfilePage(c echo.Context) error {
	token, err := requireCredential(c, domain.RoleUser)
	if err != nil {
		return err
	}
	profile, err := h.backend.UserProfile(c.Request().Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mobilePageResponse{Page: "profile", Profile: profile})
}

type updateProfileRequest struct {
	Fields map[string]any `json:"fields" validate:"required"`
}

// UpdateProfile applies a partial profile update.
//
// @Summary      Update mobile profile
// @Tags         mobile
// @Router       /mobile/user/profile [put]
func (h *MobileHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
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
	msg, err := h.backend.UpdateUserProfile(c.Request().Context(), token, req.Fields)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}
