package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/domain"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/ports"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/upstream"
)

type SuperAdminHandler struct {
	backend ports.SuperAdminBackend
}

func NewSuperAdminHandler(backend ports.SuperAdminBackend) *SuperAdminHandler {
	return &SuperAdminHandler{backend: backend}
}

type superAdminOverviewResponse struct {
	Page    string                    `json:"page"`
	Profile *domain.Profile           `json:"profile,omitempty"`
	Stats   *upstream.SuperAdminStats `json:"stats"`
}

// Overview renders the super admin dashboard view model.
//
// @Summary      Super admin overview
// @Tags         super-admin
// @Produce      json
// @Success      200  {object}  superAdminOverviewResponse
// @Router       /super-admin/overview [get]
func (h *SuperAdminHandler) Overview(c echo.Context) error {
	token := dispatchToken(c, "/super-admin/dashboard/overview")
	stats, err := h.backend.SuperAdminDashboard(c.Request().Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, superAdminOverviewResponse{
		Page:    "super-admin-overview",
		Profile: actingProfile(c),
		Stats:   stats,
	})
}

type adminListResponse struct {
	Page   string           `json:"page"`
	Admins []upstream.Admin `json:"admins"`
}

// Admins lists the admin accounts.
//
// @Summary      List admins
// @Tags         super-admin
// @Router       /super-admin/admins [get]
func (h *SuperAdminHandler) Admins(c echo.Context) error {
	token := dispatchToken(c, "/super-admin/admins")
	admins, err := h.backend.Admins(c.Request().Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminListResponse{Page: "admins", Admins: admins})
}

type createAdminRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
}

// CreateAdmin provisions a new admin account.
//
// @Summary      Create admin
// @Tags         super-admin
// @Router       /super-admin/admins [post]
func (h *SuperAdminHandler) CreateAdmin(c echo.Context) error {
	var req createAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token := dispatchToken(c, "/super-admin/admins")
	msg, err := h.backend.CreateAdmin(c.Request().Context(), token, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: msg})
}

type updateAccountRequest struct {
	Fields map[string]any `json:"fields" validate:"required"`
}

// UpdateAdmin applies a partial update to an admin account.
func (h *SuperAdminHandler) UpdateAdmin(c echo.Context) error {
	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token := dispatchToken(c, "/super-admin/admins")
	msg, err := h.backend.UpdateAdmin(c.Request().Context(), token, c.Param("id"), req.Fields)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}

// DeleteAdmin removes an admin account.
func (h *SuperAdminHandler) DeleteAdmin(c echo.Context) error {
	token := dispatchToken(c, "/super-admin/admins")
	msg, err := h.backend.DeleteAdmin(c.Request().Context(), token, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}

type pendingApprovalsResponse struct {
	Page    string                 `json:"page"`
	Pending []upstream.PendingUser `json:"pending"`
}

// PendingApprovals lists accounts waiting for login approval.
//
// @Summary      List pending approvals
// @Tags         super-admin
// @Router       /super-admin/pending-approvals [get]
func (h *SuperAdminHandler) PendingApprovals(c echo.Context) error {
	token := dispatchToken(c, "/super-admin/pending-users")
	pending, err := h.backend.PendingApprovals(c.Request().Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pendingApprovalsResponse{Page: "pending-approvals", Pending: pending})
}

func approvalType(c echo.Context) (string, error) {
	t := c.Param("type")
	if t != "client" && t != "user" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "account type must be client or user")
	}
	return t, nil
}

// ApproveLogin grants a pending account access.
func (h *SuperAdminHandler) ApproveLogin(c echo.Context) error {
	accountType, err := approvalType(c)
	if err != nil {
		return err
	}
	token := dispatchToken(c, "/super-admin/approve-login")
	msg, err := h.backend.ApproveLogin(c.Request().Context(), token, accountType, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}

// RejectLogin declines a pending account.
func (h *SuperAdminHandler) RejectLogin(c echo.Context) error {
	accountType, err := approvalType(c)
	if err != nil {
		return err
	}
	token := dispatchToken(c, "/super-admin/approve-login")
	msg, err := h.backend.RejectLogin(c.Request().Context(), token, accountType, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}
