package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/api/metrics"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/domain"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/ports"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/upstream"
)

type AdminHandler struct {
	backend ports.AdminBackend
}

func NewAdminHandler(backend ports.AdminBackend) *AdminHandler {
	return &AdminHandler{backend: backend}
}

type adminOverviewResponse struct {
	Page    string               `json:"page"`
	Profile *domain.Profile      `json:"profile,omitempty"`
	Stats   *upstream.AdminStats `json:"stats"`
}

// Overview renders the admin dashboard view model.
//
// @Summary      Admin overview
// @Tags         admin
// @Produce      json
// @Success      200  {object}  adminOverviewResponse
// @Router       /admin/overview [get]
func (h *AdminHandler) Overview(c echo.Context) error {
	token := dispatchToken(c, "/admin/dashboard/overview")
	stats, err := h.backend.AdminDashboard(c.Request().Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminOverviewResponse{
		Page:    "admin-overview",
		Profile: actingProfile(c),
		Stats:   stats,
	})
}

type clientListResponse struct {
	Page    string                   `json:"page"`
	Clients []upstream.ClientAccount `json:"clients"`
}

// Clients lists the client accounts this admin manages.
//
// @Summary      List clients
// @Tags         admin
// @Router       /admin/clients [get]
func (h *AdminHandler) Clients(c echo.Context) error {
	token := dispatchToken(c, "/admin/clients")
	clients, err := h.backend.Clients(c.Request().Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clientListResponse{Page: "clients", Clients: clients})
}

type createClientRequest struct {
	Email         string `json:"email" form:"email" validate:"required,email"`
	Password      string `json:"password" form:"password" validate:"required,min=6"`
	BusinessName  string `json:"businessName" form:"businessName" validate:"required"`
	BusinessType  string `json:"businessType" form:"businessType"`
	ContactNumber string `json:"contactNumber" form:"contactNumber"`
	Address       string `json:"address" form:"address"`
}

// CreateClient provisions a client account directly, bypassing the public
// signup queue.
//
// @Summary      Create client
// @Tags         admin
// @Router       /admin/clients [post]
func (h *AdminHandler) CreateClient(c echo.Context) error {
	var req createClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token := dispatchToken(c, "/admin/clients")
	msg, err := h.backend.CreateClient(c.Request().Context(), token, upstream.ClientAccount{
		Email:         req.Email,
		Password:      req.Password,
		BusinessName:  req.BusinessName,
		BusinessType:  req.BusinessType,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: msg})
}

// UpdateClient applies a partial update to a client account.
func (h *AdminHandler) UpdateClient(c echo.Context) error {
	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token := dispatchToken(c, "/admin/clients")
	msg, err := h.backend.UpdateClient(c.Request().Context(), token, c.Param("id"), req.Fields)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}

// DeleteClient removes a client account.
func (h *AdminHandler) DeleteClient(c echo.Context) error {
	token := dispatchToken(c, "/admin/clients")
	msg, err := h.backend.DeleteClient(c.Request().Context(), token, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}

type loginAsResponse struct {
	URL string `json:"url"`
}

// LoginAsClient mints a one-time token for a client account and returns the
// impersonation URL. Opening it stores the token in the client slot without
// touching the admin's own session.
//
// @Summary      Impersonate a client
// @Tags         admin
// @Router       /admin/clients/{id}/login-as [post]
func (h *AdminHandler) LoginAsClient(c echo.Context) error {
	token := dispatchToken(c, "/admin/clients")
	oneTime, err := h.backend.ClientLoginToken(c.Request().Context(), token, c.Param("id"))
	if err != nil {
		return err
	}
	metrics.ImpersonationGrantsTotal.WithLabelValues(string(domain.RoleClient)).Inc()
	return c.JSON(http.StatusOK, loginAsResponse{
		URL: domain.RoleClient.DashboardPath() + "?token=" + url.QueryEscape(oneTime),
	})
}

type adminUsersResponse struct {
	Page  string           `json:"page"`
	Users []domain.Profile `json:"users"`
}

// Users lists the end users across this admin's clients.
//
// @Summary      List users
// @Tags         admin
// @Router       /admin/users [get]
func (h *AdminHandler) Users(c echo.Context) error {
	token := dispatchToken(c, "/admin/users")
	users, err := h.backend.AdminUsers(c.Request().Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminUsersResponse{Page: "admin-users", Users: users})
}
