package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/domain"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/ports"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/upstream"
)

type ClientHandler struct {
	backend ports.ClientBackend
}

func NewClientHandler(backend ports.ClientBackend) *ClientHandler {
	return &ClientHandler{backend: backend}
}

type clientOverviewResponse struct {
	Page    string                `json:"page"`
	Profile *domain.Profile       `json:"profile,omitempty"`
	Stats   *upstream.ClientStats `json:"stats"`
}

// Overview renders the client dashboard view model.
//
// @Summary      Client overview
// @Tags         client
// @Produce      json
// @Success      200  {object}  clientOverviewResponse
// @Router       /client/overview [get]
func (h *ClientHandler) Overview(c echo.Context) error {
	token := dispatchToken(c, "/client/dashboard/overview")
	stats, err := h.backend.ClientDashboard(c.Request().Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clientOverviewResponse{
		Page:    "client-overview",
		Profile: actingProfile(c),
		Stats:   stats,
	})
}

type clientUsersResponse struct {
	Page  string           `json:"page"`
	Users []domain.Profile `json:"users"`
}

// Users lists this client's end users.
//
// @Summary      List client users
// @Tags         client
// @Router       /client/users [get]
func (h *ClientHandler) Users(c echo.Context) error {
	token := dispatchToken(c, "/client/users")
	users, err := h.backend.ClientUsers(c.Request().Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clientUsersResponse{Page: "client-users", Users: users})
}

type createUserRequest struct {
	Email    string         `json:"email" form:"email" validate:"required,email"`
	Password string         `json:"password" form:"password" validate:"required,min=6"`
	Profile  map[string]any `json:"profile"`
}

// CreateUser provisions an end user under this client.
//
// @Summary      Create client user
// @Tags         client
// @Router       /client/users [post]
func (h *ClientHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token := dispatchToken(c, "/client/users")
	msg, err := h.backend.CreateClientUser(c.Request().Context(), token, req.Email, req.Password, req.Profile)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: msg})
}

// UpdateUser applies a partial update to one of this client's users.
func (h *ClientHandler) UpdateUser(c echo.Context) error {
	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token := dispatchToken(c, "/client/users")
	msg, err := h.backend.UpdateClientUser(c.Request().Context(), token, c.Param("id"), req.Fields)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}

// DeleteUser removes one of this client's users.
func (h *ClientHandler) DeleteUser(c echo.Context) error {
	token := dispatchToken(c, "/client/users")
	msg, err := h.backend.DeleteClientUser(c.Request().Context(), token, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}

type staticPageResponse struct {
	Page    string          `json:"page"`
	Profile *domain.Profile `json:"profile,omitempty"`
	Tabs    []string        `json:"tabs,omitempty"`
}

// Services renders the service catalogue page.
func (h *ClientHandler) Services(c echo.Context) error {
	return c.JSON(http.StatusOK, staticPageResponse{Page: "services", Profile: actingProfile(c)})
}

// Payments renders the billing page shell.
func (h *ClientHandler) Payments(c echo.Context) error {
	return c.JSON(http.StatusOK, staticPageResponse{
		Page:    "payments",
		Profile: actingProfile(c),
		Tabs:    []string{"orders", "invoices", "settings"},
	})
}

// Notifications renders the notifications page shell.
func (h *ClientHandler) Notifications(c echo.Context) error {
	return c.JSON(http.StatusOK, staticPageResponse{Page: "notifications", Profile: actingProfile(c)})
}
