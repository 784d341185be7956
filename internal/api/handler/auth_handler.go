package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/api/middleware"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/domain"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/identity"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/ports"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/upstream"
)

type AuthHandler struct {
	backend ports.AuthBackend
	log     zerolog.Logger
}

func NewAuthHandler(backend ports.AuthBackend, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{backend: backend, log: log}
}

type loginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type loginPageResponse struct {
	Page         string      `json:"page"`
	Role         domain.Role `json:"role"`
	LoginPath    string      `json:"loginPath"`
	RegisterPath string      `json:"registerPath,omitempty"`
}

type loginResponse struct {
	Role     domain.Role     `json:"role"`
	Redirect string          `json:"redirect"`
	Profile  *domain.Profile `json:"profile,omitempty"`
}

func (h *AuthHandler) loginPage(c echo.Context, role domain.Role, registerPath string) error {
	return c.JSON(http.StatusOK, loginPageResponse{
		Page:         "login",
		Role:         role,
		LoginPath:    role.LoginPath(),
		RegisterPath: registerPath,
	})
}

func (h *AuthHandler) SuperAdminLoginPage(c echo.Context) error {
	return h.loginPage(c, domain.RoleSuperAdmin, "")
}

func (h *AuthHandler) AdminLoginPage(c echo.Context) error {
	return h.loginPage(c, domain.RoleAdmin, "")
}

func (h *AuthHandler) ClientLoginPage(c echo.Context) error {
	return h.loginPage(c, domain.RoleClient, "/client/register")
}

func (h *AuthHandler) UserLoginPage(c echo.Context) error {
	return h.loginPage(c, domain.RoleUser, "/mobile/user/register")
}

// login runs one role's credential exchange and stores the issued token in
// that role's slot only. Tokens already held for other roles are not read
// and not modified.
func (h *AuthHandler) login(c echo.Context, role domain.Role,
	exchange func(ctx context.Context, email, password string) (*upstream.LoginResult, error)) error {

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := exchange(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	reg := middleware.Registry(c)
	reg.SetCredential(role, result.Token)
	if profile := result.Account(); profile != nil {
		if profile.Role == "" {
			profile.Role = role
		}
		reg.SetProfile(role, profile)
	}

	h.log.Info().Str("role", string(role)).Str("email", req.Email).Msg("login succeeded")
	return c.JSON(http.StatusOK, loginResponse{
		Role:     role,
		Redirect: role.DashboardPath(),
		Profile:  result.Account(),
	})
}

// SuperAdminLogin authenticates a super admin.
//
// @Summary      Super admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Router       /super-admin/login [post]
func (h *AuthHandler) SuperAdminLogin(c echo.Context) error {
	return h.login(c, domain.RoleSuperAdmin, h.backend.SuperAdminLogin)
}

// AdminLogin authenticates an admin.
//
// @Summary      Admin login
// @Tags         auth
// @Router       /admin/login [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	return h.login(c, domain.RoleAdmin, h.backend.AdminLogin)
}

// ClientLogin authenticates a client account.
//
// @Summary      Client login
// @Tags         auth
// @Router       /client/login [post]
func (h *AuthHandler) ClientLogin(c echo.Context) error {
	return h.login(c, domain.RoleClient, h.backend.ClientLogin)
}

// UserLogin authenticates an end user.
//
// @Summary      User login
// @Tags         auth
// @Router       /user/login [post]
func (h *AuthHandler) UserLogin(c echo.Context) error {
	return h.login(c, domain.RoleUser, h.backend.UserLogin)
}

// Logout clears the credential for the role the request path belongs to and
// sends the caller back to that role's login page. Other roles stay signed
// in.
//
// @Summary      Logout current role
// @Tags         auth
// @Success      200  {object}  loginResponse
// @Router       /{role}/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	role, ok := identity.RoleFromPath(c.Request().URL.Path)
	if !ok {
		return domain.ErrNoRole
	}
	middleware.Registry(c).ClearCredential(role)
	h.log.Info().Str("role", string(role)).Msg("logged out")
	return c.JSON(http.StatusOK, loginResponse{Role: role, Redirect: role.LoginPath()})
}

type clientRegisterRequest struct {
	Email         string `json:"email" form:"email" validate:"required,email"`
	Password      string `json:"password" form:"password" validate:"required,min=6"`
	BusinessName  string `json:"businessName" form:"businessName" validate:"required"`
	BusinessType  string `json:"businessType" form:"businessType"`
	ContactNumber string `json:"contactNumber" form:"contactNumber"`
	Address       string `json:"address" form:"address"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// ClientRegisterPage returns the client signup view model.
func (h *AuthHandler) ClientRegisterPage(c echo.Context) error {
	return c.JSON(http.StatusOK, loginPageResponse{
		Page:      "register",
		Role:      domain.RoleClient,
		LoginPath: domain.RoleClient.LoginPath(),
	})
}

// UserRegisterPage returns the basic user signup view model.
func (h *AuthHandler) UserRegisterPage(c echo.Context) error {
	return c.JSON(http.StatusOK, loginPageResponse{
		Page:      "register",
		Role:      domain.RoleUser,
		LoginPath: domain.RoleUser.LoginPath(),
	})
}

// ClientRegister submits a client application. Approval happens in the
// super admin console before the account can sign in.
//
// @Summary      Register a client account
// @Tags         auth
// @Router       /client/register [post]
func (h *AuthHandler) ClientRegister(c echo.Context) error {
	var req clientRegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	msg, err := h.backend.ClientRegister(c.Request().Context(), upstream.ClientRegistration{
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
	if msg == "" {
		msg = "registration submitted, awaiting approval"
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: msg})
}

type userRegisterRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
	Name     string `json:"name" form:"name" validate:"required"`
	Mobile   string `json:"mobile" form:"mobile"`
}

// UserRegister submits a basic end-user signup, the single-step variant of
// the mobile OTP flow.
//
// @Summary      Register a user account
// @Tags         auth
// @Router       /user/register [post]
func (h *AuthHandler) UserRegister(c echo.Context) error {
	var req userRegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	msg, err := h.backend.UserRegister(c.Request().Context(), upstream.UserRegistration{
		Email:    req.Email,
		Password: req.Password,
		Profile:  map[string]any{"name": req.Name, "mobile": req.Mobile},
	})
	if err != nil {
		return err
	}
	if msg == "" {
		msg = "registration submitted, awaiting approval"
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: msg})
}

type firebaseRequest struct {
	IDToken string `json:"idToken" form:"idToken" validate:"required"`
}

// FirebaseLogin exchanges a Firebase ID token for a user session.
//
// @Summary      Firebase sign-in
// @Tags         auth
// @Router       /user/login/firebase [post]
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	var req firebaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.backend.FirebaseSignIn(c.Request().Context(), req.IDToken)
	if err != nil {
		return err
	}

	reg := middleware.Registry(c)
	reg.SetCredential(domain.RoleUser, result.Token)
	if profile := result.Account(); profile != nil {
		if profile.Role == "" {
			profile.Role = domain.RoleUser
		}
		reg.SetProfile(domain.RoleUser, profile)
	}
	return c.JSON(http.StatusOK, loginResponse{
		Role:     domain.RoleUser,
		Redirect: domain.RoleUser.DashboardPath(),
		Profile:  result.Account(),
	})
}

// FirebaseRegister creates a user account from a Firebase ID token.
func (h *AuthHandler) FirebaseRegister(c echo.Context) error {
	var req firebaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	msg, err := h.backend.FirebaseSignUp(c.Request().Context(), req.IDToken)
	if err != nil {
		return err
	}
	if msg == "" {
		msg = "account created"
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: msg})
}
