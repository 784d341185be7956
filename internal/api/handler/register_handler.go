package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/ports"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/upstream"
)

// resendLimiter throttles OTP resends per email address so the portal does
// not relay rapid-fire requests to the SMS and mail providers.
type resendLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	every    time.Duration
	burst    int
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newResendLimiter(every time.Duration, burst int) *resendLimiter {
	return &resendLimiter{
		limiters: make(map[string]*limiterEntry),
		every:    every,
		burst:    burst,
	}
}

func (l *resendLimiter) Allow(email string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.limiters[email]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rate.Every(l.every), l.burst)}
		l.limiters[email] = entry
		l.prune()
	}
	entry.lastSeen = time.Now()
	return entry.limiter.Allow()
}

// prune drops addresses idle long enough to have refilled their burst.
// Called with the mutex held.
func (l *resendLimiter) prune() {
	if len(l.limiters) < 1024 {
		return
	}
	cutoff := time.Now().Add(-time.Duration(l.burst) * l.every)
	for email, entry := range l.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(l.limiters, email)
		}
	}
}

type RegisterHandler struct {
	backend ports.RegistrationBackend
	resends *resendLimiter
}

func NewRegisterHandler(backend ports.RegistrationBackend) *RegisterHandler {
	return &RegisterHandler{
		backend: backend,
		resends: newResendLimiter(30*time.Second, 2),
	}
}

type registerPageResponse struct {
	Page  string   `json:"page"`
	Steps []string `json:"steps"`
}

// Page describes the signup flow so the client can render the stepper.
func (h *RegisterHandler) Page(c echo.Context) error {
	return c.JSON(http.StatusOK, registerPageResponse{
		Page: "mobile-register",
		Steps: []string{
			"account", "verify-email", "mobile", "verify-mobile", "profile",
		},
	})
}

type step1Request struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
}

// Step1 creates the account shell and triggers the email OTP.
//
// @Summary      Registration step 1
// @Tags         register
// @Router       /mobile/user/register/step1 [post]
func (h *RegisterHandler) Step1(c echo.Context) error {
	var req step1Request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	msg, err := h.backend.RegisterStep1(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}

type otpRequest struct {
	Email string `json:"email" form:"email" validate:"required,email"`
	OTP   string `json:"otp" form:"otp" validate:"required,len=6,numeric"`
}

// Step1Verify confirms the email OTP.
func (h *RegisterHandler) Step1Verify(c echo.Context) error {
	var req otpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	msg, err := h.backend.RegisterStep1Verify(c.Request().Context(), req.Email, req.OTP)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}

type step2Request struct {
	Email  string `json:"email" form:"email" validate:"required,email"`
	Mobile string `json:"mobile" form:"mobile" validate:"required"`
}

// Step2 records the mobile number and triggers the SMS OTP.
func (h *RegisterHandler) Step2(c echo.Context) error {
	var req step2Request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	msg, err := h.backend.RegisterStep2(c.Request().Context(), req.Email, req.Mobile)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}

// Step2Verify confirms the SMS OTP.
func (h *RegisterHandler) Step2Verify(c echo.Context) error {
	var req otpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	msg, err := h.backend.RegisterStep2Verify(c.Request().Context(), req.Email, req.OTP)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}

type step3Request struct {
	Email            string `json:"email" form:"email" validate:"required,email"`
	Name             string `json:"name" form:"name" validate:"required"`
	DOB              string `json:"dob" form:"dob"`
	TimeOfBirth      string `json:"timeOfBirth" form:"timeOfBirth"`
	PlaceOfBirth     string `json:"placeOfBirth" form:"placeOfBirth"`
	Gowthra          string `json:"gowthra" form:"gowthra"`
	ImageFileName    string `json:"imageFileName" form:"imageFileName"`
	ImageContentType string `json:"imageContentType" form:"imageContentType"`
}

// Step3 completes the signup with profile and birth details. The account
// then waits in the approval queue.
func (h *RegisterHandler) Step3(c echo.Context) error {
	var req step3Request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	msg, err := h.backend.RegisterStep3(c.Request().Context(), upstream.RegisterStep3Input{
		Email:            req.Email,
		Name:             req.Name,
		DOB:              req.DOB,
		TimeOfBirth:      req.TimeOfBirth,
		PlaceOfBirth:     req.PlaceOfBirth,
		Gowthra:          req.Gowthra,
		ImageFileName:    req.ImageFileName,
		ImageContentType: req.ImageContentType,
	})
	if err != nil {
		return err
	}
	if msg == "" {
		msg = "registration submitted, awaiting approval"
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: msg})
}

type resendRequest struct {
	Email string `json:"email" form:"email" validate:"required,email"`
}

func (h *RegisterHandler) resend(c echo.Context,
	send func(ctx context.Context, email string) (string, error)) error {

	var req resendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if !h.resends.Allow(req.Email) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "please wait before requesting another code")
	}
	msg, err := send(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}

// ResendEmailOTP re-sends the email verification code, rate limited.
func (h *RegisterHandler) ResendEmailOTP(c echo.Context) error {
	return h.resend(c, h.backend.ResendEmailOTP)
}

// ResendMobileOTP re-sends the SMS verification code, rate limited.
func (h *RegisterHandler) ResendMobileOTP(c echo.Context) error {
	return h.resend(c, h.backend.ResendMobileOTP)
}
