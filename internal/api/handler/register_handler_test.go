package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/upstream"
)

type stubRegistrationBackend struct {
	resends int
}

func (s *stubRegistrationBackend) RegisterStep1(ctx context.Context, email, password string) (string, error) {
	return "verification code sent to " + email, nil
}

func (s *stubRegistrationBackend) RegisterStep1Verify(ctx context.Context, email, otp string) (string, error) {
	return "email verified", nil
}

func (s *stubRegistrationBackend) RegisterStep2(ctx context.Context, email, mobile string) (string, error) {
	return "code sent to " + mobile, nil
}

func (s *stubRegistrationBackend) RegisterStep2Verify(ctx context.Context, email, otp string) (string, error) {
	return "mobile verified", nil
}

func (s *stubRegistrationBackend) RegisterStep3(ctx context.Context, in upstream.RegisterStep3Input) (string, error) {
	return "", nil
}

func (s *stubRegistrationBackend) ResendEmailOTP(ctx context.Context, email string) (string, error) {
	s.resends++
	return "code resent", nil
}

func (s *stubRegistrationBackend) ResendMobileOTP(ctx context.Context, email string) (string, error) {
	s.resends++
	return "code resent", nil
}

func TestRegisterHandler_Step1SendsEmailOTP(t *testing.T) {
	h := NewRegisterHandler(&stubRegistrationBackend{})

	c, rec := newTestContext(t, http.MethodPost, "/mobile/user/register/step1",
		`{"email":"seeker@example.com","password":"secret1"}`, nil)
	if err := runWithSession(t, c, h.Step1); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "verification code sent to seeker@example.com" {
		t.Fatalf("unexpected message: %q", resp["message"])
	}
}

func TestRegisterHandler_OTPMustBeSixDigits(t *testing.T) {
	h := NewRegisterHandler(&stubRegistrationBackend{})

	for _, otp := range []string{"12345", "1234567", "abcdef"} {
		c, _ := newTestContext(t, http.MethodPost, "/mobile/user/register/step1/verify",
			`{"email":"seeker@example.com","otp":"`+otp+`"}`, nil)
		err := runWithSession(t, c, h.Step1Verify)

		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("otp %q: expected 400, got %v", otp, err)
		}
	}
}

func TestRegisterHandler_Step3DefaultsApprovalMessage(t *testing.T) {
	h := NewRegisterHandler(&stubRegistrationBackend{})

	c, rec := newTestContext(t, http.MethodPost, "/mobile/user/register/step3",
		`{"email":"seeker@example.com","name":"Sita","dob":"1990-01-01","gowthra":"Bharadwaja"}`, nil)
	if err := runWithSession(t, c, h.Step3); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "registration submitted, awaiting approval" {
		t.Fatalf("unexpected message: %q", resp["message"])
	}
}

func TestRegisterHandler_ResendIsRateLimited(t *testing.T) {
	stub := &stubRegistrationBackend{}
	h := NewRegisterHandler(stub)

	body := `{"email":"seeker@example.com"}`
	for i := 0; i < 2; i++ {
		c, _ := newTestContext(t, http.MethodPost, "/mobile/user/register/resend-email-otp", body, nil)
		if err := runWithSession(t, c, h.ResendEmailOTP); err != nil {
			t.Fatalf("resend %d: %v", i+1, err)
		}
	}

	c, _ := newTestContext(t, http.MethodPost, "/mobile/user/register/resend-email-otp", body, nil)
	err := runWithSession(t, c, h.ResendEmailOTP)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 on the third resend, got %v", err)
	}
	if stub.resends != 2 {
		t.Fatalf("backend must not see throttled resends, got %d", stub.resends)
	}
}

func TestRegisterHandler_ResendLimitIsPerAddress(t *testing.T) {
	stub := &stubRegistrationBackend{}
	h := NewRegisterHandler(stub)

	for _, email := range []string{"a@example.com", "a@example.com", "b@example.com", "b@example.com"} {
		c, _ := newTestContext(t, http.MethodPost, "/mobile/user/register/resend-email-otp",
			`{"email":"`+email+`"}`, nil)
		if err := runWithSession(t, c, h.ResendEmailOTP); err != nil {
			t.Fatalf("resend for %s: %v", email, err)
		}
	}
	if stub.resends != 4 {
		t.Fatalf("expected 4 relayed resends, got %d", stub.resends)
	}
}
