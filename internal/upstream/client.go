// Package upstream is the portal's typed HTTP client for the backend REST
// API. Every backend operation has exactly one method here; handlers never
// build raw requests themselves. Credentials are resolved by the caller and
// passed in explicitly — this package attaches whatever it is given and
// nothing else.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/api/metrics"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/domain"
)

const defaultTimeout = 30 * time.Second

// Client talks to one backend deployment selected by base URL.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     zerolog.Logger
}

func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
		log:     log,
	}
}

// envelope is the backend's JSON response shape. Error responses carry the
// user-facing message; INVALID_ROLE rejections additionally name the
// current and required roles.
type envelope struct {
	Success      bool            `json:"success"`
	Message      string          `json:"message"`
	Error        string          `json:"error"`
	RequiredRole string          `json:"requiredRole"`
	CurrentRole  string          `json:"currentRole"`
	Data         json.RawMessage `json:"data"`
}

// do issues one JSON request and decodes the envelope. out, when non-nil,
// receives the envelope's data field. The returned message is the backend's
// informational message on success. No retries: every failure is terminal
// for this attempt.
func (c *Client) do(ctx context.Context, method, endpoint, token string, body, out any) (string, error) {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, payload)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(method, "error").Inc()
		c.log.Error().Err(err).Str("endpoint", endpoint).Msg("backend unreachable")
		return "", &domain.UpstreamError{Status: http.StatusBadGateway, Message: "backend unreachable"}
	}
	defer resp.Body.Close()
	metrics.UpstreamRequestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()

	var env envelope
	if decodeErr := json.NewDecoder(resp.Body).Decode(&env); decodeErr != nil && resp.StatusCode < 400 {
		return "", fmt.Errorf("decode response: %w", decodeErr)
	}

	if resp.StatusCode >= 400 {
		return "", c.responseError(resp.StatusCode, env, endpoint)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return "", fmt.Errorf("decode response data: %w", err)
		}
	}
	return env.Message, nil
}

// Ping reports whether the backend answers HTTP at all. Any response
// counts; only transport failures mean unreachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

func (c *Client) responseError(status int, env envelope, endpoint string) error {
	if status == http.StatusForbidden && env.Error == "INVALID_ROLE" {
		c.log.Warn().
			Str("endpoint", endpoint).
			Str("current_role", env.CurrentRole).
			Str("required_role", env.RequiredRole).
			Msg("backend rejected credential role")
		return &domain.RoleMismatchError{
			CurrentRole:  domain.Role(env.CurrentRole),
			RequiredRole: domain.Role(env.RequiredRole),
		}
	}

	msg := env.Message
	if msg == "" {
		msg = env.Error
	}
	return &domain.UpstreamError{Status: status, Message: msg}
}
