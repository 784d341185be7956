package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/api/metrics"
	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/domain"
)

// PresignedUpload is a time-limited URL allowing a direct PUT of file bytes
// to object storage, plus the storage key the file will land under.
type PresignedUpload struct {
	PresignedURL string `json:"presignedUrl"`
	Key          string `json:"key"`
}

type presignedURLRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

func (c *Client) PresignedUploadURL(ctx context.Context, token, fileName, contentType string) (*PresignedUpload, error) {
	var out PresignedUpload
	req := presignedURLRequest{FileName: fileName, ContentType: contentType}
	if _, err := c.do(ctx, http.MethodPost, "/upload/presigned-url", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadPresigned streams raw file bytes to a presigned URL. This is the one
// call that bypasses the JSON envelope: the body is binary and the target is
// object storage, not the backend API.
func (c *Client) UploadPresigned(ctx context.Context, presignedURL, contentType string, body io.Reader) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, presignedURL, body)
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(http.MethodPut, "error").Inc()
		return &domain.UpstreamError{Status: http.StatusBadGateway, Message: "upload target unreachable"}
	}
	defer resp.Body.Close()
	metrics.UpstreamRequestsTotal.WithLabelValues(http.MethodPut, fmt.Sprint(resp.StatusCode)).Inc()

	if resp.StatusCode >= 400 {
		return &domain.UpstreamError{Status: resp.StatusCode, Message: "upload rejected by storage"}
	}
	return nil
}
