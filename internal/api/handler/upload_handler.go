package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/ports"
)

type UploadHandler struct {
	backend ports.UploadBackend
	log     zerolog.Logger
}

func NewUploadHandler(backend ports.UploadBackend, log zerolog.Logger) *UploadHandler {
	return &UploadHandler{backend: backend, log: log}
}

type presignRequest struct {
	FileName    string `json:"fileName" form:"fileName" validate:"required"`
	ContentType string `json:"contentType" form:"contentType" validate:"required"`
}

// Presign asks the backend for a one-time upload URL. The credential role
// comes from the page that initiated the upload, via the Referer fallback.
//
// @Summary      Presigned upload URL
// @Tags         upload
// @Produce      json
// @Success      200  {object}  upstream.PresignedUpload
// @Router       /upload/presigned-url [post]
func (h *UploadHandler) Presign(c echo.Context) error {
	var req presignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token := dispatchToken(c, "/upload/presigned-url")
	presigned, err := h.backend.PresignedUploadURL(c.Request().Context(), token, req.FileName, req.ContentType)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, presigned)
}

type uploadResponse struct {
	Key string `json:"key"`
}

// Direct streams the request body to object storage in one round trip:
// presign, then PUT to the returned URL.
//
// @Summary      Direct upload
// @Tags         upload
// @Router       /upload/direct [post]
func (h *UploadHandler) Direct(c echo.Context) error {
	fileName := c.QueryParam("fileName")
	if fileName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "fileName query parameter is required")
	}
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	ctx := c.Request().Context()
	token := dispatchToken(c, "/upload/presigned-url")
	presigned, err := h.backend.PresignedUploadURL(ctx, token, fileName, contentType)
	if err != nil {
		return err
	}

	if err := h.backend.UploadPresigned(ctx, presigned.PresignedURL, contentType, c.Request().Body); err != nil {
		h.log.Error().Err(err).Str("key", presigned.Key).Msg("presigned upload failed")
		return err
	}
	return c.JSON(http.StatusOK, uploadResponse{Key: presigned.Key})
}
