// Package http provides HTTP handlers for presigned URL issuance and asset streaming.
package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/allisson/drive-proxy/internal/asset/http/dto"
	assetUseCase "github.com/allisson/drive-proxy/internal/asset/usecase"
	authHTTP "github.com/allisson/drive-proxy/internal/auth/http"
	capabilityUseCase "github.com/allisson/drive-proxy/internal/capability/usecase"
	"github.com/allisson/drive-proxy/internal/httputil"
	customValidation "github.com/allisson/drive-proxy/internal/validation"
)

// ForwardAuthorizationHeader carries the caller's delegated Google access token.
const ForwardAuthorizationHeader = "X-Forward-Authorization"

var errMissingForwardToken = errors.New(ForwardAuthorizationHeader + " bearer token is required")

// AssetHandler handles presigned URL issuance and redemption.
type AssetHandler struct {
	capabilityUseCase capabilityUseCase.CapabilityUseCase
	assetUseCase      assetUseCase.AssetUseCase
	publicBaseURL     string
	logger            *slog.Logger
}

// NewAssetHandler creates a new asset handler. An empty publicBaseURL makes presigned
// URLs point at https://<request host>.
func NewAssetHandler(
	capabilityUseCase capabilityUseCase.CapabilityUseCase,
	assetUseCase assetUseCase.AssetUseCase,
	publicBaseURL string,
	logger *slog.Logger,
) *AssetHandler {
	return &AssetHandler{
		capabilityUseCase: capabilityUseCase,
		assetUseCase:      assetUseCase,
		publicBaseURL:     publicBaseURL,
		logger:            logger,
	}
}

// GenerateURLHandler seals the forwarded access token and file id into a presigned URL.
// POST /generate-url - Requires a verified app token.
// Returns 200 OK with {"presignedUrl": "..."}.
func (h *AssetHandler) GenerateURLHandler(c *gin.Context) {
	accessToken, ok := authHTTP.BearerToken(c.GetHeader(ForwardAuthorizationHeader))
	if !ok {
		httputil.HandleBadRequestGin(c, errMissingForwardToken, h.logger)
		return
	}

	var req dto.GenerateURLRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	payload, err := h.capabilityUseCase.Issue(c.Request.Context(), accessToken, req.FileID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.GenerateURLResponse{
		PresignedURL: h.assetURL(c, payload),
	})
}

// GetAssetHandler redeems a presigned URL payload and streams the file it grants.
// GET /asset?payload=<opaque>
// Every redemption failure returns the same 400 body.
func (h *AssetHandler) GetAssetHandler(c *gin.Context) {
	var query dto.AssetQuery

	if err := c.ShouldBindQuery(&query); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := query.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	asset, err := h.assetUseCase.Get(c.Request.Context(), query.Payload)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	defer func() {
		_ = asset.Body.Close()
	}()

	c.Header("Content-Type", asset.ContentType)
	if asset.ContentLength >= 0 {
		c.Header("Content-Length", strconv.FormatInt(asset.ContentLength, 10))
	}
	c.Status(http.StatusOK)

	written, err := io.Copy(c.Writer, asset.Body)
	if err != nil {
		// Headers are already sent; the truncated body is the only signal left.
		h.logger.Warn("asset stream interrupted",
			slog.Int64("bytes_written", written),
			slog.Any("error", err))
		c.Abort()
	}
}

func (h *AssetHandler) assetURL(c *gin.Context, payload string) string {
	base := h.publicBaseURL
	if base == "" {
		base = "https://" + c.Request.Host
	}
	return base + "/asset?payload=" + url.QueryEscape(payload)
}
