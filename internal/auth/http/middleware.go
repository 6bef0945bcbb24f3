package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/drive-proxy/internal/auth/domain"
	authUseCase "github.com/allisson/drive-proxy/internal/auth/usecase"
	"github.com/allisson/drive-proxy/internal/httputil"
)

const bearerPrefix = "bearer "

// BearerToken extracts the token from a "Bearer <token>" header value.
// The scheme is matched case-insensitively. Returns false when the value is not a
// non-empty bearer credential.
func BearerToken(header string) (string, bool) {
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}

// AuthenticationMiddleware verifies the signed app token in the Authorization header.
//
// The middleware:
// 1. Extracts the Bearer token from the Authorization header (case-insensitive)
// 2. Verifies it using tokenUseCase.Authenticate()
// 3. Stores the verified claims in the request context for GetClaims()
//
// Error handling:
//   - Missing or malformed Authorization header → 403 Forbidden
//   - Any verification failure → 403 Forbidden with a generic body
//   - Key service unavailable → 500 Internal Server Error
func AuthenticationMiddleware(
	tokenUseCase authUseCase.TokenUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c.GetHeader("Authorization"))
		if !ok {
			logger.Debug("authentication failed: missing or malformed authorization header")
			httputil.HandleErrorGin(c, authDomain.ErrMalformedToken, logger)
			c.Abort()
			return
		}

		claims, err := tokenUseCase.Authenticate(c.Request.Context(), token)
		if err != nil {
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithClaims(c.Request.Context(), claims)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("app_id", claims.AppID),
			slog.String("brand_id", claims.BrandID))

		c.Next()
	}
}
