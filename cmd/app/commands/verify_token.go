package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	authDomain "github.com/allisson/drive-proxy/internal/auth/domain"
	authUseCase "github.com/allisson/drive-proxy/internal/auth/usecase"
)

// RunVerifyToken verifies a bearer token against the configured JWKS endpoint and
// allowlist, then prints the verified claims. The token itself is never echoed.
func RunVerifyToken(
	ctx context.Context,
	tokenUseCase authUseCase.TokenUseCase,
	logger *slog.Logger,
	writer io.Writer,
	token string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	if token == "" {
		return fmt.Errorf("token is required")
	}

	claims, err := tokenUseCase.Authenticate(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to verify token: %w", err)
	}

	logger.Info("token verified", slog.String("app_id", claims.AppID))

	if format == "json" {
		return writeJSON(writer, map[string]any{
			"app_id":     claims.AppID,
			"brand_id":   claims.BrandID,
			"user_id":    claims.UserID,
			"issued_at":  formatTime(claims.IssuedAt),
			"expires_at": formatTime(claims.ExpiresAt),
		})
	}
	return outputClaimsText(writer, claims)
}

func outputClaimsText(w io.Writer, claims *authDomain.VerifiedClaims) error {
	_, err := fmt.Fprintf(w,
		"Token verified\n  App ID:     %s\n  Brand ID:   %s\n  User ID:    %s\n  Issued at:  %s\n  Expires at: %s\n",
		claims.AppID,
		claims.BrandID,
		claims.UserID,
		formatTime(claims.IssuedAt),
		formatTime(claims.ExpiresAt),
	)
	return err
}
