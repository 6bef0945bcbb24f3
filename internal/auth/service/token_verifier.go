package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	authDomain "github.com/allisson/drive-proxy/internal/auth/domain"
)

// asymmetricMethods are the only signing algorithms accepted. Shared-secret and "none"
// tokens are rejected before any key is used.
var asymmetricMethods = []string{
	"RS256", "RS384", "RS512",
	"PS256", "PS384", "PS512",
	"ES256", "ES384", "ES512",
	"EdDSA",
}

// tokenClaims is the claim set carried by app tokens.
type tokenClaims struct {
	BrandID string `json:"brandId"`
	UserID  string `json:"userId"`
	jwt.RegisteredClaims
}

// tokenVerifier verifies tokens against keys resolved per app id.
type tokenVerifier struct {
	resolver  KeyResolver
	allowlist *authDomain.Allowlist
	logger    *slog.Logger
	now       func() time.Time
}

// NewTokenVerifier creates a TokenVerifier accepting tokens from the given app ids.
func NewTokenVerifier(
	resolver KeyResolver,
	allowlist *authDomain.Allowlist,
	logger *slog.Logger,
) TokenVerifier {
	return &tokenVerifier{
		resolver:  resolver,
		allowlist: allowlist,
		logger:    logger,
		now:       time.Now,
	}
}

// Verify checks the token in a fixed order: structure, key, signature, required claims,
// allowlist. The first failing step determines the error.
func (v *tokenVerifier) Verify(ctx context.Context, token string) (*authDomain.VerifiedClaims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, v.reject("", authDomain.ErrMalformedToken, "empty token")
	}

	appID, keyID, err := v.decodeUnverified(token)
	if err != nil {
		return nil, v.reject(appID, authDomain.ErrMalformedToken, err.Error())
	}

	key, err := v.resolver.Resolve(ctx, appID, keyID)
	if err != nil {
		if errors.Is(err, authDomain.ErrUnknownKey) {
			return nil, v.reject(appID, authDomain.ErrUnknownIssuer, err.Error())
		}
		if v.logger != nil {
			v.logger.Error("signing key resolution failed",
				slog.String("app_id", appID),
				slog.Any("error", err),
			)
		}
		return nil, err
	}

	claims := &tokenClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods(asymmetricMethods),
		jwt.WithAudience(appID),
		jwt.WithTimeFunc(v.now),
	)
	_, err = parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if key.Algorithm != "" && t.Method.Alg() != key.Algorithm {
			return nil, fmt.Errorf("key %q is bound to %s", key.KeyID, key.Algorithm)
		}
		return key.PublicKey, nil
	})
	if err != nil {
		return nil, v.reject(appID, classifyParseError(err), err.Error())
	}

	switch {
	case claims.BrandID == "":
		return nil, v.reject(appID, authDomain.ErrMissingClaim, "brandId")
	case claims.UserID == "":
		return nil, v.reject(appID, authDomain.ErrMissingClaim, "userId")
	}

	if !v.allowlist.Contains(appID) {
		return nil, v.reject(appID, authDomain.ErrIssuerNotAllowed, "app id not allowed")
	}

	verified := &authDomain.VerifiedClaims{
		AppID:   appID,
		BrandID: claims.BrandID,
		UserID:  claims.UserID,
	}
	if claims.IssuedAt != nil {
		issuedAt := claims.IssuedAt.Time
		verified.IssuedAt = &issuedAt
	}
	if claims.ExpiresAt != nil {
		expiresAt := claims.ExpiresAt.Time
		verified.ExpiresAt = &expiresAt
	}
	return verified, nil
}

// decodeUnverified reads the audience and key id without trusting them.
func (v *tokenVerifier) decodeUnverified(token string) (appID, keyID string, err error) {
	claims := &tokenClaims{}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return "", "", err
	}

	if len(claims.Audience) != 1 || strings.TrimSpace(claims.Audience[0]) == "" {
		return "", "", fmt.Errorf("expected exactly one audience, got %d", len(claims.Audience))
	}
	appID = claims.Audience[0]

	keyID, _ = parsed.Header["kid"].(string)
	if keyID == "" {
		return appID, "", errors.New("missing key id")
	}
	return appID, keyID, nil
}

// reject logs the failure kind and returns it wrapped with detail.
func (v *tokenVerifier) reject(appID string, kind error, detail string) error {
	if v.logger != nil {
		v.logger.Warn("token rejected",
			slog.String("app_id", appID),
			slog.String("reason", kind.Error()),
		)
	}
	return fmt.Errorf("%w: %s", kind, detail)
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return authDomain.ErrMalformedToken
	case errors.Is(err, jwt.ErrTokenExpired),
		errors.Is(err, jwt.ErrTokenNotValidYet),
		errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return authDomain.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return authDomain.ErrMissingClaim
	default:
		return authDomain.ErrSignatureInvalid
	}
}
