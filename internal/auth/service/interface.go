// Package service provides bearer-token verification for the authentication domain.
//
// Signing keys are resolved per app id from a JWKS endpoint and cached for a bounded time.
// Tokens are only trusted after the signature, audience, required claims and allowlist
// membership have all been checked.
package service

import (
	"context"

	authDomain "github.com/allisson/drive-proxy/internal/auth/domain"
)

// KeyResolver resolves the public key an app used to sign a token.
type KeyResolver interface {
	// Resolve returns the signing key identified by keyID in the key set published for appID.
	// Returns ErrUnknownKey when the set has no such key or no set exists for the app id,
	// and ErrKeyFetch when the set cannot be retrieved or decoded.
	Resolve(ctx context.Context, appID, keyID string) (*authDomain.SigningKey, error)
}

// TokenVerifier turns a raw bearer token into verified claims.
type TokenVerifier interface {
	// Verify decodes the token, resolves its signing key, checks the signature with the
	// audience pinned to the claimed app id, requires brandId and userId, and rejects app ids
	// outside the allowlist. No partially verified claims are ever returned.
	Verify(ctx context.Context, token string) (*authDomain.VerifiedClaims, error)
}
