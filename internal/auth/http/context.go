// Package http provides HTTP middleware and utilities for authentication.
package http

import (
	"context"

	authDomain "github.com/allisson/drive-proxy/internal/auth/domain"
)

// claimsKey is a context key type for storing verified token claims.
type claimsKey struct{}

// WithClaims stores verified claims in the context.
// This is typically called by the authentication middleware after successful token verification.
func WithClaims(ctx context.Context, claims *authDomain.VerifiedClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetClaims retrieves verified claims from the context.
// Returns (claims, true) if claims are present, or (nil, false) if none were set.
func GetClaims(ctx context.Context) (*authDomain.VerifiedClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*authDomain.VerifiedClaims)
	return claims, ok
}
