// Package usecase defines business logic interfaces for bearer-token authentication.
package usecase

import (
	"context"

	authDomain "github.com/allisson/drive-proxy/internal/auth/domain"
)

// TokenUseCase defines the authentication operation guarding privileged routes.
type TokenUseCase interface {
	// Authenticate verifies a raw bearer token and returns the identity it asserts.
	//
	// Authentication failures wrap errors.ErrUnauthenticated with the failure kind
	// (malformed, unknown issuer, signature invalid, missing claim, issuer not allowed,
	// expired). A key service outage wraps errors.ErrUnavailable instead, so callers can
	// tell a rejected request from an infrastructure problem.
	Authenticate(ctx context.Context, token string) (*authDomain.VerifiedClaims, error)
}
