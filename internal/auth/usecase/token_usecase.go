// Package usecase implements business logic orchestration for authentication operations.
package usecase

import (
	"context"

	authDomain "github.com/allisson/drive-proxy/internal/auth/domain"
	authService "github.com/allisson/drive-proxy/internal/auth/service"
)

// tokenUseCase implements TokenUseCase on top of a TokenVerifier.
type tokenUseCase struct {
	verifier authService.TokenVerifier
}

// Authenticate delegates to the verifier. Claims are never cached between requests.
func (t *tokenUseCase) Authenticate(ctx context.Context, token string) (*authDomain.VerifiedClaims, error) {
	return t.verifier.Verify(ctx, token)
}

// NewTokenUseCase creates a new TokenUseCase.
func NewTokenUseCase(verifier authService.TokenVerifier) TokenUseCase {
	return &tokenUseCase{
		verifier: verifier,
	}
}
