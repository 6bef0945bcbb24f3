package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/drive-proxy/internal/auth/domain"
	apperrors "github.com/allisson/drive-proxy/internal/errors"
	"github.com/allisson/drive-proxy/internal/metrics"
)

// tokenUseCaseWithMetrics decorates TokenUseCase with metrics instrumentation.
type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.BusinessMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Authenticate records metrics for token authentication. Rejected tokens are counted
// separately from infrastructure errors.
func (t *tokenUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	token string,
) (*authDomain.VerifiedClaims, error) {
	start := time.Now()
	claims, err := t.next.Authenticate(ctx, token)

	status := "success"
	switch {
	case apperrors.Is(err, apperrors.ErrUnauthenticated):
		status = "rejected"
	case err != nil:
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "auth", "token_authenticate", status, time.Since(start))

	return claims, err
}
