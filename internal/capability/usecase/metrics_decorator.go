package usecase

import (
	"context"
	"time"

	capabilityDomain "github.com/allisson/drive-proxy/internal/capability/domain"
	apperrors "github.com/allisson/drive-proxy/internal/errors"
	"github.com/allisson/drive-proxy/internal/metrics"
)

// capabilityUseCaseWithMetrics decorates CapabilityUseCase with metrics instrumentation.
type capabilityUseCaseWithMetrics struct {
	next    CapabilityUseCase
	metrics metrics.BusinessMetrics
}

// NewCapabilityUseCaseWithMetrics wraps a CapabilityUseCase with metrics recording.
func NewCapabilityUseCaseWithMetrics(useCase CapabilityUseCase, m metrics.BusinessMetrics) CapabilityUseCase {
	return &capabilityUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Issue records the call and, once sealed, counts an issued capability.
func (c *capabilityUseCaseWithMetrics) Issue(ctx context.Context, accessToken, fileID string) (string, error) {
	start := time.Now()
	payload, err := c.next.Issue(ctx, accessToken, fileID)

	c.metrics.RecordOperation(ctx, "capability", "capability_issue", status(err), time.Since(start))
	if err == nil {
		c.metrics.RecordCapability(ctx, metrics.CapabilityIssued)
	}

	return payload, err
}

// Redeem records the call and the redemption outcome. Clients see one error for every
// failed redemption; the outcome counter is where tampering and expiry are told apart.
func (c *capabilityUseCaseWithMetrics) Redeem(
	ctx context.Context,
	payload string,
) (*capabilityDomain.Capability, error) {
	start := time.Now()
	capability, err := c.next.Redeem(ctx, payload)

	c.metrics.RecordOperation(ctx, "capability", "capability_redeem", status(err), time.Since(start))
	c.metrics.RecordCapability(ctx, redeemOutcome(err))

	return capability, err
}

func redeemOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.CapabilityRedeemed
	case apperrors.Is(err, capabilityDomain.ErrCapabilityExpired):
		return metrics.CapabilityExpired
	case apperrors.Is(err, capabilityDomain.ErrDecryption):
		return metrics.CapabilityDecryptFailed
	case apperrors.Is(err, capabilityDomain.ErrPayloadMalformed):
		return metrics.CapabilityMalformed
	default:
		return metrics.CapabilityRejected
	}
}

func status(err error) string {
	switch {
	case err == nil:
		return "success"
	case apperrors.Is(err, apperrors.ErrInvalidCapability), apperrors.Is(err, apperrors.ErrInvalidInput):
		return "rejected"
	default:
		return "error"
	}
}
