package usecase

import (
	"context"
	"time"

	capabilityDomain "github.com/allisson/drive-proxy/internal/capability/domain"
	capabilityService "github.com/allisson/drive-proxy/internal/capability/service"
)

// capabilityUseCase applies a fixed TTL on top of a Codec.
type capabilityUseCase struct {
	codec capabilityService.Codec
	ttl   time.Duration
}

// Issue seals a capability expiring after the configured TTL.
func (c *capabilityUseCase) Issue(ctx context.Context, accessToken, fileID string) (string, error) {
	return c.codec.Issue(ctx, accessToken, fileID, c.ttl)
}

// Redeem opens and validates a capability.
func (c *capabilityUseCase) Redeem(ctx context.Context, payload string) (*capabilityDomain.Capability, error) {
	return c.codec.Redeem(ctx, payload)
}

// NewCapabilityUseCase creates a new CapabilityUseCase issuing capabilities valid for ttl.
func NewCapabilityUseCase(codec capabilityService.Codec, ttl time.Duration) CapabilityUseCase {
	return &capabilityUseCase{
		codec: codec,
		ttl:   ttl,
	}
}
