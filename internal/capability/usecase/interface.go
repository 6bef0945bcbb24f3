// Package usecase implements presigned URL capability issuance and redemption.
package usecase

import (
	"context"

	capabilityDomain "github.com/allisson/drive-proxy/internal/capability/domain"
)

// CapabilityUseCase issues and redeems capabilities with the configured lifetime.
type CapabilityUseCase interface {
	// Issue seals accessToken and fileID into an opaque, URL-safe payload.
	Issue(ctx context.Context, accessToken, fileID string) (string, error)

	// Redeem opens a payload and returns the capability it grants.
	// Every redemption failure wraps errors.ErrInvalidCapability.
	Redeem(ctx context.Context, payload string) (*capabilityDomain.Capability, error)
}
