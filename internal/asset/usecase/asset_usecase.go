package usecase

import (
	"context"

	assetDomain "github.com/allisson/drive-proxy/internal/asset/domain"
	assetService "github.com/allisson/drive-proxy/internal/asset/service"
	capabilityUseCase "github.com/allisson/drive-proxy/internal/capability/usecase"
)

// assetUseCase chains capability redemption and the origin relay.
type assetUseCase struct {
	capabilities capabilityUseCase.CapabilityUseCase
	relay        assetService.Relay
}

// Get never contacts the origin unless the capability is valid.
func (a *assetUseCase) Get(ctx context.Context, payload string) (*assetDomain.Asset, error) {
	capability, err := a.capabilities.Redeem(ctx, payload)
	if err != nil {
		return nil, err
	}
	return a.relay.Fetch(ctx, capability.FileID, capability.AccessToken)
}

// NewAssetUseCase creates a new AssetUseCase.
func NewAssetUseCase(
	capabilities capabilityUseCase.CapabilityUseCase,
	relay assetService.Relay,
) AssetUseCase {
	return &assetUseCase{
		capabilities: capabilities,
		relay:        relay,
	}
}
