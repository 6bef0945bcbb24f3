// Package usecase resolves presigned URL payloads into streamed assets.
package usecase

import (
	"context"

	assetDomain "github.com/allisson/drive-proxy/internal/asset/domain"
)

// AssetUseCase serves assets for redeemed capabilities.
type AssetUseCase interface {
	// Get redeems payload and fetches the file it grants access to.
	// The caller must close the returned asset body.
	Get(ctx context.Context, payload string) (*assetDomain.Asset, error)
}
