package usecase

import (
	"context"
	"time"

	assetDomain "github.com/allisson/drive-proxy/internal/asset/domain"
	apperrors "github.com/allisson/drive-proxy/internal/errors"
	"github.com/allisson/drive-proxy/internal/metrics"
)

// assetUseCaseWithMetrics decorates AssetUseCase with metrics instrumentation.
type assetUseCaseWithMetrics struct {
	next    AssetUseCase
	metrics metrics.BusinessMetrics
}

// NewAssetUseCaseWithMetrics wraps an AssetUseCase with metrics recording.
func NewAssetUseCaseWithMetrics(useCase AssetUseCase, m metrics.BusinessMetrics) AssetUseCase {
	return &assetUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Get records metrics for asset retrieval up to the point the body starts streaming.
func (a *assetUseCaseWithMetrics) Get(ctx context.Context, payload string) (*assetDomain.Asset, error) {
	start := time.Now()
	asset, err := a.next.Get(ctx, payload)

	status := "success"
	switch {
	case apperrors.Is(err, apperrors.ErrInvalidCapability):
		status = "rejected"
	case apperrors.Is(err, apperrors.ErrUpstream):
		status = "upstream_error"
	case err != nil:
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "asset", "asset_get", status, time.Since(start))

	return asset, err
}
