package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	assetDomain "github.com/allisson/drive-proxy/internal/asset/domain"
	capabilityDomain "github.com/allisson/drive-proxy/internal/capability/domain"
	metricsMocks "github.com/allisson/drive-proxy/internal/metrics/mocks"
)

type mockAssetUseCase struct {
	mock.Mock
}

func (m *mockAssetUseCase) Get(ctx context.Context, payload string) (*assetDomain.Asset, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assetDomain.Asset), args.Error(1)
}

func TestAssetUseCaseWithMetrics_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		err    error
		status string
	}{
		{name: "success", status: "success"},
		{name: "invalid capability", err: capabilityDomain.ErrDecryption, status: "rejected"},
		{name: "origin rejected", err: assetDomain.ErrOriginFetch, status: "upstream_error"},
		{name: "origin unavailable", err: assetDomain.ErrOriginUnavailable, status: "error"},
		{name: "unknown", err: errors.New("boom"), status: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := &mockAssetUseCase{}
			m := metricsMocks.NewMockBusinessMetrics(t)
			if tt.err == nil {
				next.On("Get", ctx, "opaque").Return(&assetDomain.Asset{}, nil).Once()
			} else {
				next.On("Get", ctx, "opaque").Return(nil, tt.err).Once()
			}
			m.ExpectOperation(ctx, "asset", "asset_get", tt.status)

			_, err := NewAssetUseCaseWithMetrics(next, m).Get(ctx, "opaque")

			assert.ErrorIs(t, err, tt.err)
			next.AssertExpectations(t)
		})
	}
}
