// Package mocks provides mock implementations of asset use cases for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	assetDomain "github.com/allisson/drive-proxy/internal/asset/domain"
)

// MockAssetUseCase is a mock implementation of AssetUseCase.
type MockAssetUseCase struct {
	mock.Mock
}

// NewMockAssetUseCase creates a mock that asserts its expectations on test cleanup.
func NewMockAssetUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAssetUseCase {
	m := &MockAssetUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Get mocks the Get method of AssetUseCase.
func (m *MockAssetUseCase) Get(ctx context.Context, payload string) (*assetDomain.Asset, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assetDomain.Asset), args.Error(1)
}
