// Package mocks provides mock implementations of capability use cases for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	capabilityDomain "github.com/allisson/drive-proxy/internal/capability/domain"
)

// MockCapabilityUseCase is a mock implementation of CapabilityUseCase.
type MockCapabilityUseCase struct {
	mock.Mock
}

// NewMockCapabilityUseCase creates a mock that asserts its expectations on test cleanup.
func NewMockCapabilityUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCapabilityUseCase {
	m := &MockCapabilityUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Issue mocks the Issue method of CapabilityUseCase.
func (m *MockCapabilityUseCase) Issue(ctx context.Context, accessToken, fileID string) (string, error) {
	args := m.Called(ctx, accessToken, fileID)
	return args.String(0), args.Error(1)
}

// Redeem mocks the Redeem method of CapabilityUseCase.
func (m *MockCapabilityUseCase) Redeem(
	ctx context.Context,
	payload string,
) (*capabilityDomain.Capability, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*capabilityDomain.Capability), args.Error(1)
}
