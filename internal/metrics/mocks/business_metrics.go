// Package mocks provides a testify mock for metrics.BusinessMetrics.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockBusinessMetrics is a mock implementation of metrics.BusinessMetrics.
type MockBusinessMetrics struct {
	mock.Mock
}

// NewMockBusinessMetrics creates a MockBusinessMetrics whose expectations are asserted on cleanup.
func NewMockBusinessMetrics(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockBusinessMetrics {
	m := &MockBusinessMetrics{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBusinessMetrics) RecordOperation(
	ctx context.Context,
	domain, operation, status string,
	duration time.Duration,
) {
	m.Called(ctx, domain, operation, status, duration)
}

func (m *MockBusinessMetrics) RecordCapability(ctx context.Context, outcome string) {
	m.Called(ctx, outcome)
}

func (m *MockBusinessMetrics) RecordKeyLookup(ctx context.Context, result string) {
	m.Called(ctx, result)
}

func (m *MockBusinessMetrics) RecordOriginResponse(ctx context.Context, statusCode int, duration time.Duration) {
	m.Called(ctx, statusCode, duration)
}

// ExpectOperation sets up a single RecordOperation call with any duration.
func (m *MockBusinessMetrics) ExpectOperation(ctx context.Context, domain, operation, status string) *mock.Call {
	return m.On("RecordOperation", ctx, domain, operation, status, mock.AnythingOfType("time.Duration")).
		Return().
		Once()
}
