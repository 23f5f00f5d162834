package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/simoilconte/Bensine/internal/model"
)

// MockEventRecorder is a testify mock for EventRecorder.
type MockEventRecorder struct {
	mock.Mock
}

func (_m *MockEventRecorder) Record(ctx context.Context, params model.RecordEventParams) error {
	ret := _m.Called(ctx, params)

	return ret.Error(0)
}

func NewMockEventRecorder(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventRecorder {
	m := &MockEventRecorder{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
