package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/simoilconte/Bensine/internal/model"
)

// MockDeliveryService is a testify mock for DeliveryService.
type MockDeliveryService struct {
	mock.Mock
}

func (_m *MockDeliveryService) ApplyDeliveryReport(ctx context.Context, report model.DeliveryReport) error {
	ret := _m.Called(ctx, report)

	return ret.Error(0)
}

func NewMockDeliveryService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDeliveryService {
	m := &MockDeliveryService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
