package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/simoilconte/Bensine/internal/model"
)

// MockOutbox is a testify mock for Outbox.
type MockOutbox struct {
	mock.Mock
}

func (_m *MockOutbox) Enqueue(ctx context.Context, params model.EnqueueParams) (*model.Notification, error) {
	ret := _m.Called(ctx, params)

	r0, _ := ret.Get(0).(*model.Notification)

	return r0, ret.Error(1)
}

func NewMockOutbox(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockOutbox {
	m := &MockOutbox{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
