package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/simoilconte/Bensine/internal/model"
)

// MockAnnouncer is a testify mock for Announcer.
type MockAnnouncer struct {
	mock.Mock
}

func (_m *MockAnnouncer) Announce(ctx context.Context, n model.Notification) error {
	ret := _m.Called(ctx, n)

	return ret.Error(0)
}

func NewMockAnnouncer(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAnnouncer {
	m := &MockAnnouncer{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
