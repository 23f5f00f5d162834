package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/simoilconte/Bensine/internal/model"
)

// MockNotificationRepository is a testify mock for NotificationRepository.
type MockNotificationRepository struct {
	mock.Mock
}

func (_m *MockNotificationRepository) Create(ctx context.Context, n *model.Notification) (uuid.UUID, error) {
	ret := _m.Called(ctx, n)

	r0, _ := ret.Get(0).(uuid.UUID)

	return r0, ret.Error(1)
}

func (_m *MockNotificationRepository) NotificationByID(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	ret := _m.Called(ctx, id)

	r0, _ := ret.Get(0).(*model.Notification)

	return r0, ret.Error(1)
}

func (_m *MockNotificationRepository) ListByStatus(ctx context.Context, status model.NotificationStatus) ([]*model.Notification, error) {
	ret := _m.Called(ctx, status)

	r0, _ := ret.Get(0).([]*model.Notification)

	return r0, ret.Error(1)
}

func (_m *MockNotificationRepository) UpdateDelivery(ctx context.Context, n *model.Notification) error {
	ret := _m.Called(ctx, n)

	return ret.Error(0)
}

func NewMockNotificationRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockNotificationRepository {
	m := &MockNotificationRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
