package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/simoilconte/Bensine/internal/model"
)

// MockEventRepository is a testify mock for EventRepository.
type MockEventRepository struct {
	mock.Mock
}

func (_m *MockEventRepository) Create(ctx context.Context, e *model.Event) (uuid.UUID, error) {
	ret := _m.Called(ctx, e)

	r0, _ := ret.Get(0).(uuid.UUID)

	return r0, ret.Error(1)
}

func (_m *MockEventRepository) List(ctx context.Context, f model.EventFilter) ([]*model.Event, error) {
	ret := _m.Called(ctx, f)

	r0, _ := ret.Get(0).([]*model.Event)

	return r0, ret.Error(1)
}

func NewMockEventRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventRepository {
	m := &MockEventRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
