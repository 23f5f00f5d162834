package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/simoilconte/Bensine/internal/model"
)

// MockPartRequestRepository is a testify mock for PartRequestRepository.
type MockPartRequestRepository struct {
	mock.Mock
}

func (_m *MockPartRequestRepository) Create(ctx context.Context, pr *model.PartRequest) (uuid.UUID, error) {
	ret := _m.Called(ctx, pr)

	r0, _ := ret.Get(0).(uuid.UUID)

	return r0, ret.Error(1)
}

func (_m *MockPartRequestRepository) PartRequestByID(ctx context.Context, id uuid.UUID) (*model.PartRequest, error) {
	ret := _m.Called(ctx, id)

	r0, _ := ret.Get(0).(*model.PartRequest)

	return r0, ret.Error(1)
}

func (_m *MockPartRequestRepository) List(ctx context.Context, f model.PartRequestFilter) ([]*model.PartRequest, error) {
	ret := _m.Called(ctx, f)

	r0, _ := ret.Get(0).([]*model.PartRequest)

	return r0, ret.Error(1)
}

func (_m *MockPartRequestRepository) Exists(ctx context.Context, f model.PartRequestFilter) (bool, error) {
	ret := _m.Called(ctx, f)

	r0 := ret.Bool(0)

	return r0, ret.Error(1)
}

func (_m *MockPartRequestRepository) Update(ctx context.Context, pr *model.PartRequest) error {
	ret := _m.Called(ctx, pr)

	return ret.Error(0)
}

func (_m *MockPartRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)

	return ret.Error(0)
}

func NewMockPartRequestRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPartRequestRepository {
	m := &MockPartRequestRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
