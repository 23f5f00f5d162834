package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/simoilconte/Bensine/internal/model"
)

// MockFuelTypeRepository is a testify mock for FuelTypeRepository.
type MockFuelTypeRepository struct {
	mock.Mock
}

func (_m *MockFuelTypeRepository) Create(ctx context.Context, ft *model.FuelType) (uuid.UUID, error) {
	ret := _m.Called(ctx, ft)

	r0, _ := ret.Get(0).(uuid.UUID)

	return r0, ret.Error(1)
}

func (_m *MockFuelTypeRepository) FuelTypeByID(ctx context.Context, id uuid.UUID) (*model.FuelType, error) {
	ret := _m.Called(ctx, id)

	r0, _ := ret.Get(0).(*model.FuelType)

	return r0, ret.Error(1)
}

func (_m *MockFuelTypeRepository) List(ctx context.Context, activeOnly bool) ([]*model.FuelType, error) {
	ret := _m.Called(ctx, activeOnly)

	r0, _ := ret.Get(0).([]*model.FuelType)

	return r0, ret.Error(1)
}

func (_m *MockFuelTypeRepository) Count(ctx context.Context) (int, error) {
	ret := _m.Called(ctx)

	r0 := ret.Int(0)

	return r0, ret.Error(1)
}

func (_m *MockFuelTypeRepository) Update(ctx context.Context, ft *model.FuelType) error {
	ret := _m.Called(ctx, ft)

	return ret.Error(0)
}

func (_m *MockFuelTypeRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)

	return ret.Error(0)
}

func (_m *MockFuelTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)

	return ret.Error(0)
}

func NewMockFuelTypeRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockFuelTypeRepository {
	m := &MockFuelTypeRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
