package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/simoilconte/Bensine/internal/model"
)

// MockVehicleRepository is a testify mock for VehicleRepository.
type MockVehicleRepository struct {
	mock.Mock
}

func (_m *MockVehicleRepository) Create(ctx context.Context, v *model.Vehicle) (uuid.UUID, error) {
	ret := _m.Called(ctx, v)

	r0, _ := ret.Get(0).(uuid.UUID)

	return r0, ret.Error(1)
}

func (_m *MockVehicleRepository) VehicleByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	ret := _m.Called(ctx, id)

	r0, _ := ret.Get(0).(*model.Vehicle)

	return r0, ret.Error(1)
}

func (_m *MockVehicleRepository) VehiclesByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Vehicle, error) {
	ret := _m.Called(ctx, ids)

	r0, _ := ret.Get(0).([]*model.Vehicle)

	return r0, ret.Error(1)
}

func (_m *MockVehicleRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*model.Vehicle, error) {
	ret := _m.Called(ctx, customerID)

	r0, _ := ret.Get(0).([]*model.Vehicle)

	return r0, ret.Error(1)
}

func (_m *MockVehicleRepository) CountByCustomers(ctx context.Context, customerIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	ret := _m.Called(ctx, customerIDs)

	r0, _ := ret.Get(0).(map[uuid.UUID]int)

	return r0, ret.Error(1)
}

func (_m *MockVehicleRepository) ExistsWithFuelType(ctx context.Context, fuelType string) (bool, error) {
	ret := _m.Called(ctx, fuelType)

	r0 := ret.Bool(0)

	return r0, ret.Error(1)
}

func (_m *MockVehicleRepository) ExistsForCustomer(ctx context.Context, customerID uuid.UUID) (bool, error) {
	ret := _m.Called(ctx, customerID)

	r0 := ret.Bool(0)

	return r0, ret.Error(1)
}

func (_m *MockVehicleRepository) Update(ctx context.Context, v *model.Vehicle) error {
	ret := _m.Called(ctx, v)

	return ret.Error(0)
}

func (_m *MockVehicleRepository) SetRegistrationDoc(ctx context.Context, id uuid.UUID, d *model.RegistrationDoc) error {
	ret := _m.Called(ctx, id, d)

	return ret.Error(0)
}

func (_m *MockVehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)

	return ret.Error(0)
}

func NewMockVehicleRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockVehicleRepository {
	m := &MockVehicleRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
