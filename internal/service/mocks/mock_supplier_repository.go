package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/simoilconte/Bensine/internal/model"
)

// MockSupplierRepository is a testify mock for SupplierRepository.
type MockSupplierRepository struct {
	mock.Mock
}

func (_m *MockSupplierRepository) Create(ctx context.Context, s *model.Supplier) (uuid.UUID, error) {
	ret := _m.Called(ctx, s)

	r0, _ := ret.Get(0).(uuid.UUID)

	return r0, ret.Error(1)
}

func (_m *MockSupplierRepository) SupplierByID(ctx context.Context, id uuid.UUID) (*model.Supplier, error) {
	ret := _m.Called(ctx, id)

	r0, _ := ret.Get(0).(*model.Supplier)

	return r0, ret.Error(1)
}

func (_m *MockSupplierRepository) List(ctx context.Context, activeOnly bool, ids []uuid.UUID) ([]*model.Supplier, error) {
	ret := _m.Called(ctx, activeOnly, ids)

	r0, _ := ret.Get(0).([]*model.Supplier)

	return r0, ret.Error(1)
}

func (_m *MockSupplierRepository) Update(ctx context.Context, s *model.Supplier) error {
	ret := _m.Called(ctx, s)

	return ret.Error(0)
}

func (_m *MockSupplierRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)

	return ret.Error(0)
}

func (_m *MockSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)

	return ret.Error(0)
}

func NewMockSupplierRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSupplierRepository {
	m := &MockSupplierRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
