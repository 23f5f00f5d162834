package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/simoilconte/Bensine/internal/model"
)

// MockPartRepository is a testify mock for PartRepository.
type MockPartRepository struct {
	mock.Mock
}

func (_m *MockPartRepository) Create(ctx context.Context, p *model.Part) (uuid.UUID, error) {
	ret := _m.Called(ctx, p)

	r0, _ := ret.Get(0).(uuid.UUID)

	return r0, ret.Error(1)
}

func (_m *MockPartRepository) PartByID(ctx context.Context, id uuid.UUID) (*model.Part, error) {
	ret := _m.Called(ctx, id)

	r0, _ := ret.Get(0).(*model.Part)

	return r0, ret.Error(1)
}

func (_m *MockPartRepository) List(ctx context.Context, f model.PartFilter) ([]*model.Part, error) {
	ret := _m.Called(ctx, f)

	r0, _ := ret.Get(0).([]*model.Part)

	return r0, ret.Error(1)
}

func (_m *MockPartRepository) CountBySupplier(ctx context.Context, supplierIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	ret := _m.Called(ctx, supplierIDs)

	r0, _ := ret.Get(0).(map[uuid.UUID]int)

	return r0, ret.Error(1)
}

func (_m *MockPartRepository) Update(ctx context.Context, p *model.Part) error {
	ret := _m.Called(ctx, p)

	return ret.Error(0)
}

func (_m *MockPartRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (int, int, error) {
	ret := _m.Called(ctx, id, delta)

	r0 := ret.Int(0)
	r1 := ret.Int(1)

	return r0, r1, ret.Error(2)
}

func (_m *MockPartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)

	return ret.Error(0)
}

func NewMockPartRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPartRepository {
	m := &MockPartRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
