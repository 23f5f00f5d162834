package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/simoilconte/Bensine/internal/model"
)

// MockCustomerRepository is a testify mock for CustomerRepository.
type MockCustomerRepository struct {
	mock.Mock
}

func (_m *MockCustomerRepository) Create(ctx context.Context, c *model.Customer) (uuid.UUID, error) {
	ret := _m.Called(ctx, c)

	r0, _ := ret.Get(0).(uuid.UUID)

	return r0, ret.Error(1)
}

func (_m *MockCustomerRepository) CustomerByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	ret := _m.Called(ctx, id)

	r0, _ := ret.Get(0).(*model.Customer)

	return r0, ret.Error(1)
}

func (_m *MockCustomerRepository) List(ctx context.Context, f model.CustomerFilter) ([]*model.Customer, error) {
	ret := _m.Called(ctx, f)

	r0, _ := ret.Get(0).([]*model.Customer)

	return r0, ret.Error(1)
}

func (_m *MockCustomerRepository) Update(ctx context.Context, c *model.Customer) error {
	ret := _m.Called(ctx, c)

	return ret.Error(0)
}

func (_m *MockCustomerRepository) SetSharing(ctx context.Context, id uuid.UUID, s model.Sharing) error {
	ret := _m.Called(ctx, id, s)

	return ret.Error(0)
}

func (_m *MockCustomerRepository) AddDocument(ctx context.Context, id uuid.UUID, d model.Document) error {
	ret := _m.Called(ctx, id, d)

	return ret.Error(0)
}

func (_m *MockCustomerRepository) RemoveDocument(ctx context.Context, id uuid.UUID, fileID string) error {
	ret := _m.Called(ctx, id, fileID)

	return ret.Error(0)
}

func (_m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)

	return ret.Error(0)
}

func NewMockCustomerRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCustomerRepository {
	m := &MockCustomerRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
