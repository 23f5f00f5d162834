package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/simoilconte/Bensine/internal/model"
)

// MockUserRepository is a testify mock for UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (_m *MockUserRepository) Create(ctx context.Context, u *model.User) (uuid.UUID, error) {
	ret := _m.Called(ctx, u)

	r0, _ := ret.Get(0).(uuid.UUID)

	return r0, ret.Error(1)
}

func (_m *MockUserRepository) UserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	ret := _m.Called(ctx, id)

	r0, _ := ret.Get(0).(*model.User)

	return r0, ret.Error(1)
}

func (_m *MockUserRepository) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	ret := _m.Called(ctx, email)

	r0, _ := ret.Get(0).(*model.User)

	return r0, ret.Error(1)
}

func (_m *MockUserRepository) List(ctx context.Context) ([]*model.User, error) {
	ret := _m.Called(ctx)

	r0, _ := ret.Get(0).([]*model.User)

	return r0, ret.Error(1)
}

func (_m *MockUserRepository) UsersByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.User, error) {
	ret := _m.Called(ctx, ids)

	r0, _ := ret.Get(0).([]*model.User)

	return r0, ret.Error(1)
}

func (_m *MockUserRepository) Count(ctx context.Context) (int, error) {
	ret := _m.Called(ctx)

	r0 := ret.Int(0)

	return r0, ret.Error(1)
}

func (_m *MockUserRepository) SetRole(ctx context.Context, id uuid.UUID, role model.Role, customerID *uuid.UUID) error {
	ret := _m.Called(ctx, id, role, customerID)

	return ret.Error(0)
}

func NewMockUserRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
