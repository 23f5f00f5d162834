package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/simoilconte/Bensine/internal/model"
)

// MockSessionRepository is a testify mock for SessionRepository.
type MockSessionRepository struct {
	mock.Mock
}

func (_m *MockSessionRepository) Create(ctx context.Context, s *model.Session) error {
	ret := _m.Called(ctx, s)

	return ret.Error(0)
}

func (_m *MockSessionRepository) SessionByToken(ctx context.Context, token string) (*model.Session, error) {
	ret := _m.Called(ctx, token)

	r0, _ := ret.Get(0).(*model.Session)

	return r0, ret.Error(1)
}

func (_m *MockSessionRepository) Delete(ctx context.Context, token string) error {
	ret := _m.Called(ctx, token)

	return ret.Error(0)
}

func NewMockSessionRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSessionRepository {
	m := &MockSessionRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
