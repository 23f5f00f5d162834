package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/simoilconte/Bensine/internal/model"
)

// MockAuthService is a testify mock for AuthService.
type MockAuthService struct {
	mock.Mock
}

func (_m *MockAuthService) SignIn(ctx context.Context, email, password string) (*model.Session, error) {
	ret := _m.Called(ctx, email, password)

	var r0 *model.Session
	if rf, ok := ret.Get(0).(func(context.Context, string, string) *model.Session); ok {
		r0 = rf(ctx, email, password)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.Session)
	}

	return r0, ret.Error(1)
}

func (_m *MockAuthService) SignUp(ctx context.Context, params model.SignUpParams) (*model.Session, error) {
	ret := _m.Called(ctx, params)

	var r0 *model.Session
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.Session)
	}

	return r0, ret.Error(1)
}

func (_m *MockAuthService) SignOut(ctx context.Context, token string) {
	_m.Called(ctx, token)
}

func NewMockAuthService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAuthService {
	m := &MockAuthService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
