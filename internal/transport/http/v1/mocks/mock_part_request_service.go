package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/simoilconte/Bensine/internal/model"
)

// MockPartRequestService is a testify mock for PartRequestService.
type MockPartRequestService struct {
	mock.Mock
}

func (_m *MockPartRequestService) Create(ctx context.Context, actor *model.User, params model.CreatePartRequestParams) (uuid.UUID, error) {
	ret := _m.Called(ctx, actor, params)

	return ret.Get(0).(uuid.UUID), ret.Error(1)
}

func (_m *MockPartRequestService) SetStatus(ctx context.Context, actor *model.User, id uuid.UUID, status model.PartRequestStatus) error {
	ret := _m.Called(ctx, actor, id, status)

	return ret.Error(0)
}

func (_m *MockPartRequestService) AllowedNext(status model.PartRequestStatus) ([]model.PartRequestStatus, error) {
	ret := _m.Called(status)

	var r0 []model.PartRequestStatus
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.PartRequestStatus)
	}

	return r0, ret.Error(1)
}

func (_m *MockPartRequestService) Update(ctx context.Context, actor *model.User, id uuid.UUID, upd model.PartRequestUpdate) error {
	ret := _m.Called(ctx, actor, id, upd)

	return ret.Error(0)
}

func (_m *MockPartRequestService) Remove(ctx context.Context, actor *model.User, id uuid.UUID) error {
	ret := _m.Called(ctx, actor, id)

	return ret.Error(0)
}

func (_m *MockPartRequestService) Get(ctx context.Context, actor *model.User, id uuid.UUID) (*model.PartRequestView, error) {
	ret := _m.Called(ctx, actor, id)

	var r0 *model.PartRequestView
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.PartRequestView)
	}

	return r0, ret.Error(1)
}

func (_m *MockPartRequestService) List(ctx context.Context, actor *model.User, f model.PartRequestFilter) ([]model.PartRequestView, error) {
	ret := _m.Called(ctx, actor, f)

	var r0 []model.PartRequestView
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.PartRequestView)
	}

	return r0, ret.Error(1)
}

func NewMockPartRequestService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPartRequestService {
	m := &MockPartRequestService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
