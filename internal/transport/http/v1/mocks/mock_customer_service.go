package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/simoilconte/Bensine/internal/model"
)

// MockCustomerService is a testify mock for CustomerService.
type MockCustomerService struct {
	mock.Mock
}

func (_m *MockCustomerService) List(
	ctx context.Context,
	actor *model.User,
	searchText string,
	customerType *model.CustomerType,
) ([]model.CustomerView, error) {
	ret := _m.Called(ctx, actor, searchText, customerType)

	var r0 []model.CustomerView
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.CustomerView)
	}

	return r0, ret.Error(1)
}

func (_m *MockCustomerService) Get(ctx context.Context, actor *model.User, id uuid.UUID) (*model.CustomerView, error) {
	ret := _m.Called(ctx, actor, id)

	var r0 *model.CustomerView
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.CustomerView)
	}

	return r0, ret.Error(1)
}

func (_m *MockCustomerService) Create(ctx context.Context, actor *model.User, params model.CreateCustomerParams) (uuid.UUID, error) {
	ret := _m.Called(ctx, actor, params)

	return ret.Get(0).(uuid.UUID), ret.Error(1)
}

func (_m *MockCustomerService) Update(ctx context.Context, actor *model.User, id uuid.UUID, upd model.CustomerUpdate) error {
	ret := _m.Called(ctx, actor, id, upd)

	return ret.Error(0)
}

func (_m *MockCustomerService) SetSharing(ctx context.Context, actor *model.User, id uuid.UUID, sharing model.Sharing) error {
	ret := _m.Called(ctx, actor, id, sharing)

	return ret.Error(0)
}

func (_m *MockCustomerService) Remove(ctx context.Context, actor *model.User, id uuid.UUID) error {
	ret := _m.Called(ctx, actor, id)

	return ret.Error(0)
}

func (_m *MockCustomerService) AddDocument(
	ctx context.Context,
	actor *model.User,
	id uuid.UUID,
	fileName, contentType string,
	body io.Reader,
) (*model.Document, error) {
	ret := _m.Called(ctx, actor, id, fileName, contentType, body)

	var r0 *model.Document
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.Document)
	}

	return r0, ret.Error(1)
}

func (_m *MockCustomerService) RemoveDocument(ctx context.Context, actor *model.User, id uuid.UUID, fileID string) error {
	ret := _m.Called(ctx, actor, id, fileID)

	return ret.Error(0)
}

func (_m *MockCustomerService) OpenDocument(ctx context.Context, actor *model.User, id uuid.UUID, fileID string) (*model.OpenedFile, error) {
	ret := _m.Called(ctx, actor, id, fileID)

	var r0 *model.OpenedFile
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.OpenedFile)
	}

	return r0, ret.Error(1)
}

func NewMockCustomerService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCustomerService {
	m := &MockCustomerService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
