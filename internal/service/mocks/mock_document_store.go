package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/simoilconte/Bensine/internal/model"
)

// MockDocumentStore is a testify mock for DocumentStore.
type MockDocumentStore struct {
	mock.Mock
}

func (_m *MockDocumentStore) Upload(ctx context.Context, p model.UploadFileParams) (*model.FileInfo, error) {
	ret := _m.Called(ctx, p)

	r0, _ := ret.Get(0).(*model.FileInfo)

	return r0, ret.Error(1)
}

func (_m *MockDocumentStore) Open(ctx context.Context, fileID string) (*model.OpenedFile, error) {
	ret := _m.Called(ctx, fileID)

	r0, _ := ret.Get(0).(*model.OpenedFile)

	return r0, ret.Error(1)
}

func (_m *MockDocumentStore) Delete(ctx context.Context, fileID string) error {
	ret := _m.Called(ctx, fileID)

	return ret.Error(0)
}

func NewMockDocumentStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDocumentStore {
	m := &MockDocumentStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
