package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/simoilconte/Bensine/platform/kafka"
)

// MockProducer is a testify mock for kafka.Producer. Headers arrive as one slice argument.
type MockProducer struct {
	mock.Mock
}

func (_m *MockProducer) Send(ctx context.Context, key, value []byte, headers ...kafka.Header) error {
	ret := _m.Called(ctx, key, value, headers)

	return ret.Error(0)
}

func NewMockProducer(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockProducer {
	m := &MockProducer{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
