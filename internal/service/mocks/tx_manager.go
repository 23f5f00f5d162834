package mocks

import "context"

// InlineTxManager runs fn directly on the caller's context.
type InlineTxManager struct {
	Calls int
}

func (m *InlineTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}
