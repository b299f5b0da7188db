package mocks

import (
	"context"

	"github.com/benmeehan/locality-agent/pkg/location"
	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of store.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Load(ctx context.Context) (location.Result, bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(location.Result), args.Bool(1), args.Error(2)
}

func (m *MockStore) Save(ctx context.Context, result location.Result) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
