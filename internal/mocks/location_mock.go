package mocks

import (
	"context"

	"github.com/benmeehan/locality-agent/pkg/location"
	"github.com/stretchr/testify/mock"
)

// MockSensor is a mock implementation of location.Sensor
type MockSensor struct {
	mock.Mock
}

func (m *MockSensor) Position(ctx context.Context, opts location.SensorOptions) (location.Fix, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(location.Fix), args.Error(1)
}

// MockLocator is a mock implementation of location.Locator
type MockLocator struct {
	mock.Mock
}

func (m *MockLocator) Locate(ctx context.Context) (location.Fix, error) {
	args := m.Called(ctx)
	return args.Get(0).(location.Fix), args.Error(1)
}
