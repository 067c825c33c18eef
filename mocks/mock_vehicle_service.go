package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"dealerops/internal/domain"
)

// MockVehicleService is a mock implementation of service.VehicleService.
type MockVehicleService struct {
	mock.Mock
}

func (m *MockVehicleService) List(ctx context.Context, offset, limit int) ([]domain.Car, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Car), args.Int(1), args.Error(2)
}

func (m *MockVehicleService) Get(ctx context.Context, identifier string) (*domain.Car, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}

func (m *MockVehicleService) View(ctx context.Context, identifier string) (*domain.ComprehensiveVehicleView, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ComprehensiveVehicleView), args.Error(1)
}
