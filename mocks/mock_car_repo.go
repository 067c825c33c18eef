package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"dealerops/internal/domain"
)

// MockCarRepo is a mock implementation of port.CarRepository.
type MockCarRepo struct {
	mock.Mock
}

func (m *MockCarRepo) CreateBatch(ctx context.Context, cars []domain.Car) error {
	args := m.Called(ctx, cars)
	return args.Error(0)
}

func (m *MockCarRepo) GetByIdentifier(ctx context.Context, identifier string) (*domain.Car, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}

func (m *MockCarRepo) List(ctx context.Context, offset, limit int) ([]domain.Car, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Car), args.Int(1), args.Error(2)
}
