package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"dealerops/internal/domain"
)

// MockRepairHistoryService is a mock implementation of port.RepairHistoryService.
type MockRepairHistoryService struct {
	mock.Mock
}

func (m *MockRepairHistoryService) GetRepairHistory(ctx context.Context, identifier string) ([]domain.RepairEntry, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RepairEntry), args.Error(1)
}

// MockTestDriveService is a mock implementation of port.TestDriveService.
type MockTestDriveService struct {
	mock.Mock
}

func (m *MockTestDriveService) GetTestDriveHistory(ctx context.Context, identifier string) ([]domain.TestDriveEntry, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TestDriveEntry), args.Error(1)
}

// MockUnifiedRecordStore is a mock implementation of port.UnifiedRecordStore.
type MockUnifiedRecordStore struct {
	mock.Mock
}

func (m *MockUnifiedRecordStore) FindByIdentifier(ctx context.Context, identifier string) (*domain.UnifiedRecord, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UnifiedRecord), args.Error(1)
}

// MockMirrorStore is a mock implementation of port.MirrorStore.
type MockMirrorStore struct {
	mock.Mock
}

func (m *MockMirrorStore) FindByIdentifier(ctx context.Context, location domain.MirrorLocation, identifier string) ([]domain.SourceRecord, error) {
	args := m.Called(ctx, location, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SourceRecord), args.Error(1)
}

func (m *MockMirrorStore) ReplaceLocation(ctx context.Context, location domain.MirrorLocation, records []map[string]any) error {
	args := m.Called(ctx, location, records)
	return args.Error(0)
}
