package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"dealerops/internal/domain"
	"dealerops/internal/extract"
	"dealerops/internal/service"
)

// MockIntakeService is a mock implementation of service.IntakeService.
type MockIntakeService struct {
	mock.Mock
}

func (m *MockIntakeService) Extract(ctx context.Context, input service.ExtractInput) (*extract.Batch, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*extract.Batch), args.Error(1)
}

func (m *MockIntakeService) Upload(ctx context.Context, input service.ManifestUploadInput) (*service.UploadResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadResult), args.Error(1)
}

func (m *MockIntakeService) Commit(ctx context.Context, input service.CommitInput) ([]domain.Car, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Car), args.Error(1)
}

// ExportCSV writes the string passed as the first Return value to w.
func (m *MockIntakeService) ExportCSV(ctx context.Context, w io.Writer, records []domain.DraftVehicleRecord, shipment domain.GlobalShipmentContext) error {
	args := m.Called(ctx, w, records, shipment)
	if out := args.String(0); out != "" {
		_, _ = io.WriteString(w, out)
	}
	return args.Error(1)
}

func (m *MockIntakeService) DocumentURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockIntakeService) DiscardDocument(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
