package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"dealerops/internal/domain"
	"dealerops/internal/port"
)

// ViewBuilder builds comprehensive vehicle views. It is satisfied by
// *reconcile.Reconciler.
type ViewBuilder interface {
	BuildComprehensiveView(ctx context.Context, identifier string, base *domain.SourceRecord) *domain.ComprehensiveVehicleView
}

// VehicleService defines the inventory read contract.
type VehicleService interface {
	List(ctx context.Context, offset, limit int) ([]domain.Car, int, error)
	Get(ctx context.Context, identifier string) (*domain.Car, error)
	View(ctx context.Context, identifier string) (*domain.ComprehensiveVehicleView, error)
}

type vehicleService struct {
	carRepo port.CarRepository
	views   ViewBuilder
	logger  *zap.Logger
}

// NewVehicleService creates a new VehicleService implementation.
func NewVehicleService(carRepo port.CarRepository, views ViewBuilder, logger *zap.Logger) VehicleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &vehicleService{carRepo: carRepo, views: views, logger: logger}
}

func (s *vehicleService) List(ctx context.Context, offset, limit int) ([]domain.Car, int, error) {
	return s.carRepo.List(ctx, offset, limit)
}

func (s *vehicleService) Get(ctx context.Context, identifier string) (*domain.Car, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, domain.ErrNotFound
	}
	return s.carRepo.GetByIdentifier(ctx, identifier)
}

// View seeds the comprehensive view from the inventory row when one exists.
// A vehicle known only to the mirrors or history services still gets a view.
func (s *vehicleService) View(ctx context.Context, identifier string) (*domain.ComprehensiveVehicleView, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, domain.ErrNotFound
	}

	var base *domain.SourceRecord
	car, err := s.carRepo.GetByIdentifier(ctx, identifier)
	switch {
	case err == nil:
		base = &domain.SourceRecord{Shape: domain.ShapeCar, Car: car}
	case errors.Is(err, domain.ErrNotFound):
		s.logger.Debug("vehicleService.View: no inventory row, building from sources only",
			zap.String("identifier", identifier))
	default:
		return nil, fmt.Errorf("loading base record: %w", err)
	}

	return s.views.BuildComprehensiveView(ctx, identifier, base), nil
}
