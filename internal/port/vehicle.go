package port

import (
	"context"

	"dealerops/internal/domain"
)

// CarRepository defines the contract for inventory persistence.
type CarRepository interface {
	// CreateBatch inserts every car in one transaction. A VIN that already
	// exists fails the whole batch with domain.ErrDuplicateVIN.
	CreateBatch(ctx context.Context, cars []domain.Car) error
	// GetByIdentifier looks a car up by id, VIN or car code.
	GetByIdentifier(ctx context.Context, identifier string) (*domain.Car, error)
	List(ctx context.Context, offset, limit int) ([]domain.Car, int, error)
}
