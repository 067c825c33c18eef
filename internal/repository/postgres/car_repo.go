package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"dealerops/internal/domain"
	"dealerops/internal/port"
)

type carRepo struct {
	db *sqlx.DB
}

// NewCarRepo creates a new PostgreSQL-backed CarRepository.
func NewCarRepo(db *sqlx.DB) port.CarRepository {
	return &carRepo{db: db}
}

const insertCar = `INSERT INTO cars
	(id, vin_number, car_code, brand, model, year, color, interior_color, category, status,
	 current_location, selling_price, battery_percentage, range_km, kilometers_driven,
	 shipment_code, notes, supplier, order_reference, tracking_number, shipping_company,
	 estimated_arrival, source_document_key, arrival_date, pdi_date, sale_date, delivery_date,
	 last_software_update, created_at, updated_at)
	VALUES
	(:id, :vin_number, :car_code, :brand, :model, :year, :color, :interior_color, :category, :status,
	 :current_location, :selling_price, :battery_percentage, :range_km, :kilometers_driven,
	 :shipment_code, :notes, :supplier, :order_reference, :tracking_number, :shipping_company,
	 :estimated_arrival, :source_document_key, :arrival_date, :pdi_date, :sale_date, :delivery_date,
	 :last_software_update, :created_at, :updated_at)`

func (r *carRepo) CreateBatch(ctx context.Context, cars []domain.Car) error {
	if len(cars) == 0 {
		return domain.ErrEmptyBatch
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("carRepo.CreateBatch begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	for i := range cars {
		car := &cars[i]
		if car.ID == uuid.Nil {
			car.ID = uuid.New()
		}
		car.CreatedAt = now
		car.UpdatedAt = now

		if _, err := tx.NamedExecContext(ctx, insertCar, car); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("carRepo.CreateBatch %s: %w", car.VINNumber, domain.ErrDuplicateVIN)
			}
			return fmt.Errorf("carRepo.CreateBatch %s: %w", car.VINNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("carRepo.CreateBatch commit: %w", err)
	}
	return nil
}

func (r *carRepo) GetByIdentifier(ctx context.Context, identifier string) (*domain.Car, error) {
	var car domain.Car
	err := r.db.GetContext(ctx, &car,
		`SELECT * FROM cars
		 WHERE id::text = LOWER($1)
		    OR UPPER(vin_number) = UPPER($1)
		    OR (car_code <> '' AND UPPER(car_code) = UPPER($1))
		 ORDER BY created_at DESC
		 LIMIT 1`, identifier)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("carRepo.GetByIdentifier: %w", err)
	}
	return &car, nil
}

func (r *carRepo) List(ctx context.Context, offset, limit int) ([]domain.Car, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM cars"); err != nil {
		return nil, 0, fmt.Errorf("carRepo.List count: %w", err)
	}

	var cars []domain.Car
	err := r.db.SelectContext(ctx, &cars,
		"SELECT * FROM cars ORDER BY created_at DESC, vin_number LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("carRepo.List: %w", err)
	}
	return cars, total, nil
}
