package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"dealerops/internal/domain"
	"dealerops/internal/port"
)

type repairRow struct {
	ID                string          `db:"id"`
	Description       string          `db:"description"`
	RepairDate        time.Time       `db:"repair_date"`
	AssignedMechanic  string          `db:"assigned_mechanic"`
	AssignedEmployees json.RawMessage `db:"assigned_employees"`
	Cost              float64         `db:"cost"`
	Status            string          `db:"status"`
	PartsUsed         json.RawMessage `db:"parts_used"`
}

func (row repairRow) toDomain() (domain.RepairEntry, error) {
	entry := domain.RepairEntry{
		ID:               row.ID,
		Description:      row.Description,
		Date:             row.RepairDate,
		AssignedMechanic: row.AssignedMechanic,
		Cost:             row.Cost,
		Status:           row.Status,
	}
	if len(row.AssignedEmployees) > 0 {
		if err := json.Unmarshal(row.AssignedEmployees, &entry.AssignedEmployees); err != nil {
			return entry, fmt.Errorf("assigned_employees of repair %s: %w", row.ID, err)
		}
	}
	if len(row.PartsUsed) > 0 {
		if err := json.Unmarshal(row.PartsUsed, &entry.PartsUsed); err != nil {
			return entry, fmt.Errorf("parts_used of repair %s: %w", row.ID, err)
		}
	}
	return entry, nil
}

type repairHistoryRepo struct {
	db *sqlx.DB
}

// NewRepairHistoryRepo creates a PostgreSQL-backed RepairHistoryService.
func NewRepairHistoryRepo(db *sqlx.DB) port.RepairHistoryService {
	return &repairHistoryRepo{db: db}
}

func (r *repairHistoryRepo) GetRepairHistory(ctx context.Context, identifier string) ([]domain.RepairEntry, error) {
	var rows []repairRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id::text AS id, description, repair_date, assigned_mechanic, assigned_employees,
		        cost, status, parts_used
		 FROM repair_history
		 WHERE UPPER(vehicle_identifier) = UPPER($1)
		 ORDER BY repair_date, id`, identifier)
	if err != nil {
		return nil, fmt.Errorf("repairHistoryRepo.GetRepairHistory: %w", err)
	}

	entries := make([]domain.RepairEntry, 0, len(rows))
	for _, row := range rows {
		entry, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("repairHistoryRepo.GetRepairHistory: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

type testDriveRepo struct {
	db *sqlx.DB
}

// NewTestDriveRepo creates a PostgreSQL-backed TestDriveService.
func NewTestDriveRepo(db *sqlx.DB) port.TestDriveService {
	return &testDriveRepo{db: db}
}

func (r *testDriveRepo) GetTestDriveHistory(ctx context.Context, identifier string) ([]domain.TestDriveEntry, error) {
	var rows []struct {
		ID              string    `db:"id"`
		CustomerName    string    `db:"customer_name"`
		CustomerPhone   string    `db:"customer_phone"`
		Salesperson     string    `db:"salesperson"`
		DriveDate       time.Time `db:"drive_date"`
		DurationMinutes int       `db:"duration_minutes"`
		Notes           string    `db:"notes"`
	}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id::text AS id, customer_name, customer_phone, salesperson, drive_date,
		        duration_minutes, notes
		 FROM test_drives
		 WHERE UPPER(vehicle_identifier) = UPPER($1)
		 ORDER BY drive_date, id`, identifier)
	if err != nil {
		return nil, fmt.Errorf("testDriveRepo.GetTestDriveHistory: %w", err)
	}

	drives := make([]domain.TestDriveEntry, 0, len(rows))
	for _, row := range rows {
		drives = append(drives, domain.TestDriveEntry{
			ID:              row.ID,
			CustomerName:    row.CustomerName,
			CustomerPhone:   row.CustomerPhone,
			Salesperson:     row.Salesperson,
			Date:            row.DriveDate,
			DurationMinutes: row.DurationMinutes,
			Notes:           row.Notes,
		})
	}
	return drives, nil
}

type unifiedRecordRepo struct {
	db *sqlx.DB
}

// NewUnifiedRecordRepo creates a PostgreSQL-backed UnifiedRecordStore.
func NewUnifiedRecordRepo(db *sqlx.DB) port.UnifiedRecordStore {
	return &unifiedRecordRepo{db: db}
}

func (r *unifiedRecordRepo) FindByIdentifier(ctx context.Context, identifier string) (*domain.UnifiedRecord, error) {
	var row struct {
		Identifier      string          `db:"identifier"`
		RepairHistory   json.RawMessage `db:"repair_history"`
		LocationHistory json.RawMessage `db:"location_history"`
	}
	err := r.db.GetContext(ctx, &row,
		`SELECT identifier, repair_history, location_history
		 FROM unified_records WHERE UPPER(identifier) = UPPER($1)`, identifier)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("unifiedRecordRepo.FindByIdentifier: %w", err)
	}

	rec := &domain.UnifiedRecord{Identifier: row.Identifier}
	if err := json.Unmarshal(row.RepairHistory, &rec.RepairHistory); err != nil {
		return nil, fmt.Errorf("unifiedRecordRepo.FindByIdentifier repair_history: %w", err)
	}
	if err := json.Unmarshal(row.LocationHistory, &rec.LocationHistory); err != nil {
		return nil, fmt.Errorf("unifiedRecordRepo.FindByIdentifier location_history: %w", err)
	}
	return rec, nil
}
