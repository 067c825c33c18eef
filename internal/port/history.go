package port

import (
	"context"

	"dealerops/internal/domain"
)

// RepairHistoryService returns the repair and service jobs recorded for a
// vehicle. Identifiers may be an id, a VIN or a car code.
type RepairHistoryService interface {
	GetRepairHistory(ctx context.Context, identifier string) ([]domain.RepairEntry, error)
}

// TestDriveService returns the test drives logged for a vehicle.
type TestDriveService interface {
	GetTestDriveHistory(ctx context.Context, identifier string) ([]domain.TestDriveEntry, error)
}

// UnifiedRecordStore returns the consolidated record for a vehicle, or
// domain.ErrNotFound when none exists.
type UnifiedRecordStore interface {
	FindByIdentifier(ctx context.Context, identifier string) (*domain.UnifiedRecord, error)
}

// MirrorSource reads the flat per-location mirrors of vehicle records.
type MirrorSource interface {
	// FindByIdentifier returns the records at location whose VIN, car code,
	// VIN alias or id equals identifier. No match is an empty slice.
	FindByIdentifier(ctx context.Context, location domain.MirrorLocation, identifier string) ([]domain.SourceRecord, error)
}

// MirrorStore is a MirrorSource that can also be reloaded from a snapshot.
type MirrorStore interface {
	MirrorSource
	// ReplaceLocation swaps every record at location for records.
	ReplaceLocation(ctx context.Context, location domain.MirrorLocation, records []map[string]any) error
}
