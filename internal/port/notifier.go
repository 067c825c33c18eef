package port

import (
	"context"
	"time"
)

// BatchCommittedNotice summarizes an intake batch that became inventory.
type BatchCommittedNotice struct {
	VINs           []string
	Supplier       string
	OrderReference string
	EstimatedETA   string
	DocumentKey    string
	CommittedAt    time.Time
}

// IntakeNotifier tells the logistics team about committed intake batches.
type IntakeNotifier interface {
	NotifyBatchCommitted(ctx context.Context, notice BatchCommittedNotice) error
}
