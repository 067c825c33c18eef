// Package reconcile merges everything the dealership knows about one vehicle
// into a single read-only view.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"dealerops/internal/domain"
	"dealerops/internal/metrics"
	"dealerops/internal/port"
)

// DefaultMirrorPrecedence lists the location mirrors from least to most
// authoritative. Later mirrors override fields set by earlier ones.
var DefaultMirrorPrecedence = []domain.MirrorLocation{
	domain.MirrorMainInventory,
	domain.MirrorShowroomFloor1,
	domain.MirrorShowroomFloor2,
	domain.MirrorGarage,
	domain.MirrorInventoryFloor2,
	domain.MirrorRealCarData,
}

// Sources are the collaborators consulted for a view. Any of them may be nil,
// in which case it contributes nothing.
type Sources struct {
	Repairs    port.RepairHistoryService
	TestDrives port.TestDriveService
	Unified    port.UnifiedRecordStore
	Mirrors    port.MirrorSource
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithMirrorPrecedence replaces DefaultMirrorPrecedence. An empty list is
// ignored.
func WithMirrorPrecedence(locations []domain.MirrorLocation) Option {
	return func(r *Reconciler) {
		if len(locations) > 0 {
			r.precedence = append([]domain.MirrorLocation(nil), locations...)
		}
	}
}

// WithNow overrides the clock used for synthesized history dates.
func WithNow(now func() time.Time) Option {
	return func(r *Reconciler) {
		if now != nil {
			r.now = now
		}
	}
}

// WithFetchTimeout bounds every individual sub-source fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(r *Reconciler) {
		r.fetchTimeout = d
	}
}

// Reconciler builds ComprehensiveVehicleViews. It never writes to any source.
type Reconciler struct {
	src          Sources
	logger       *zap.Logger
	precedence   []domain.MirrorLocation
	now          func() time.Time
	fetchTimeout time.Duration
}

// New creates a Reconciler over src.
func New(src Sources, logger *zap.Logger, opts ...Option) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Reconciler{
		src:        src,
		logger:     logger,
		precedence: DefaultMirrorPrecedence,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// BuildComprehensiveView merges base (which may be nil) with every source
// keyed by identifier or by the id, VIN or car code of base. Sub-source
// failures are logged and skipped, so the view is always returned with every
// history collection non-nil.
func (r *Reconciler) BuildComprehensiveView(ctx context.Context, identifier string, base *domain.SourceRecord) *domain.ComprehensiveVehicleView {
	start := time.Now()
	now := r.now()
	view := &domain.ComprehensiveVehicleView{
		Identifier:            identifier,
		RepairHistory:         []domain.RepairEntry{},
		TestDriveHistory:      []domain.TestDriveEntry{},
		LocationHistory:       []domain.LocationEntry{},
		SoftwareUpdateHistory: []domain.SoftwareUpdateEntry{},
		PartsChanged:          []domain.PartChange{},
		MechanicsWorked:       []string{},
		FieldSources:          make(map[string]string),
	}

	if base != nil {
		overlay(&view.VehicleFields, normalize(*base), "base", view.FieldSources)
	}
	keys := lookupKeys(identifier, view.VehicleFields)

	// The two service fetches are independent; their results are merged in
	// a fixed order once both have finished.
	var (
		repairs []domain.RepairEntry
		drives  []domain.TestDriveEntry
		g       errgroup.Group
	)
	g.Go(func() error {
		repairs = r.fetchRepairs(ctx, keys)
		return nil
	})
	g.Go(func() error {
		drives = r.fetchTestDrives(ctx, keys)
		return nil
	})
	_ = g.Wait()

	view.RepairHistory = append(view.RepairHistory, repairs...)
	view.MechanicsWorked = mechanicsWorked(view.RepairHistory)
	view.TestDriveHistory = append(view.TestDriveHistory, drives...)

	if unified := r.fetchUnified(ctx, keys); unified != nil {
		view.RepairHistory = append(view.RepairHistory, unified.RepairHistory...)
		view.LocationHistory = append(view.LocationHistory, unified.LocationHistory...)
	}

	firstSeenAt := r.mergeMirrors(ctx, keys, view)

	if len(view.LocationHistory) == 0 {
		view.LocationHistory = synthesizeLocationHistory(view.VehicleFields, firstSeenAt, now)
	}
	view.SoftwareUpdateHistory = synthesizeSoftwareHistory(view.VehicleFields)
	view.PartsChanged = partsChanged(view.RepairHistory)

	metrics.RecordView(time.Since(start))
	return view
}

// lookupKeys returns identifier followed by the base record's id, VIN and car
// code, which name the same vehicle. Keys are unique case-insensitively.
func lookupKeys(identifier string, base domain.VehicleFields) []string {
	var keys []string
	for _, k := range []string{identifier, base.ID, base.VIN, base.CarCode} {
		k = strings.TrimSpace(k)
		if k == "" || containsFold(keys, k) {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		keys = []string{identifier}
	}
	return keys
}

func containsFold(keys []string, k string) bool {
	for _, existing := range keys {
		if strings.EqualFold(existing, k) {
			return true
		}
	}
	return false
}

// mergeMirrors overlays matching mirror records in precedence order and
// returns the display name of the first location the vehicle was found at.
// A record found under several keys is merged once.
func (r *Reconciler) mergeMirrors(ctx context.Context, keys []string, view *domain.ComprehensiveVehicleView) string {
	if r.src.Mirrors == nil {
		return ""
	}

	var firstSeenAt string
	for _, loc := range r.precedence {
		seen := make(map[string]struct{})
		for _, key := range keys {
			fctx, cancel := r.fetchContext(ctx)
			records, err := r.src.Mirrors.FindByIdentifier(fctx, loc, key)
			cancel()
			if err != nil {
				r.sourceFailed("mirror", key, err, zap.String("location", string(loc)))
				continue
			}

			for _, rec := range records {
				fields := normalize(rec)
				if !matchesAny(fields, keys) {
					continue
				}
				fp := fmt.Sprint(rec.Fields)
				if _, dup := seen[fp]; dup {
					continue
				}
				seen[fp] = struct{}{}

				if fields.CurrentLocation == "" {
					fields.CurrentLocation = loc.DisplayName()
				}
				if firstSeenAt == "" {
					firstSeenAt = loc.DisplayName()
				}
				overlay(&view.VehicleFields, fields, "mirror:"+string(loc), view.FieldSources)
			}
		}
	}
	return firstSeenAt
}

func matchesAny(f domain.VehicleFields, keys []string) bool {
	for _, k := range keys {
		if matchesIdentifier(f, k) {
			return true
		}
	}
	return false
}

func (r *Reconciler) fetchRepairs(ctx context.Context, keys []string) []domain.RepairEntry {
	if r.src.Repairs == nil {
		return nil
	}

	var out []domain.RepairEntry
	seen := make(map[string]struct{})
	for _, key := range keys {
		fctx, cancel := r.fetchContext(ctx)
		repairs, err := r.src.Repairs.GetRepairHistory(fctx, key)
		cancel()
		if err != nil {
			r.sourceFailed("repair_history", key, err)
			continue
		}
		for _, e := range repairs {
			if firstSighting(seen, e.ID) {
				out = append(out, e)
			}
		}
	}
	return out
}

func (r *Reconciler) fetchTestDrives(ctx context.Context, keys []string) []domain.TestDriveEntry {
	if r.src.TestDrives == nil {
		return nil
	}

	var out []domain.TestDriveEntry
	seen := make(map[string]struct{})
	for _, key := range keys {
		fctx, cancel := r.fetchContext(ctx)
		drives, err := r.src.TestDrives.GetTestDriveHistory(fctx, key)
		cancel()
		if err != nil {
			r.sourceFailed("test_drives", key, err)
			continue
		}
		for _, e := range drives {
			if firstSighting(seen, e.ID) {
				out = append(out, e)
			}
		}
	}
	return out
}

// firstSighting reports whether id has not been seen yet. Entries without an
// id are always kept.
func firstSighting(seen map[string]struct{}, id string) bool {
	if id == "" {
		return true
	}
	if _, ok := seen[id]; ok {
		return false
	}
	seen[id] = struct{}{}
	return true
}

// fetchUnified returns the first unified record found under any key.
func (r *Reconciler) fetchUnified(ctx context.Context, keys []string) *domain.UnifiedRecord {
	if r.src.Unified == nil {
		return nil
	}

	for _, key := range keys {
		fctx, cancel := r.fetchContext(ctx)
		rec, err := r.src.Unified.FindByIdentifier(fctx, key)
		cancel()
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			r.sourceFailed("unified", key, err)
			continue
		}
		if rec != nil {
			return rec
		}
	}
	return nil
}

func (r *Reconciler) fetchContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.fetchTimeout > 0 {
		return context.WithTimeout(ctx, r.fetchTimeout)
	}
	return context.WithCancel(ctx)
}

func (r *Reconciler) sourceFailed(source, identifier string, err error, fields ...zap.Field) {
	metrics.RecordSourceFailure(source)
	r.logger.Warn("reconcile: source fetch failed, continuing without it",
		append([]zap.Field{
			zap.String("source", source),
			zap.String("identifier", identifier),
			zap.Error(err),
		}, fields...)...)
}
