package reconcile_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dealerops/internal/domain"
	"dealerops/internal/reconcile"
	"dealerops/mocks"
)

const testVIN = "WP0AB2Y1XNSA54321"

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

type sources struct {
	repairs *mocks.MockRepairHistoryService
	drives  *mocks.MockTestDriveService
	unified *mocks.MockUnifiedRecordStore
	mirrors *mocks.MockMirrorStore
}

func newSources() sources {
	return sources{
		repairs: new(mocks.MockRepairHistoryService),
		drives:  new(mocks.MockTestDriveService),
		unified: new(mocks.MockUnifiedRecordStore),
		mirrors: new(mocks.MockMirrorStore),
	}
}

func (s sources) reconciler(opts ...reconcile.Option) *reconcile.Reconciler {
	opts = append([]reconcile.Option{reconcile.WithNow(func() time.Time { return testNow })}, opts...)
	return reconcile.New(reconcile.Sources{
		Repairs:    s.repairs,
		TestDrives: s.drives,
		Unified:    s.unified,
		Mirrors:    s.mirrors,
	}, zap.NewNop(), opts...)
}

// emptyServices makes every service source answer with nothing.
func (s sources) emptyServices() {
	s.repairs.On("GetRepairHistory", mock.Anything, testVIN).Return([]domain.RepairEntry{}, nil)
	s.drives.On("GetTestDriveHistory", mock.Anything, testVIN).Return([]domain.TestDriveEntry{}, nil)
	s.unified.On("FindByIdentifier", mock.Anything, testVIN).Return(nil, domain.ErrNotFound)
}

func (s sources) mirror(loc domain.MirrorLocation, fields ...map[string]any) {
	records := make([]domain.SourceRecord, 0, len(fields))
	for _, f := range fields {
		records = append(records, domain.SourceRecord{Shape: domain.ShapeMirror, Location: loc, Fields: f})
	}
	s.mirrors.On("FindByIdentifier", mock.Anything, loc, testVIN).Return(records, nil)
}

// noOtherMirrors must be registered after the specific mirror expectations.
func (s sources) noOtherMirrors() {
	s.mirrors.On("FindByIdentifier", mock.Anything, mock.Anything, testVIN).Return([]domain.SourceRecord{}, nil)
}

func assertHistoriesDefined(t *testing.T, view *domain.ComprehensiveVehicleView) {
	t.Helper()
	assert.NotNil(t, view.RepairHistory)
	assert.NotNil(t, view.TestDriveHistory)
	assert.NotNil(t, view.LocationHistory)
	assert.NotNil(t, view.SoftwareUpdateHistory)
	assert.NotNil(t, view.PartsChanged)
	assert.NotNil(t, view.MechanicsWorked)
}

func TestBuildComprehensiveView_GarageMirrorOnly(t *testing.T) {
	s := newSources()
	s.emptyServices()
	s.mirror(domain.MirrorGarage, map[string]any{
		"vin":               testVIN,
		"brand":             "Porsche",
		"carModel":          "Taycan 4S",
		"batteryPercentage": 82.0,
		"arrivalDate":       "2026-05-01",
	})
	s.noOtherMirrors()

	view := s.reconciler().BuildComprehensiveView(context.Background(), testVIN, nil)

	require.NotNil(t, view)
	assertHistoriesDefined(t, view)
	assert.Equal(t, testVIN, view.VIN)
	assert.Equal(t, "Porsche", view.Brand)
	assert.Equal(t, "Taycan 4S", view.Model)
	assert.Equal(t, "Garage", view.CurrentLocation)
	require.NotNil(t, view.BatteryPercentage)
	assert.InDelta(t, 82.0, *view.BatteryPercentage, 0.001)

	assert.Empty(t, view.RepairHistory)
	assert.Empty(t, view.TestDriveHistory)
	require.Len(t, view.LocationHistory, 1)
	assert.Equal(t, "Garage", view.LocationHistory[0].Location)
	assert.Equal(t, "Initial arrival at Garage", view.LocationHistory[0].Description)
	assert.Equal(t, "2026-05-01", view.LocationHistory[0].Date.Format("2006-01-02"))

	assert.Equal(t, "mirror:garage", view.FieldSources["current_location"])
	assert.Equal(t, "mirror:garage", view.FieldSources["model"])
}

func TestBuildComprehensiveView_MirrorPrecedence(t *testing.T) {
	s := newSources()
	s.emptyServices()
	s.mirror(domain.MirrorMainInventory, map[string]any{
		"vin":          testVIN,
		"color":        "White",
		"status":       "in_stock",
		"sellingPrice": 50000,
	})
	s.mirror(domain.MirrorGarage, map[string]any{
		"vinNumber": testVIN,
		"color":     "Black",
	})
	s.noOtherMirrors()

	base := &domain.SourceRecord{Shape: domain.ShapeCar, Car: &domain.Car{
		VINNumber: testVIN,
		Brand:     "Porsche",
		Model:     "Taycan",
		Color:     "Red",
		Year:      2023,
	}}

	view := s.reconciler().BuildComprehensiveView(context.Background(), testVIN, base)

	assert.Equal(t, "Black", view.Color)
	assert.Equal(t, "in_stock", view.Status)
	assert.Equal(t, "Taycan", view.Model)
	require.NotNil(t, view.Year)
	assert.Equal(t, 2023, *view.Year)
	require.NotNil(t, view.SellingPrice)
	assert.InDelta(t, 50000.0, *view.SellingPrice, 0.001)
	assert.Equal(t, "Garage", view.CurrentLocation)

	assert.Equal(t, "mirror:garage", view.FieldSources["color"])
	assert.Equal(t, "mirror:main_inventory", view.FieldSources["status"])
	assert.Equal(t, "base", view.FieldSources["model"])

	require.Len(t, view.LocationHistory, 2)
	assert.Equal(t, "Initial arrival at Main Inventory", view.LocationHistory[0].Description)
	assert.Equal(t, testNow.Add(-30*24*time.Hour), view.LocationHistory[0].Date)
	assert.Equal(t, "Garage", view.LocationHistory[1].Location)
	assert.Equal(t, testNow, view.LocationHistory[1].Date)
}

func TestBuildComprehensiveView_CustomPrecedence(t *testing.T) {
	s := newSources()
	s.emptyServices()
	s.mirror(domain.MirrorMainInventory, map[string]any{"vin": testVIN, "color": "White"})
	s.mirror(domain.MirrorGarage, map[string]any{"vin": testVIN, "color": "Black"})

	r := s.reconciler(reconcile.WithMirrorPrecedence([]domain.MirrorLocation{
		domain.MirrorGarage,
		domain.MirrorMainInventory,
	}))
	view := r.BuildComprehensiveView(context.Background(), testVIN, nil)

	assert.Equal(t, "White", view.Color)
	assert.Equal(t, "Main Inventory", view.CurrentLocation)
	s.mirrors.AssertNumberOfCalls(t, "FindByIdentifier", 2)
}

func TestBuildComprehensiveView_SnakeCaseMirrorRecord(t *testing.T) {
	s := newSources()
	s.emptyServices()
	s.mirror(domain.MirrorGarage, map[string]any{
		"vin_number":       testVIN,
		"color":            "Black",
		"status":           "in_service",
		"current_location": "Bay 3",
	})
	s.noOtherMirrors()

	view := s.reconciler().BuildComprehensiveView(context.Background(), testVIN, nil)

	assert.Equal(t, testVIN, view.VIN)
	assert.Equal(t, "Black", view.Color)
	assert.Equal(t, "in_service", view.Status)
	assert.Equal(t, "Bay 3", view.CurrentLocation)
	assert.Equal(t, "mirror:garage", view.FieldSources["color"])
}

func TestBuildComprehensiveView_BaseAliasesAreEquivalentKeys(t *testing.T) {
	s := newSources()
	id := uuid.New()
	const code = "PO-TAY-1"

	serviceDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s.repairs.On("GetRepairHistory", mock.Anything, code).
		Return([]domain.RepairEntry{{ID: "r1", AssignedMechanic: "Ana"}}, nil)
	s.repairs.On("GetRepairHistory", mock.Anything, id.String()).Return([]domain.RepairEntry{}, nil)
	s.repairs.On("GetRepairHistory", mock.Anything, testVIN).Return([]domain.RepairEntry{
		{ID: "r1", AssignedMechanic: "Ana"},
		{ID: "r2", Date: serviceDate, AssignedMechanic: "Ben",
			PartsUsed: []domain.PartUsed{{Name: "Cabin filter", Quantity: 1}}},
	}, nil)
	s.drives.On("GetTestDriveHistory", mock.Anything, testVIN).
		Return([]domain.TestDriveEntry{{ID: "t1"}}, nil)
	s.drives.On("GetTestDriveHistory", mock.Anything, mock.Anything).Return([]domain.TestDriveEntry{}, nil)
	s.unified.On("FindByIdentifier", mock.Anything, testVIN).Return(&domain.UnifiedRecord{
		LocationHistory: []domain.LocationEntry{{Location: "Garage", Description: "Moved for service"}},
	}, nil)
	s.unified.On("FindByIdentifier", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
	s.mirrors.On("FindByIdentifier", mock.Anything, domain.MirrorGarage, testVIN).
		Return([]domain.SourceRecord{{Shape: domain.ShapeMirror, Fields: map[string]any{"vin": testVIN, "color": "Black"}}}, nil)
	s.mirrors.On("FindByIdentifier", mock.Anything, domain.MirrorGarage, code).
		Return([]domain.SourceRecord{{Shape: domain.ShapeMirror, Fields: map[string]any{"vin": testVIN, "color": "Black"}}}, nil)
	s.mirrors.On("FindByIdentifier", mock.Anything, mock.Anything, mock.Anything).Return([]domain.SourceRecord{}, nil)

	base := &domain.SourceRecord{Shape: domain.ShapeCar, Car: &domain.Car{
		ID:        id,
		VINNumber: testVIN,
		CarCode:   code,
		Model:     "Taycan",
	}}

	view := s.reconciler().BuildComprehensiveView(context.Background(), code, base)

	require.Len(t, view.RepairHistory, 2)
	assert.Equal(t, "r1", view.RepairHistory[0].ID)
	assert.Equal(t, "r2", view.RepairHistory[1].ID)
	assert.Equal(t, []string{"Ana", "Ben"}, view.MechanicsWorked)
	require.Len(t, view.PartsChanged, 1)
	assert.Equal(t, "Ben", view.PartsChanged[0].Technician)
	assert.Len(t, view.TestDriveHistory, 1)
	require.Len(t, view.LocationHistory, 1)
	assert.Equal(t, "Moved for service", view.LocationHistory[0].Description)
	assert.Equal(t, "Black", view.Color)
	s.repairs.AssertNumberOfCalls(t, "GetRepairHistory", 3)
}

func TestBuildComprehensiveView_IgnoresNonMatchingMirrorRecords(t *testing.T) {
	s := newSources()
	s.emptyServices()
	s.mirror(domain.MirrorShowroomFloor1,
		map[string]any{"vin": "KNDC34LA5P5012345", "color": "Green"},
		map[string]any{"carCode": "wp0ab2y1xnsa54321", "color": "Silver"},
	)
	s.noOtherMirrors()

	view := s.reconciler().BuildComprehensiveView(context.Background(), testVIN, nil)

	assert.Equal(t, "Silver", view.Color)
	assert.Equal(t, "Showroom Floor 1", view.CurrentLocation)
}

func TestBuildComprehensiveView_SourceFailuresAreContained(t *testing.T) {
	s := newSources()
	s.repairs.On("GetRepairHistory", mock.Anything, testVIN).Return(nil, errors.New("history service down"))
	s.drives.On("GetTestDriveHistory", mock.Anything, testVIN).Return(nil, errors.New("timeout"))
	s.unified.On("FindByIdentifier", mock.Anything, testVIN).Return(nil, errors.New("cache unavailable"))
	s.mirrors.On("FindByIdentifier", mock.Anything, mock.Anything, testVIN).Return(nil, errors.New("mirror unreadable"))

	view := s.reconciler().BuildComprehensiveView(context.Background(), testVIN, nil)

	require.NotNil(t, view)
	assertHistoriesDefined(t, view)
	assert.Empty(t, view.RepairHistory)
	assert.Empty(t, view.TestDriveHistory)
	assert.Empty(t, view.SoftwareUpdateHistory)
	require.Len(t, view.LocationHistory, 1)
	assert.Equal(t, "Initial arrival at Main Inventory", view.LocationHistory[0].Description)
	s.mirrors.AssertNumberOfCalls(t, "FindByIdentifier", len(reconcile.DefaultMirrorPrecedence))
}

func TestBuildComprehensiveView_NilSources(t *testing.T) {
	r := reconcile.New(reconcile.Sources{}, nil)
	view := r.BuildComprehensiveView(context.Background(), testVIN, nil)
	require.NotNil(t, view)
	assertHistoriesDefined(t, view)
	assert.Equal(t, testVIN, view.Identifier)
}

func TestBuildComprehensiveView_HistoriesAndDerivedCollections(t *testing.T) {
	s := newSources()
	repairDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	unifiedDate := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)

	s.repairs.On("GetRepairHistory", mock.Anything, testVIN).Return([]domain.RepairEntry{{
		ID:               "r1",
		Description:      "Brake service",
		Date:             repairDate,
		AssignedMechanic: "Ana",
		PartsUsed: []domain.PartUsed{
			{Name: "Brake pad", Number: "BP-100", Supplier: "Brembo", Cost: 120, Quantity: 4},
		},
	}}, nil)
	s.drives.On("GetTestDriveHistory", mock.Anything, testVIN).Return([]domain.TestDriveEntry{
		{ID: "t1", CustomerName: "J. Doe", DurationMinutes: 30},
	}, nil)
	unifiedLocations := []domain.LocationEntry{
		{Location: "Garage", Date: unifiedDate, Description: "Moved for service"},
	}
	s.unified.On("FindByIdentifier", mock.Anything, testVIN).Return(&domain.UnifiedRecord{
		Identifier: testVIN,
		RepairHistory: []domain.RepairEntry{{
			ID:                "r2",
			Description:       "Wiper replacement",
			Date:              unifiedDate,
			AssignedEmployees: []string{"Ben", "Ana"},
			PartsUsed:         []domain.PartUsed{{Name: "Wiper blade", Quantity: 2}},
		}},
		LocationHistory: unifiedLocations,
	}, nil)
	s.noOtherMirrors()

	softwareAt := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	base := &domain.SourceRecord{Shape: domain.ShapeBackendRow, Fields: map[string]any{
		"vin_number":           testVIN,
		"last_software_update": softwareAt.Format(time.RFC3339),
		"software_version":     "2026.4.1",
	}}

	view := s.reconciler().BuildComprehensiveView(context.Background(), testVIN, base)

	require.Len(t, view.RepairHistory, 2)
	assert.Equal(t, "r1", view.RepairHistory[0].ID)
	assert.Equal(t, "r2", view.RepairHistory[1].ID)
	assert.Equal(t, []string{"Ana"}, view.MechanicsWorked)
	assert.Len(t, view.TestDriveHistory, 1)
	assert.Equal(t, unifiedLocations, view.LocationHistory)

	require.Len(t, view.PartsChanged, 2)
	assert.Equal(t, domain.PartChange{
		PartName:   "Brake pad",
		PartNumber: "BP-100",
		Supplier:   "Brembo",
		Cost:       120,
		Quantity:   4,
		RepairDate: repairDate,
		Technician: "Ana",
	}, view.PartsChanged[0])
	assert.Equal(t, "Ben, Ana", view.PartsChanged[1].Technician)

	require.Len(t, view.SoftwareUpdateHistory, 1)
	assert.Equal(t, "2026.4.1", view.SoftwareUpdateHistory[0].Version)
	assert.True(t, softwareAt.Equal(view.SoftwareUpdateHistory[0].Date))
}

func TestBuildComprehensiveView_ConcurrentFetchesKeepMergeOrder(t *testing.T) {
	s := newSources()
	s.repairs.On("GetRepairHistory", mock.Anything, testVIN).
		After(20*time.Millisecond).
		Return([]domain.RepairEntry{{ID: "slow"}}, nil)
	s.drives.On("GetTestDriveHistory", mock.Anything, testVIN).Return([]domain.TestDriveEntry{{ID: "fast"}}, nil)
	s.unified.On("FindByIdentifier", mock.Anything, testVIN).Return(&domain.UnifiedRecord{
		RepairHistory: []domain.RepairEntry{{ID: "cached"}},
	}, nil)
	s.noOtherMirrors()

	view := s.reconciler().BuildComprehensiveView(context.Background(), testVIN, nil)

	require.Len(t, view.RepairHistory, 2)
	assert.Equal(t, "slow", view.RepairHistory[0].ID)
	assert.Equal(t, "cached", view.RepairHistory[1].ID)
}
