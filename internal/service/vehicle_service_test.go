package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dealerops/internal/domain"
	"dealerops/internal/reconcile"
	"dealerops/internal/service"
	"dealerops/mocks"
)

func TestVehicleService_View_SeedsFromInventory(t *testing.T) {
	carRepo := new(mocks.MockCarRepo)
	car := &domain.Car{
		ID:              uuid.New(),
		VINNumber:       "5YJ3E1EB8NF123456",
		Brand:           "Tesla",
		Model:           "Model 3",
		Year:            2024,
		Status:          domain.CarStatusInStock,
		CurrentLocation: "Showroom Floor 1",
	}
	carRepo.On("GetByIdentifier", mock.Anything, "5YJ3E1EB8NF123456").Return(car, nil)

	svc := service.NewVehicleService(carRepo, reconcile.New(reconcile.Sources{}, nil), nil)

	view, err := svc.View(context.Background(), " 5YJ3E1EB8NF123456 ")
	require.NoError(t, err)
	assert.Equal(t, "5YJ3E1EB8NF123456", view.Identifier)
	assert.Equal(t, "Tesla", view.Brand)
	assert.Equal(t, "in_stock", view.Status)
	assert.Equal(t, "base", view.FieldSources["model"])
	require.Len(t, view.LocationHistory, 1)
	assert.Equal(t, "Showroom Floor 1", view.LocationHistory[0].Location)
}

func TestVehicleService_View_WithoutInventoryRow(t *testing.T) {
	carRepo := new(mocks.MockCarRepo)
	mirrors := new(mocks.MockMirrorStore)
	carRepo.On("GetByIdentifier", mock.Anything, "GAR-12").Return(nil, domain.ErrNotFound)
	mirrors.On("FindByIdentifier", mock.Anything, domain.MirrorGarage, "GAR-12").
		Return([]domain.SourceRecord{{
			Shape:  domain.ShapeMirror,
			Fields: map[string]any{"carCode": "GAR-12", "carModel": "Ioniq 5"},
		}}, nil)
	mirrors.On("FindByIdentifier", mock.Anything, mock.Anything, "GAR-12").Return(nil, nil)

	recon := reconcile.New(reconcile.Sources{Mirrors: mirrors}, nil)
	svc := service.NewVehicleService(carRepo, recon, nil)

	view, err := svc.View(context.Background(), "GAR-12")
	require.NoError(t, err)
	assert.Equal(t, "Ioniq 5", view.Model)
	assert.Equal(t, "Garage", view.CurrentLocation)
}

func TestVehicleService_View_ByCarCodeFindsHistoryKeyedByVIN(t *testing.T) {
	carRepo := new(mocks.MockCarRepo)
	repairs := new(mocks.MockRepairHistoryService)
	car := &domain.Car{ID: uuid.New(), VINNumber: "5YJ3E1EB8NF123456", CarCode: "CODE-1", Model: "Model 3"}
	carRepo.On("GetByIdentifier", mock.Anything, "CODE-1").Return(car, nil)
	repairs.On("GetRepairHistory", mock.Anything, "5YJ3E1EB8NF123456").Return([]domain.RepairEntry{{
		ID:               "r1",
		AssignedMechanic: "Ana",
		PartsUsed:        []domain.PartUsed{{Name: "Wiper blade", Quantity: 2}},
	}}, nil)
	repairs.On("GetRepairHistory", mock.Anything, mock.Anything).Return([]domain.RepairEntry{}, nil)

	recon := reconcile.New(reconcile.Sources{Repairs: repairs}, nil)
	svc := service.NewVehicleService(carRepo, recon, nil)

	view, err := svc.View(context.Background(), "CODE-1")
	require.NoError(t, err)
	require.Len(t, view.RepairHistory, 1)
	assert.Equal(t, []string{"Ana"}, view.MechanicsWorked)
	require.Len(t, view.PartsChanged, 1)
	assert.Equal(t, "Wiper blade", view.PartsChanged[0].PartName)
	repairs.AssertCalled(t, "GetRepairHistory", mock.Anything, car.ID.String())
}

func TestVehicleService_View_RepoFailure(t *testing.T) {
	carRepo := new(mocks.MockCarRepo)
	carRepo.On("GetByIdentifier", mock.Anything, "X").Return(nil, errors.New("connection refused"))

	svc := service.NewVehicleService(carRepo, reconcile.New(reconcile.Sources{}, nil), nil)

	view, err := svc.View(context.Background(), "X")
	assert.Error(t, err)
	assert.Nil(t, view)
}

func TestVehicleService_BlankIdentifier(t *testing.T) {
	carRepo := new(mocks.MockCarRepo)
	svc := service.NewVehicleService(carRepo, reconcile.New(reconcile.Sources{}, nil), nil)

	_, err := svc.View(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.Get(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	carRepo.AssertNotCalled(t, "GetByIdentifier", mock.Anything, mock.Anything)
}

func TestVehicleService_List(t *testing.T) {
	carRepo := new(mocks.MockCarRepo)
	carRepo.On("List", mock.Anything, 20, 10).Return([]domain.Car{{VINNumber: "5YJ3E1EB8NF123456"}}, 21, nil)

	svc := service.NewVehicleService(carRepo, reconcile.New(reconcile.Sources{}, nil), nil)

	cars, total, err := svc.List(context.Background(), 20, 10)
	require.NoError(t, err)
	assert.Equal(t, 21, total)
	assert.Len(t, cars, 1)
}
