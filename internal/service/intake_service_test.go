package service_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dealerops/internal/config"
	"dealerops/internal/domain"
	"dealerops/internal/port"
	"dealerops/internal/service"
	"dealerops/mocks"
)

const singleVINManifest = "Supplier: Shenzhen Motors Ltd\nVIN: 1HGBH41JXMN109186\nBYD Seal, electric"

func newIntakeService(maxBytes int64) (service.IntakeService, *mocks.MockCarRepo, *mocks.MockObjectStorage) {
	carRepo := new(mocks.MockCarRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewIntakeService(carRepo, storage, nil,
		&config.S3Config{Bucket: "manifests-bucket", PresignExpiry: 600},
		&config.IntakeConfig{DefaultCategory: domain.CategoryEV, ContextRadius: 500, MaxTextBytes: maxBytes},
		nil,
	)
	return svc, carRepo, storage
}

func TestIntakeService_Extract(t *testing.T) {
	svc, _, _ := newIntakeService(1 << 20)

	batch, err := svc.Extract(context.Background(), service.ExtractInput{Text: singleVINManifest})
	require.NoError(t, err)
	assert.Equal(t, []string{"1HGBH41JXMN109186"}, batch.VINs)
	assert.Equal(t, "BYD", batch.Records[0].Brand)
	assert.Equal(t, "Shenzhen Motors Ltd", batch.Shipment.Supplier)
}

func TestIntakeService_Extract_RequestedCategory(t *testing.T) {
	svc, _, _ := newIntakeService(1 << 20)

	batch, err := svc.Extract(context.Background(), service.ExtractInput{
		Text:            "VIN: 1HGBH41JXMN109186",
		DefaultCategory: "icev",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryICEV, batch.Records[0].Category)

	batch, err = svc.Extract(context.Background(), service.ExtractInput{
		Text:            "VIN: 1HGBH41JXMN109186",
		DefaultCategory: "DIESEL",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryEV, batch.Records[0].Category)
}

func TestIntakeService_Extract_Errors(t *testing.T) {
	svc, _, _ := newIntakeService(64)

	tests := []struct {
		name string
		text string
		want error
	}{
		{"blank", "  \n\t", domain.ErrDocumentEmpty},
		{"too large", strings.Repeat("x", 65), domain.ErrDocumentLarge},
		{"no vins", "Invoice total 45,000 EUR", domain.ErrNoVINsFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch, err := svc.Extract(context.Background(), service.ExtractInput{Text: tt.text})
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, batch)
		})
	}
}

func TestIntakeService_Upload(t *testing.T) {
	svc, _, storage := newIntakeService(1 << 20)

	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "manifests-bucket" &&
			strings.HasPrefix(in.Key, "manifests/") &&
			strings.HasSuffix(in.Key, ".txt") &&
			in.ContentType == "text/plain" &&
			in.Size == int64(len(singleVINManifest))
	})).Return(&port.UploadOutput{ETag: "abc"}, nil)

	res, err := svc.Upload(context.Background(), service.ManifestUploadInput{
		Body:     strings.NewReader(singleVINManifest),
		Filename: "march-shipment.TXT",
		Size:     int64(len(singleVINManifest)),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1HGBH41JXMN109186"}, res.VINs)
	assert.True(t, strings.HasPrefix(res.DocumentKey, "manifests/"))
	storage.AssertExpectations(t)
}

func TestIntakeService_Upload_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		body     string
		size     int64
		want     error
	}{
		{"unsupported extension", "manifest.pdf", singleVINManifest, 10, domain.ErrUnsupportedDoc},
		{"declared size too large", "manifest.txt", singleVINManifest, 1 << 30, domain.ErrDocumentLarge},
		{"body larger than declared", "manifest.txt", strings.Repeat("a", 300), 10, domain.ErrDocumentLarge},
		{"binary content", "manifest.csv", "\x00\x01\x02\x03PK\x03\x04", 8, domain.ErrUnsupportedDoc},
		{"empty", "manifest.txt", "   ", 3, domain.ErrDocumentEmpty},
		{"no vins", "manifest.txt", "nothing to see", 14, domain.ErrNoVINsFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, storage := newIntakeService(256)

			res, err := svc.Upload(context.Background(), service.ManifestUploadInput{
				Body:     strings.NewReader(tt.body),
				Filename: tt.filename,
				Size:     tt.size,
			})
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, res)
			storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
		})
	}
}

func TestIntakeService_Upload_StorageFailure(t *testing.T) {
	svc, _, storage := newIntakeService(1 << 20)
	storage.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))

	res, err := svc.Upload(context.Background(), service.ManifestUploadInput{
		Body:     strings.NewReader(singleVINManifest),
		Filename: "manifest.txt",
	})
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	assert.Nil(t, res)
}

func TestIntakeService_Commit(t *testing.T) {
	svc, carRepo, _ := newIntakeService(1 << 20)

	records := []domain.DraftVehicleRecord{
		{VIN: " 1hgbh41jxmn109186 ", Brand: "BYD", Model: "Seal", Year: 2024, Color: "Blue", Category: domain.CategoryEV, ShipmentCode: "SHP202400123"},
		{VIN: "5YJ3E1EB8NF123456", Brand: "Tesla", Model: "Model 3", Year: 2025, Category: "bogus",
			Shipment: &domain.GlobalShipmentContext{Supplier: "Tesla Shanghai", TrackingNumber: "  "}},
	}
	shipment := domain.GlobalShipmentContext{Supplier: "Shenzhen Motors Ltd", TrackingNumber: "NCC7781234"}

	carRepo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(cars []domain.Car) bool {
		return len(cars) == 2
	})).Return(nil)

	cars, err := svc.Commit(context.Background(), service.CommitInput{
		Records:     records,
		Shipment:    shipment,
		DocumentKey: "manifests/2026/03/01/x.txt",
	})
	require.NoError(t, err)
	require.Len(t, cars, 2)

	assert.Equal(t, "1HGBH41JXMN109186", cars[0].VINNumber)
	assert.Equal(t, domain.CarStatusOrdered, cars[0].Status)
	assert.Equal(t, "SHP202400123", cars[0].ShipmentCode)
	assert.Equal(t, "Shenzhen Motors Ltd", cars[0].Supplier)
	assert.Equal(t, "Tesla Shanghai", cars[1].Supplier)
	assert.Equal(t, "NCC7781234", cars[0].TrackingNumber)
	assert.Equal(t, "NCC7781234", cars[1].TrackingNumber)
	assert.Equal(t, "manifests/2026/03/01/x.txt", cars[1].SourceDocumentKey)
	assert.Equal(t, domain.CategoryEV, cars[1].Category)
	assert.NotEqual(t, cars[0].ID, cars[1].ID)
	carRepo.AssertExpectations(t)
}

func TestIntakeService_Commit_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		records []domain.DraftVehicleRecord
		want    error
	}{
		{"empty", nil, domain.ErrEmptyBatch},
		{"short vin", []domain.DraftVehicleRecord{{VIN: "1HGBH41JXMN10918"}}, domain.ErrInvalidVIN},
		{"forbidden letter", []domain.DraftVehicleRecord{{VIN: "1HGBH41JXMN1O9186"}}, domain.ErrInvalidVIN},
		{"repeated in batch", []domain.DraftVehicleRecord{
			{VIN: "1HGBH41JXMN109186"},
			{VIN: "1hgbh41jxmn109186"},
		}, domain.ErrDuplicateVIN},
		{"supplier too long", []domain.DraftVehicleRecord{{
			VIN:      "1HGBH41JXMN109186",
			Shipment: &domain.GlobalShipmentContext{Supplier: strings.Repeat("x", 256)},
		}}, domain.ErrFieldTooLong},
		{"model too long", []domain.DraftVehicleRecord{
			{VIN: "1HGBH41JXMN109186", Model: strings.Repeat("M", 101)},
		}, domain.ErrFieldTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, carRepo, _ := newIntakeService(1 << 20)

			cars, err := svc.Commit(context.Background(), service.CommitInput{Records: tt.records})
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, cars)
			carRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
		})
	}
}

func TestIntakeService_Commit_LongBatchETAIsRejected(t *testing.T) {
	svc, carRepo, _ := newIntakeService(1 << 20)

	_, err := svc.Commit(context.Background(), service.CommitInput{
		Records:  []domain.DraftVehicleRecord{{VIN: "1HGBH41JXMN109186"}},
		Shipment: domain.GlobalShipmentContext{EstimatedArrival: strings.Repeat("late ", 30)},
	})
	require.ErrorIs(t, err, domain.ErrFieldTooLong)
	assert.Contains(t, err.Error(), "estimated_arrival")
	carRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestIntakeService_Commit_RepoError(t *testing.T) {
	svc, carRepo, _ := newIntakeService(1 << 20)
	carRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(domain.ErrDuplicateVIN)

	_, err := svc.Commit(context.Background(), service.CommitInput{
		Records: []domain.DraftVehicleRecord{{VIN: "1HGBH41JXMN109186"}},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateVIN)
}

func TestIntakeService_ExportCSV(t *testing.T) {
	svc, _, _ := newIntakeService(1 << 20)

	var buf bytes.Buffer
	err := svc.ExportCSV(context.Background(), &buf,
		[]domain.DraftVehicleRecord{{VIN: "1HGBH41JXMN109186", Brand: "BYD", Category: domain.CategoryEV}},
		domain.GlobalShipmentContext{Supplier: "Shenzhen Motors Ltd"},
	)
	require.NoError(t, err)

	out := buf.Bytes()
	require.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}))
	rows, err := csv.NewReader(bytes.NewReader(out[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "VIN", rows[0][0])
	assert.Equal(t, "1HGBH41JXMN109186", rows[1][0])
	assert.Equal(t, "Shenzhen Motors Ltd", rows[1][8])

	buf.Reset()
	require.NoError(t, svc.ExportCSV(context.Background(), &buf,
		[]domain.DraftVehicleRecord{{
			VIN:      "1HGBH41JXMN109186",
			Shipment: &domain.GlobalShipmentContext{OrderReference: "PO-99"},
		}},
		domain.GlobalShipmentContext{Supplier: "Shenzhen Motors Ltd", OrderReference: "PO-1"},
	))
	rows, err = csv.NewReader(bytes.NewReader(buf.Bytes()[3:])).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "Shenzhen Motors Ltd", rows[1][8])
	assert.Equal(t, "PO-99", rows[1][9])

	assert.ErrorIs(t, svc.ExportCSV(context.Background(), &buf, nil, domain.GlobalShipmentContext{}), domain.ErrEmptyBatch)
}

func TestIntakeService_Documents(t *testing.T) {
	svc, _, storage := newIntakeService(1 << 20)
	key := "manifests/2026/03/01/abc.txt"

	storage.On("GetPresignedURL", mock.Anything, "manifests-bucket", key, int64(600)).
		Return("https://s3.example/abc", nil)
	storage.On("Delete", mock.Anything, "manifests-bucket", key).Return(nil)

	url, err := svc.DocumentURL(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, "https://s3.example/abc", url)
	require.NoError(t, svc.DiscardDocument(context.Background(), key))

	_, err = svc.DocumentURL(context.Background(), "secrets/env")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.DiscardDocument(context.Background(), "manifests/../secrets"), domain.ErrNotFound)
	storage.AssertExpectations(t)
}

func TestIntakeService_Commit_Notifies(t *testing.T) {
	carRepo := new(mocks.MockCarRepo)
	notifier := new(mocks.MockIntakeNotifier)
	svc := service.NewIntakeService(carRepo, new(mocks.MockObjectStorage), notifier,
		&config.S3Config{Bucket: "manifests-bucket"},
		&config.IntakeConfig{DefaultCategory: domain.CategoryEV},
		nil,
	)

	carRepo.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)
	notifier.On("NotifyBatchCommitted", mock.Anything, mock.MatchedBy(func(n port.BatchCommittedNotice) bool {
		return len(n.VINs) == 1 && n.VINs[0] == "1HGBH41JXMN109186" &&
			n.OrderReference == "PO-7" && n.DocumentKey == "manifests/k.txt"
	})).Return(errors.New("ses throttled"))

	cars, err := svc.Commit(context.Background(), service.CommitInput{
		Records:     []domain.DraftVehicleRecord{{VIN: "1HGBH41JXMN109186"}},
		Shipment:    domain.GlobalShipmentContext{OrderReference: "PO-7"},
		DocumentKey: "manifests/k.txt",
	})
	require.NoError(t, err)
	assert.Len(t, cars, 1)
	notifier.AssertExpectations(t)
}
