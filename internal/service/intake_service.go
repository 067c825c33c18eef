package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dealerops/internal/config"
	"dealerops/internal/csvexport"
	"dealerops/internal/domain"
	"dealerops/internal/extract"
	"dealerops/internal/metrics"
	"dealerops/internal/port"
)

// allowedManifestExtensions lists the upload extensions accepted as plain
// text manifests.
var allowedManifestExtensions = map[string]string{
	"txt": "text/plain",
	"csv": "text/csv",
	"tsv": "text/tab-separated-values",
}

const manifestPrefix = "manifests/"

// ExtractInput is the DTO for extracting a batch from pasted text.
type ExtractInput struct {
	Text            string
	DefaultCategory domain.Category
}

// ManifestUploadInput is the DTO for uploading a manifest file.
type ManifestUploadInput struct {
	Body            io.Reader
	Filename        string
	Size            int64
	DefaultCategory domain.Category
}

// UploadResult is an extracted batch along with the archived manifest key.
type UploadResult struct {
	*extract.Batch
	DocumentKey string `json:"document_key"`
}

// CommitInput is the DTO for committing reviewed drafts as inventory.
type CommitInput struct {
	Records     []domain.DraftVehicleRecord
	Shipment    domain.GlobalShipmentContext
	DocumentKey string
}

// IntakeService defines the manifest intake contract.
type IntakeService interface {
	Extract(ctx context.Context, input ExtractInput) (*extract.Batch, error)
	Upload(ctx context.Context, input ManifestUploadInput) (*UploadResult, error)
	Commit(ctx context.Context, input CommitInput) ([]domain.Car, error)
	ExportCSV(ctx context.Context, w io.Writer, records []domain.DraftVehicleRecord, shipment domain.GlobalShipmentContext) error
	DocumentURL(ctx context.Context, key string) (string, error)
	DiscardDocument(ctx context.Context, key string) error
}

type intakeService struct {
	carRepo  port.CarRepository
	storage  port.ObjectStorage
	notifier port.IntakeNotifier
	s3Cfg    *config.S3Config
	cfg      *config.IntakeConfig
	logger   *zap.Logger
	now      func() time.Time
}

// NewIntakeService creates a new IntakeService implementation. notifier may
// be nil.
func NewIntakeService(
	carRepo port.CarRepository,
	storage port.ObjectStorage,
	notifier port.IntakeNotifier,
	s3Cfg *config.S3Config,
	cfg *config.IntakeConfig,
	logger *zap.Logger,
) IntakeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &intakeService{
		carRepo:  carRepo,
		storage:  storage,
		notifier: notifier,
		s3Cfg:    s3Cfg,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *intakeService) Extract(ctx context.Context, input ExtractInput) (*extract.Batch, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, domain.ErrDocumentEmpty
	}
	if s.cfg.MaxTextBytes > 0 && int64(len(input.Text)) > s.cfg.MaxTextBytes {
		return nil, domain.ErrDocumentLarge
	}
	return s.extract(input.Text, input.DefaultCategory)
}

func (s *intakeService) Upload(ctx context.Context, input ManifestUploadInput) (*UploadResult, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Filename), "."))
	contentType, ok := allowedManifestExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedDoc
	}
	if s.cfg.MaxTextBytes > 0 && input.Size > s.cfg.MaxTextBytes {
		return nil, domain.ErrDocumentLarge
	}

	body := input.Body
	if s.cfg.MaxTextBytes > 0 {
		body = io.LimitReader(body, s.cfg.MaxTextBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	if s.cfg.MaxTextBytes > 0 && int64(len(data)) > s.cfg.MaxTextBytes {
		return nil, domain.ErrDocumentLarge
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, domain.ErrDocumentEmpty
	}
	if !strings.HasPrefix(http.DetectContentType(data), "text/") {
		return nil, domain.ErrUnsupportedDoc
	}

	// Extraction runs first so a document without VINs is never archived.
	batch, err := s.extract(string(data), input.DefaultCategory)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	key := fmt.Sprintf("%s%s/%s.%s", manifestPrefix, now.Format("2006/01/02"), uuid.New(), ext)
	s.logger.Info("intakeService.Upload: archiving manifest",
		zap.String("filename", input.Filename),
		zap.String("key", key),
		zap.Int("bytes", len(data)),
		zap.Int("vins", len(batch.VINs)),
	)

	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3Cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: contentType,
		Size:        int64(len(data)),
	})
	if err != nil {
		s.logger.Error("intakeService.Upload: archive failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrUploadFailed, err)
	}

	return &UploadResult{Batch: batch, DocumentKey: key}, nil
}

func (s *intakeService) Commit(ctx context.Context, input CommitInput) ([]domain.Car, error) {
	if len(input.Records) == 0 {
		return nil, domain.ErrEmptyBatch
	}

	cars := make([]domain.Car, 0, len(input.Records))
	seen := make(map[string]struct{}, len(input.Records))
	for i := range input.Records {
		rec := &input.Records[i]
		vin := strings.ToUpper(strings.TrimSpace(rec.VIN))
		if !extract.IsValidVIN(vin) {
			return nil, fmt.Errorf("record %d (%q): %w", i, rec.VIN, domain.ErrInvalidVIN)
		}
		if _, dup := seen[vin]; dup {
			return nil, fmt.Errorf("record %d (%s) repeated in batch: %w", i, vin, domain.ErrDuplicateVIN)
		}
		seen[vin] = struct{}{}
		car := s.draftToCar(rec, vin, input.Shipment, input.DocumentKey)
		if err := checkColumnLengths(&car); err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, vin, err)
		}
		cars = append(cars, car)
	}

	if err := s.carRepo.CreateBatch(ctx, cars); err != nil {
		return nil, err
	}

	metrics.CarsCommitted.Add(float64(len(cars)))
	s.logger.Info("intakeService.Commit: created inventory rows",
		zap.Int("cars", len(cars)),
		zap.String("document_key", input.DocumentKey),
	)
	s.notifyCommitted(ctx, cars, input)
	return cars, nil
}

// notifyCommitted is best effort: the inventory rows already exist.
func (s *intakeService) notifyCommitted(ctx context.Context, cars []domain.Car, input CommitInput) {
	if s.notifier == nil {
		return
	}
	vins := make([]string, len(cars))
	for i := range cars {
		vins[i] = cars[i].VINNumber
	}
	err := s.notifier.NotifyBatchCommitted(ctx, port.BatchCommittedNotice{
		VINs:           vins,
		Supplier:       input.Shipment.Supplier,
		OrderReference: input.Shipment.OrderReference,
		EstimatedETA:   input.Shipment.EstimatedArrival,
		DocumentKey:    input.DocumentKey,
		CommittedAt:    s.now(),
	})
	if err != nil {
		s.logger.Warn("intakeService.Commit: notification failed", zap.Error(err))
	}
}

func (s *intakeService) ExportCSV(_ context.Context, w io.Writer, records []domain.DraftVehicleRecord, shipment domain.GlobalShipmentContext) error {
	if len(records) == 0 {
		return domain.ErrEmptyBatch
	}
	if _, err := w.Write(csvexport.BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}

	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	if err := cw.WriteDrafts(records, shipment); err != nil {
		return fmt.Errorf("writing CSV rows: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

func (s *intakeService) DocumentURL(ctx context.Context, key string) (string, error) {
	if !validDocumentKey(key) {
		return "", domain.ErrNotFound
	}
	url, err := s.storage.GetPresignedURL(ctx, s.s3Cfg.Bucket, key, s.s3Cfg.PresignExpiry)
	if err != nil {
		return "", fmt.Errorf("presigning %s: %w", key, err)
	}
	return url, nil
}

// DiscardDocument removes an archived manifest whose batch was rejected in
// review.
func (s *intakeService) DiscardDocument(ctx context.Context, key string) error {
	if !validDocumentKey(key) {
		return domain.ErrNotFound
	}
	if err := s.storage.Delete(ctx, s.s3Cfg.Bucket, key); err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	s.logger.Info("intakeService.DiscardDocument: manifest removed", zap.String("key", key))
	return nil
}

func validDocumentKey(key string) bool {
	return strings.HasPrefix(key, manifestPrefix) && !strings.Contains(key, "..")
}

func (s *intakeService) extract(text string, category domain.Category) (*extract.Batch, error) {
	start := time.Now()
	batch, err := extract.ExtractBatch(text,
		extract.WithDefaultCategory(s.category(category)),
		extract.WithContextRadius(s.cfg.ContextRadius),
		extract.WithNow(s.now),
	)
	if errors.Is(err, domain.ErrNoVINsFound) {
		metrics.RecordExtraction(0, time.Since(start))
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("extracting batch: %w", err)
	}
	metrics.RecordExtraction(len(batch.VINs), time.Since(start))
	return batch, nil
}

// category resolves a requested default category, falling back to the
// configured one.
func (s *intakeService) category(requested domain.Category) domain.Category {
	if c := domain.Category(strings.ToUpper(string(requested))); c.Valid() {
		return c
	}
	return s.cfg.DefaultCategory
}

func (s *intakeService) draftToCar(rec *domain.DraftVehicleRecord, vin string, batch domain.GlobalShipmentContext, documentKey string) domain.Car {
	shipment := rec.EffectiveShipment(batch)
	category := rec.Category
	if !category.Valid() {
		category = s.category("")
	}
	year := rec.Year
	if year == 0 {
		year = s.now().Year()
	}
	return domain.Car{
		ID:                uuid.New(),
		VINNumber:         vin,
		Brand:             rec.Brand,
		Model:             rec.Model,
		Year:              year,
		Color:             rec.Color,
		Category:          category,
		Status:            domain.CarStatusOrdered,
		ShipmentCode:      rec.ShipmentCode,
		Notes:             rec.Notes,
		Supplier:          shipment.Supplier,
		OrderReference:    shipment.OrderReference,
		TrackingNumber:    shipment.TrackingNumber,
		ShippingCompany:   shipment.ShippingCompany,
		EstimatedArrival:  shipment.EstimatedArrival,
		SourceDocumentKey: documentKey,
	}
}

// checkColumnLengths enforces the VARCHAR limits of the cars table.
func checkColumnLengths(car *domain.Car) error {
	limits := []struct {
		column string
		value  string
		max    int
	}{
		{"brand", car.Brand, 100},
		{"model", car.Model, 100},
		{"color", car.Color, 100},
		{"shipment_code", car.ShipmentCode, 64},
		{"supplier", car.Supplier, 255},
		{"order_reference", car.OrderReference, 100},
		{"tracking_number", car.TrackingNumber, 100},
		{"shipping_company", car.ShippingCompany, 255},
		{"estimated_arrival", car.EstimatedArrival, 100},
		{"source_document_key", car.SourceDocumentKey, 512},
	}
	for _, l := range limits {
		if n := utf8.RuneCountInString(l.value); n > l.max {
			return fmt.Errorf("%s is %d characters, limit %d: %w", l.column, n, l.max, domain.ErrFieldTooLong)
		}
	}
	return nil
}
