package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"dealerops/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row: draft fields first, then the shipment
// context repeated on every row.
var columns = []string{
	"VIN",
	"Brand",
	"Model",
	"Year",
	"Color",
	"Category",
	"Shipment Code",
	"Notes",
	"Supplier",
	"Order Reference",
	"Tracking Number",
	"Shipping Company",
	"Estimated Arrival",
}

// Writer wraps csv.Writer for exporting draft vehicle records for review.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteDrafts writes one row per draft, each carrying the shipment context
// with the draft's own overrides applied.
func (w *Writer) WriteDrafts(drafts []domain.DraftVehicleRecord, shipment domain.GlobalShipmentContext) error {
	for i := range drafts {
		if err := w.csv.Write(draftToRow(&drafts[i], shipment)); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func draftToRow(d *domain.DraftVehicleRecord, batch domain.GlobalShipmentContext) []string {
	shipment := d.EffectiveShipment(batch)
	year := ""
	if d.Year > 0 {
		year = strconv.Itoa(d.Year)
	}
	return []string{
		d.VIN,
		d.Brand,
		d.Model,
		year,
		d.Color,
		string(d.Category),
		d.ShipmentCode,
		d.Notes,
		shipment.Supplier,
		shipment.OrderReference,
		shipment.TrackingNumber,
		shipment.ShippingCompany,
		shipment.EstimatedArrival,
	}
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition. Runs of
// other characters become a single _, and the result is capped at 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns {sanitized_name}_{YYYY-MM-DD}.csv, falling back to
// "intake" when nothing usable is left of name.
func BuildFilename(name string, now time.Time) string {
	sanitized := SanitizeFilename(name)
	if sanitized == "" {
		sanitized = "intake"
	}
	return fmt.Sprintf("%s_%s.csv", sanitized, now.Format("2006-01-02"))
}
