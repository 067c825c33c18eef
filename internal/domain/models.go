package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DraftVehicleRecord is a best-effort vehicle record recovered from document
// text, awaiting human review before it is committed as inventory.
type DraftVehicleRecord struct {
	VIN          string   `json:"vin"`
	Brand        string   `json:"brand"`
	Model        string   `json:"model"`
	Year         int      `json:"year"`
	Color        string   `json:"color"`
	Category     Category `json:"category"`
	ShipmentCode string   `json:"shipment_code,omitempty"`
	Notes        string   `json:"notes,omitempty"`

	// Shipment overrides the batch shipment context for this record only.
	// Blank fields fall back to the batch value.
	Shipment *GlobalShipmentContext `json:"shipment,omitempty"`
}

// EffectiveShipment returns batch with the record's non-blank overrides
// applied.
func (d DraftVehicleRecord) EffectiveShipment(batch GlobalShipmentContext) GlobalShipmentContext {
	if d.Shipment == nil {
		return batch
	}
	o := d.Shipment
	pick := func(override, fallback string) string {
		if strings.TrimSpace(override) != "" {
			return override
		}
		return fallback
	}
	return GlobalShipmentContext{
		Supplier:         pick(o.Supplier, batch.Supplier),
		OrderReference:   pick(o.OrderReference, batch.OrderReference),
		TrackingNumber:   pick(o.TrackingNumber, batch.TrackingNumber),
		ShippingCompany:  pick(o.ShippingCompany, batch.ShippingCompany),
		EstimatedArrival: pick(o.EstimatedArrival, batch.EstimatedArrival),
	}
}

// GlobalShipmentContext holds document-level metadata shared by every draft
// extracted from the same document.
type GlobalShipmentContext struct {
	Supplier         string `json:"supplier,omitempty"`
	OrderReference   string `json:"order_reference,omitempty"`
	TrackingNumber   string `json:"tracking_number,omitempty"`
	ShippingCompany  string `json:"shipping_company,omitempty"`
	EstimatedArrival string `json:"estimated_arrival,omitempty"`
}

// IsEmpty reports whether no document-level field was recovered.
func (g GlobalShipmentContext) IsEmpty() bool {
	return g == GlobalShipmentContext{}
}

// Car is an inventory row in the cars table.
type Car struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	VINNumber         string     `db:"vin_number" json:"vin_number"`
	CarCode           string     `db:"car_code" json:"car_code"`
	Brand             string     `db:"brand" json:"brand"`
	Model             string     `db:"model" json:"model"`
	Year              int        `db:"year" json:"year"`
	Color             string     `db:"color" json:"color"`
	InteriorColor     string     `db:"interior_color" json:"interior_color"`
	Category          Category   `db:"category" json:"category"`
	Status            CarStatus  `db:"status" json:"status"`
	CurrentLocation   string     `db:"current_location" json:"current_location"`
	SellingPrice      *float64   `db:"selling_price" json:"selling_price"`
	BatteryPercentage *float64   `db:"battery_percentage" json:"battery_percentage"`
	RangeKM           *float64   `db:"range_km" json:"range_km"`
	KilometersDriven  *float64   `db:"kilometers_driven" json:"kilometers_driven"`
	ShipmentCode      string     `db:"shipment_code" json:"shipment_code"`
	Notes             string     `db:"notes" json:"notes"`
	Supplier          string     `db:"supplier" json:"supplier"`
	OrderReference    string     `db:"order_reference" json:"order_reference"`
	TrackingNumber    string     `db:"tracking_number" json:"tracking_number"`
	ShippingCompany   string     `db:"shipping_company" json:"shipping_company"`
	EstimatedArrival  string     `db:"estimated_arrival" json:"estimated_arrival"`
	SourceDocumentKey string     `db:"source_document_key" json:"source_document_key"`
	ArrivalDate       *time.Time `db:"arrival_date" json:"arrival_date"`
	PDIDate           *time.Time `db:"pdi_date" json:"pdi_date"`
	SaleDate          *time.Time `db:"sale_date" json:"sale_date"`
	DeliveryDate      *time.Time `db:"delivery_date" json:"delivery_date"`
	LastSoftwareAt    *time.Time `db:"last_software_update" json:"last_software_update"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
}

// PartUsed is a part consumed by a repair.
type PartUsed struct {
	Name     string  `json:"name"`
	Number   string  `json:"number"`
	Supplier string  `json:"supplier"`
	Cost     float64 `json:"cost"`
	Quantity int     `json:"quantity"`
}

// RepairEntry is one repair or service job performed on a vehicle.
type RepairEntry struct {
	ID                string     `json:"id"`
	Description       string     `json:"description"`
	Date              time.Time  `json:"date"`
	AssignedMechanic  string     `json:"assigned_mechanic,omitempty"`
	AssignedEmployees []string   `json:"assigned_employees,omitempty"`
	Cost              float64    `json:"cost"`
	Status            string     `json:"status,omitempty"`
	PartsUsed         []PartUsed `json:"parts_used,omitempty"`
}

// TestDriveEntry is one logged test drive.
type TestDriveEntry struct {
	ID              string    `json:"id"`
	CustomerName    string    `json:"customer_name"`
	CustomerPhone   string    `json:"customer_phone,omitempty"`
	Salesperson     string    `json:"salesperson,omitempty"`
	Date            time.Time `json:"date"`
	DurationMinutes int       `json:"duration_minutes"`
	Notes           string    `json:"notes,omitempty"`
}

// LocationEntry is one step of a vehicle's movement between locations.
type LocationEntry struct {
	Location    string    `json:"location"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

// SoftwareUpdateEntry records a software version installed on a vehicle.
type SoftwareUpdateEntry struct {
	Version     string    `json:"version"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

// PartChange is a flattened part replacement derived from repair history.
type PartChange struct {
	PartName   string    `json:"part_name"`
	PartNumber string    `json:"part_number"`
	Supplier   string    `json:"supplier"`
	Cost       float64   `json:"cost"`
	Quantity   int       `json:"quantity"`
	RepairDate time.Time `json:"repair_date"`
	Technician string    `json:"technician"`
}

// UnifiedRecord is a consolidated cache entry for one vehicle.
type UnifiedRecord struct {
	Identifier      string          `json:"identifier"`
	RepairHistory   []RepairEntry   `json:"repair_history"`
	LocationHistory []LocationEntry `json:"location_history"`
}

// SourceRecord is a vehicle record in one of several upstream shapes. Exactly
// one of Car or Fields is set, according to Shape.
type SourceRecord struct {
	Shape    SourceShape    `json:"shape"`
	Location MirrorLocation `json:"location,omitempty"`
	Car      *Car           `json:"car,omitempty"`
	Fields   map[string]any `json:"fields,omitempty"`
}

// VehicleFields is the canonical field set every source shape normalizes to.
// Empty strings and nil pointers mean "not provided".
type VehicleFields struct {
	ID                 string     `json:"id,omitempty"`
	VIN                string     `json:"vin"`
	CarCode            string     `json:"car_code,omitempty"`
	VINAlias           string     `json:"vin_alias,omitempty"`
	Model              string     `json:"model"`
	Brand              string     `json:"brand"`
	Year               *int       `json:"year"`
	Color              string     `json:"color"`
	InteriorColor      string     `json:"interior_color"`
	Category           Category   `json:"category"`
	SellingPrice       *float64   `json:"selling_price"`
	Status             string     `json:"status"`
	CurrentLocation    string     `json:"current_location"`
	BatteryPercentage  *float64   `json:"battery_percentage"`
	Range              *float64   `json:"range"`
	Odometer           *float64   `json:"odometer"`
	ArrivalDate        *time.Time `json:"arrival_date"`
	PDIDate            *time.Time `json:"pdi_date"`
	SaleDate           *time.Time `json:"sale_date"`
	DeliveryDate       *time.Time `json:"delivery_date"`
	LastSoftwareUpdate *time.Time `json:"last_software_update"`
	SoftwareVersion    string     `json:"software_version,omitempty"`
}

// ComprehensiveVehicleView is the read-only aggregate of everything known
// about one vehicle. It is rebuilt on every request and never persisted.
type ComprehensiveVehicleView struct {
	Identifier string `json:"identifier"`
	VehicleFields

	RepairHistory         []RepairEntry         `json:"repair_history"`
	TestDriveHistory      []TestDriveEntry      `json:"test_drive_history"`
	LocationHistory       []LocationEntry       `json:"location_history"`
	SoftwareUpdateHistory []SoftwareUpdateEntry `json:"software_update_history"`
	PartsChanged          []PartChange          `json:"parts_changed"`
	MechanicsWorked       []string              `json:"mechanics_worked"`

	// FieldSources maps a canonical field name to the source that last set it.
	FieldSources map[string]string `json:"field_sources"`
}
