package reconcile

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cast"

	"dealerops/internal/domain"
)

// normalize converts a source record into the canonical field set. Each
// upstream shape has exactly one adapter; unknown shapes contribute nothing.
func normalize(rec domain.SourceRecord) domain.VehicleFields {
	switch rec.Shape {
	case domain.ShapeCar:
		return fromCar(rec.Car)
	case domain.ShapeBackendRow:
		return fromBackendRow(loose(rec.Fields))
	case domain.ShapeMirror:
		return fromMirror(loose(rec.Fields))
	}
	return domain.VehicleFields{}
}

func fromCar(c *domain.Car) domain.VehicleFields {
	if c == nil {
		return domain.VehicleFields{}
	}
	f := domain.VehicleFields{
		VIN:                c.VINNumber,
		CarCode:            c.CarCode,
		Model:              c.Model,
		Brand:              c.Brand,
		Color:              c.Color,
		InteriorColor:      c.InteriorColor,
		Category:           c.Category,
		SellingPrice:       c.SellingPrice,
		Status:             string(c.Status),
		CurrentLocation:    c.CurrentLocation,
		BatteryPercentage:  c.BatteryPercentage,
		Range:              c.RangeKM,
		Odometer:           c.KilometersDriven,
		ArrivalDate:        c.ArrivalDate,
		PDIDate:            c.PDIDate,
		SaleDate:           c.SaleDate,
		DeliveryDate:       c.DeliveryDate,
		LastSoftwareUpdate: c.LastSoftwareAt,
	}
	if c.ID != uuid.Nil {
		f.ID = c.ID.String()
	}
	if c.Year > 0 {
		year := c.Year
		f.Year = &year
	}
	return f
}

// fromBackendRow adapts a snake_case row from the hosted backend.
func fromBackendRow(r loose) domain.VehicleFields {
	return domain.VehicleFields{
		ID:                 r.str("id"),
		VIN:                r.str("vin_number", "vin"),
		CarCode:            r.str("car_code"),
		VINAlias:           r.str("vin_alias"),
		Model:              r.str("model", "car_model"),
		Brand:              r.str("brand", "make"),
		Year:               r.integer("year", "model_year"),
		Color:              r.str("color", "exterior_color"),
		InteriorColor:      r.str("interior_color"),
		Category:           r.category("category"),
		SellingPrice:       r.number("selling_price", "price"),
		Status:             r.str("status"),
		CurrentLocation:    r.str("current_location", "location"),
		BatteryPercentage:  r.number("battery_percentage"),
		Range:              r.number("range_km", "range"),
		Odometer:           r.number("kilometers_driven", "km_driven", "mileage"),
		ArrivalDate:        r.date("arrival_date"),
		PDIDate:            r.date("pdi_date"),
		SaleDate:           r.date("sale_date"),
		DeliveryDate:       r.date("delivery_date"),
		LastSoftwareUpdate: r.date("last_software_update"),
		SoftwareVersion:    r.str("software_version"),
	}
}

// fromMirror adapts a location mirror record. Mirrors are mostly camelCase,
// but imported sheets may carry snake_case headers.
func fromMirror(r loose) domain.VehicleFields {
	return domain.VehicleFields{
		ID:                 r.str(domain.MirrorIDKeys...),
		VIN:                r.str(domain.MirrorVINKeys...),
		CarCode:            r.str(domain.MirrorCarCodeKeys...),
		VINAlias:           r.str(domain.MirrorVINAliasKeys...),
		Model:              r.str("model", "carModel", "car_model"),
		Brand:              r.str("brand", "make"),
		Year:               r.integer("year", "modelYear", "model_year"),
		Color:              r.str("color", "exteriorColor", "exterior_color"),
		InteriorColor:      r.str("interiorColor", "interior_color"),
		Category:           r.category("category"),
		SellingPrice:       r.number("sellingPrice", "selling_price", "price"),
		Status:             r.str("status"),
		CurrentLocation:    r.str("currentLocation", "current_location", "location"),
		BatteryPercentage:  r.number("batteryPercentage", "battery_percentage", "battery"),
		Range:              r.number("range", "rangeKm", "range_km"),
		Odometer:           r.number("kilometersDriven", "kmDriven", "kilometers_driven", "km_driven", "mileage"),
		ArrivalDate:        r.date("arrivalDate", "arrival_date"),
		PDIDate:            r.date("pdiDate", "pdi_date"),
		SaleDate:           r.date("saleDate", "sale_date"),
		DeliveryDate:       r.date("deliveryDate", "delivery_date"),
		LastSoftwareUpdate: r.date("lastSoftwareUpdate", "last_software_update"),
		SoftwareVersion:    r.str("softwareVersion", "software_version"),
	}
}

// loose gives typed, fallback-aware access to an untyped record. Every
// accessor returns the first key holding a usable value; values of the wrong
// type count as absent.
type loose map[string]any

func (r loose) str(keys ...string) string {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		s, err := cast.ToStringE(v)
		if err != nil {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

func (r loose) number(keys ...string) *float64 {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil || v == "" {
			continue
		}
		n, err := cast.ToFloat64E(v)
		if err != nil {
			continue
		}
		return &n
	}
	return nil
}

func (r loose) integer(keys ...string) *int {
	n := r.number(keys...)
	if n == nil || *n <= 0 {
		return nil
	}
	i := int(*n)
	return &i
}

func (r loose) date(keys ...string) *time.Time {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil || v == "" {
			continue
		}
		t, err := cast.ToTimeE(v)
		if err != nil || t.IsZero() {
			continue
		}
		return &t
	}
	return nil
}

func (r loose) category(keys ...string) domain.Category {
	c := domain.Category(strings.ToUpper(r.str(keys...)))
	if !c.Valid() {
		return ""
	}
	return c
}

// matchesIdentifier reports whether any of the interchangeable lookup keys
// of f equals identifier. VINs and codes compare case-insensitively.
func matchesIdentifier(f domain.VehicleFields, identifier string) bool {
	if identifier == "" {
		return false
	}
	for _, key := range []string{f.VIN, f.CarCode, f.VINAlias, f.ID} {
		if key != "" && strings.EqualFold(key, identifier) {
			return true
		}
	}
	return false
}
