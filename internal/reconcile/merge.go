package reconcile

import "dealerops/internal/domain"

// overlay copies every non-empty field of src over dst and records source as
// the provenance of each field it set.
func overlay(dst *domain.VehicleFields, src domain.VehicleFields, source string, provenance map[string]string) {
	set := func(field string, to *string, v string) {
		if v != "" {
			*to = v
			provenance[field] = source
		}
	}

	set("id", &dst.ID, src.ID)
	set("vin", &dst.VIN, src.VIN)
	set("car_code", &dst.CarCode, src.CarCode)
	set("vin_alias", &dst.VINAlias, src.VINAlias)
	set("model", &dst.Model, src.Model)
	set("brand", &dst.Brand, src.Brand)
	set("color", &dst.Color, src.Color)
	set("interior_color", &dst.InteriorColor, src.InteriorColor)
	set("status", &dst.Status, src.Status)
	set("current_location", &dst.CurrentLocation, src.CurrentLocation)
	set("software_version", &dst.SoftwareVersion, src.SoftwareVersion)

	if src.Category != "" {
		dst.Category = src.Category
		provenance["category"] = source
	}

	setPtr(provenance, source, "year", &dst.Year, src.Year)
	setPtr(provenance, source, "selling_price", &dst.SellingPrice, src.SellingPrice)
	setPtr(provenance, source, "battery_percentage", &dst.BatteryPercentage, src.BatteryPercentage)
	setPtr(provenance, source, "range", &dst.Range, src.Range)
	setPtr(provenance, source, "odometer", &dst.Odometer, src.Odometer)
	setPtr(provenance, source, "arrival_date", &dst.ArrivalDate, src.ArrivalDate)
	setPtr(provenance, source, "pdi_date", &dst.PDIDate, src.PDIDate)
	setPtr(provenance, source, "sale_date", &dst.SaleDate, src.SaleDate)
	setPtr(provenance, source, "delivery_date", &dst.DeliveryDate, src.DeliveryDate)
	setPtr(provenance, source, "last_software_update", &dst.LastSoftwareUpdate, src.LastSoftwareUpdate)
}

func setPtr[T any](provenance map[string]string, source, field string, to **T, v *T) {
	if v != nil {
		*to = v
		provenance[field] = source
	}
}
