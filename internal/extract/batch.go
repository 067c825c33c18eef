package extract

import "dealerops/internal/domain"

// Batch is the result of extracting every vehicle from one document.
type Batch struct {
	VINs     []string                     `json:"vins"`
	Records  []domain.DraftVehicleRecord  `json:"records"`
	Shipment domain.GlobalShipmentContext `json:"shipment"`
}

// ExtractBatch extracts one draft per VIN found in text plus the shared
// shipment context. It returns domain.ErrNoVINsFound when the document holds
// no plausible VIN; no partial batch is produced in that case.
func ExtractBatch(text string, opts ...Option) (*Batch, error) {
	vins := ExtractVINs(text)
	if len(vins) == 0 {
		return nil, domain.ErrNoVINsFound
	}

	records := make([]domain.DraftVehicleRecord, 0, len(vins))
	for _, vin := range vins {
		records = append(records, ExtractRecord(text, vin, opts...))
	}

	return &Batch{
		VINs:     vins,
		Records:  records,
		Shipment: ExtractShipmentContext(text),
	}, nil
}
