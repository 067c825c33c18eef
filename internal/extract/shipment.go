package extract

import (
	"regexp"
	"strings"

	"dealerops/internal/domain"
)

var (
	supplierPattern        = regexp.MustCompile(`(?im)^[ \t]*(?:supplier|vendor|seller|exporter|shipper)(?:[ \t]+name)?[ \t]*[:-][ \t]*([^\r\n]+)`)
	orderReferencePattern  = regexp.MustCompile(`(?i)\b(?:purchase[ \t]+order|order|PO)(?:[ \t]*(?:ref(?:erence)?|no\.?|number))?[ \t]*[:#-][ \t]*([A-Z0-9][A-Z0-9/-]{2,40})`)
	trackingNumberPattern  = regexp.MustCompile(`(?i)\b(?:tracking|AWB|bill[ \t]+of[ \t]+lading|B/L)(?:[ \t]*(?:no\.?|number|#))?[ \t]*[:#-][ \t]*([A-Z0-9][A-Z0-9-]{5,40})`)
	shippingCompanyPattern = regexp.MustCompile(`(?im)^[ \t]*(?:shipping[ \t]+(?:company|line|carrier)|carrier|forwarder|freight[ \t]+forwarder)[ \t]*[:-][ \t]*([^\r\n]+)`)
	arrivalPattern         = regexp.MustCompile(`(?i)\b(?:ETA|estimated[ \t]+(?:time[ \t]+of[ \t]+)?arrival|expected[ \t]+arrival|arrival[ \t]+date)[ \t]*[:-][ \t]*([^\r\n]+)`)
)

// ExtractShipmentContext recovers document-level shipping metadata from the
// whole text. Unlike per-vehicle fields it is not windowed around a VIN.
func ExtractShipmentContext(text string) domain.GlobalShipmentContext {
	return domain.GlobalShipmentContext{
		Supplier:         firstGroup(supplierPattern, text),
		OrderReference:   firstGroup(orderReferencePattern, text),
		TrackingNumber:   firstGroup(trackingNumberPattern, text),
		ShippingCompany:  firstGroup(shippingCompanyPattern, text),
		EstimatedArrival: firstGroup(arrivalPattern, text),
	}
}

func firstGroup(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
