package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"dealerops/internal/domain"
)

const (
	DefaultBrand = "Unknown Brand"
	DefaultModel = "Unknown Model"
	DefaultColor = "Unknown"

	// DefaultContextRadius is how many characters on each side of a VIN are
	// searched before falling back to the whole document.
	DefaultContextRadius = 500

	minModelYear = 2015
)

var (
	yearPattern = regexp.MustCompile(`\b20[12][0-9]\b`)

	shipmentPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:shipment|shipping|ship|tracking|track)\b[ \t]*(?:no\.?|number|code|id|#)?[ \t]*[:#-][ \t]*([A-Z0-9][A-Z0-9-]{5,29})`),
		regexp.MustCompile(`(?i)\b(?:code|reference|ref)\b[ \t]*(?:no\.?|number|#)?[ \t]*[:#-][ \t]*([A-Z0-9][A-Z0-9-]{5,29})`),
		regexp.MustCompile(`\b[A-Z]{1,4}[0-9]{6,12}\b`),
		regexp.MustCompile(`\b[0-9]{10,15}\b`),
	}
	shipmentToken = regexp.MustCompile(`[A-Z0-9]{8,20}`)

	notePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:notes?|remarks?|comments?)[ \t]*[:-][ \t]*([^\r\n]+)`),
		regexp.MustCompile(`(?i)\b(?:special|premium|luxury)[ \t]+(?:package|edition|features?)[ \t]*[:-]?[ \t]*([^\r\n]*)`),
	}
)

// Option configures record extraction.
type Option func(*options)

type options struct {
	defaultCategory domain.Category
	now             func() time.Time
	radius          int
}

func newOptions(opts []Option) options {
	o := options{
		defaultCategory: domain.CategoryEV,
		now:             time.Now,
		radius:          DefaultContextRadius,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithDefaultCategory sets the category used when no powertrain vocabulary is
// found. Unknown categories are ignored.
func WithDefaultCategory(c domain.Category) Option {
	return func(o *options) {
		if c.Valid() {
			o.defaultCategory = c
		}
	}
}

// WithNow overrides the clock used for the year bounds and the year default.
func WithNow(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithContextRadius overrides the number of characters searched on each
// side of the VIN.
func WithContextRadius(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.radius = n
		}
	}
}

// ExtractRecord recovers a draft record for vin from text. Information near
// the VIN is preferred over matches elsewhere in the document. It never
// fails: unresolved fields keep their defaults.
func ExtractRecord(text, vin string, opts ...Option) domain.DraftVehicleRecord {
	o := newOptions(opts)
	now := o.now()

	window := contextWindow(text, vin, o.radius)
	texts := []string{window}
	if window != text {
		texts = append(texts, text)
	}

	rec := domain.DraftVehicleRecord{
		VIN:      vin,
		Brand:    DefaultBrand,
		Model:    DefaultModel,
		Year:     now.Year(),
		Color:    DefaultColor,
		Category: o.defaultCategory,
	}

	if brand, ok := MatchFirst(brandRules, texts...); ok {
		rec.Brand = brand
		if model, ok := MatchFirst(modelRules[brand], texts...); ok {
			rec.Model = model
		}
	}
	if year, ok := extractYear(texts, now); ok {
		rec.Year = year
	}
	if color, ok := MatchFirst(colorRules, texts...); ok {
		rec.Color = color
	}
	if category, ok := MatchFirst(categoryRules, texts...); ok {
		rec.Category = domain.Category(category)
	}
	rec.ShipmentCode = extractShipmentCode(texts)
	rec.Notes = extractNotes(window)

	return rec
}

// contextWindow returns up to radius characters on each side of the first
// case-insensitive occurrence of vin, or the whole text when vin does not
// occur verbatim.
func contextWindow(text, vin string, radius int) string {
	if vin == "" {
		return text
	}
	loc := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(vin)).FindStringIndex(text)
	if loc == nil {
		return text
	}

	start := loc[0]
	for n := 0; n < radius && start > 0; n++ {
		_, size := utf8.DecodeLastRuneInString(text[:start])
		start -= size
	}
	end := loc[1]
	for n := 0; n < radius && end < len(text); n++ {
		_, size := utf8.DecodeRuneInString(text[end:])
		end += size
	}
	return text[start:end]
}

// extractYear picks the most recent plausible year. Manifests often carry
// several years (copyright, order date, model year) and the model year is
// usually the latest.
func extractYear(texts []string, now time.Time) (int, bool) {
	maxYear := now.Year() + 2
	for _, t := range texts {
		best := 0
		for _, m := range yearPattern.FindAllString(t, -1) {
			y, err := strconv.Atoi(m)
			if err != nil || y < minModelYear || y > maxYear {
				continue
			}
			if y > best {
				best = y
			}
		}
		if best > 0 {
			return best, true
		}
	}
	return 0, false
}

func extractShipmentCode(texts []string) string {
	for _, t := range texts {
		var candidates []string
		for _, re := range shipmentPatterns {
			for _, m := range re.FindAllStringSubmatch(t, -1) {
				value := m[0]
				if len(m) > 1 && m[1] != "" {
					value = m[1]
				}
				value = strings.ToUpper(strings.ReplaceAll(value, "-", ""))
				if token := shipmentToken.FindString(value); token != "" {
					candidates = append(candidates, token)
				}
			}
		}
		if len(candidates) > 0 {
			return candidates[0]
		}
	}
	return ""
}

func extractNotes(window string) string {
	var fragments []string
	for _, re := range notePatterns {
		for _, m := range re.FindAllStringSubmatch(window, -1) {
			fragment := strings.TrimSpace(m[1])
			if utf8.RuneCountInString(fragment) > 5 {
				fragments = append(fragments, fragment)
			}
		}
	}
	return strings.Join(fragments, "; ")
}
