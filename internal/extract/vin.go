package extract

import (
	"regexp"
	"sort"
	"strings"
)

const (
	vinLength = 17
	// maxRepeatedChar guards against degenerate matches from noisy scans,
	// e.g. a run of seventeen identical characters.
	maxRepeatedChar = 8
)

var (
	strictVIN = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`)
	// nonTolerant strips everything outside the strict alphabet plus the
	// OCR look-alikes O and I.
	nonTolerant = regexp.MustCompile(`[^A-HJ-NPR-Z0-9OI]`)
	ocrFixer    = strings.NewReplacer("O", "0", "I", "1")
)

// vinPatterns are independent families, each tuned to a different document
// convention. When a pattern has a capture group the group is the candidate.
var vinPatterns = []*regexp.Regexp{
	// bare token
	regexp.MustCompile(`\b[A-HJ-NPR-Z0-9]{17}\b`),
	// WMI, VDS, check digit and VIS separated by space, dash or dot
	regexp.MustCompile(`\b[A-HJ-NPR-Z0-9]{3}[ .-]?[A-HJ-NPR-Z0-9]{5}[ .-]?[A-HJ-NPR-Z0-9][ .-]?[A-HJ-NPR-Z0-9]{8}\b`),
	// labelled
	regexp.MustCompile(`\b(?i:VIN|Chassis|Frame|Serial|S/N)(?:[ \t]*(?i:No\.?|Number|#))?[ \t]*[:#-]?[ \t]*([A-HJ-NPR-Z0-9]{17})\b`),
	// numbered list item
	regexp.MustCompile(`(?m)^[ \t]*\d{1,3}[.)][ \t]+[^\n]*?\b([A-HJ-NPR-Z0-9]{17})\b`),
	// last cell of a table row
	regexp.MustCompile(`(?m)\b([A-HJ-NPR-Z0-9]{17})[ \t]*\r?$`),
	// OCR tolerant bare token
	regexp.MustCompile(`\b[A-HJ-NPR-Z0-9OI]{17}\b`),
	// OCR tolerant labelled
	regexp.MustCompile(`\b(?i:VIN|Chassis|Frame)(?:[ \t]*(?i:No\.?|Number|#))?[ \t]*[:#-]?[ \t]*([A-HJ-NPR-Z0-9OI]{17})\b`),
}

// ExtractVINs returns the distinct plausible VINs found in text, sorted.
// An empty result is a normal outcome.
func ExtractVINs(text string) []string {
	seen := make(map[string]struct{})
	for _, re := range vinPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			raw := m[0]
			if len(m) > 1 && m[1] != "" {
				raw = m[1]
			}
			if vin, ok := NormalizeVIN(raw); ok {
				seen[vin] = struct{}{}
			}
		}
	}

	vins := make([]string, 0, len(seen))
	for vin := range seen {
		if plausibleVIN(vin) {
			vins = append(vins, vin)
		}
	}
	sort.Strings(vins)
	return vins
}

// NormalizeVIN uppercases raw, drops separators and other stray characters,
// and rewrites the OCR confusions O->0 and I->1. It reports whether the
// result is a 17 character string in the VIN alphabet.
func NormalizeVIN(raw string) (string, bool) {
	s := strings.ToUpper(raw)
	s = nonTolerant.ReplaceAllString(s, "")
	s = ocrFixer.Replace(s)
	if len(s) != vinLength || !strictVIN.MatchString(s) {
		return "", false
	}
	return s, true
}

// IsValidVIN reports whether vin is already a normalized, plausible VIN.
func IsValidVIN(vin string) bool {
	return strictVIN.MatchString(vin) && plausibleVIN(vin)
}

func plausibleVIN(vin string) bool {
	if !plausiblePositional(vin[8]) || !plausiblePositional(vin[10]) {
		return false
	}
	var counts [256]int
	for i := 0; i < len(vin); i++ {
		counts[vin[i]]++
		if counts[vin[i]] > maxRepeatedChar {
			return false
		}
	}
	return true
}

// plausiblePositional covers the check digit (9th) and plant code (11th)
// positions: digits and letters other than I, O, Q, U and Z.
func plausiblePositional(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c < 'A' || c > 'Y':
		return false
	}
	switch c {
	case 'I', 'O', 'Q', 'U':
		return false
	}
	return true
}
