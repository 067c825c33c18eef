// Package extract recovers VINs and draft vehicle records from free-form
// document text such as shipping manifests and OCR output.
//
// Every function in this package is pure and total: a field that cannot be
// recovered keeps a documented default instead of producing an error.
package extract

import "regexp"

// Rule maps a pattern to the canonical value it yields on a match.
type Rule struct {
	Value   string
	Pattern *regexp.Regexp
}

func rule(value, pattern string) Rule {
	return Rule{Value: value, Pattern: regexp.MustCompile(pattern)}
}

// MatchFirst evaluates rules in order against each text in turn and returns
// the value of the first rule that matches. All rules are tried against an
// earlier text before any rule is tried against a later one, so callers pass
// the most specific text first.
func MatchFirst(rules []Rule, texts ...string) (string, bool) {
	for _, t := range texts {
		if t == "" {
			continue
		}
		for _, r := range rules {
			if r.Pattern.MatchString(t) {
				return r.Value, true
			}
		}
	}
	return "", false
}
