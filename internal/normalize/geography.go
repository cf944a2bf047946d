package normalize

import (
	"regexp"
	"strings"

	"github.com/sells-group/trialboard/internal/model"
)

// Geographic locations come as free text, sometimes joined by a literal
// "and" or by semicolons ("UK and France", "Seoul, Korea; Beijing, China").
var locationSeparator = regexp.MustCompile(`(?i)\s+and\s+|;`)

// geoAliases folds common country spellings onto one canonical label,
// matched case-insensitively against the whole trimmed part.
var geoAliases = map[string]string{
	"uk":             "UK",
	"united kingdom": "UK",
	"england":        "UK",
	"us":             "USA",
	"usa":            "USA",
	"united states":  "USA",
	"cn":             "China",
	"china":          "China",
	"korea":          "Korea",
	"france":         "France",
}

// geoSuffixes catch "City, Country" forms ("Cardiff, UK", "Boston, USA").
var geoSuffixes = []struct {
	suffix string
	label  string
}{
	{", uk", "UK"},
	{", usa", "USA"},
	{", us", "USA"},
	{", china", "China"},
	{", korea", "Korea"},
	{", france", "France"},
}

// Location normalizes a single location string to its canonical label.
// Unmatched input passes through trimmed.
func Location(part string) string {
	trimmed := strings.TrimSpace(part)
	if trimmed == "" {
		return ""
	}
	lower := strings.ToLower(trimmed)
	if label, ok := geoAliases[lower]; ok {
		return label
	}
	for _, s := range geoSuffixes {
		if strings.HasSuffix(lower, s.suffix) {
			return s.label
		}
	}
	return trimmed
}

// Locations splits a record's geographic-location field into its distinct
// normalized locations, preserving first-seen order. A record contributes
// each location at most once, so multi-site studies count once per
// country, not once per site.
func Locations(rec model.StudyRecord) []string {
	raw := strings.TrimSpace(rec.Characteristics.GeographicLocation)
	if raw == "" {
		return nil
	}

	var out []string
	seen := make(map[string]struct{})
	for _, part := range locationSeparator.Split(raw, -1) {
		label := Location(part)
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	return out
}
