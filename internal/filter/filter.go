// Package filter applies the dashboard's conjunctive filter state to a
// record set.
package filter

import (
	"strings"

	"github.com/sells-group/trialboard/internal/model"
	"github.com/sells-group/trialboard/internal/normalize"
)

// Apply returns the records matching every set field of state, in input
// order. It is pure and idempotent; the zero FilterState returns the input
// unchanged.
func Apply(records []model.StudyRecord, state model.FilterState) []model.StudyRecord {
	if state.IsZero() {
		return records
	}

	search := strings.ToLower(strings.TrimSpace(state.SearchText))

	out := make([]model.StudyRecord, 0, len(records))
	for _, rec := range records {
		if !Matches(rec, state, search) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Matches evaluates one record against the filter state. search must be
// the lower-cased trimmed search text (precomputed by Apply so the scan
// stays O(n)).
func Matches(rec model.StudyRecord, state model.FilterState, search string) bool {
	condition := normalize.Condition(rec)

	if search != "" {
		title := strings.ToLower(rec.Characteristics.Title)
		if !strings.Contains(title, search) &&
			!strings.Contains(strings.ToLower(condition), search) {
			return false
		}
	}
	if state.Year != 0 && rec.Year() != state.Year {
		return false
	}
	if state.Design != "" && normalize.Design(rec.Characteristics.Design) != state.Design {
		return false
	}
	if state.Condition != "" && condition != state.Condition {
		return false
	}
	return true
}
