// Package aggregate builds the categorical buckets, KPI figures, and
// economic series behind the dashboard's charts.
package aggregate

import (
	"sort"
	"strconv"
	"strings"

	"github.com/sells-group/trialboard/internal/model"
	"github.com/sells-group/trialboard/internal/normalize"
)

// Extractor yields the category keys one record contributes. Zero keys and
// multiple keys are both fine: one-to-many fields (interventions, multi-site
// geography) flatten into independent counts.
type Extractor func(model.StudyRecord) []string

// Count aggregates the keys extracted from records into buckets sorted by
// count descending, ties kept in first-seen order. Empty and sentinel keys
// are discarded before counting, so "Unknown"/"N/A" never chart.
func Count(records []model.StudyRecord, extract Extractor) model.CategoryBucket {
	index := make(map[string]int)
	var buckets model.CategoryBucket

	for _, rec := range records {
		for _, key := range extract(rec) {
			key = strings.TrimSpace(key)
			if key == "" || key == model.Unknown || key == model.NA {
				continue
			}
			if i, ok := index[key]; ok {
				buckets[i].Count++
				continue
			}
			index[key] = len(buckets)
			buckets = append(buckets, model.Bucket{Label: key, Count: 1})
		}
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})
	return buckets
}

// TopN truncates buckets to the n largest. Non-positive n disables
// truncation; counting is never aware of the bound.
func TopN(buckets model.CategoryBucket, n int) model.CategoryBucket {
	if n <= 0 || len(buckets) <= n {
		return buckets
	}
	return buckets[:n]
}

// Conditions keys each record by its normalized condition.
func Conditions(rec model.StudyRecord) []string {
	return []string{normalize.Condition(rec)}
}

// Designs keys each record by its collapsed design label.
func Designs(rec model.StudyRecord) []string {
	return []string{normalize.Design(rec.Characteristics.Design)}
}

// Geographies keys each record by its distinct normalized locations, one
// count per location.
func Geographies(rec model.StudyRecord) []string {
	return normalize.Locations(rec)
}

// Years keys each record by its publication year.
func Years(rec model.StudyRecord) []string {
	if y := rec.Year(); y > 0 {
		return []string{strconv.Itoa(y)}
	}
	return nil
}

// Phases keys each record by its trial phase.
func Phases(rec model.StudyRecord) []string {
	return []string{rec.Characteristics.Phase}
}

// InterventionTypes flattens a record into one key per intervention.
func InterventionTypes(rec model.StudyRecord) []string {
	keys := make([]string, 0, len(rec.Interventions))
	for _, iv := range rec.Interventions {
		keys = append(keys, iv.Type)
	}
	return keys
}

// Treatments flattens a record into one key per intervention treatment.
func Treatments(rec model.StudyRecord) []string {
	keys := make([]string, 0, len(rec.Interventions))
	for _, iv := range rec.Interventions {
		keys = append(keys, iv.Treatment)
	}
	return keys
}

// OutcomeNames flattens a record into its outcome names, primary and
// secondary alike.
func OutcomeNames(rec model.StudyRecord) []string {
	return rec.Outcomes.Names()
}

// PrimaryOutcomes keys each record by its primary outcome only.
func PrimaryOutcomes(rec model.StudyRecord) []string {
	return []string{normalize.PrimaryOutcome(rec)}
}

// CostTypes flattens a record into one key per direct-medical-cost line.
func CostTypes(rec model.StudyRecord) []string {
	if rec.Economics == nil {
		return nil
	}
	keys := make([]string, 0, len(rec.Economics.DirectMedicalCosts))
	for _, c := range rec.Economics.DirectMedicalCosts {
		keys = append(keys, c.CostType)
	}
	return keys
}

// ByName resolves an extractor from its view-config field name.
func ByName(field string) (Extractor, bool) {
	switch field {
	case "condition":
		return Conditions, true
	case "design":
		return Designs, true
	case "geography":
		return Geographies, true
	case "year":
		return Years, true
	case "phase":
		return Phases, true
	case "intervention_type":
		return InterventionTypes, true
	case "treatment":
		return Treatments, true
	case "outcome":
		return OutcomeNames, true
	case "primary_outcome":
		return PrimaryOutcomes, true
	case "cost_type":
		return CostTypes, true
	}
	return nil, false
}
