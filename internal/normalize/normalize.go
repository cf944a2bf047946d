// Package normalize turns heterogeneous raw study documents into canonical
// records and folds loosely-spelled categorical values (geography, design,
// condition, outcomes) into consistent labels for filtering and charting.
package normalize

import (
	"path/filepath"
	"strings"

	"github.com/sells-group/trialboard/internal/model"
)

// Record builds the canonical StudyRecord for one source document. The
// filename is the identifier of last resort: an explicit studyId wins,
// then a top-level id, then the file's base name without extension.
// Malformed sub-objects have already degraded to absent during decoding,
// so this never fails.
func Record(filename string, raw model.RawRecord) model.StudyRecord {
	id := strings.TrimSpace(raw.StudyID)
	if id == "" {
		id = strings.TrimSpace(raw.AltID)
	}
	if id == "" {
		base := filepath.Base(filename)
		id = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return model.StudyRecord{
		ID:              id,
		Characteristics: raw.Characteristics,
		Population:      raw.Population,
		Interventions:   raw.Interventions,
		Outcomes:        raw.Outcomes,
		Economics:       raw.Economics,
	}
}

// Condition returns the record's condition, Unknown when the population
// section is absent or carries no condition.
func Condition(rec model.StudyRecord) string {
	if !rec.Population.Valid {
		return model.Unknown
	}
	c := strings.TrimSpace(rec.Population.Condition)
	if c == "" {
		return model.Unknown
	}
	return c
}

// PrimaryOutcome returns the record's primary outcome name, NA when the
// record carries none.
func PrimaryOutcome(rec model.StudyRecord) string {
	return rec.Outcomes.Primary()
}

// Design label constants for the collapsed design categories.
const (
	DesignRCT = "RCT"
	DesignCEA = "CEA"
)

// Design collapses free-text design labels into comparable categories.
// Anything mentioning randomization or control arms is an RCT; modelling
// and cost-effectiveness labels are CEAs; everything else passes through
// trimmed.
func Design(label string) string {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return ""
	}
	lower := strings.ToLower(trimmed)
	switch {
	case strings.Contains(lower, "randomized"),
		strings.Contains(lower, "randomised"),
		strings.Contains(lower, "controlled"):
		return DesignRCT
	case strings.Contains(lower, "model"),
		strings.Contains(lower, "cost-effectiveness"):
		return DesignCEA
	}
	return trimmed
}
