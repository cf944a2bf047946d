package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/trialboard/internal/model"
)

func TestRecord_IDResolution(t *testing.T) {
	rec := Record("data/ST-042.json", model.RawRecord{StudyID: "NCT001"})
	assert.Equal(t, "NCT001", rec.ID)

	rec = Record("data/ST-042.json", model.RawRecord{AltID: "alt-7"})
	assert.Equal(t, "alt-7", rec.ID)

	rec = Record("data/ST-042.json", model.RawRecord{})
	assert.Equal(t, "ST-042", rec.ID)
}

func TestCondition_UnknownWhenPopulationAbsent(t *testing.T) {
	assert.Equal(t, model.Unknown, Condition(model.StudyRecord{}))

	rec := model.StudyRecord{Population: model.Population{Valid: true}}
	assert.Equal(t, model.Unknown, Condition(rec))

	rec.Population.Condition = "  Diabetes "
	assert.Equal(t, "Diabetes", Condition(rec))
}

func TestDesign_CollapsesRandomizedVariantsToRCT(t *testing.T) {
	assert.Equal(t, "RCT", Design("Randomized Controlled Trial"))
	assert.Equal(t, "RCT", Design("randomised, parallel"))
	assert.Equal(t, "RCT", Design("double-blind controlled study"))
}

func TestDesign_CollapsesModelsToCEA(t *testing.T) {
	assert.Equal(t, "CEA", Design("Markov cost-effectiveness model"))
	assert.Equal(t, "CEA", Design("decision model"))
	assert.Equal(t, "CEA", Design("Cost-Effectiveness analysis"))
}

func TestDesign_PassesThroughUnmatchedLabels(t *testing.T) {
	assert.Equal(t, "Cohort study", Design("  Cohort study "))
	assert.Equal(t, "", Design("   "))
}

func TestPrimaryOutcome_DelegatesToAccessor(t *testing.T) {
	rec := model.StudyRecord{Outcomes: model.Outcomes{Legacy: "Mortality"}}
	assert.Equal(t, "Mortality", PrimaryOutcome(rec))
	assert.Equal(t, model.NA, PrimaryOutcome(model.StudyRecord{}))
}
