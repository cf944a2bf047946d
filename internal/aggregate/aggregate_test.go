package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/trialboard/internal/model"
)

func conditionRecord(condition string) model.StudyRecord {
	return model.StudyRecord{
		Population: model.Population{Condition: condition, Valid: condition != ""},
	}
}

func TestCount_SortsByCountDescending(t *testing.T) {
	records := []model.StudyRecord{
		conditionRecord("Asthma"),
		conditionRecord("Diabetes"),
		conditionRecord("Diabetes"),
	}

	buckets := Count(records, Conditions)
	assert.Equal(t, model.CategoryBucket{
		{Label: "Diabetes", Count: 2},
		{Label: "Asthma", Count: 1},
	}, buckets)
}

func TestCount_TiesKeepFirstSeenOrder(t *testing.T) {
	records := []model.StudyRecord{
		conditionRecord("Asthma"),
		conditionRecord("Diabetes"),
		conditionRecord("COPD"),
	}

	buckets := Count(records, Conditions)
	assert.Equal(t, []string{"Asthma", "Diabetes", "COPD"}, buckets.Labels())
}

func TestCount_SentinelKeysNeverChart(t *testing.T) {
	records := []model.StudyRecord{
		conditionRecord("Diabetes"),
		conditionRecord(""), // Unknown
		{},                  // Unknown
	}

	buckets := Count(records, Conditions)
	assert.Equal(t, model.CategoryBucket{{Label: "Diabetes", Count: 1}}, buckets)

	buckets = Count(records, PrimaryOutcomes) // every record is N/A
	assert.Empty(t, buckets)
}

func TestCount_FlattenedCountsSumToExtractedKeys(t *testing.T) {
	records := []model.StudyRecord{
		{Interventions: model.Interventions{
			{Type: "Drug"}, {Type: "Placebo"},
		}},
		{Interventions: model.Interventions{
			{Type: "Drug"},
		}},
		{}, // contributes no keys
	}

	buckets := Count(records, InterventionTypes)
	// Three records, but the total is the three non-sentinel keys.
	assert.Equal(t, 3, buckets.Total())
	assert.Equal(t, model.CategoryBucket{
		{Label: "Drug", Count: 2},
		{Label: "Placebo", Count: 1},
	}, buckets)
}

func TestCount_GeographySplitsAndCountsPerLocation(t *testing.T) {
	records := []model.StudyRecord{
		{Characteristics: model.Characteristics{GeographicLocation: "USA and France"}},
		{Characteristics: model.Characteristics{GeographicLocation: "Cardiff, UK"}},
		{Characteristics: model.Characteristics{GeographicLocation: "England"}},
	}

	buckets := Count(records, Geographies)
	assert.Equal(t, model.CategoryBucket{
		{Label: "UK", Count: 2},
		{Label: "USA", Count: 1},
		{Label: "France", Count: 1},
	}, buckets)
}

func TestTopN_TruncatesAfterCounting(t *testing.T) {
	buckets := model.CategoryBucket{
		{Label: "a", Count: 5},
		{Label: "b", Count: 3},
		{Label: "c", Count: 1},
	}

	assert.Len(t, TopN(buckets, 2), 2)
	assert.Equal(t, buckets, TopN(buckets, 0))
	assert.Equal(t, buckets, TopN(buckets, 10))
}

func TestByName_ResolvesEveryConfiguredField(t *testing.T) {
	for _, field := range []string{
		"condition", "design", "geography", "year", "phase",
		"intervention_type", "treatment", "outcome", "primary_outcome", "cost_type",
	} {
		_, ok := ByName(field)
		assert.True(t, ok, field)
	}

	_, ok := ByName("nope")
	assert.False(t, ok)
}

func TestOutcomeNames_FlattensSecondaryOutcomes(t *testing.T) {
	rec := model.StudyRecord{Outcomes: model.Outcomes{
		IsList: true,
		List: []model.Outcome{
			{Name: "Mortality", Primary: true, SecondaryOutcomes: []string{"QoL", "Cost"}},
			{Name: "Readmission"},
		},
	}}

	buckets := Count([]model.StudyRecord{rec}, OutcomeNames)
	assert.Equal(t, 4, buckets.Total())
}
