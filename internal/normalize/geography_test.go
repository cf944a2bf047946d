package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/trialboard/internal/model"
)

func locRecord(loc string) model.StudyRecord {
	return model.StudyRecord{
		Characteristics: model.Characteristics{GeographicLocation: loc},
	}
}

func TestLocation_AliasesFoldToCanonicalLabels(t *testing.T) {
	assert.Equal(t, "UK", Location("UK"))
	assert.Equal(t, "UK", Location("England"))
	assert.Equal(t, "UK", Location("united kingdom"))
	assert.Equal(t, "UK", Location("Cardiff, UK"))
	assert.Equal(t, "USA", Location("United States"))
	assert.Equal(t, "USA", Location("Boston, USA"))
	assert.Equal(t, "USA", Location("us"))
	assert.Equal(t, "China", Location("Beijing, China"))
	assert.Equal(t, "Korea", Location("Seoul, Korea"))
	assert.Equal(t, "France", Location("FRANCE"))
}

func TestLocation_UnmatchedPassesThroughTrimmed(t *testing.T) {
	assert.Equal(t, "Brazil", Location("  Brazil "))
	assert.Equal(t, "", Location("   "))
}

func TestLocations_SplitsOnAndConjunction(t *testing.T) {
	locs := Locations(locRecord("USA and France"))
	assert.Equal(t, []string{"USA", "France"}, locs)
}

func TestLocations_SplitsOnSemicolons(t *testing.T) {
	locs := Locations(locRecord("Seoul, Korea; Beijing, China"))
	assert.Equal(t, []string{"Korea", "China"}, locs)
}

func TestLocations_DoesNotSplitInsideWords(t *testing.T) {
	// "England" contains "and" but is a single location.
	locs := Locations(locRecord("England"))
	assert.Equal(t, []string{"UK"}, locs)
}

func TestLocations_DeduplicatesWithinRecord(t *testing.T) {
	// Two UK sites still count once for the record.
	locs := Locations(locRecord("Cardiff, UK and London, UK"))
	assert.Equal(t, []string{"UK"}, locs)
}

func TestLocations_EmptyFieldYieldsNothing(t *testing.T) {
	assert.Empty(t, Locations(locRecord("")))
	assert.Empty(t, Locations(locRecord("   ")))
}
