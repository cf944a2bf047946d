package aggregate

import (
	"sort"

	"github.com/sells-group/trialboard/internal/model"
	"github.com/sells-group/trialboard/internal/normalize"
)

// KPIs are the headline figures of the overview panel.
type KPIs struct {
	TotalStudies          int     `json:"total_studies"`
	AverageSampleSize     float64 `json:"average_sample_size"`
	MedianPublicationYear int     `json:"median_publication_year"`
	PercentRCT            float64 `json:"percent_rct"`
}

// ComputeKPIs computes the headline figures over a record set. Absent
// sample sizes count as zero in the average, so the divisor is always the
// full record count. The median year ignores records without a year.
func ComputeKPIs(records []model.StudyRecord) KPIs {
	k := KPIs{TotalStudies: len(records)}
	if len(records) == 0 {
		return k
	}

	var sampleSum float64
	var rct int
	var years []int
	for _, rec := range records {
		sampleSum += rec.Characteristics.SampleSize.Value
		if normalize.Design(rec.Characteristics.Design) == normalize.DesignRCT {
			rct++
		}
		if y := rec.Year(); y > 0 {
			years = append(years, y)
		}
	}

	k.AverageSampleSize = sampleSum / float64(len(records))
	k.PercentRCT = float64(rct) / float64(len(records)) * 100
	if len(years) > 0 {
		sort.Ints(years)
		k.MedianPublicationYear = years[len(years)/2]
	}
	return k
}
