package dashboard

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/trialboard/internal/model"
	"github.com/sells-group/trialboard/internal/normalize"
	"github.com/sells-group/trialboard/internal/render"
)

// numPrinter formats counts and monetary figures with thousands grouping.
var numPrinter = message.NewPrinter(language.English)

// displayNum renders a tolerant numeric field, NA when absent.
func displayNum(n model.Num) string {
	if !n.Valid {
		return model.NA
	}
	if n.Value == float64(int64(n.Value)) {
		return numPrinter.Sprintf("%d", int64(n.Value))
	}
	return numPrinter.Sprintf("%.2f", n.Value)
}

func displayString(s string) string {
	if strings.TrimSpace(s) == "" {
		return model.NA
	}
	return strings.TrimSpace(s)
}

func displayYear(rec model.StudyRecord) string {
	if y := rec.Year(); y > 0 {
		return strconv.Itoa(y)
	}
	return model.NA
}

func displayGeography(rec model.StudyRecord) string {
	locs := normalize.Locations(rec)
	if len(locs) == 0 {
		return model.NA
	}
	return strings.Join(locs, ", ")
}

func displayInterventions(rec model.StudyRecord) string {
	if len(rec.Interventions) == 0 {
		return model.NA
	}
	parts := make([]string, 0, len(rec.Interventions))
	for _, iv := range rec.Interventions {
		p := displayString(iv.Treatment)
		if iv.Dose != "" {
			p += " (" + iv.Dose + ")"
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, "; ")
}

func displayICER(rec model.StudyRecord) string {
	if rec.Economics == nil {
		return model.NA
	}
	if ia := rec.Economics.ICERAnalysis; ia != nil && ia.ICERValue.Valid {
		return displayNum(ia.ICERValue) + " " + displayString(ia.CurrencyCode)
	}
	if mp := rec.Economics.ModelParameters; mp != nil && mp.ICER.Valid {
		return displayNum(mp.ICER) + " " + displayString(mp.CurrencyCode)
	}
	return model.NA
}

// comparisonFields are the rows of the detail and comparison tables, in
// display order.
var comparisonFields = []struct {
	label string
	value func(model.StudyRecord) string
}{
	{"Title", func(r model.StudyRecord) string { return displayString(r.Characteristics.Title) }},
	{"Publication Year", displayYear},
	{"Design", func(r model.StudyRecord) string { return displayString(normalize.Design(r.Characteristics.Design)) }},
	{"Phase", func(r model.StudyRecord) string { return displayString(r.Characteristics.Phase) }},
	{"Sample Size", func(r model.StudyRecord) string { return displayNum(r.Characteristics.SampleSize) }},
	{"Geography", displayGeography},
	{"Follow-up (months)", func(r model.StudyRecord) string { return displayNum(r.Characteristics.FollowUpDurationMonths) }},
	{"Condition", func(r model.StudyRecord) string { return normalize.Condition(r) }},
	{"Population", func(r model.StudyRecord) string {
		if !r.Population.Valid {
			return model.NA
		}
		return displayString(r.Population.Name)
	}},
	{"Interventions", displayInterventions},
	{"Primary Outcome", normalize.PrimaryOutcome},
	{"ICER", displayICER},
}

// DetailTable builds the single-study detail view as field/value rows.
func DetailTable(rec model.StudyRecord) render.Table {
	rows := make([][]string, 0, len(comparisonFields))
	for _, f := range comparisonFields {
		rows = append(rows, []string{f.label, f.value(rec)})
	}
	return render.Table{
		Title:   rec.Title(),
		Headers: []string{"Field", "Value"},
		Rows:    rows,
	}
}

// ComparisonTable builds the side-by-side view: one column per selected
// study, one row per field, NA filling every gap.
func ComparisonTable(records []model.StudyRecord) render.Table {
	headers := make([]string, 0, len(records)+1)
	headers = append(headers, "Field")
	for _, rec := range records {
		headers = append(headers, rec.Title())
	}

	rows := make([][]string, 0, len(comparisonFields))
	for _, f := range comparisonFields {
		row := make([]string, 0, len(records)+1)
		row = append(row, f.label)
		for _, rec := range records {
			row = append(row, f.value(rec))
		}
		rows = append(rows, row)
	}

	return render.Table{
		Title:   "Study Comparison",
		Headers: headers,
		Rows:    rows,
	}
}

// ListingTable builds the per-view study listing.
func ListingTable(records []model.StudyRecord) render.Table {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.ID,
			displayString(rec.Characteristics.Title),
			displayYear(rec),
			displayString(normalize.Design(rec.Characteristics.Design)),
			normalize.Condition(rec),
			displayNum(rec.Characteristics.SampleSize),
		})
	}
	return render.Table{
		Title:   "Studies",
		Headers: []string{"ID", "Title", "Year", "Design", "Condition", "Sample Size"},
		Rows:    rows,
	}
}
