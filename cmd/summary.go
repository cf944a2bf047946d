package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/trialboard/internal/aggregate"
	"github.com/sells-group/trialboard/internal/model"
)

var (
	summaryQuery     string
	summaryYear      int
	summaryDesign    string
	summaryCondition string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print KPIs and top aggregate buckets",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.Context())
		if err != nil {
			return eris.Wrap(err, "summary: load dashboard")
		}
		app.ApplyFilter(model.FilterState{
			SearchText: summaryQuery,
			Year:       summaryYear,
			Design:     summaryDesign,
			Condition:  summaryCondition,
		})

		records := app.Filtered()
		kpis := aggregate.ComputeKPIs(records)

		p := message.NewPrinter(language.English)
		p.Printf("Studies: %d (of %d loaded)\n", kpis.TotalStudies, len(app.Records()))
		p.Printf("Average sample size: %.1f\n", kpis.AverageSampleSize)
		if kpis.MedianPublicationYear > 0 {
			fmt.Printf("Median publication year: %d\n", kpis.MedianPublicationYear)
		}
		p.Printf("RCTs: %.1f%%\n", kpis.PercentRCT)

		printTop := func(title string, extract aggregate.Extractor) {
			buckets := aggregate.TopN(aggregate.Count(records, extract), 5)
			if len(buckets) == 0 {
				return
			}
			fmt.Printf("\n%s:\n", title)
			for _, b := range buckets {
				p.Printf("  %-30s %d\n", b.Label, b.Count)
			}
		}
		printTop("Top conditions", aggregate.Conditions)
		printTop("Designs", aggregate.Designs)
		printTop("Locations", aggregate.Geographies)
		printTop("Intervention types", aggregate.InterventionTypes)

		if series := aggregate.EconomicSeries(records); len(series) > 0 {
			fmt.Println("\nEconomic series:")
			for _, cs := range series {
				p.Printf("  %s: %d studies\n", cs.Currency, len(cs.Points))
				for _, pt := range cs.Points {
					p.Printf("    %-20s ICER %.0f  WTP %.0f\n", pt.StudyID, pt.ICER, pt.WTP)
				}
			}
		}
		return nil
	},
}

func init() {
	summaryCmd.Flags().StringVar(&summaryQuery, "q", "", "search text filter")
	summaryCmd.Flags().IntVar(&summaryYear, "year", 0, "publication year filter")
	summaryCmd.Flags().StringVar(&summaryDesign, "design", "", "design filter (normalized, e.g. RCT)")
	summaryCmd.Flags().StringVar(&summaryCondition, "condition", "", "condition filter")
	rootCmd.AddCommand(summaryCmd)
}
