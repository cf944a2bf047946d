package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/trialboard/internal/dashboard"
	"github.com/sells-group/trialboard/internal/render"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export charts and study tables to an xlsx workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.Context())
		if err != nil {
			return eris.Wrap(err, "export: load dashboard")
		}

		w := render.NewXLSXWriter()
		if err := app.RenderAll(w); err != nil {
			return eris.Wrap(err, "export: render views")
		}
		if err := w.RenderTable("studies", dashboard.ListingTable(app.Filtered())); err != nil {
			return eris.Wrap(err, "export: render study listing")
		}

		if err := w.Save(exportOut); err != nil {
			return eris.Wrap(err, "export")
		}

		zap.L().Info("export complete",
			zap.String("file", exportOut),
			zap.Int("sheets", len(w.Slots())),
		)
		fmt.Printf("wrote %s (%d sheets)\n", exportOut, len(w.Slots()))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "trialboard.xlsx", "output workbook path")
	rootCmd.AddCommand(exportCmd)
}
