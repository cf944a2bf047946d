package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/trialboard/internal/loader"
)

var manifestDir string

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Generate manifest.json for a data directory",
	Long:  "Scans the data directory for study JSON files, validates that each one parses, and writes the manifest the dashboard loads from. Run it whenever files are added or removed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := manifestDir
		if dir == "" {
			dir = cfg.Source.Dir
		}

		m, err := loader.WriteManifest(dir)
		if err != nil {
			return eris.Wrap(err, "manifest")
		}

		fmt.Printf("wrote %s/%s with %d files\n", dir, loader.ManifestName, m.TotalFiles)
		for i, name := range m.Files {
			fmt.Printf("  %2d. %s\n", i+1, name)
		}
		if m.TotalFiles == 0 {
			fmt.Println("warning: no study JSON files found")
		}
		return nil
	},
}

func init() {
	manifestCmd.Flags().StringVar(&manifestDir, "dir", "", "data directory (default from config)")
	rootCmd.AddCommand(manifestCmd)
}
