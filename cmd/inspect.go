package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/urbangrowth/internal/timeline"
)

var (
	inspectYear   int
	inspectFormat string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the symbol frame for one census year",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("render"); err != nil {
			return err
		}
		snap, err := loadSnapshot(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		year := inspectYear
		if year == 0 {
			year = snap.DefaultYear
		}
		fr, err := timeline.Compute(snap, year)
		if err != nil {
			return err
		}
		return writeFormatted(cmd.OutOrStdout(), fr, inspectFormat)
	},
}

func init() {
	inspectCmd.Flags().IntVar(&inspectYear, "year", 0, "census year (default from config)")
	inspectCmd.Flags().StringVar(&inspectFormat, "format", "", "output format: json or yaml (default from config)")
	rootCmd.AddCommand(inspectCmd)
}
