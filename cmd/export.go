package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/urbangrowth/internal/export"
)

var (
	exportOut         string
	exportConcurrency int
	exportFormat      string
	exportTrends      bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a GeoJSON layer and frame snapshot for every slider year",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("render"); err != nil {
			return err
		}
		opts := export.Options{
			OutDir:      cfg.Export.OutDir,
			Concurrency: cfg.Export.Concurrency,
		}
		if exportOut != "" {
			opts.OutDir = exportOut
		}
		if exportConcurrency > 0 {
			opts.Concurrency = exportConcurrency
		}
		name := cfg.Export.Format
		if exportFormat != "" {
			name = exportFormat
		}
		f, err := export.ParseFormat(name)
		if err != nil {
			return err
		}
		opts.Format = f
		if exportTrends || cfg.Export.Trends {
			tc := trendConfig(cfg)
			opts.Trend = &tc
		}

		snap, err := loadSnapshot(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		m, err := export.Run(cmd.Context(), snap, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %d years, %d files to %s\n", len(m.Years), len(m.Files), opts.OutDir)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output directory (default from config)")
	exportCmd.Flags().IntVar(&exportConcurrency, "concurrency", 0, "concurrent year exports (default from config)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "snapshot format: json or yaml (default from config)")
	exportCmd.Flags().BoolVar(&exportTrends, "trends", false, "also write one SVG trend chart per feature")
	rootCmd.AddCommand(exportCmd)
}
