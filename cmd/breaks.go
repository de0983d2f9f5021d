package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/urbangrowth/internal/growth"
	"github.com/sells-group/urbangrowth/internal/legend"
)

var breaksFormat string

type breaksReport struct {
	Breaks growth.Breaks       `json:"breaks" yaml:"breaks"`
	Growth legend.GrowthLegend `json:"growth_legend" yaml:"growth_legend"`
	Size   legend.SizeLegend   `json:"size_legend" yaml:"size_legend"`
}

var breaksCmd = &cobra.Command{
	Use:   "breaks",
	Short: "Print the growth class breaks and both legends",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("render"); err != nil {
			return err
		}
		snap, err := loadSnapshot(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		return writeFormatted(cmd.OutOrStdout(), breaksReport{
			Breaks: snap.Breaks,
			Growth: legend.Growth(snap.Breaks, snap.Palette),
			Size:   snap.SizeLegend,
		}, breaksFormat)
	},
}

func init() {
	breaksCmd.Flags().StringVar(&breaksFormat, "format", "", "output format: json or yaml (default from config)")
	rootCmd.AddCommand(breaksCmd)
}
