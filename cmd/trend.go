package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/urbangrowth/internal/trend"
)

var (
	trendID  string
	trendOut string
	trendPNG string
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Render one feature's population trend chart",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("render"); err != nil {
			return err
		}
		snap, err := loadSnapshot(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		f, ok := snap.Features.Get(trendID)
		if !ok {
			return eris.Errorf("trend: unknown feature %q", trendID)
		}
		p, err := trend.Build(f, snap.Years(), trendConfig(cfg))
		if err != nil {
			return err
		}

		if trendPNG != "" {
			if err := p.SavePlot(trendPNG); err != nil {
				return err
			}
			zap.L().Info("wrote plot", zap.String("path", trendPNG))
		}
		if trendOut == "" {
			_, err := cmd.OutOrStdout().Write(p.SVG())
			return err
		}
		if err := os.WriteFile(trendOut, p.SVG(), 0o644); err != nil {
			return eris.Wrapf(err, "trend: write %s", trendOut)
		}
		zap.L().Info("wrote svg", zap.String("path", trendOut), zap.Float64s("dash_array", p.DashArray))
		return nil
	},
}

func init() {
	trendCmd.Flags().StringVar(&trendID, "id", "", "feature id")
	trendCmd.Flags().StringVar(&trendOut, "out", "", "SVG output path (default stdout)")
	trendCmd.Flags().StringVar(&trendPNG, "png", "", "also render with gonum/plot to this path (.png, .svg, .pdf)")
	_ = trendCmd.MarkFlagRequired("id")
	rootCmd.AddCommand(trendCmd)
}
