package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/urbangrowth/internal/config"
)

var (
	cfg        *config.Config
	sourceFlag string
)

var rootCmd = &cobra.Command{
	Use:          "urbangrowth",
	Short:        "Urban agglomeration growth map",
	Long:         "Loads census-year population estimates for urban agglomerations, classifies their growth and renders proportional symbols, legends and per-city trend charts.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if sourceFlag != "" {
			c.Data.Source = sourceFlag
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&sourceFlag, "source", "", "feature collection URL or file (default from config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
