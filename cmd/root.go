package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/ecoscan/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "ecoscan",
	Short: "Sustainability report mining pipeline",
	Long:  "Ingests a corporate sustainability report (PDF/TXT), cleans and filters the text, extracts six standardized ESG KPIs through a single structured model call, and reports data-quality proxies.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
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

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
