package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/ecoscan/internal/agent"
	"github.com/sells-group/ecoscan/internal/pipeline"
	"github.com/sells-group/ecoscan/pkg/anthropic"
)

var analyzeFormat string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Run the full pipeline on one report, including KPI extraction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Anthropic.Key == "" {
			return eris.New("anthropic.key is not configured (set ECOSCAN_ANTHROPIC_KEY)")
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrap(err, "read document")
		}

		ag := agent.New(anthropic.NewClient(cfg.Anthropic.Key), cfg.Anthropic)
		runner := pipeline.NewRunner(cfg, ag)

		format := pipeline.FormatForPath(args[0])
		if analyzeFormat != "" {
			format = pipeline.FormatForPath("." + analyzeFormat)
		}

		result, err := runner.Run(cmd.Context(), data, format)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return eris.Wrap(err, "marshal result")
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "", "override document format (pdf or txt)")
	rootCmd.AddCommand(analyzeCmd)
}
