package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/ecoscan/internal/pipeline"
)

var preprocessCmd = &cobra.Command{
	Use:   "preprocess <file>",
	Short: "Run only the local stages (no model call) and print the methodological metrics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrap(err, "read document")
		}

		runner := pipeline.NewRunner(cfg, nil)
		pre, err := runner.Preprocess(data, pipeline.FormatForPath(args[0]))
		if err != nil {
			return err
		}

		summary := map[string]any{
			"paragraphs":          len(pre.Paragraphs),
			"relevant_paragraphs": len(pre.Corpus.Paragraphs),
			"csr_density":         pre.Corpus.CSRDensity,
			"tokens_raw":          pre.Account.TokensRaw,
			"tokens_clean":        pre.Account.TokensClean,
			"reduction_pct":       pre.Account.ReductionPct(),
			"top_keywords":        pre.Keywords,
		}
		out, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return eris.Wrap(err, "marshal summary")
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(preprocessCmd)
}
