package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TheApexWu/BloodMeridianNLP/internal/evaluate"
	"github.com/TheApexWu/BloodMeridianNLP/internal/pipeline"
)

func newEvaluateCmd(st *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Report classifier accuracy on a seeded held-out split",
		Long: `Split the labeled words with a seeded permutation, train on the training
part and print precision, recall, F1 and support for the held-out part. The
same seed always yields the same report.

Examples:
  meridian evaluate
  meridian evaluate --seed 7 --test-fraction 0.3 --format csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := st.pipelineConfig(cmd)
			cfg.Evaluate = true

			p, err := pipeline.NewBuilderFromConfig(cfg).Build()
			if err != nil {
				return fmt.Errorf("invalid pipeline configuration: %w", err)
			}
			t, err := p.Train(cmd.Context())
			if err != nil {
				return explain(err)
			}

			report, err := evaluate.FormatReport(t.Evaluation, st.reportFormat(cmd))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), report)
			return nil
		},
	}

	addLexiconFlags(cmd)
	addEvaluationFlags(cmd)
	return cmd
}
