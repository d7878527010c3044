package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TheApexWu/BloodMeridianNLP/internal/classifier"
	"github.com/TheApexWu/BloodMeridianNLP/internal/pipeline"
)

func newClassifyCmd(st *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify WORD...",
		Short: "Label words as english or spanish",
		Long: `Train on every word of both lists and print one line per argument:
the word, a tab and its label. With --scores the per-class joint log
probabilities follow.

Examples:
  meridian classify vamos horse
  meridian classify --scores caballo`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := st.pipelineConfig(cmd)
			cfg.Evaluate = false

			p, err := pipeline.NewBuilderFromConfig(cfg).Build()
			if err != nil {
				return fmt.Errorf("invalid pipeline configuration: %w", err)
			}
			t, err := p.Train(cmd.Context())
			if err != nil {
				return explain(err)
			}

			showScores, _ := cmd.Flags().GetBool("scores")
			out := cmd.OutOrStdout()
			for _, word := range args {
				key := strings.ToLower(word)
				if !showScores {
					_, _ = fmt.Fprintf(out, "%s\t%s\n", word, t.Model.Predict(key))
					continue
				}
				s := t.Model.Scores(key)
				_, _ = fmt.Fprintf(out, "%s\t%s\t%s=%.4f\t%s=%.4f\n", word, s.Best(),
					classifier.English, s[classifier.English],
					classifier.Spanish, s[classifier.Spanish])
			}
			return nil
		},
	}

	addLexiconFlags(cmd)
	cmd.Flags().Bool("scores", false, "print per-class log probabilities")
	return cmd
}
