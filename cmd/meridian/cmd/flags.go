package cmd

import (
	"github.com/spf13/cobra"

	"github.com/TheApexWu/BloodMeridianNLP/internal/pipeline"
)

func addLexiconFlags(cmd *cobra.Command) {
	cmd.Flags().String("spanish", "", "Spanish word list (one word per line)")
	cmd.Flags().String("english", "", "English word list (one word per line)")
}

func addEvaluationFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "", "report format (text, json, csv)")
	cmd.Flags().Uint64("seed", 0, "seed for the held-out split")
	cmd.Flags().Float64("test-fraction", 0, "share of samples held out for evaluation")
}

// pipelineConfig resolves the pipeline config and applies the flags the user set.
func (st *cliState) pipelineConfig(cmd *cobra.Command) pipeline.Config {
	cfg := st.cfg.ToPipelineConfig()
	flags := cmd.Flags()

	if flags.Changed("spanish") {
		cfg.SpanishPath, _ = flags.GetString("spanish")
	}
	if flags.Changed("english") {
		cfg.EnglishPath, _ = flags.GetString("english")
	}
	if flags.Changed("document") {
		cfg.DocumentPath, _ = flags.GetString("document")
	}
	if flags.Changed("words-out") {
		cfg.WordsPath, _ = flags.GetString("words-out")
	}
	if flags.Changed("dialogue-out") {
		cfg.DialoguePath, _ = flags.GetString("dialogue-out")
	}
	if flags.Changed("threshold") {
		cfg.Scan.Threshold, _ = flags.GetFloat64("threshold")
	}
	if flags.Changed("skip-eval") {
		skip, _ := flags.GetBool("skip-eval")
		cfg.Evaluate = !skip
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile, _ = flags.GetString("metrics-file")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("test-fraction") {
		cfg.TestFraction, _ = flags.GetFloat64("test-fraction")
	}
	return cfg
}

// reportFormat returns the --format flag or the configured output format.
func (st *cliState) reportFormat(cmd *cobra.Command) string {
	if cmd.Flags().Changed("format") {
		f, _ := cmd.Flags().GetString("format")
		return f
	}
	return st.cfg.Output.Format
}
