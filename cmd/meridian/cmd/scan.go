package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TheApexWu/BloodMeridianNLP/internal/evaluate"
	"github.com/TheApexWu/BloodMeridianNLP/internal/pipeline"
)

func newScanCmd(st *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Train, evaluate and extract Spanish words and dialogue from a document",
		Long: `Run the full pipeline: load both word lists, report accuracy on a seeded
held-out split, refit on every word, scan the document and write two files,
one Spanish word per line and the Spanish dialogue lines separated by blank
lines. Nothing is written unless the scan completes.

Examples:
  meridian scan
  meridian scan --document novel.txt --words-out words.txt --dialogue-out dialogue.txt
  meridian scan --skip-eval --threshold 0.75`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, st)
		},
	}

	addLexiconFlags(cmd)
	addEvaluationFlags(cmd)
	cmd.Flags().String("document", "", "document to scan")
	cmd.Flags().String("words-out", "", "output file for Spanish words")
	cmd.Flags().String("dialogue-out", "", "output file for Spanish dialogue lines")
	cmd.Flags().Float64("threshold", 0, "Spanish share a line must exceed to count as dialogue")
	cmd.Flags().Bool("skip-eval", false, "skip the held-out evaluation")
	cmd.Flags().String("metrics-file", "", "write Prometheus metrics to this textfile")
	return cmd
}

func runScan(cmd *cobra.Command, st *cliState) error {
	format := st.reportFormat(cmd)
	// The report is printed after the artifacts are in place, so reject a bad
	// format before anything runs.
	if format != "" && !slices.Contains(evaluate.Formats, format) {
		return fmt.Errorf("unsupported format: %s (must be one of: %s)", format, strings.Join(evaluate.Formats, ", "))
	}

	p, err := pipeline.NewBuilderFromConfig(st.pipelineConfig(cmd)).Build()
	if err != nil {
		return fmt.Errorf("invalid pipeline configuration: %w", err)
	}

	res, err := p.Run(cmd.Context())
	if err != nil {
		return explain(err)
	}

	out := cmd.OutOrStdout()
	if res.Evaluation != nil {
		report, err := evaluate.FormatReport(res.Evaluation, format)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, report)
	}

	cfg := p.Config()
	target := cfg.Scan.Target.String()
	_, _ = fmt.Fprintf(out, "%s words: %d -> %s\n", target, len(res.Words), cfg.WordsPath)
	_, _ = fmt.Fprintf(out, "%s dialogue lines: %d -> %s\n", target, len(res.Dialogue), cfg.DialoguePath)
	return nil
}
