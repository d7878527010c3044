package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/TheApexWu/BloodMeridianNLP/internal/pdf"
	"github.com/TheApexWu/BloodMeridianNLP/internal/pipeline"
)

func newConvertCmd(st *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert PDF [TXT]",
		Short: "Convert a PDF to cleaned plain text",
		Long: `Extract the vector text of a PDF, strip header and footer noise, rejoin
drop-cap initials, start dialogue verbs on a new line and write the result.
TXT defaults to the configured document path, so a following scan picks it up.

Examples:
  meridian convert Blood-Meridian-Pdf.pdf
  meridian convert book.pdf book.txt --pages 5-300`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := st.cfg.ToConvertOptions()
			if cmd.Flags().Changed("pages") {
				opts.Pages, _ = cmd.Flags().GetString("pages")
			}
			opts.Password, _ = cmd.Flags().GetString("password")

			target := st.cfg.Document.Path
			if len(args) == 2 {
				target = args[1]
			}

			conv, err := pdf.Convert(args[0], opts)
			if err != nil {
				return err
			}
			if err := pipeline.WriteArtifacts(pipeline.Artifact{Path: target, Content: conv.Text}); err != nil {
				return err
			}

			slog.Info("PDF converted",
				"pdf", args[0],
				"pages", len(conv.ProcessedPages),
				"total_pages", conv.TotalPages)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Converted %d of %d pages -> %s\n",
				len(conv.ProcessedPages), conv.TotalPages, target)
			return nil
		},
	}

	cmd.Flags().String("pages", "", "page range to convert (e.g., '1-5', '1,3,5')")
	cmd.Flags().StringP("password", "p", "", "password for encrypted PDFs")
	return cmd
}
