package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/TheApexWu/BloodMeridianNLP/internal/classifier"
	"github.com/TheApexWu/BloodMeridianNLP/internal/config"
)

// cliState is shared by the commands of one root.
type cliState struct {
	cfgFile string
	v       *viper.Viper
	loader  *config.Loader
	cfg     *config.Config
}

// NewRootCommand builds the meridian command tree with its own viper instance.
func NewRootCommand() *cobra.Command {
	st := &cliState{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "meridian",
		Short: "Extract Spanish words and dialogue from an English novel",
		Long: `meridian trains a character n-gram Naive Bayes classifier on an English and
a Spanish word list, reports its accuracy on a held-out split, refits on every
word and scans a document for Spanish words and Spanish dialogue lines.

Examples:
  meridian scan
  meridian scan --document novel.txt --threshold 0.6
  meridian evaluate --format json
  meridian classify vamos horse
  meridian convert Blood-Meridian-Pdf.pdf Blood-Meridian.txt`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return st.init(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&st.cfgFile, "config", "",
		"config file (default is search in ., $HOME, $XDG_CONFIG_HOME/meridian, /etc/meridian)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (equivalent to --log-level=debug)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	_ = st.v.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = st.v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(
		newScanCmd(st),
		newEvaluateCmd(st),
		newClassifyCmd(st),
		newConvertCmd(st),
		newConfigCmd(st),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure. SIGINT and
// SIGTERM cancel the run between stages.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// init loads configuration and installs the JSON logger on stderr.
func (st *cliState) init(cmd *cobra.Command) error {
	st.loader = config.NewLoaderWithViper(st.v)
	cfg, err := st.loader.LoadWithFile(st.cfgFile)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}
	st.cfg = cfg

	logLevel := slog.LevelInfo
	if cfg.Verbose {
		logLevel = slog.LevelDebug
	} else {
		switch cfg.LogLevel {
		case "debug":
			logLevel = slog.LevelDebug
		case "warn":
			logLevel = slog.LevelWarn
		case "error":
			logLevel = slog.LevelError
		}
	}

	logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if used := st.loader.GetConfigFileUsed(); used != "" {
		slog.Debug("Configuration loaded", "file", used)
	}
	return nil
}

// explain marks degenerate lexicon errors so they read differently from I/O failures.
func explain(err error) error {
	if errors.Is(err, classifier.ErrEmptyClass) || errors.Is(err, classifier.ErrNoSamples) ||
		errors.Is(err, classifier.ErrEmptyVocabulary) {
		return fmt.Errorf("degenerate lexicon: %w", err)
	}
	return err
}
