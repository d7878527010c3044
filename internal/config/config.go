package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/TheApexWu/BloodMeridianNLP/internal/classifier"
	"github.com/TheApexWu/BloodMeridianNLP/internal/evaluate"
	"github.com/TheApexWu/BloodMeridianNLP/internal/lexicon"
	"github.com/TheApexWu/BloodMeridianNLP/internal/ngram"
	"github.com/TheApexWu/BloodMeridianNLP/internal/pdf"
	"github.com/TheApexWu/BloodMeridianNLP/internal/pipeline"
	"github.com/TheApexWu/BloodMeridianNLP/internal/scan"
)

// Config represents the complete configuration for the meridian application.
// It is loaded from configuration files, environment variables and
// command-line flags.
type Config struct {
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	Lexicon    LexiconConfig    `mapstructure:"lexicon" yaml:"lexicon" json:"lexicon"`
	Document   DocumentConfig   `mapstructure:"document" yaml:"document" json:"document"`
	Output     OutputConfig     `mapstructure:"output" yaml:"output" json:"output"`
	Model      ModelConfig      `mapstructure:"model" yaml:"model" json:"model"`
	Scan       ScanConfig       `mapstructure:"scan" yaml:"scan" json:"scan"`
	Evaluation EvaluationConfig `mapstructure:"evaluation" yaml:"evaluation" json:"evaluation"`
	Convert    ConvertConfig    `mapstructure:"convert" yaml:"convert" json:"convert"`
}

// LexiconConfig locates the two word lists.
type LexiconConfig struct {
	SpanishPath string `mapstructure:"spanish_path" yaml:"spanish_path" json:"spanish_path"`
	EnglishPath string `mapstructure:"english_path" yaml:"english_path" json:"english_path"`
	KeepBlank   bool   `mapstructure:"keep_blank" yaml:"keep_blank" json:"keep_blank"`
}

// DocumentConfig locates the document to scan.
type DocumentConfig struct {
	Path string `mapstructure:"path" yaml:"path" json:"path"`
}

// OutputConfig contains artifact and report settings.
type OutputConfig struct {
	WordsPath    string `mapstructure:"words_path" yaml:"words_path" json:"words_path"`
	DialoguePath string `mapstructure:"dialogue_path" yaml:"dialogue_path" json:"dialogue_path"`
	Format       string `mapstructure:"format" yaml:"format" json:"format"`
	MetricsFile  string `mapstructure:"metrics_file" yaml:"metrics_file" json:"metrics_file"`
}

// ModelConfig contains feature and classifier settings.
type ModelConfig struct {
	MinN            int     `mapstructure:"min_n" yaml:"min_n" json:"min_n"`
	MaxN            int     `mapstructure:"max_n" yaml:"max_n" json:"max_n"`
	Smoothing       float64 `mapstructure:"smoothing" yaml:"smoothing" json:"smoothing"`
	IgnoreUnseen    bool    `mapstructure:"ignore_unseen" yaml:"ignore_unseen" json:"ignore_unseen"`
	AllowEmptyClass bool    `mapstructure:"allow_empty_class" yaml:"allow_empty_class" json:"allow_empty_class"`
}

// ScanConfig contains dialogue extraction settings.
type ScanConfig struct {
	Threshold float64 `mapstructure:"threshold" yaml:"threshold" json:"threshold"`
	Target    string  `mapstructure:"target" yaml:"target" json:"target"`
}

// EvaluationConfig controls the held-out evaluation phase.
type EvaluationConfig struct {
	Enabled      bool    `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	TestFraction float64 `mapstructure:"test_fraction" yaml:"test_fraction" json:"test_fraction"`
	Seed         uint64  `mapstructure:"seed" yaml:"seed" json:"seed"`
}

// ConvertConfig contains PDF conversion settings.
type ConvertConfig struct {
	Pages         string   `mapstructure:"pages" yaml:"pages" json:"pages"`
	StripPatterns []string `mapstructure:"strip_patterns" yaml:"strip_patterns" json:"strip_patterns"`
	DialogueVerbs []string `mapstructure:"dialogue_verbs" yaml:"dialogue_verbs" json:"dialogue_verbs"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	p := pipeline.DefaultConfig()
	clean := pdf.DefaultCleanOptions()
	return Config{
		LogLevel: "info",
		Lexicon: LexiconConfig{
			SpanishPath: p.SpanishPath,
			EnglishPath: p.EnglishPath,
		},
		Document: DocumentConfig{Path: p.DocumentPath},
		Output: OutputConfig{
			WordsPath:    p.WordsPath,
			DialoguePath: p.DialoguePath,
			Format:       "text",
		},
		Model: ModelConfig{
			MinN:      ngram.DefaultMinN,
			MaxN:      ngram.DefaultMaxN,
			Smoothing: classifier.DefaultSmoothing,
		},
		Scan: ScanConfig{
			Threshold: scan.DefaultThreshold,
			Target:    classifier.Spanish.String(),
		},
		Evaluation: EvaluationConfig{
			Enabled:      true,
			TestFraction: evaluate.DefaultTestFraction,
			Seed:         evaluate.DefaultSeed,
		},
		Convert: ConvertConfig{
			StripPatterns: clean.StripPatterns,
			DialogueVerbs: clean.DialogueVerbs,
		},
	}
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	if c.Output.Format != "" && !slices.Contains(evaluate.Formats, c.Output.Format) {
		return fmt.Errorf("invalid output format: %s (must be one of: %s)", c.Output.Format, strings.Join(evaluate.Formats, ", "))
	}

	if c.Lexicon.SpanishPath == "" || c.Lexicon.EnglishPath == "" {
		return errors.New("lexicon paths must not be empty")
	}

	if _, err := ngram.NewExtractor(c.Model.MinN, c.Model.MaxN); err != nil {
		return fmt.Errorf("invalid model n-gram range: %w", err)
	}
	if c.Model.Smoothing <= 0 {
		return fmt.Errorf("invalid model.smoothing: %v (must be positive)", c.Model.Smoothing)
	}

	if c.Scan.Threshold < 0 || c.Scan.Threshold >= 1 {
		return fmt.Errorf("invalid scan.threshold: %.2f (must be in [0.0, 1.0))", c.Scan.Threshold)
	}
	if _, err := classifier.ParseLabel(c.Scan.Target); err != nil {
		return fmt.Errorf("invalid scan.target: %w", err)
	}

	if c.Evaluation.TestFraction <= 0 || c.Evaluation.TestFraction >= 1 {
		return fmt.Errorf("invalid evaluation.test_fraction: %.2f (must be between 0.0 and 1.0, exclusive)", c.Evaluation.TestFraction)
	}

	if _, err := pdf.NewCleaner(c.toCleanOptions()); err != nil {
		return fmt.Errorf("invalid convert rules: %w", err)
	}

	return nil
}

// ToPipelineConfig converts the config to the internal pipeline configuration format.
func (c *Config) ToPipelineConfig() pipeline.Config {
	return pipeline.Config{
		SpanishPath:  c.Lexicon.SpanishPath,
		EnglishPath:  c.Lexicon.EnglishPath,
		Lexicon:      lexicon.Options{KeepBlank: c.Lexicon.KeepBlank},
		DocumentPath: c.Document.Path,
		WordsPath:    c.Output.WordsPath,
		DialoguePath: c.Output.DialoguePath,
		MetricsFile:  c.Output.MetricsFile,
		Classifier:   c.toClassifierOptions(),
		Scan:         c.toScanOptions(),
		Evaluate:     c.Evaluation.Enabled,
		TestFraction: c.Evaluation.TestFraction,
		Seed:         c.Evaluation.Seed,
	}
}

// ToConvertOptions converts the config to pdf.Options.
func (c *Config) ToConvertOptions() pdf.Options {
	return pdf.Options{
		Pages: c.Convert.Pages,
		Clean: c.toCleanOptions(),
	}
}

func (c *Config) toClassifierOptions() classifier.Options {
	opts := classifier.DefaultOptions()
	opts.Extractor = ngram.Extractor{MinN: c.Model.MinN, MaxN: c.Model.MaxN}
	opts.Smoothing = c.Model.Smoothing
	opts.IgnoreUnseen = c.Model.IgnoreUnseen
	opts.AllowEmptyClass = c.Model.AllowEmptyClass
	return opts
}

// toScanOptions falls back to Spanish for an unparsable target; Validate rejects those.
func (c *Config) toScanOptions() scan.Options {
	target, err := classifier.ParseLabel(c.Scan.Target)
	if err != nil {
		target = classifier.Spanish
	}
	return scan.Options{Threshold: c.Scan.Threshold, Target: target}
}

func (c *Config) toCleanOptions() pdf.CleanOptions {
	return pdf.CleanOptions{
		StripPatterns: c.Convert.StripPatterns,
		DialogueVerbs: c.Convert.DialogueVerbs,
	}
}
