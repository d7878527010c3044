// Package pipeline runs the two-phase protocol: load the lexicon, evaluate on a
// held-out split, refit on every sample, then scan a document and write the
// extracted words and dialogue.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/TheApexWu/BloodMeridianNLP/internal/classifier"
	"github.com/TheApexWu/BloodMeridianNLP/internal/evaluate"
	"github.com/TheApexWu/BloodMeridianNLP/internal/lexicon"
	"github.com/TheApexWu/BloodMeridianNLP/internal/metrics"
	"github.com/TheApexWu/BloodMeridianNLP/internal/scan"
)

// Default file locations, relative to the working directory.
const (
	DefaultSpanishPath  = "spanish_dictionary.txt"
	DefaultEnglishPath  = "english_dictionary.txt"
	DefaultDocumentPath = "Blood-Meridian.txt"
	DefaultWordsPath    = "Blood-Meridian-Spanish-Words-Model.txt"
	DefaultDialoguePath = "Blood-Meridian-Spanish-Dialogue-Model.txt"
)

// Config holds everything a run needs.
type Config struct {
	SpanishPath string
	EnglishPath string
	Lexicon     lexicon.Options

	DocumentPath string
	WordsPath    string
	DialoguePath string
	MetricsFile  string // optional Prometheus textfile

	Classifier classifier.Options
	Scan       scan.Options

	Evaluate     bool
	TestFraction float64
	Seed         uint64
}

// DefaultConfig returns the stock file names and model settings.
func DefaultConfig() Config {
	return Config{
		SpanishPath:  DefaultSpanishPath,
		EnglishPath:  DefaultEnglishPath,
		DocumentPath: DefaultDocumentPath,
		WordsPath:    DefaultWordsPath,
		DialoguePath: DefaultDialoguePath,
		Classifier:   classifier.DefaultOptions(),
		Scan:         scan.DefaultOptions(),
		Evaluate:     true,
		TestFraction: evaluate.DefaultTestFraction,
		Seed:         evaluate.DefaultSeed,
	}
}

// EvaluationOptions derives the evaluator options from the config.
func (c Config) EvaluationOptions() evaluate.Options {
	return evaluate.Options{
		TestFraction: c.TestFraction,
		Seed:         c.Seed,
		Classifier:   c.Classifier,
	}
}

// Builder constructs a Pipeline with fluent configuration.
type Builder struct {
	cfg      Config
	recorder *metrics.Recorder
	logger   *slog.Logger
}

// NewBuilder creates a new pipeline builder with defaults.
func NewBuilder() *Builder { return &Builder{cfg: DefaultConfig()} }

// NewBuilderFromConfig starts from an existing config.
func NewBuilderFromConfig(cfg Config) *Builder { return &Builder{cfg: cfg} }

// WithLexicon sets both word list paths. Empty values keep the current ones.
func (b *Builder) WithLexicon(spanishPath, englishPath string) *Builder {
	if spanishPath != "" {
		b.cfg.SpanishPath = spanishPath
	}
	if englishPath != "" {
		b.cfg.EnglishPath = englishPath
	}
	return b
}

// WithDocument sets the document to scan.
func (b *Builder) WithDocument(path string) *Builder {
	if path != "" {
		b.cfg.DocumentPath = path
	}
	return b
}

// WithOutputs sets the artifact paths.
func (b *Builder) WithOutputs(wordsPath, dialoguePath string) *Builder {
	if wordsPath != "" {
		b.cfg.WordsPath = wordsPath
	}
	if dialoguePath != "" {
		b.cfg.DialoguePath = dialoguePath
	}
	return b
}

// WithThreshold sets the dialogue purity threshold.
func (b *Builder) WithThreshold(th float64) *Builder {
	b.cfg.Scan.Threshold = th
	return b
}

// WithEvaluation toggles the held-out evaluation phase.
func (b *Builder) WithEvaluation(enabled bool) *Builder {
	b.cfg.Evaluate = enabled
	return b
}

// WithSeed sets the split seed.
func (b *Builder) WithSeed(seed uint64) *Builder {
	b.cfg.Seed = seed
	return b
}

// WithMetricsFile enables writing a metrics textfile after the run.
func (b *Builder) WithMetricsFile(path string) *Builder {
	b.cfg.MetricsFile = path
	return b
}

// WithRecorder uses r instead of a fresh recorder.
func (b *Builder) WithRecorder(r *metrics.Recorder) *Builder {
	b.recorder = r
	return b
}

// WithLogger overrides slog.Default().
func (b *Builder) WithLogger(l *slog.Logger) *Builder {
	b.logger = l
	return b
}

// Config returns a copy of the current config.
func (b *Builder) Config() Config { return b.cfg }

// Validate checks that the configuration is usable.
func (b *Builder) Validate() error {
	return b.cfg.Validate()
}

// Validate checks required paths and component options.
func (c Config) Validate() error {
	if c.SpanishPath == "" {
		return errors.New("spanish lexicon path is empty")
	}
	if c.EnglishPath == "" {
		return errors.New("english lexicon path is empty")
	}
	if err := c.Classifier.Validate(); err != nil {
		return fmt.Errorf("classifier: %w", err)
	}
	if err := c.Scan.Validate(); err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	if c.Evaluate && !(c.TestFraction > 0 && c.TestFraction < 1) {
		return fmt.Errorf("test fraction must be between 0 and 1, got %v", c.TestFraction)
	}
	return nil
}

// Pipeline wires the lexicon, classifier, evaluator and scanner together.
type Pipeline struct {
	cfg      Config
	recorder *metrics.Recorder
	logger   *slog.Logger
}

// Build validates the config and returns a ready pipeline.
func (b *Builder) Build() (*Pipeline, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	p := &Pipeline{cfg: b.cfg, recorder: b.recorder, logger: b.logger}
	if p.recorder == nil {
		p.recorder = metrics.New()
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p, nil
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() Config { return p.cfg }

// Recorder returns the metrics recorder used by the pipeline.
func (p *Pipeline) Recorder() *metrics.Recorder { return p.recorder }
