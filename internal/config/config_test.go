package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/TheApexWu/BloodMeridianNLP/internal/classifier"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "spanish_dictionary.txt", cfg.Lexicon.SpanishPath)
	assert.Equal(t, "english_dictionary.txt", cfg.Lexicon.EnglishPath)
	assert.Equal(t, "Blood-Meridian.txt", cfg.Document.Path)
	assert.Equal(t, "Blood-Meridian-Spanish-Words-Model.txt", cfg.Output.WordsPath)
	assert.Equal(t, "Blood-Meridian-Spanish-Dialogue-Model.txt", cfg.Output.DialoguePath)
	assert.Equal(t, 2, cfg.Model.MinN)
	assert.Equal(t, 4, cfg.Model.MaxN)
	assert.InDelta(t, 1.0, cfg.Model.Smoothing, 0)
	assert.InDelta(t, 0.5, cfg.Scan.Threshold, 0)
	assert.Equal(t, "spanish", cfg.Scan.Target)
	assert.True(t, cfg.Evaluation.Enabled)
	assert.InDelta(t, 0.2, cfg.Evaluation.TestFraction, 0)
	assert.Equal(t, uint64(42), cfg.Evaluation.Seed)
	assert.Contains(t, cfg.Convert.DialogueVerbs, "replied")

	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "invalid log level"},
		{"format", func(c *Config) { c.Output.Format = "xml" }, "invalid output format"},
		{"lexicon path", func(c *Config) { c.Lexicon.EnglishPath = "" }, "lexicon paths"},
		{"ngram range", func(c *Config) { c.Model.MinN = 5 }, "n-gram range"},
		{"zero min n", func(c *Config) { c.Model.MinN = 0 }, "n-gram range"},
		{"smoothing", func(c *Config) { c.Model.Smoothing = 0 }, "model.smoothing"},
		{"threshold high", func(c *Config) { c.Scan.Threshold = 1 }, "scan.threshold"},
		{"threshold negative", func(c *Config) { c.Scan.Threshold = -0.1 }, "scan.threshold"},
		{"target", func(c *Config) { c.Scan.Target = "french" }, "scan.target"},
		{"fraction", func(c *Config) { c.Evaluation.TestFraction = 1 }, "test_fraction"},
		{"strip pattern", func(c *Config) { c.Convert.StripPatterns = []string{"(("} }, "convert rules"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestToPipelineConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Lexicon.KeepBlank = true
	cfg.Output.MetricsFile = "run.prom"
	cfg.Model.MinN = 1
	cfg.Model.MaxN = 3
	cfg.Model.Smoothing = 0.5
	cfg.Model.IgnoreUnseen = true
	cfg.Scan.Threshold = 0.75
	cfg.Scan.Target = "en"
	cfg.Evaluation.Enabled = false
	cfg.Evaluation.Seed = 7

	p := cfg.ToPipelineConfig()

	assert.Equal(t, cfg.Lexicon.SpanishPath, p.SpanishPath)
	assert.True(t, p.Lexicon.KeepBlank)
	assert.Equal(t, "run.prom", p.MetricsFile)
	assert.Equal(t, 1, p.Classifier.Extractor.MinN)
	assert.Equal(t, 3, p.Classifier.Extractor.MaxN)
	assert.InDelta(t, 0.5, p.Classifier.Smoothing, 0)
	assert.True(t, p.Classifier.IgnoreUnseen)
	assert.InDelta(t, 0.75, p.Scan.Threshold, 0)
	assert.Equal(t, classifier.English, p.Scan.Target)
	assert.False(t, p.Evaluate)
	assert.Equal(t, uint64(7), p.Seed)
	require.NoError(t, p.Validate())
}

func TestToConvertOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Convert.Pages = "1-3"

	opts := cfg.ToConvertOptions()
	assert.Equal(t, "1-3", opts.Pages)
	assert.Equal(t, cfg.Convert.StripPatterns, opts.Clean.StripPatterns)
	assert.Empty(t, opts.Password)
}

func TestMarshalYAML_RoundTrip(t *testing.T) {
	data, err := MarshalYAML(DefaultConfig())
	require.NoError(t, err)
	assert.Contains(t, string(data), "spanish_path: spanish_dictionary.txt")
	assert.Contains(t, string(data), "test_fraction: 0.2")

	var back Config
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, DefaultConfig(), back)
}
