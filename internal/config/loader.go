package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the base name for configuration files (without extension).
	ConfigFileName = "meridian"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "MERIDIAN"
)

// Loader handles loading configuration from various sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a loader over a fresh viper instance.
func NewLoader() *Loader {
	return NewLoaderWithViper(viper.New())
}

// NewLoaderWithViper uses v, typically one that command flags are bound to.
func NewLoaderWithViper(v *viper.Viper) *Loader {
	return &Loader{v: v}
}

// Load loads configuration from files, environment variables and defaults,
// then validates it.
func (l *Loader) Load() (*Config, error) {
	return l.LoadWithFile("")
}

// LoadWithFile loads configuration from configFile, or searches the standard
// paths when configFile is empty.
func (l *Loader) LoadWithFile(configFile string) (*Config, error) {
	cfg, err := l.LoadWithFileWithoutValidation(configFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadWithFileWithoutValidation is LoadWithFile without the final Validate.
func (l *Loader) LoadWithFileWithoutValidation(configFile string) (*Config, error) {
	l.setupEnvironmentVariables()
	l.setDefaults()

	if configFile != "" {
		if _, err := os.Stat(configFile); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file does not exist: %s", configFile)
		}
		l.v.SetConfigFile(configFile)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	} else {
		l.v.SetConfigName(ConfigFileName)
		l.v.SetConfigType("yaml")
		for _, p := range GetConfigSearchPaths() {
			l.v.AddConfigPath(p)
		}
		if err := l.v.ReadInConfig(); err != nil {
			// A missing config file is fine; defaults and env vars still apply.
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var config Config
	if err := l.v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// GetConfigFileUsed returns the path of the config file used.
func (l *Loader) GetConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// GetViper returns the underlying viper instance.
func (l *Loader) GetViper() *viper.Viper {
	return l.v
}

// setupEnvironmentVariables maps keys like scan.threshold to MERIDIAN_SCAN_THRESHOLD.
func (l *Loader) setupEnvironmentVariables() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.AutomaticEnv()
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

// setDefaults sets default values for all configuration options.
func (l *Loader) setDefaults() {
	d := DefaultConfig()

	l.v.SetDefault("log_level", d.LogLevel)
	l.v.SetDefault("verbose", d.Verbose)

	l.v.SetDefault("lexicon.spanish_path", d.Lexicon.SpanishPath)
	l.v.SetDefault("lexicon.english_path", d.Lexicon.EnglishPath)
	l.v.SetDefault("lexicon.keep_blank", d.Lexicon.KeepBlank)

	l.v.SetDefault("document.path", d.Document.Path)

	l.v.SetDefault("output.words_path", d.Output.WordsPath)
	l.v.SetDefault("output.dialogue_path", d.Output.DialoguePath)
	l.v.SetDefault("output.format", d.Output.Format)
	l.v.SetDefault("output.metrics_file", d.Output.MetricsFile)

	l.v.SetDefault("model.min_n", d.Model.MinN)
	l.v.SetDefault("model.max_n", d.Model.MaxN)
	l.v.SetDefault("model.smoothing", d.Model.Smoothing)
	l.v.SetDefault("model.ignore_unseen", d.Model.IgnoreUnseen)
	l.v.SetDefault("model.allow_empty_class", d.Model.AllowEmptyClass)

	l.v.SetDefault("scan.threshold", d.Scan.Threshold)
	l.v.SetDefault("scan.target", d.Scan.Target)

	l.v.SetDefault("evaluation.enabled", d.Evaluation.Enabled)
	l.v.SetDefault("evaluation.test_fraction", d.Evaluation.TestFraction)
	l.v.SetDefault("evaluation.seed", d.Evaluation.Seed)

	l.v.SetDefault("convert.pages", d.Convert.Pages)
	l.v.SetDefault("convert.strip_patterns", d.Convert.StripPatterns)
	l.v.SetDefault("convert.dialogue_verbs", d.Convert.DialogueVerbs)
}

// GenerateDefaultConfigFile writes the default configuration as YAML.
func GenerateDefaultConfigFile(filename string) error {
	if filename == "" {
		filename = ConfigFileName + ".yaml"
	}
	data, err := MarshalYAML(DefaultConfig())
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil { //nolint:gosec // config files are meant to be readable
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// MarshalYAML renders cfg with its yaml tags.
func MarshalYAML(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// GetConfigSearchPaths returns the paths where configuration files are searched.
func GetConfigSearchPaths() []string {
	paths := []string{"."}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, home)
	}

	if configDir, exists := os.LookupEnv("XDG_CONFIG_HOME"); exists {
		paths = append(paths, filepath.Join(configDir, "meridian"))
	} else if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "meridian"))
	}

	paths = append(paths, "/etc/meridian")

	return paths
}
