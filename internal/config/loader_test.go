package config

import (
	"os"
	"path/filepath"
	"testing"
)

// chdir moves into dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(originalWd) })
}

// isolate keeps the user's real config files out of the search paths.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	return dir
}

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	if loader == nil || loader.v == nil {
		t.Fatal("NewLoader() returned an unusable loader")
	}
}

func TestLoadWithNoConfigFile(t *testing.T) {
	isolate(t)

	cfg, err := NewLoader().Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level 'info', got %s", cfg.LogLevel)
	}
	if cfg.Scan.Threshold != 0.5 {
		t.Errorf("Expected default threshold 0.5, got %v", cfg.Scan.Threshold)
	}
	if len(cfg.Convert.DialogueVerbs) != 5 {
		t.Errorf("Expected 5 default dialogue verbs, got %v", cfg.Convert.DialogueVerbs)
	}
}

func TestLoadFromSearchPath(t *testing.T) {
	dir := isolate(t)

	content := `
log_level: debug
lexicon:
  spanish_path: es.txt
scan:
  threshold: 0.6
evaluation:
  seed: 7
`
	if err := os.WriteFile(filepath.Join(dir, "meridian.yaml"), []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	loader := NewLoader()
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.LogLevel)
	}
	if cfg.Lexicon.SpanishPath != "es.txt" {
		t.Errorf("Expected spanish path es.txt, got %s", cfg.Lexicon.SpanishPath)
	}
	if cfg.Lexicon.EnglishPath != "english_dictionary.txt" {
		t.Errorf("Expected default english path, got %s", cfg.Lexicon.EnglishPath)
	}
	if cfg.Scan.Threshold != 0.6 {
		t.Errorf("Expected threshold 0.6, got %v", cfg.Scan.Threshold)
	}
	if cfg.Evaluation.Seed != 7 {
		t.Errorf("Expected seed 7, got %d", cfg.Evaluation.Seed)
	}
	if filepath.Base(loader.GetConfigFileUsed()) != "meridian.yaml" {
		t.Errorf("Unexpected config file used: %s", loader.GetConfigFileUsed())
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("scan:\n  threshold: 0.6\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	t.Setenv("MERIDIAN_SCAN_THRESHOLD", "0.8")
	t.Setenv("MERIDIAN_EVALUATION_ENABLED", "false")

	cfg, err := NewLoader().LoadWithFile(path)
	if err != nil {
		t.Fatalf("LoadWithFile() unexpected error: %v", err)
	}
	if cfg.Scan.Threshold != 0.8 {
		t.Errorf("Expected env threshold 0.8, got %v", cfg.Scan.Threshold)
	}
	if cfg.Evaluation.Enabled {
		t.Error("Expected evaluation disabled by env")
	}
}

func TestLoadWithFileErrors(t *testing.T) {
	dir := isolate(t)

	if _, err := NewLoader().LoadWithFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("scan: [unclosed"), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if _, err := NewLoader().LoadWithFile(bad); err == nil {
		t.Error("Expected error for malformed YAML")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("scan:\n  threshold: 2\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if _, err := NewLoader().LoadWithFile(invalid); err == nil {
		t.Error("Expected validation error for threshold 2")
	}
	cfg, err := NewLoader().LoadWithFileWithoutValidation(invalid)
	if err != nil {
		t.Fatalf("LoadWithFileWithoutValidation() unexpected error: %v", err)
	}
	if cfg.Scan.Threshold != 2 {
		t.Errorf("Expected raw threshold 2, got %v", cfg.Scan.Threshold)
	}
}

func TestGenerateDefaultConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "generated.yaml")

	if err := GenerateDefaultConfigFile(path); err != nil {
		t.Fatalf("GenerateDefaultConfigFile() error: %v", err)
	}
	cfg, err := NewLoader().LoadWithFile(path)
	if err != nil {
		t.Fatalf("Loading generated file failed: %v", err)
	}
	if cfg.Document.Path != "Blood-Meridian.txt" {
		t.Errorf("Unexpected document path %s", cfg.Document.Path)
	}
}

func TestGetConfigSearchPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	paths := GetConfigSearchPaths()
	if paths[0] != "." {
		t.Errorf("Expected current directory first, got %s", paths[0])
	}
	want := map[string]bool{"/tmp/xdg/meridian": false, "/etc/meridian": false}
	for _, p := range paths {
		if _, ok := want[p]; ok {
			want[p] = true
		}
	}
	for p, found := range want {
		if !found {
			t.Errorf("Expected search path %s in %v", p, paths)
		}
	}
}
