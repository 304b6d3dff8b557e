package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

// resetViper clears the shared viper instance between tests; the loader
// deliberately uses the global instance so flag bindings stay visible.
func resetViper() {
	viper.Reset()
}

// TestNewLoader tests loader creation.
func TestNewLoader(t *testing.T) {
	resetViper()
	loader := NewLoader()
	if loader == nil {
		t.Fatal("NewLoader() returned nil")
	}
	if loader.v == nil {
		t.Error("Loader viper instance is nil")
	}
}

// TestLoadWithNoConfigFile tests loading with no config file present.
func TestLoadWithNoConfigFile(t *testing.T) {
	resetViper()

	tmpDir := t.TempDir()
	originalWd, _ := os.Getwd()
	defer func() { _ = os.Chdir(originalWd) }()

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}

	loader := NewLoader()
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	// Should get default values
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level 'info', got %s", cfg.LogLevel)
	}
	if cfg.Batch.Workers != 4 {
		t.Errorf("Expected default workers 4, got %d", cfg.Batch.Workers)
	}
	if cfg.Extend.Distance != 16 {
		t.Errorf("Expected default extend distance 16, got %v", cfg.Extend.Distance)
	}
}

// TestLoadWithValidYAMLFile tests loading from a valid YAML file.
func TestLoadWithValidYAMLFile(t *testing.T) {
	resetViper()

	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "pagemend.yaml")

	yamlContent := `
log_level: debug
verbose: true
output:
  dir: /custom/out
  format: json
repair:
  dedup_tolerance: 2.5
  fit_into_parent: true
merge:
  max_x_gap: 32
split:
  min_mean_group_distance: 300
`

	if err := os.WriteFile(configFile, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	loader := NewLoader()
	cfg, err := loader.LoadWithFile(configFile)
	if err != nil {
		t.Fatalf("LoadWithFile() unexpected error: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level 'debug', got %s", cfg.LogLevel)
	}
	if !cfg.Verbose {
		t.Error("Expected verbose to be true")
	}
	if cfg.Output.Dir != "/custom/out" {
		t.Errorf("Expected output dir '/custom/out', got %s", cfg.Output.Dir)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Expected output format 'json', got %s", cfg.Output.Format)
	}
	if cfg.Repair.DedupTolerance != 2.5 {
		t.Errorf("Expected dedup tolerance 2.5, got %v", cfg.Repair.DedupTolerance)
	}
	if !cfg.Repair.FitIntoParent {
		t.Error("Expected fit_into_parent to be true")
	}
	if cfg.Merge.MaxXGap != 32 {
		t.Errorf("Expected max_x_gap 32, got %d", cfg.Merge.MaxXGap)
	}
	if cfg.Split.MinMeanGroupDistance != 300 {
		t.Errorf("Expected min_mean_group_distance 300, got %d", cfg.Split.MinMeanGroupDistance)
	}

	// Unset values fall back to defaults.
	if cfg.Merge.MaxYGap != 10 {
		t.Errorf("Expected default max_y_gap 10, got %d", cfg.Merge.MaxYGap)
	}
	if loader.GetConfigFileUsed() != configFile {
		t.Errorf("Expected config file %s, got %s", configFile, loader.GetConfigFileUsed())
	}
}

// TestLoadWithInvalidValues tests that validation rejects bad files.
func TestLoadWithInvalidValues(t *testing.T) {
	resetViper()

	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "pagemend.yaml")
	if err := os.WriteFile(configFile, []byte("log_level: loud\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	loader := NewLoader()
	if _, err := loader.LoadWithFile(configFile); err == nil {
		t.Error("LoadWithFile() expected validation error")
	}
}

// TestLoadWithMissingFile tests loading from a nonexistent explicit path.
func TestLoadWithMissingFile(t *testing.T) {
	resetViper()

	loader := NewLoader()
	if _, err := loader.LoadWithFile("/nonexistent/pagemend.yaml"); err == nil {
		t.Error("LoadWithFile() expected error for missing file")
	}
}

// TestLoaderSet tests explicit overrides.
func TestLoaderSet(t *testing.T) {
	resetViper()

	tmpDir := t.TempDir()
	originalWd, _ := os.Getwd()
	defer func() { _ = os.Chdir(originalWd) }()
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}

	loader := NewLoader()
	loader.Set("batch.workers", 8)
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Batch.Workers != 8 {
		t.Errorf("Expected workers 8, got %d", cfg.Batch.Workers)
	}
}

// TestGetConfigSearchPaths tests the documented search path list.
func TestGetConfigSearchPaths(t *testing.T) {
	paths := GetConfigSearchPaths()
	if len(paths) == 0 {
		t.Fatal("GetConfigSearchPaths() returned no paths")
	}
	if paths[0] != "." {
		t.Errorf("Expected first search path '.', got %s", paths[0])
	}
	if paths[len(paths)-1] != "/etc/pagemend" {
		t.Errorf("Expected last search path '/etc/pagemend', got %s", paths[len(paths)-1])
	}
}
