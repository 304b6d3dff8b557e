package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the base name for configuration files (without extension).
	ConfigFileName = "pagemend"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "PAGEMEND"
)

// Loader handles loading configuration from files, environment variables,
// and flag bindings.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	// Use the global viper instance so flag bindings made by the command
	// tree are visible here.
	return &Loader{v: viper.GetViper()}
}

// Load loads configuration from files, environment variables, and defaults,
// then validates it.
func (l *Loader) Load() (*Config, error) {
	l.v.SetConfigName(ConfigFileName)
	l.v.SetConfigType("yaml")

	l.addConfigPaths()
	l.setupEnvironmentVariables()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		// A missing config file is fine, defaults and env vars apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := l.v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// LoadWithFile loads configuration from a specific file path.
func (l *Loader) LoadWithFile(configFile string) (*Config, error) {
	if configFile == "" {
		return l.Load()
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configFile)
	}

	l.v.SetConfigFile(configFile)
	l.setupEnvironmentVariables()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
	}

	var config Config
	if err := l.v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// Set sets a value in the configuration.
func (l *Loader) Set(key string, value interface{}) {
	l.v.Set(key, value)
}

// GetConfigFileUsed returns the path of the config file used.
func (l *Loader) GetConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// GetViper returns the underlying viper instance for advanced usage.
func (l *Loader) GetViper() *viper.Viper {
	return l.v
}

// addConfigPaths adds the standard configuration search paths.
func (l *Loader) addConfigPaths() {
	l.v.AddConfigPath(".")

	if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(home)
	}

	l.v.AddConfigPath("/etc/pagemend")

	if configDir, exists := os.LookupEnv("XDG_CONFIG_HOME"); exists {
		l.v.AddConfigPath(filepath.Join(configDir, "pagemend"))
	} else if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(filepath.Join(home, ".config", "pagemend"))
	}
}

// setupEnvironmentVariables configures environment variable handling.
func (l *Loader) setupEnvironmentVariables() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.AutomaticEnv()
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

// setDefaults sets default values for all configuration options.
func (l *Loader) setDefaults() {
	defaults := DefaultConfig()

	l.v.SetDefault("log_level", defaults.LogLevel)
	l.v.SetDefault("verbose", defaults.Verbose)

	l.v.SetDefault("output.dir", defaults.Output.Dir)
	l.v.SetDefault("output.format", defaults.Output.Format)
	l.v.SetDefault("output.delimiter", defaults.Output.Delimiter)
	l.v.SetDefault("output.dry_run", defaults.Output.DryRun)
	l.v.SetDefault("output.overwrite", defaults.Output.Overwrite)

	l.v.SetDefault("repair.dedup_tolerance", defaults.Repair.DedupTolerance)
	l.v.SetDefault("repair.simplify_tolerance", defaults.Repair.SimplifyTolerance)
	l.v.SetDefault("repair.fit_into_parent", defaults.Repair.FitIntoParent)
	l.v.SetDefault("repair.update_baseline", defaults.Repair.UpdateBaseline)

	l.v.SetDefault("extend.distance", defaults.Extend.Distance)
	l.v.SetDefault("extend.create_missing", defaults.Extend.CreateMissing)
	l.v.SetDefault("extend.cut_overlaps", defaults.Extend.CutOverlaps)

	l.v.SetDefault("merge.max_x_gap", defaults.Merge.MaxXGap)
	l.v.SetDefault("merge.max_y_gap", defaults.Merge.MaxYGap)

	l.v.SetDefault("overlap.min_ratio", defaults.Overlap.MinRatio)

	l.v.SetDefault("split.columns", defaults.Split.Columns)
	l.v.SetDefault("split.padding", defaults.Split.Padding)
	l.v.SetDefault("split.min_mean_group_distance", defaults.Split.MinMeanGroupDistance)
	l.v.SetDefault("split.subtract_small_from_big", defaults.Split.SubtractSmallFromBig)

	l.v.SetDefault("pseudo.width", defaults.Pseudo.Width)
	l.v.SetDefault("pseudo.baseline_shift", defaults.Pseudo.BaselineShift)

	l.v.SetDefault("batch.workers", defaults.Batch.Workers)
	l.v.SetDefault("batch.continue_on_error", defaults.Batch.ContinueOnError)
}

// GetConfigSearchPaths returns the paths where configuration files are searched.
func GetConfigSearchPaths() []string {
	paths := []string{"."}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, home)
		paths = append(paths, filepath.Join(home, ".config", "pagemend"))
	}

	if configDir, exists := os.LookupEnv("XDG_CONFIG_HOME"); exists {
		paths = append(paths, filepath.Join(configDir, "pagemend"))
	}

	paths = append(paths, "/etc/pagemend")

	return paths
}
