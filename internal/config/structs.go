package config

import (
	"fmt"
	"strings"
)

// Config represents the complete configuration for the pagemend application.
// It covers every command (validate, repair, extend, sort-merge, split,
// fulltext, dsv, stats) and supports loading from configuration files,
// environment variables, and command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Output configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Shape repair configuration
	Repair RepairConfig `mapstructure:"repair" yaml:"repair" json:"repair"`

	// Baseline extension configuration
	Extend ExtendConfig `mapstructure:"extend" yaml:"extend" json:"extend"`

	// Line merging configuration
	Merge MergeConfig `mapstructure:"merge" yaml:"merge" json:"merge"`

	// Overlap resolution configuration
	Overlap OverlapConfig `mapstructure:"overlap" yaml:"overlap" json:"overlap"`

	// Column splitting configuration
	Split SplitConfig `mapstructure:"split" yaml:"split" json:"split"`

	// Pseudo line polygon configuration
	Pseudo PseudoConfig `mapstructure:"pseudo" yaml:"pseudo" json:"pseudo"`

	// Batch processing configuration
	Batch BatchConfig `mapstructure:"batch" yaml:"batch" json:"batch"`
}

// OutputConfig contains output destination and formatting settings.
type OutputConfig struct {
	Dir       string `mapstructure:"dir" yaml:"dir" json:"dir"`
	Format    string `mapstructure:"format" yaml:"format" json:"format"`
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter" json:"delimiter"`
	DryRun    bool   `mapstructure:"dry_run" yaml:"dry_run" json:"dry_run"`
	Overwrite bool   `mapstructure:"overwrite" yaml:"overwrite" json:"overwrite"`
}

// RepairConfig contains shape repair settings.
type RepairConfig struct {
	DedupTolerance    float64 `mapstructure:"dedup_tolerance" yaml:"dedup_tolerance" json:"dedup_tolerance"`
	SimplifyTolerance float64 `mapstructure:"simplify_tolerance" yaml:"simplify_tolerance" json:"simplify_tolerance"`
	FitIntoParent     bool    `mapstructure:"fit_into_parent" yaml:"fit_into_parent" json:"fit_into_parent"`
	UpdateBaseline    bool    `mapstructure:"update_baseline" yaml:"update_baseline" json:"update_baseline"`
}

// ExtendConfig contains line and baseline extension settings.
type ExtendConfig struct {
	Distance      float64 `mapstructure:"distance" yaml:"distance" json:"distance"`
	CreateMissing bool    `mapstructure:"create_missing" yaml:"create_missing" json:"create_missing"`
	CutOverlaps   bool    `mapstructure:"cut_overlaps" yaml:"cut_overlaps" json:"cut_overlaps"`
}

// MergeConfig contains settings for joining wrongly split lines.
type MergeConfig struct {
	MaxXGap int `mapstructure:"max_x_gap" yaml:"max_x_gap" json:"max_x_gap"`
	MaxYGap int `mapstructure:"max_y_gap" yaml:"max_y_gap" json:"max_y_gap"`
}

// OverlapConfig contains settings for resolving overlapping line shapes.
type OverlapConfig struct {
	MinRatio float64 `mapstructure:"min_ratio" yaml:"min_ratio" json:"min_ratio"`
}

// SplitConfig contains settings for splitting regions by column.
type SplitConfig struct {
	Columns              int     `mapstructure:"columns" yaml:"columns" json:"columns"`
	Padding              float64 `mapstructure:"padding" yaml:"padding" json:"padding"`
	MinMeanGroupDistance int     `mapstructure:"min_mean_group_distance" yaml:"min_mean_group_distance" json:"min_mean_group_distance"`
	SubtractSmallFromBig bool    `mapstructure:"subtract_small_from_big" yaml:"subtract_small_from_big" json:"subtract_small_from_big"`
}

// PseudoConfig contains settings for rebuilding line polygons from their
// baselines.
type PseudoConfig struct {
	Width         float64 `mapstructure:"width" yaml:"width" json:"width"`
	BaselineShift int     `mapstructure:"baseline_shift" yaml:"baseline_shift" json:"baseline_shift"`
}

// BatchConfig contains batch processing settings.
type BatchConfig struct {
	Workers         int  `mapstructure:"workers" yaml:"workers" json:"workers"`
	ContinueOnError bool `mapstructure:"continue_on_error" yaml:"continue_on_error" json:"continue_on_error"`
}

// DefaultConfig returns a configuration with reasonable defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Verbose:  false,
		Output: OutputConfig{
			Dir:       "",
			Format:    "text",
			Delimiter: "\t",
			DryRun:    false,
			Overwrite: false,
		},
		Repair: RepairConfig{
			DedupTolerance:    1,
			SimplifyTolerance: 0,
			FitIntoParent:     false,
			UpdateBaseline:    true,
		},
		Extend: ExtendConfig{
			Distance:      16,
			CreateMissing: true,
			CutOverlaps:   true,
		},
		Merge: MergeConfig{
			MaxXGap: 64,
			MaxYGap: 10,
		},
		Overlap: OverlapConfig{
			MinRatio: 0.05,
		},
		Split: SplitConfig{
			Columns:              2,
			Padding:              12,
			MinMeanGroupDistance: 500,
			SubtractSmallFromBig: true,
		},
		Pseudo: PseudoConfig{
			Width:         16,
			BaselineShift: 10,
		},
		Batch: BatchConfig{
			Workers:         4,
			ContinueOnError: true,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q (expected debug, info, warn, or error)", c.LogLevel)
	}

	switch c.Output.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid output format %q (expected text or json)", c.Output.Format)
	}
	if c.Output.Delimiter == "" {
		return fmt.Errorf("output delimiter must not be empty")
	}

	if c.Repair.SimplifyTolerance < 0 {
		return fmt.Errorf("repair simplify_tolerance must not be negative, got %v", c.Repair.SimplifyTolerance)
	}
	if c.Repair.DedupTolerance < 0 {
		return fmt.Errorf("repair dedup_tolerance must not be negative, got %v", c.Repair.DedupTolerance)
	}

	if c.Extend.Distance < 0 {
		return fmt.Errorf("extend distance must not be negative, got %v", c.Extend.Distance)
	}

	if c.Merge.MaxXGap < 0 {
		return fmt.Errorf("merge max_x_gap must not be negative, got %d", c.Merge.MaxXGap)
	}
	if c.Merge.MaxYGap < 0 {
		return fmt.Errorf("merge max_y_gap must not be negative, got %d", c.Merge.MaxYGap)
	}

	if c.Overlap.MinRatio < 0 || c.Overlap.MinRatio > 1 {
		return fmt.Errorf("overlap min_ratio must be between 0 and 1, got %v", c.Overlap.MinRatio)
	}

	if c.Split.Columns < 2 {
		return fmt.Errorf("split columns must be at least 2, got %d", c.Split.Columns)
	}
	if c.Split.Padding < 0 {
		return fmt.Errorf("split padding must not be negative, got %v", c.Split.Padding)
	}
	if c.Split.MinMeanGroupDistance < 0 {
		return fmt.Errorf("split min_mean_group_distance must not be negative, got %v", c.Split.MinMeanGroupDistance)
	}

	if c.Pseudo.Width <= 0 {
		return fmt.Errorf("pseudo width must be positive, got %v", c.Pseudo.Width)
	}
	if c.Pseudo.BaselineShift < 0 {
		return fmt.Errorf("pseudo baseline_shift must not be negative, got %d", c.Pseudo.BaselineShift)
	}

	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch workers must be at least 1, got %d", c.Batch.Workers)
	}

	return nil
}
