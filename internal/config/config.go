// Package config loads and validates sweep configuration. Settings come
// from three layers: built-in defaults, an optional YAML config file, and
// CLI flags, each overriding the previous one.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the per-project config location checked when no
// explicit path is given.
const DefaultConfigPath = ".sweep/config.yaml"

// EnvConfigPath names the environment variable that overrides the default
// config file location (loadable from a .env file).
const EnvConfigPath = "SWEEP_CONFIG"

// Weights holds the nine scoring weights on a 0-100 scale. They are not
// required to sum to 100; the engine normalizes against their extremes.
type Weights struct {
	Age                 int `yaml:"age"`
	AccessAge           int `yaml:"access_age"`
	Extension           int `yaml:"extension"`
	TempLocation        int `yaml:"temp_location"`
	Redundancy          int `yaml:"redundancy"`
	SizeBonus           int `yaml:"size_bonus"`
	RecentWritePenalty  int `yaml:"recent_write_penalty"`
	RecentCreatePenalty int `yaml:"recent_create_penalty"`
	AttributesPenalty   int `yaml:"attributes_penalty"`
}

// Config represents the full set of sweep tunables.
type Config struct {
	// Top is the maximum number of rows retained after sorting.
	Top int `yaml:"top"`

	// MinSize excludes files smaller than this many bytes.
	MinSize int64 `yaml:"min_size"`

	// Recursive includes subdirectories in the scan.
	Recursive bool `yaml:"recursive"`

	// NoColor disables colored console output.
	NoColor bool `yaml:"no_color"`

	// Exclude holds glob patterns (doublestar syntax) matched against
	// paths relative to the scan root.
	Exclude []string `yaml:"exclude"`

	// Weights parameterizes the scoring engine.
	Weights Weights `yaml:"weights"`

	// SafeExtensions lists suffixes of known-disposable files.
	SafeExtensions []string `yaml:"safe_extensions"`

	// RiskyExtensions lists suffixes of files whose deletion is rarely safe.
	RiskyExtensions []string `yaml:"risky_extensions"`

	// TempTokens lists directory names marking conventional scratch
	// locations, matched against whole path segments.
	TempTokens []string `yaml:"temp_tokens"`
}

// DefaultConfig returns a Config with the documented default values.
func DefaultConfig() *Config {
	return &Config{
		Top:     200,
		MinSize: 0,
		Weights: Weights{
			Age:                 30,
			AccessAge:           10,
			Extension:           15,
			TempLocation:        10,
			Redundancy:          15,
			SizeBonus:           5,
			RecentWritePenalty:  10,
			RecentCreatePenalty: 10,
			AttributesPenalty:   10,
		},
		SafeExtensions: []string{
			".tmp", ".temp", ".log", ".bak", ".old", ".chk", ".dmp",
			".err", ".cache", ".msi.old",
		},
		RiskyExtensions: []string{
			".exe", ".dll", ".sys", ".ocx", ".drv", ".dat", ".db",
			".pst", ".xls", ".xlsx", ".doc", ".docx", ".pdf",
		},
		TempTokens: []string{
			"temp", "tmp", "cache", "caches", "log", "logs", "crash",
			"minidump", "reports", "report", "backups", "bak",
		},
	}
}

// LoadConfig loads configuration from the given file path. A missing file
// is not an error and yields the defaults; a malformed file is an error.
// Values present in the file override defaults field by field.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// LoadConfigFromDir loads the default config file relative to dir,
// honoring the SWEEP_CONFIG environment variable when set.
func LoadConfigFromDir(dir string) (*Config, error) {
	if env := os.Getenv(EnvConfigPath); env != "" {
		return LoadConfig(env)
	}
	return LoadConfig(filepath.Join(dir, filepath.FromSlash(DefaultConfigPath)))
}

// WeightOverrides carries per-weight CLI flag values; nil fields were not
// set on the command line.
type WeightOverrides struct {
	Age                 *int
	AccessAge           *int
	Extension           *int
	TempLocation        *int
	Redundancy          *int
	SizeBonus           *int
	RecentWritePenalty  *int
	RecentCreatePenalty *int
	AttributesPenalty   *int
}

// MergeWithFlags merges CLI flag values into the configuration. Non-nil
// values override the file and default layers; exclude patterns accumulate.
func (c *Config) MergeWithFlags(top *int, minSize *int64, recursive, noColor *bool, exclude []string, w WeightOverrides) {
	if top != nil {
		c.Top = *top
	}
	if minSize != nil {
		c.MinSize = *minSize
	}
	if recursive != nil {
		c.Recursive = *recursive
	}
	if noColor != nil {
		c.NoColor = *noColor
	}
	if len(exclude) > 0 {
		c.Exclude = append(c.Exclude, exclude...)
	}

	if w.Age != nil {
		c.Weights.Age = *w.Age
	}
	if w.AccessAge != nil {
		c.Weights.AccessAge = *w.AccessAge
	}
	if w.Extension != nil {
		c.Weights.Extension = *w.Extension
	}
	if w.TempLocation != nil {
		c.Weights.TempLocation = *w.TempLocation
	}
	if w.Redundancy != nil {
		c.Weights.Redundancy = *w.Redundancy
	}
	if w.SizeBonus != nil {
		c.Weights.SizeBonus = *w.SizeBonus
	}
	if w.RecentWritePenalty != nil {
		c.Weights.RecentWritePenalty = *w.RecentWritePenalty
	}
	if w.RecentCreatePenalty != nil {
		c.Weights.RecentCreatePenalty = *w.RecentCreatePenalty
	}
	if w.AttributesPenalty != nil {
		c.Weights.AttributesPenalty = *w.AttributesPenalty
	}
}

// Validate checks the merged configuration values.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Top, validation.Required, validation.Min(1)),
		validation.Field(&c.MinSize, validation.Min(int64(0))),
		validation.Field(&c.SafeExtensions, validation.Required),
		validation.Field(&c.RiskyExtensions, validation.Required),
		validation.Field(&c.TempTokens, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Validate checks that every weight lies in [0,100].
func (w Weights) Validate() error {
	inRange := []validation.Rule{validation.Min(0), validation.Max(100)}
	return validation.ValidateStruct(&w,
		validation.Field(&w.Age, inRange...),
		validation.Field(&w.AccessAge, inRange...),
		validation.Field(&w.Extension, inRange...),
		validation.Field(&w.TempLocation, inRange...),
		validation.Field(&w.Redundancy, inRange...),
		validation.Field(&w.SizeBonus, inRange...),
		validation.Field(&w.RecentWritePenalty, inRange...),
		validation.Field(&w.RecentCreatePenalty, inRange...),
		validation.Field(&w.AttributesPenalty, inRange...),
	)
}
