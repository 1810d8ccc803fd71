package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/harrison/sweep/internal/config"
	"github.com/harrison/sweep/internal/display"
	"github.com/harrison/sweep/internal/logger"
	"github.com/harrison/sweep/internal/report"
	"github.com/harrison/sweep/internal/scan"
	"github.com/harrison/sweep/internal/scoring"
	"github.com/harrison/sweep/internal/stem"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// weightFlags maps each weight flag name to the config field it overrides.
var weightFlags = []string{
	"weight-age",
	"weight-access-age",
	"weight-extension",
	"weight-temp-location",
	"weight-redundancy",
	"weight-size-bonus",
	"weight-recent-write",
	"weight-recent-create",
	"weight-attributes",
}

// NewScanCommand creates the scan command
func NewScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a directory and rank files by deletion safety",
		Long: `Scan enumerates regular files under the given path (default: current
directory), scores each one with the weighted safety model, and prints the
top results sorted by score.

Configuration is loaded from .sweep/config.yaml if present (or the file
named by the SWEEP_CONFIG environment variable). CLI flags override
configuration file settings.

Examples:
  # Scan the current directory
  sweep scan

  # Recursive scan with a size floor
  sweep scan /var --recursive --min-size 4096

  # Keep only the 20 best candidates and export them
  sweep scan ~/Downloads -r --top 20 --csv report.csv --json report.json

  # Exclude paths and turn the redundancy signal up
  sweep scan . -r --exclude 'node_modules/**' --weight-redundancy 40

  # Full report to Markdown
  sweep scan /tmp -r --markdown report.md --verbose`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScan,
	}

	defaults := config.DefaultConfig()

	cmd.Flags().String("config", "", "Path to config file (default: .sweep/config.yaml)")
	cmd.Flags().BoolP("recursive", "r", false, "Include subdirectories")
	cmd.Flags().IntP("top", "n", defaults.Top, "Maximum number of rows to retain after sorting")
	cmd.Flags().Int64("min-size", defaults.MinSize, "Exclude files smaller than this many bytes")
	cmd.Flags().StringArray("exclude", nil, "Glob pattern to exclude, relative to the root (repeatable)")
	cmd.Flags().String("csv", "", "Write a CSV export to this path")
	cmd.Flags().String("json", "", "Write a JSON export to this path")
	cmd.Flags().String("markdown", "", "Write a Markdown export to this path")
	cmd.Flags().Bool("verbose", false, "Show per-entry enumeration skips and debug detail")
	cmd.Flags().Bool("no-color", false, "Disable colored output")

	w := defaults.Weights
	cmd.Flags().Int("weight-age", w.Age, "Weight of the write-age factor (0-100)")
	cmd.Flags().Int("weight-access-age", w.AccessAge, "Weight of the access-age factor (0-100)")
	cmd.Flags().Int("weight-extension", w.Extension, "Weight of the extension class factor (0-100)")
	cmd.Flags().Int("weight-temp-location", w.TempLocation, "Weight of the temp-directory factor (0-100)")
	cmd.Flags().Int("weight-redundancy", w.Redundancy, "Weight of the redundancy factor (0-100)")
	cmd.Flags().Int("weight-size-bonus", w.SizeBonus, "Weight of the large-stale-file bonus (0-100)")
	cmd.Flags().Int("weight-recent-write", w.RecentWritePenalty, "Weight of the recent-write penalty (0-100)")
	cmd.Flags().Int("weight-recent-create", w.RecentCreatePenalty, "Weight of the recent-create penalty (0-100)")
	cmd.Flags().Int("weight-attributes", w.AttributesPenalty, "Weight of the attribute penalty (0-100)")

	return cmd
}

// runScan implements the scan command logic
func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadMergedConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	csvPath, _ := cmd.Flags().GetString("csv")
	jsonPath, _ := cmd.Flags().GetString("json")
	mdPath, _ := cmd.Flags().GetString("markdown")

	useColor := colorEnabled(cfg)
	level := "info"
	if verbose {
		level = "debug"
	}
	log := logger.NewConsole(cmd.ErrOrStderr(), level, useColor)

	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	// One timestamp for the whole run keeps every age computation and the
	// rendered age column internally consistent.
	now := time.Now()

	result, err := scan.Scan(root, scan.Options{
		Recursive: cfg.Recursive,
		MinSize:   cfg.MinSize,
		Exclude:   cfg.Exclude,
	})
	if err != nil {
		return err
	}

	if len(result.Skipped) > 0 {
		log.Warnf("skipped %d unreadable entr%s", len(result.Skipped), plural(len(result.Skipped), "y", "ies"))
		for _, s := range result.Skipped {
			log.Debugf("skipped %s: %v", s.Path, s.Err)
		}
	}

	if len(result.Files) == 0 {
		display.Warning{
			Title:      "no files matched the scan filters",
			Message:    fmt.Sprintf("nothing at or above %d byte(s) was found under %s", cfg.MinSize, root),
			Suggestion: "lower --min-size, add --recursive, or loosen --exclude patterns",
		}.Display(cmd.ErrOrStderr(), useColor)
		return nil
	}

	groups := stem.Build(result.Files)
	engine := scoring.NewEngine(engineWeights(cfg.Weights), scoring.Classification{
		SafeExtensions:  cfg.SafeExtensions,
		RiskyExtensions: cfg.RiskyExtensions,
		TempTokens:      cfg.TempTokens,
	}, now)

	scored := make([]scoring.ScoredFile, 0, len(result.Files))
	for _, rec := range result.Files {
		scored = append(scored, scoring.ScoredFile{
			Record:    rec,
			Breakdown: engine.Score(rec, groups),
		})
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		absRoot = root
	}
	rep := report.New(absRoot, cfg.Recursive, scored, cfg.Top, now)

	report.RenderTable(cmd.OutOrStdout(), rep, time.Since(now), useColor)

	// Each export is independent: attempt all of them, then report what failed.
	var exportErrs []error
	for _, target := range []struct {
		format string
		path   string
	}{
		{report.FormatCSV, csvPath},
		{report.FormatJSON, jsonPath},
		{report.FormatMarkdown, mdPath},
	} {
		if target.path == "" {
			continue
		}
		if err := report.ExportToFile(rep, target.format, target.path); err != nil {
			log.Errorf("%v", err)
			exportErrs = append(exportErrs, err)
			continue
		}
		log.Infof("exported %s report to %s", target.format, target.path)
	}

	return errors.Join(exportErrs...)
}

// loadMergedConfig loads the config file layer and merges changed CLI flags
// over it. Only flags the user actually set override the file.
func loadMergedConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	var topPtr *int
	if cmd.Flags().Changed("top") {
		top, _ := cmd.Flags().GetInt("top")
		topPtr = &top
	}

	var minSizePtr *int64
	if cmd.Flags().Changed("min-size") {
		minSize, _ := cmd.Flags().GetInt64("min-size")
		minSizePtr = &minSize
	}

	var recursivePtr *bool
	if cmd.Flags().Changed("recursive") {
		recursive, _ := cmd.Flags().GetBool("recursive")
		recursivePtr = &recursive
	}

	var noColorPtr *bool
	if cmd.Flags().Changed("no-color") {
		noColor, _ := cmd.Flags().GetBool("no-color")
		noColorPtr = &noColor
	}

	exclude, _ := cmd.Flags().GetStringArray("exclude")

	cfg.MergeWithFlags(topPtr, minSizePtr, recursivePtr, noColorPtr, exclude, weightOverrides(cmd))
	return cfg, nil
}

// weightOverrides collects the changed weight flags into override pointers.
func weightOverrides(cmd *cobra.Command) config.WeightOverrides {
	values := make(map[string]*int, len(weightFlags))
	for _, name := range weightFlags {
		if cmd.Flags().Changed(name) {
			v, _ := cmd.Flags().GetInt(name)
			values[name] = &v
		}
	}

	return config.WeightOverrides{
		Age:                 values["weight-age"],
		AccessAge:           values["weight-access-age"],
		Extension:           values["weight-extension"],
		TempLocation:        values["weight-temp-location"],
		Redundancy:          values["weight-redundancy"],
		SizeBonus:           values["weight-size-bonus"],
		RecentWritePenalty:  values["weight-recent-write"],
		RecentCreatePenalty: values["weight-recent-create"],
		AttributesPenalty:   values["weight-attributes"],
	}
}

// engineWeights converts the config weight block into engine weights.
func engineWeights(w config.Weights) scoring.Weights {
	return scoring.Weights{
		Age:                 w.Age,
		AccessAge:           w.AccessAge,
		Extension:           w.Extension,
		TempLocation:        w.TempLocation,
		Redundancy:          w.Redundancy,
		SizeBonus:           w.SizeBonus,
		RecentWritePenalty:  w.RecentWritePenalty,
		RecentCreatePenalty: w.RecentCreatePenalty,
		AttributesPenalty:   w.AttributesPenalty,
	}
}

// colorEnabled decides whether console output should be colored: disabled
// by config/flag, the NO_COLOR convention, or a non-terminal stdout.
func colorEnabled(cfg *config.Config) bool {
	if cfg.NoColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
