package cmd

import (
	"fmt"
	"strings"

	"github.com/harrison/sweep/internal/config"
	"github.com/spf13/cobra"
)

// NewWeightsCommand creates the weights command
func NewWeightsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weights",
		Short: "Show the effective scoring configuration",
		Long: `Print the merged scoring configuration a scan would use: the nine
factor weights, the safe and risky extension classes, and the temp-directory
tokens. Useful for checking what a config file actually changes before
running a scan.`,
		Args: cobra.NoArgs,
		RunE: runWeights,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .sweep/config.yaml)")

	return cmd
}

func runWeights(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	w := cfg.Weights

	fmt.Fprintln(out, "Weights:")
	fmt.Fprintf(out, "  %-24s %d\n", "age:", w.Age)
	fmt.Fprintf(out, "  %-24s %d\n", "access_age:", w.AccessAge)
	fmt.Fprintf(out, "  %-24s %d\n", "extension:", w.Extension)
	fmt.Fprintf(out, "  %-24s %d\n", "temp_location:", w.TempLocation)
	fmt.Fprintf(out, "  %-24s %d\n", "redundancy:", w.Redundancy)
	fmt.Fprintf(out, "  %-24s %d\n", "size_bonus:", w.SizeBonus)
	fmt.Fprintf(out, "  %-24s %d\n", "recent_write_penalty:", w.RecentWritePenalty)
	fmt.Fprintf(out, "  %-24s %d\n", "recent_create_penalty:", w.RecentCreatePenalty)
	fmt.Fprintf(out, "  %-24s %d\n", "attributes_penalty:", w.AttributesPenalty)

	fmt.Fprintf(out, "\nSafe extensions:  %s\n", strings.Join(cfg.SafeExtensions, " "))
	fmt.Fprintf(out, "Risky extensions: %s\n", strings.Join(cfg.RiskyExtensions, " "))
	fmt.Fprintf(out, "Temp tokens:      %s\n", strings.Join(cfg.TempTokens, " "))

	return nil
}
