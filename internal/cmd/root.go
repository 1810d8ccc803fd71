// Package cmd wires the sweep CLI commands.
package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for sweep
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Advisory deletion-safety scanner",
		Long: `Sweep scans a directory tree and assigns each file a heuristic
deletion safety score (0-100) from its age, access recency, extension,
location, name-based redundancy and filesystem attributes.

The output is purely advisory: sweep never deletes or moves anything. It
renders a ranked console table and can export the full result set as CSV,
JSON and Markdown.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.AddCommand(NewScanCommand())
	cmd.AddCommand(NewWeightsCommand())

	return cmd
}
