// Package cli provides the command-line interface for promptfield.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/promptfield/internal/cli/commands"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "promptfield",
		Short: "promptfield - field-reference resolution for prompt templates",
		Long: `promptfield resolves {{field}} placeholders in prompt templates against
the fields of a tabular data snapshot, renders final prompts with live
data values, and gates generation behind a selection-validation check.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default promptfield.yaml)")
	rootCmd.PersistentFlags().String("table", "", "Data table file (.csv or .json)")
	rootCmd.PersistentFlags().Int("dimensions", 1, "Number of leading dimension columns in a CSV table")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format (text|json)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose logging")

	rootCmd.AddCommand(
		commands.NewDetectCommand(),
		commands.NewSuggestCommand(),
		commands.NewRenderCommand(),
		commands.NewValidateCommand(),
		commands.NewSessionCommand(),
		commands.NewServeCommand(),
		commands.NewVersionCommand(Version, BuildDate, GitCommit),
	)
	return rootCmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
