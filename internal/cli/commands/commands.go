// Package commands implements the promptfield subcommands.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/promptfield/internal/config"
	"github.com/leapstack-labs/promptfield/internal/tabular"
	"github.com/leapstack-labs/promptfield/pkg/core"
)

// loadConfig reads the config honoring the persistent --config flag,
// with remaining flags layered over file and env values.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.LoadWithFlags(path, cmd.Flags())
}

// loadTable reads the data table named by the persistent flags.
// Returns nil (no error) when no table was given; commands that require
// one handle that themselves.
func loadTable(cmd *cobra.Command) (*core.DataTable, error) {
	path, _ := cmd.Flags().GetString("table")
	if path == "" {
		return nil, nil
	}
	dims, _ := cmd.Flags().GetInt("dimensions")
	return tabular.Load(path, dims)
}

// requireTable reads the data table and errors when none was given.
func requireTable(cmd *cobra.Command) (*core.DataTable, error) {
	table, err := loadTable(cmd)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, fmt.Errorf("a data table is required: pass --table <file>")
	}
	return table, nil
}

// prompts resolves the system and user prompt from flags, falling back
// to the configured prompts.
func prompts(cfg *config.Config, systemFlag, userFlag string) (string, string) {
	system, user := systemFlag, userFlag
	if system == "" {
		system = cfg.Prompts.System
	}
	if user == "" {
		user = cfg.Prompts.User
	}
	return system, user
}

// outputJSON reports whether --output json was requested.
func outputJSON(cmd *cobra.Command) bool {
	format, _ := cmd.Flags().GetString("output")
	return format == "json"
}

// writeJSON pretty-prints v to w.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newLogger builds the CLI logger; debug level when --verbose-ish
// config asks for it.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil && cfg.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
