package commands

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/promptfield/internal/evaluator"
	"github.com/leapstack-labs/promptfield/internal/server"
	"github.com/leapstack-labs/promptfield/internal/session"
	"github.com/leapstack-labs/promptfield/internal/tabular"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the widget HTTP API",
		Long: `Start the HTTP surface the widget host talks to: placeholder detection,
mapping suggestions, prompt rendering, selection validation, and
editing-session persistence. The config file is watched and hot-reloaded.`,
		Example: `  promptfield serve --table sales.csv --dimensions 2 --config promptfield.yaml`,
		RunE:    runServe,
	}
	cmd.Flags().Int("port", 0, "Listen port (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	tbl, err := requireTable(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(cfg)

	var kv session.KeyValueStore
	if cfg.Session.Path == "" {
		kv = session.NewMemoryStore()
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.Session.Path), 0o755); err != nil {
			return fmt.Errorf("failed to create session directory: %w", err)
		}
		kv, err = session.OpenSQLite(cfg.Session.Path)
		if err != nil {
			return err
		}
	}
	defer kv.Close()

	provider := tabular.NewStaticProvider(tbl)
	cfgPath, _ := cmd.Flags().GetString("config")

	srv := server.New(server.Options{
		Provider:   provider,
		Evaluator:  evaluator.NewStarlark(provider, logger),
		Sessions:   session.NewManager(kv, logger),
		Config:     cfg,
		ConfigPath: cfgPath,
		Logger:     logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Serve(ctx)
}
