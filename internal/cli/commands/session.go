package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/promptfield/internal/session"
)

// NewSessionCommand creates the session command group.
func NewSessionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage persisted editing sessions",
	}
	cmd.AddCommand(newSessionSweepCommand())
	return cmd
}

func newSessionSweepCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Purge editing sessions past the retention window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Session.Path == "" {
				return fmt.Errorf("no session store configured: set session.path")
			}

			store, err := session.OpenSQLite(cfg.Session.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			purged, err := store.SweepExpired(session.RetentionWindow)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "purged %d expired session(s)\n", purged)
			return nil
		},
	}
}
