package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/promptfield/pkg/catalog"
	"github.com/leapstack-labs/promptfield/pkg/mapping"
	"github.com/leapstack-labs/promptfield/pkg/matcher"
	"github.com/leapstack-labs/promptfield/pkg/render"
	"github.com/leapstack-labs/promptfield/pkg/scanner"
)

// RenderOptions holds options for the render command.
type RenderOptions struct {
	System string
	User   string
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the final prompt with live data values",
		Long: `Detect placeholders, resolve them against the data table, and print the
user prompt with every mapped placeholder substituted by live values.
Unresolved placeholders are left verbatim.`,
		Example: `  # Render a prompt against a CSV table
  promptfield render --table sales.csv --dimensions 2 --user "Focus on {{Region}}"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.System, "system", "", "System prompt text")
	cmd.Flags().StringVar(&opts.User, "user", "", "User prompt text")
	return cmd
}

func runRender(cmd *cobra.Command, opts *RenderOptions) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	tbl, err := requireTable(cmd)
	if err != nil {
		return err
	}

	system, user := prompts(cfg, opts.System, opts.User)
	placeholders := scanner.Detect(system, user)
	detected := matcher.Suggest(placeholders, catalog.FromTable(tbl))
	mappings := mapping.Merge(detected, nil)

	rendered := render.Template(user, mappings, tbl)

	if outputJSON(cmd) {
		return writeJSON(cmd.OutOrStdout(), map[string]any{
			"rendered": rendered,
			"stats":    mapping.ComputeStats(mappings),
		})
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return nil
}
