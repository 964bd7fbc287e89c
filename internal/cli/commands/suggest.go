package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/promptfield/pkg/catalog"
	"github.com/leapstack-labs/promptfield/pkg/mapping"
	"github.com/leapstack-labs/promptfield/pkg/matcher"
	"github.com/leapstack-labs/promptfield/pkg/scanner"
)

// SuggestOptions holds options for the suggest command.
type SuggestOptions struct {
	System string
	User   string
}

// NewSuggestCommand creates the suggest command.
func NewSuggestCommand() *cobra.Command {
	opts := &SuggestOptions{}

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Match detected placeholders against the table's fields",
		Long: `Detect placeholders, score each one against the dimensions and measures
of the data table, and report the suggested mappings with confidence
scores. Suggestions at or above the auto-map threshold are applied.`,
		Example: `  # Suggest mappings for a prompt against a CSV table
  promptfield suggest --table sales.csv --dimensions 2 --user "Focus on {{Region}}"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSuggest(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.System, "system", "", "System prompt text")
	cmd.Flags().StringVar(&opts.User, "user", "", "User prompt text")
	return cmd
}

func runSuggest(cmd *cobra.Command, opts *SuggestOptions) error {
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

	store := mapping.NewStore(newLogger(cfg))
	store.SetThreshold(cfg.Matcher.AutoMapThreshold)
	store.Reconcile(detected, nil)

	if outputJSON(cmd) {
		return writeJSON(cmd.OutOrStdout(), map[string]any{
			"rows":  store.Summary(),
			"stats": store.Stats(),
		})
	}

	rows := store.Summary()
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "(no placeholders)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Token", "Mapped Field", "Suggested", "Confidence", "Status"})
	for _, row := range rows {
		t.AppendRow(table.Row{row.Placeholder, row.MappedField, row.SuggestedField, row.Confidence, row.Status})
	}
	t.Render()

	stats := store.Stats()
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d placeholder(s): %d mapped, %d kept as text, %d unresolved\n",
		stats.Total, stats.Mapped, stats.KeptAsText, stats.Unresolved)
	return nil
}
