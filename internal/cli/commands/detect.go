package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/promptfield/pkg/scanner"
)

// DetectOptions holds options for the detect command.
type DetectOptions struct {
	System string
	User   string
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Detect {{name}} placeholders in prompt text",
		Long: `Scan the system and user prompts for {{name}} placeholder tokens and
report each token with its position and source attribution.`,
		Example: `  # Detect placeholders in an ad-hoc prompt
  promptfield detect --user "Summarize {{Region}} trends"

  # Detect placeholders in the configured prompts
  promptfield detect --config promptfield.yaml

  # JSON output
  promptfield detect --user "{{Region}}" -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDetect(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.System, "system", "", "System prompt text")
	cmd.Flags().StringVar(&opts.User, "user", "", "User prompt text")
	return cmd
}

func runDetect(cmd *cobra.Command, opts *DetectOptions) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	system, user := prompts(cfg, opts.System, opts.User)
	placeholders := scanner.Detect(system, user)

	if outputJSON(cmd) {
		return writeJSON(cmd.OutOrStdout(), placeholders)
	}

	if len(placeholders) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "(no placeholders)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Token", "Field Name", "Position", "Source"})
	for _, p := range placeholders {
		t.AppendRow(table.Row{p.Raw, p.FieldName, p.Position, p.Source})
	}
	t.Render()
	return nil
}
