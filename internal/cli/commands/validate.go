package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/promptfield/internal/evaluator"
	"github.com/leapstack-labs/promptfield/internal/tabular"
	"github.com/leapstack-labs/promptfield/pkg/validate"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	var expression string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check whether selections allow generation",
		Long: `Run the selection-validation check against the data table. The
expression comes from --expression or the config file; evaluator
failures fall back to structural validation over the table.`,
		Example: `  # Validate with an explicit expression
  promptfield validate --table sales.csv --dimensions 2 \
      --expression "GetSelectedCount(Region)=1"

  # Validate with the configured expression
  promptfield validate --table sales.csv --config promptfield.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, expression)
		},
	}

	cmd.Flags().StringVarP(&expression, "expression", "e", "", "Validation expression")
	return cmd
}

func runValidate(cmd *cobra.Command, expression string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	tbl, err := requireTable(cmd)
	if err != nil {
		return err
	}

	vcfg := cfg.Validation
	if expression != "" {
		vcfg.Enabled = true
		vcfg.Expression = expression
	}

	logger := newLogger(cfg)
	provider := tabular.NewStaticProvider(tbl)
	v := validate.New(evaluator.NewStarlark(provider, logger), logger)
	result := v.Validate(cmd.Context(), tbl, vcfg)

	if outputJSON(cmd) {
		return writeJSON(cmd.OutOrStdout(), result)
	}

	verdict := "INVALID"
	if result.Valid {
		verdict = "VALID"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n%s\n", verdict, result.Mode, result.Message)

	if len(result.Details) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Check", "OK", "Detail", "Field"})
		for _, d := range result.Details {
			t.AppendRow(table.Row{d.Label, d.Valid, d.Message, d.FieldName})
		}
		t.Render()
	}
	return nil
}
