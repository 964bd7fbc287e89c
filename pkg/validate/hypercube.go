package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/leapstack-labs/promptfield/pkg/core"
)

// countCallPattern recovers the target field from the first
// GetSelectedCount(...)/GetPossibleCount(...) call in an expression.
var countCallPattern = regexp.MustCompile(`(?i)Get(?:Selected|Possible)Count\s*\(\s*([^)]+?)\s*\)`)

// selection expectations derived from the expression's operator.
type expectation int

const (
	expectExactlyOne expectation = iota
	expectOneOrMore
)

// hypercubeValidate checks selections structurally against the table:
// the distinct non-empty values in the expression's target dimension
// stand in for the current selection.
func hypercubeValidate(table *core.DataTable, expression string, cfg core.ValidationConfig) core.ValidationResult {
	fieldName, ok := parseCountField(expression)
	if !ok {
		return core.ValidationResult{
			Valid:   false,
			Message: invalidMessage(cfg),
			Mode:    core.ModeHypercube,
			Details: []core.ValidationDetail{{
				Label:   "expression",
				Valid:   false,
				Message: "could not determine the target field from the validation expression",
			}},
		}
	}

	if table == nil {
		return missingFieldResult(fieldName, cfg)
	}
	col, found := table.DimensionIndex(fieldName)
	if !found {
		return missingFieldResult(fieldName, cfg)
	}

	values := table.DistinctDimensionValues(col)
	want := parseExpectation(expression)

	var valid bool
	var message string
	switch want {
	case expectOneOrMore:
		valid = len(values) >= 1
		message = fmt.Sprintf("%d value(s) selected in %s, expected at least one", len(values), fieldName)
	default:
		valid = len(values) == 1
		message = fmt.Sprintf("%d value(s) selected in %s, expected exactly one", len(values), fieldName)
	}

	resultMessage := fmt.Sprintf("Selection check on field %q failed.", fieldName)
	if valid {
		resultMessage = fmt.Sprintf("Selection check on field %q passed.", fieldName)
	} else if cfg.Message != "" {
		resultMessage = cfg.Message
	}

	return core.ValidationResult{
		Valid:   valid,
		Message: resultMessage,
		Mode:    core.ModeHypercube,
		Details: []core.ValidationDetail{{
			Label:     "selection count",
			Valid:     valid,
			Message:   message,
			FieldName: fieldName,
			Result:    fmt.Sprintf("%d", len(values)),
			Values:    values,
		}},
	}
}

// missingFieldResult reports a structural mismatch: the expression
// references a field absent from the table.
func missingFieldResult(fieldName string, cfg core.ValidationConfig) core.ValidationResult {
	return core.ValidationResult{
		Valid:   false,
		Message: invalidMessage(cfg),
		Mode:    core.ModeHypercube,
		Details: []core.ValidationDetail{{
			Label:     "missing field",
			Valid:     false,
			Message:   fmt.Sprintf("field %q is not a dimension of the current data table", fieldName),
			FieldName: fieldName,
		}},
	}
}

// parseCountField extracts the field name from the first count call.
func parseCountField(expression string) (string, bool) {
	m := countCallPattern.FindStringSubmatch(expression)
	if m == nil {
		return "", false
	}
	field := strings.TrimSpace(m[1])
	// Field references may be bracketed or quoted in the source dialect.
	field = strings.Trim(field, `[]'"`)
	if field == "" {
		return "", false
	}
	return field, true
}

// parseExpectation derives the expected selection count from the
// operator present in the expression text. ">=1" and ">0" mean one or
// more; anything else (including "=1") defaults to exactly one.
func parseExpectation(expression string) expectation {
	compact := strings.ReplaceAll(expression, " ", "")
	if strings.Contains(compact, ">=1") || strings.Contains(compact, ">0") {
		return expectOneOrMore
	}
	return expectExactlyOne
}
