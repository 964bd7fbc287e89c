package validate

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/promptfield/pkg/core"
)

// interpretOutcome applies the host convention for boolean-like
// evaluator results. This is the only place raw results are inspected.
//
// Count expressions (those calling GetSelectedCount/GetPossibleCount or
// joining clauses with and/or) evaluate to -1 when true. A simple
// non-count expression is true when it evaluates to the number 1 or the
// string "1".
func interpretOutcome(expression string, result core.EvalResult) (bool, string) {
	if isCountExpression(expression) {
		num, ok := result.Numeric()
		if ok && num == -1 {
			return true, "count expression evaluated to -1 (true)"
		}
		return false, fmt.Sprintf("count expression evaluated to %s, expected -1", result)
	}

	if num, ok := result.Numeric(); ok && num == 1 {
		return true, "expression evaluated to 1 (true)"
	}
	if text, ok := result.Text(); ok && text == "1" {
		return true, `expression evaluated to "1" (true)`
	}
	return false, fmt.Sprintf("expression evaluated to %s, expected 1", result)
}

// isCountExpression reports whether the expression uses selection-count
// functions or logical connectives, which flips the truth convention.
func isCountExpression(expression string) bool {
	if strings.Contains(expression, "GetSelectedCount") ||
		strings.Contains(expression, "GetPossibleCount") {
		return true
	}
	lower := strings.ToLower(expression)
	return strings.Contains(lower, " and ") || strings.Contains(lower, " or ")
}
