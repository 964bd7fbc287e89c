package core

import "strconv"

// evalKind tags the variant held by an EvalResult.
type evalKind int

const (
	evalAbsent evalKind = iota
	evalNumeric
	evalText
)

// EvalResult is the loosely-typed outcome of an external expression
// evaluation, modeled as a tagged variant: numeric, text, or absent.
// Interpretation of the value (the -1/0/1 conventions) is centralized in
// the validate package; nothing else should inspect raw results.
type EvalResult struct {
	kind evalKind
	num  float64
	text string
}

// NumericResult wraps a numeric evaluator outcome.
func NumericResult(v float64) EvalResult {
	return EvalResult{kind: evalNumeric, num: v}
}

// TextResult wraps a textual evaluator outcome.
func TextResult(s string) EvalResult {
	return EvalResult{kind: evalText, text: s}
}

// AbsentResult represents an evaluation that produced no value.
func AbsentResult() EvalResult {
	return EvalResult{kind: evalAbsent}
}

// Numeric returns the numeric value and whether the result is numeric.
func (r EvalResult) Numeric() (float64, bool) {
	return r.num, r.kind == evalNumeric
}

// Text returns the text value and whether the result is textual.
func (r EvalResult) Text() (string, bool) {
	return r.text, r.kind == evalText
}

// Absent reports whether the evaluation produced no value.
func (r EvalResult) Absent() bool {
	return r.kind == evalAbsent
}

// String renders the result for diagnostics.
func (r EvalResult) String() string {
	switch r.kind {
	case evalNumeric:
		return strconv.FormatFloat(r.num, 'f', -1, 64)
	case evalText:
		return r.text
	default:
		return "<absent>"
	}
}
