// Package evaluator provides a Starlark-backed implementation of the
// selection-expression evaluator.
//
// Dashboard-dialect expressions such as "GetSelectedCount(Customer)=1"
// are translated into Starlark, evaluated against the current table
// snapshot, and mapped back to the host's loosely-typed result
// convention (boolean true is -1).
package evaluator

import (
	"context"
	"fmt"
	"log/slog"

	"go.starlark.net/starlark"

	"github.com/leapstack-labs/promptfield/pkg/core"
)

// maxSteps bounds a single expression evaluation so a runaway
// expression cannot stall a validation pass.
const maxSteps = 100_000

// Starlark evaluates selection expressions against table snapshots.
type Starlark struct {
	provider core.SnapshotProvider
	logger   *slog.Logger
}

// NewStarlark creates an evaluator over the given snapshot provider.
func NewStarlark(provider core.SnapshotProvider, logger *slog.Logger) *Starlark {
	if logger == nil {
		logger = slog.Default()
	}
	return &Starlark{provider: provider, logger: logger}
}

// Evaluate translates and runs one expression. The table snapshot is
// read once at the start of the call; evaluation is cancelled when ctx
// is done.
func (e *Starlark) Evaluate(ctx context.Context, expression string) (core.EvalResult, error) {
	if err := ctx.Err(); err != nil {
		return core.AbsentResult(), err
	}

	translated := Translate(expression)

	table := e.provider.Current()

	thread := &starlark.Thread{
		Name: "selection-check",
		Print: func(_ *starlark.Thread, _ string) {
			// Expressions have no business printing.
		},
	}
	thread.SetMaxExecutionSteps(maxSteps)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			thread.Cancel("context cancelled")
		case <-done:
		}
	}()

	value, err := starlark.Eval(thread, "expression", translated, builtins(table)) //nolint:staticcheck // SA1019: will migrate to EvalOptions later
	if err != nil {
		return core.AbsentResult(), fmt.Errorf("expression evaluation failed: %w", err)
	}

	result := toResult(value)
	e.logger.Debug("expression evaluated",
		slog.String("expression", expression),
		slog.String("translated", translated),
		slog.String("result", result.String()))
	return result, nil
}

// toResult maps a Starlark value to the host result convention:
// booleans become -1 (true) or 0 (false), numbers stay numeric, None is
// absent, everything else is carried as text.
func toResult(value starlark.Value) core.EvalResult {
	switch v := value.(type) {
	case starlark.Bool:
		if bool(v) {
			return core.NumericResult(-1)
		}
		return core.NumericResult(0)
	case starlark.Int:
		f, _ := starlark.AsFloat(v)
		return core.NumericResult(f)
	case starlark.Float:
		return core.NumericResult(float64(v))
	case starlark.String:
		return core.TextResult(string(v))
	case starlark.NoneType:
		return core.AbsentResult()
	default:
		return core.TextResult(value.String())
	}
}
