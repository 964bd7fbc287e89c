// Package validate gates generation behind a selection-validation check.
//
// A Validator derives its mode from configuration on every call and
// holds no state between calls: the result is a pure function of
// (config, table) plus at most one external evaluator call. Evaluator
// failures never surface to the caller; they degrade to the structural
// hypercube fallback.
package validate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/promptfield/pkg/core"
)

// Evaluator evaluates a selection expression against the live data
// source. Implementations must be safe to call with any expression text
// and should honor ctx cancellation.
type Evaluator interface {
	Evaluate(ctx context.Context, expression string) (core.EvalResult, error)
}

// Validator decides whether generation may proceed.
type Validator struct {
	evaluator Evaluator
	logger    *slog.Logger
}

// New creates a Validator. A nil evaluator is allowed; custom-expression
// validation then always uses the hypercube fallback.
func New(evaluator Evaluator, logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{evaluator: evaluator, logger: logger}
}

// Validate runs one selection-validation pass against the given table
// snapshot and configuration. It never returns an error: every failure
// degrades to an invalid result with a human-readable message.
func (v *Validator) Validate(ctx context.Context, table *core.DataTable, cfg core.ValidationConfig) core.ValidationResult {
	expression := strings.TrimSpace(cfg.Expression)

	if !cfg.Enabled || expression == "" {
		return core.ValidationResult{
			Valid:   false,
			Message: "Custom validation is not configured; configure a selection check before generating.",
			Mode:    core.ModeBasic,
		}
	}

	if v.evaluator == nil {
		return hypercubeValidate(table, expression, cfg)
	}

	result, err := v.evaluate(ctx, expression)
	if err != nil {
		v.logger.Debug("expression evaluation failed, falling back to hypercube validation",
			slog.String("expression", expression),
			slog.String("error", err.Error()))
		return hypercubeValidate(table, expression, cfg)
	}

	valid, detail := interpretOutcome(expression, result)

	message := "Selections satisfy the validation expression."
	if !valid {
		message = invalidMessage(cfg)
	}

	return core.ValidationResult{
		Valid:   valid,
		Message: message,
		Mode:    core.ModeCustomExpression,
		Details: []core.ValidationDetail{{
			Label:   "expression",
			Valid:   valid,
			Message: detail,
			Result:  result.String(),
		}},
	}
}

// evaluate guards the single external call: a panicking evaluator is
// reported as an error so the caller can fall back.
func (v *Validator) evaluate(ctx context.Context, expression string) (result core.EvalResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("evaluator panic: %v", r)
		}
	}()
	return v.evaluator.Evaluate(ctx, expression)
}

// invalidMessage prefers the configured custom message.
func invalidMessage(cfg core.ValidationConfig) string {
	if cfg.Message != "" {
		return cfg.Message
	}
	return "Selections do not satisfy the validation expression."
}
