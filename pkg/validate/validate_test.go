package validate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/promptfield/pkg/core"
)

// stubEvaluator returns a fixed result or failure.
type stubEvaluator struct {
	result core.EvalResult
	err    error
	panics bool
}

func (e *stubEvaluator) Evaluate(_ context.Context, _ string) (core.EvalResult, error) {
	if e.panics {
		panic("evaluator exploded")
	}
	return e.result, e.err
}

func customerTable() *core.DataTable {
	return &core.DataTable{
		Dimensions: []core.FieldDescriptor{{Name: "Customer"}},
		Rows: [][]core.Cell{
			{{Text: "Acme"}},
			{{Text: "Acme"}},
		},
	}
}

func enabledConfig(expression string) core.ValidationConfig {
	return core.ValidationConfig{
		Enabled:    true,
		Expression: expression,
		Message:    "Select exactly one customer first.",
	}
}

func TestValidateBasicMode(t *testing.T) {
	v := New(&stubEvaluator{}, nil)

	tests := []struct {
		name string
		cfg  core.ValidationConfig
	}{
		{"disabled", core.ValidationConfig{Enabled: false, Expression: "GetSelectedCount(Customer)=1"}},
		{"empty expression", core.ValidationConfig{Enabled: true, Expression: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := v.Validate(context.Background(), customerTable(), tt.cfg)
			assert.False(t, res.Valid)
			assert.Equal(t, core.ModeBasic, res.Mode)
			assert.NotEmpty(t, res.Message)
		})
	}
}

func TestValidateCountExpressionTrue(t *testing.T) {
	v := New(&stubEvaluator{result: core.NumericResult(-1)}, nil)

	res := v.Validate(context.Background(), customerTable(), enabledConfig("GetSelectedCount(Customer)=1"))
	assert.True(t, res.Valid)
	assert.Equal(t, core.ModeCustomExpression, res.Mode)
}

func TestValidateCountExpressionFalse(t *testing.T) {
	cfg := enabledConfig("GetSelectedCount(Customer)=1")
	v := New(&stubEvaluator{result: core.NumericResult(0)}, nil)

	res := v.Validate(context.Background(), customerTable(), cfg)
	assert.False(t, res.Valid)
	assert.Equal(t, core.ModeCustomExpression, res.Mode)
	assert.Equal(t, cfg.Message, res.Message, "invalid result carries the configured message")
}

func TestValidateConnectivesUseCountConvention(t *testing.T) {
	// "x and y" style expressions use the -1 convention even without
	// count functions.
	v := New(&stubEvaluator{result: core.NumericResult(1)}, nil)

	res := v.Validate(context.Background(), customerTable(), enabledConfig("a=1 AND b=2"))
	assert.False(t, res.Valid, "numeric 1 is not -1 for a connective expression")
}

func TestValidateSimpleExpression(t *testing.T) {
	tests := []struct {
		name   string
		result core.EvalResult
		want   bool
	}{
		{"numeric one", core.NumericResult(1), true},
		{"text one", core.TextResult("1"), true},
		{"numeric minus one", core.NumericResult(-1), false},
		{"text true", core.TextResult("true"), false},
		{"absent", core.AbsentResult(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(&stubEvaluator{result: tt.result}, nil)
			res := v.Validate(context.Background(), customerTable(), enabledConfig("Count(Sales)>100"))
			assert.Equal(t, tt.want, res.Valid)
			assert.Equal(t, core.ModeCustomExpression, res.Mode)
		})
	}
}

func TestValidateEvaluatorFailureFallsBack(t *testing.T) {
	v := New(&stubEvaluator{err: errors.New("engine timeout")}, nil)

	// One distinct Customer value: exactly-one expectation satisfied.
	res := v.Validate(context.Background(), customerTable(), enabledConfig("GetSelectedCount(Customer)=1"))
	assert.Equal(t, core.ModeHypercube, res.Mode)
	assert.True(t, res.Valid)
}

func TestValidateEvaluatorPanicFallsBack(t *testing.T) {
	v := New(&stubEvaluator{panics: true}, nil)

	res := v.Validate(context.Background(), customerTable(), enabledConfig("GetSelectedCount(Customer)=1"))
	assert.Equal(t, core.ModeHypercube, res.Mode)
}

func TestValidateNilEvaluatorUsesHypercube(t *testing.T) {
	v := New(nil, nil)

	res := v.Validate(context.Background(), customerTable(), enabledConfig("GetSelectedCount(Customer)=1"))
	assert.Equal(t, core.ModeHypercube, res.Mode)
	assert.True(t, res.Valid)
}

func TestHypercubeMissingField(t *testing.T) {
	v := New(&stubEvaluator{err: errors.New("down")}, nil)

	table := &core.DataTable{
		Dimensions: []core.FieldDescriptor{{Name: "Region"}},
		Rows:       [][]core.Cell{{{Text: "East"}}},
	}

	res := v.Validate(context.Background(), table, enabledConfig("GetSelectedCount(Customer)=1"))
	assert.False(t, res.Valid)
	assert.Equal(t, core.ModeHypercube, res.Mode)
	require.Len(t, res.Details, 1)
	assert.Equal(t, "Customer", res.Details[0].FieldName)
}

func TestHypercubeExpectations(t *testing.T) {
	table := &core.DataTable{
		Dimensions: []core.FieldDescriptor{{Name: "Customer"}},
		Rows: [][]core.Cell{
			{{Text: "Acme"}},
			{{Text: "Globex"}},
		},
	}
	v := New(nil, nil)

	tests := []struct {
		name       string
		expression string
		want       bool
	}{
		{"exactly one with two selected", "GetSelectedCount(Customer)=1", false},
		{"at least one with two selected", "GetSelectedCount(Customer)>=1", true},
		{"greater than zero", "GetPossibleCount(Customer)>0", true},
		{"no operator defaults to exactly one", "GetSelectedCount(Customer)", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := v.Validate(context.Background(), table, enabledConfig(tt.expression))
			assert.Equal(t, tt.want, res.Valid)
			assert.Equal(t, core.ModeHypercube, res.Mode)
		})
	}
}

func TestHypercubeUnparseableExpression(t *testing.T) {
	v := New(nil, nil)

	res := v.Validate(context.Background(), customerTable(), enabledConfig("Sum(Sales)>0 and 1=1"))
	// Connective forces the count convention at evaluation time, but the
	// structural fallback cannot recover a field to check.
	assert.False(t, res.Valid)
	assert.Equal(t, core.ModeHypercube, res.Mode)
	require.Len(t, res.Details, 1)
	assert.Contains(t, res.Details[0].Message, "could not determine")
}

func TestHypercubeBracketedFieldName(t *testing.T) {
	v := New(nil, nil)

	res := v.Validate(context.Background(), customerTable(), enabledConfig("GetSelectedCount([Customer])=1"))
	assert.True(t, res.Valid)
}

func TestValidateNeverReturnsError(t *testing.T) {
	// Nil table plus failing evaluator still yields a structured result.
	v := New(&stubEvaluator{err: errors.New("down")}, nil)

	res := v.Validate(context.Background(), nil, enabledConfig("GetSelectedCount(Customer)=1"))
	assert.False(t, res.Valid)
	assert.Equal(t, core.ModeHypercube, res.Mode)
	assert.NotEmpty(t, res.Message)
}
