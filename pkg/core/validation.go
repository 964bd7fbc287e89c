package core

// ValidationMode identifies which strategy produced a ValidationResult.
type ValidationMode string

// Validation mode constants.
const (
	// ModeBasic means custom validation is not configured; generation is
	// always gated off in this mode.
	ModeBasic ValidationMode = "basic"
	// ModeCustomExpression means the configured expression was evaluated
	// by the external evaluator.
	ModeCustomExpression ValidationMode = "custom_expression"
	// ModeHypercube means selections were validated structurally against
	// the data table, either by configuration or because the evaluator
	// failed.
	ModeHypercube ValidationMode = "hypercube_validation"
)

// ValidationDetail is one diagnostic line inside a ValidationResult.
type ValidationDetail struct {
	Label     string   `json:"label"`
	Valid     bool     `json:"valid"`
	Message   string   `json:"message"`
	FieldName string   `json:"fieldName,omitempty"`
	Result    string   `json:"result,omitempty"`
	Values    []string `json:"values,omitempty"`
}

// ValidationResult is the outcome of one selection-validation pass.
// It is recomputed on every layout or data change and never cached.
type ValidationResult struct {
	Valid   bool               `json:"valid"`
	Message string             `json:"message"`
	Mode    ValidationMode     `json:"mode"`
	Details []ValidationDetail `json:"details,omitempty"`
}

// ValidationConfig is the widget's selection-validation configuration.
type ValidationConfig struct {
	// Enabled turns custom validation on; when false the validator runs
	// in basic mode and always reports invalid.
	Enabled bool `json:"enabled" koanf:"enabled"`
	// Expression is the selection-check expression, e.g.
	// "GetSelectedCount(Customer)=1".
	Expression string `json:"expression" koanf:"expression"`
	// Message is the custom message reported when validation fails.
	Message string `json:"message" koanf:"message"`
}
