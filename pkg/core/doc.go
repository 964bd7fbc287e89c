// Package core defines the shared language of the promptfield system.
//
// This package contains:
//   - Domain entities (DataTable, FieldDescriptor, Placeholder, FieldMapping)
//   - The validation result model (ValidationResult, ValidationDetail)
//   - The evaluator result variant (EvalResult)
//   - Service interfaces (SnapshotProvider)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
