package core

// FieldKind distinguishes dimension fields from measure fields.
type FieldKind string

// Field kind constants.
const (
	FieldDimension FieldKind = "dimension"
	FieldMeasure   FieldKind = "measure"
)

// FieldDescriptor describes one named field exposed by the data table.
// Name uniqueness is not guaranteed by the source; consumers tolerate
// duplicates by letting the first match win.
type FieldDescriptor struct {
	// Name is the display name of the field
	Name string `json:"name"`
	// Kind is dimension or measure
	Kind FieldKind `json:"kind"`
	// Expression is the underlying definition (e.g. "Sum(Sales)")
	Expression string `json:"expression,omitempty"`
}
