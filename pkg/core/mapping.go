package core

// FieldMapping is the resolution state of one distinct placeholder.
// Exactly one FieldMapping exists per detected placeholder; mappings are
// keyed by the literal placeholder token (Placeholder field).
type FieldMapping struct {
	// Placeholder is the literal token, e.g. "{{Region}}" (the map key)
	Placeholder string `json:"placeholder"`
	// FieldName is the trimmed inner text of the token
	FieldName string `json:"fieldName"`
	// MappedField is the name of the field this placeholder resolves to,
	// or "" while unmapped
	MappedField string `json:"mappedField,omitempty"`
	// Confidence is the matcher score, 0–100
	Confidence int `json:"confidence"`
	// Source attributes the placeholder to the system or user prompt
	Source PlaceholderSource `json:"source"`
	// KeepAsText marks the placeholder as deliberately left verbatim.
	// A terminal resolution state distinct from mapped.
	KeepAsText bool `json:"keepAsText"`
	// SuggestedField is the matcher's best candidate, nil when none scored
	SuggestedField *FieldDescriptor `json:"suggestedField,omitempty"`
}

// Mapped reports whether the placeholder resolves to a field.
func (m *FieldMapping) Mapped() bool {
	return m.MappedField != ""
}

// Resolved reports whether the placeholder needs no further attention:
// either mapped to a field or explicitly kept as text.
func (m *FieldMapping) Resolved() bool {
	return m.Mapped() || m.KeepAsText
}
