// Package render substitutes mapped fields into prompt text using live
// data values from the current table snapshot.
package render

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/promptfield/pkg/core"
)

// maxValues caps how many distinct values are substituted per field.
const maxValues = 5

// Template renders the final prompt text.
//
// When at least one mapping resolves to a field, substitution is
// mapping-driven: every literal occurrence of each mapped placeholder
// token is replaced with that field's live value. When no mappings exist
// at all, a name-based fallback heuristic substitutes brace variants of
// every catalog field name. Placeholders that stay unresolved, or whose
// field yields no data, are left verbatim; rendering never fails.
func Template(promptText string, mappings []core.FieldMapping, table *core.DataTable) string {
	for i := range mappings {
		if mappings[i].Mapped() {
			return renderMapped(promptText, mappings, table)
		}
	}
	if len(mappings) == 0 {
		return renderFallback(promptText, table)
	}
	return promptText
}

// renderMapped replaces each mapped placeholder token with its field value.
func renderMapped(text string, mappings []core.FieldMapping, table *core.DataTable) string {
	for i := range mappings {
		m := &mappings[i]
		if !m.Mapped() {
			continue
		}
		value := fieldValue(table, m.MappedField)
		if value == "" {
			continue
		}
		text = strings.ReplaceAll(text, m.Placeholder, value)
	}
	return text
}

// renderFallback substitutes brace variants of every field name, keyed
// by the lower-cased name: {name}, {{name}} and their upper-cased forms.
func renderFallback(text string, table *core.DataTable) string {
	if table == nil {
		return text
	}

	fields := make([]core.FieldDescriptor, 0, table.ColumnCount())
	fields = append(fields, table.Dimensions...)
	fields = append(fields, table.Measures...)

	for _, f := range fields {
		value := fieldValue(table, f.Name)
		if value == "" {
			continue
		}
		key := strings.ToLower(f.Name)
		upper := strings.ToUpper(key)
		// Double-brace variants first so their inner single-brace form
		// is not clobbered.
		text = strings.ReplaceAll(text, "{{"+key+"}}", value)
		text = strings.ReplaceAll(text, "{{"+upper+"}}", value)
		text = strings.ReplaceAll(text, "{"+key+"}", value)
		text = strings.ReplaceAll(text, "{"+upper+"}", value)
	}
	return text
}

// fieldValue resolves a field name to its substitution value: for a
// dimension the first distinct non-empty display values, for a measure
// the first numeric values, both capped and joined with ", ". Dimensions
// are checked first, so a name present as both resolves to the dimension.
func fieldValue(table *core.DataTable, name string) string {
	if table == nil {
		return ""
	}

	if col, ok := table.DimensionIndex(name); ok {
		values := table.DistinctDimensionValues(col)
		if len(values) > maxValues {
			values = values[:maxValues]
		}
		return strings.Join(values, ", ")
	}

	if col, ok := table.MeasureIndex(name); ok {
		nums := table.MeasureValues(col)
		if len(nums) > maxValues {
			nums = nums[:maxValues]
		}
		parts := make([]string, len(nums))
		for i, n := range nums {
			parts[i] = strconv.FormatFloat(n, 'f', -1, 64)
		}
		return strings.Join(parts, ", ")
	}

	return ""
}
