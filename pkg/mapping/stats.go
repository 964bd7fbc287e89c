package mapping

import "github.com/leapstack-labs/promptfield/pkg/core"

// Stats summarizes the resolution state of a mapping set.
// Mapped and kept-as-text entries both count as resolved.
type Stats struct {
	Total      int `json:"total"`
	Mapped     int `json:"mapped"`
	KeptAsText int `json:"keptAsText"`
	Unresolved int `json:"unresolved"`
}

// Resolved returns the number of entries needing no further attention.
func (s Stats) Resolved() int {
	return s.Mapped + s.KeptAsText
}

// Complete reports whether every detected placeholder is resolved.
func (s Stats) Complete() bool {
	return s.Unresolved == 0
}

// Status labels one entry's resolution state in the view model.
type Status string

// Status constants.
const (
	StatusMapped     Status = "mapped"
	StatusKeptAsText Status = "kept_as_text"
	StatusSuggested  Status = "suggested"
	StatusUnresolved Status = "unresolved"
)

// StatusRow is one line of the display-independent view model: enough to
// render a mapping panel without knowing anything about the display.
type StatusRow struct {
	Placeholder    string            `json:"placeholder"`
	FieldName      string            `json:"fieldName"`
	MappedField    string            `json:"mappedField,omitempty"`
	SuggestedField string            `json:"suggestedField,omitempty"`
	Confidence     int               `json:"confidence"`
	Source         core.PlaceholderSource `json:"source"`
	Status         Status            `json:"status"`
}

// Stats computes resolution statistics for the working set.
func (s *Store) Stats() Stats {
	return ComputeStats(s.entries)
}

// Summary builds the per-placeholder view model for the working set.
func (s *Store) Summary() []StatusRow {
	rows := make([]StatusRow, 0, len(s.entries))
	for _, e := range s.entries {
		rows = append(rows, statusRow(e))
	}
	return rows
}

// ComputeStats computes resolution statistics for any mapping list.
func ComputeStats(mappings []core.FieldMapping) Stats {
	stats := Stats{Total: len(mappings)}
	for i := range mappings {
		switch {
		case mappings[i].Mapped():
			stats.Mapped++
		case mappings[i].KeepAsText:
			stats.KeptAsText++
		default:
			stats.Unresolved++
		}
	}
	return stats
}

func statusRow(m core.FieldMapping) StatusRow {
	row := StatusRow{
		Placeholder: m.Placeholder,
		FieldName:   m.FieldName,
		MappedField: m.MappedField,
		Confidence:  m.Confidence,
		Source:      m.Source,
	}
	if m.SuggestedField != nil {
		row.SuggestedField = m.SuggestedField.Name
	}

	switch {
	case m.Mapped():
		row.Status = StatusMapped
	case m.KeepAsText:
		row.Status = StatusKeptAsText
	case m.SuggestedField != nil:
		row.Status = StatusSuggested
	default:
		row.Status = StatusUnresolved
	}
	return row
}
