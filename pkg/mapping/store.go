// Package mapping owns the working set of placeholder→field mappings.
//
// A Store is an explicit object owned by whichever component has the
// editing session open; it reconciles freshly detected placeholders,
// previously persisted mappings, and matcher suggestions. Recomputation
// is idempotent, so rapid re-scans simply rebuild the set from scratch.
package mapping

import (
	"log/slog"

	"github.com/leapstack-labs/promptfield/pkg/core"
	"github.com/leapstack-labs/promptfield/pkg/matcher"
)

// Store holds one FieldMapping per distinct detected placeholder, keyed
// by the literal placeholder token and ordered by first detection.
type Store struct {
	entries   []core.FieldMapping
	index     map[string]int
	threshold int
	logger    *slog.Logger
}

// NewStore creates an empty mapping store with the default auto-map
// threshold.
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		index:     make(map[string]int),
		threshold: matcher.AutoMapThreshold,
		logger:    logger,
	}
}

// SetThreshold overrides the minimum confidence for automatic mapping.
// Non-positive values are ignored.
func (s *Store) SetThreshold(threshold int) {
	if threshold > 0 {
		s.threshold = threshold
	}
}

// Reconcile replaces the working set with the merge of freshly detected
// mappings and persisted ones, then auto-maps high-confidence entries.
func (s *Store) Reconcile(detected, persisted []core.FieldMapping) {
	s.entries = mergeWithThreshold(detected, persisted, s.threshold)
	s.index = make(map[string]int, len(s.entries))
	for i, e := range s.entries {
		s.index[e.Placeholder] = i
	}

	stats := s.Stats()
	s.logger.Debug("mappings reconciled",
		slog.Int("total", stats.Total),
		slog.Int("mapped", stats.Mapped),
		slog.Int("unresolved", stats.Unresolved))
}

// Entries returns a copy of the working set in detection order.
func (s *Store) Entries() []core.FieldMapping {
	out := make([]core.FieldMapping, len(s.entries))
	copy(out, s.entries)
	return out
}

// Get returns the mapping for a literal placeholder token.
func (s *Store) Get(placeholder string) (core.FieldMapping, bool) {
	i, ok := s.index[placeholder]
	if !ok {
		return core.FieldMapping{}, false
	}
	return s.entries[i], true
}

// SetMapping resolves a placeholder to the named field. An empty field
// name clears the mapping. Setting a mapping clears keep-as-text.
// Returns false when the placeholder is not in the working set.
func (s *Store) SetMapping(placeholder, fieldName string) bool {
	i, ok := s.index[placeholder]
	if !ok {
		return false
	}
	s.entries[i].MappedField = fieldName
	if fieldName != "" {
		s.entries[i].KeepAsText = false
	}
	return true
}

// ClearMapping removes the field resolution and keep-as-text state of a
// placeholder, returning it to unresolved.
func (s *Store) ClearMapping(placeholder string) bool {
	i, ok := s.index[placeholder]
	if !ok {
		return false
	}
	s.entries[i].MappedField = ""
	s.entries[i].KeepAsText = false
	return true
}

// MarkKeepAsText marks a placeholder as deliberately left verbatim.
// This is a terminal resolution state distinct from mapped; any existing
// field resolution is dropped.
func (s *Store) MarkKeepAsText(placeholder string) bool {
	i, ok := s.index[placeholder]
	if !ok {
		return false
	}
	s.entries[i].KeepAsText = true
	s.entries[i].MappedField = ""
	return true
}

// AutoMapHighConfidence applies matcher suggestions to every unmapped
// entry whose confidence meets the auto-map threshold. Returns the
// number of entries mapped.
func (s *Store) AutoMapHighConfidence() int {
	mapped := 0
	for i := range s.entries {
		if autoMap(&s.entries[i], s.threshold) {
			mapped++
		}
	}
	if mapped > 0 {
		s.logger.Debug("auto-mapped high-confidence placeholders", slog.Int("count", mapped))
	}
	return mapped
}

// autoMap applies the suggestion to one entry when eligible: currently
// unmapped, not kept as text, confidence at threshold, suggestion known.
func autoMap(m *core.FieldMapping, threshold int) bool {
	if m.Resolved() {
		return false
	}
	if m.Confidence < threshold || m.SuggestedField == nil {
		return false
	}
	m.MappedField = m.SuggestedField.Name
	return true
}
