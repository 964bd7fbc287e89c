// Package matcher scores placeholder names against catalog fields.
//
// Matching is tiered; each catalog entry gets the confidence of the
// highest tier it satisfies, and an entry only displaces the current
// best suggestion when it scores strictly higher. Ties therefore resolve
// in catalog order, dimensions before measures.
package matcher

import (
	"strings"

	"github.com/leapstack-labs/promptfield/pkg/catalog"
	"github.com/leapstack-labs/promptfield/pkg/core"
)

// Confidence tiers.
const (
	ConfidenceExact      = 100
	ConfidenceContains   = 80
	ConfidenceStartsWith = 60
	ConfidenceToken      = 40
	ConfidenceNone       = 0
)

// AutoMapThreshold is the minimum confidence at which an unmapped
// placeholder is eligible for automatic mapping.
const AutoMapThreshold = 80

// Score returns the confidence of matching the placeholder field name
// against one catalog field. Both names are case-folded.
func Score(fieldName string, field core.FieldDescriptor) int {
	ph := strings.ToLower(strings.TrimSpace(fieldName))
	cat := strings.ToLower(field.Name)
	if ph == "" || cat == "" {
		return ConfidenceNone
	}

	switch {
	case ph == cat:
		return ConfidenceExact
	case strings.Contains(cat, ph):
		return ConfidenceContains
	case strings.HasPrefix(cat, ph):
		return ConfidenceStartsWith
	}

	if tokens := strings.Fields(cat); len(tokens) > 0 && strings.Contains(ph, tokens[0]) {
		return ConfidenceToken
	}
	return ConfidenceNone
}

// Match finds the best catalog field for a placeholder field name.
// Returns nil and confidence 0 when nothing matches.
func Match(fieldName string, c catalog.Catalog) (*core.FieldDescriptor, int) {
	var best *core.FieldDescriptor
	bestScore := ConfidenceNone

	for _, field := range c.All() {
		score := Score(fieldName, field)
		if score > bestScore {
			f := field
			best = &f
			bestScore = score
		}
		if bestScore == ConfidenceExact {
			break
		}
	}
	return best, bestScore
}

// Suggest produces one FieldMapping per distinct detected placeholder,
// keyed by the literal token; repeated tokens collapse to their first
// occurrence. Unmatched placeholders get confidence 0 and no suggestion.
func Suggest(placeholders []core.Placeholder, c catalog.Catalog) []core.FieldMapping {
	if len(placeholders) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(placeholders))
	mappings := make([]core.FieldMapping, 0, len(placeholders))

	for _, ph := range placeholders {
		if _, ok := seen[ph.Raw]; ok {
			continue
		}
		seen[ph.Raw] = struct{}{}

		field, confidence := Match(ph.FieldName, c)
		mappings = append(mappings, core.FieldMapping{
			Placeholder:    ph.Raw,
			FieldName:      ph.FieldName,
			Confidence:     confidence,
			Source:         ph.Source,
			SuggestedField: field,
		})
	}
	return mappings
}
