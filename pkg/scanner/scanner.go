// Package scanner extracts {{name}} placeholder tokens from prompt text.
package scanner

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/promptfield/pkg/core"
)

// placeholderPattern matches two open braces, one or more non-close-brace
// characters, and two close braces.
var placeholderPattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// Detect scans the system and user prompts for placeholder tokens.
//
// The two prompts are combined as "system user" (single space separator)
// and scanned globally; results are ordered by first occurrence in the
// combined text. Duplicate literal tokens each produce a separate entry —
// deduplication happens downstream where mappings are keyed by the
// literal token.
//
// A token is attributed to the system prompt when its offset falls inside
// the system prompt's length, else to the user prompt. The attribution is
// an offset heuristic and does not disambiguate a token that appears
// verbatim in both prompts.
func Detect(systemPrompt, userPrompt string) []core.Placeholder {
	combined := systemPrompt + " " + userPrompt

	matches := placeholderPattern.FindAllStringSubmatchIndex(combined, -1)
	if len(matches) == 0 {
		return nil
	}

	placeholders := make([]core.Placeholder, 0, len(matches))
	for _, m := range matches {
		start, end := m[0], m[1]
		inner := combined[m[2]:m[3]]

		source := core.SourceUser
		if start < len(systemPrompt) {
			source = core.SourceSystem
		}

		placeholders = append(placeholders, core.Placeholder{
			Raw:       combined[start:end],
			FieldName: strings.TrimSpace(inner),
			Position:  start,
			Source:    source,
		})
	}
	return placeholders
}
