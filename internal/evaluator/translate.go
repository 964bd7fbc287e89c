package evaluator

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// countCall matches GetSelectedCount(...)/GetPossibleCount(...) with
	// a bare, bracketed, or quoted field reference.
	countCall = regexp.MustCompile(`(?i)(Get(?:Selected|Possible)Count)\s*\(\s*([^)]*?)\s*\)`)

	// connective matches standalone logical keywords in any case.
	connective = regexp.MustCompile(`(?i)\b(and|or|not)\b`)
)

// Translate rewrites a dashboard-dialect expression into Starlark:
//
//   - count-function arguments become string literals
//     (GetSelectedCount(Customer) → GetSelectedCount("Customer"))
//   - the single "=" comparison becomes "==", "<>" becomes "!="
//   - AND/OR/NOT are lower-cased
//
// The translation is purely textual; an untranslatable expression simply
// fails to evaluate, which callers treat as an evaluator failure.
func Translate(expression string) string {
	out := countCall.ReplaceAllStringFunc(expression, func(m string) string {
		sub := countCall.FindStringSubmatch(m)
		arg := strings.Trim(strings.TrimSpace(sub[2]), `[]'"`)
		return fmt.Sprintf("%s(%q)", canonicalName(sub[1]), arg)
	})

	out = strings.ReplaceAll(out, "<>", "!=")
	out = normalizeEquals(out)
	out = connective.ReplaceAllStringFunc(out, strings.ToLower)
	return out
}

// canonicalName maps a case-folded count function name onto the exact
// builtin identifier.
func canonicalName(name string) string {
	if strings.Contains(strings.ToLower(name), "selected") {
		return "GetSelectedCount"
	}
	return "GetPossibleCount"
}

// normalizeEquals rewrites the single "=" comparison operator to "=="
// while leaving ">=", "<=", "!=" and an existing "==" intact.
func normalizeEquals(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '=' {
			b.WriteRune(r)
			continue
		}

		var prev rune
		if i > 0 {
			prev = runes[i-1]
		}
		if prev == '<' || prev == '>' || prev == '!' {
			b.WriteRune('=')
			continue
		}
		if i+1 < len(runes) && runes[i+1] == '=' {
			b.WriteString("==")
			i++
			continue
		}
		b.WriteString("==")
	}
	return b.String()
}
