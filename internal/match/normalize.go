package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent normalizes an identifier for fuzzy comparison:
// case is folded and separators (_, -, space, .) are dropped.
// "applyTo", "apply_to", "Apply-To" and "applyto" all normalize to "applyto".
func NormalizeIdent(s string) string {
	var sb strings.Builder

	sb.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		sb.WriteRune(unicode.ToLower(r))
	}

	return sb.String()
}

// TokenizeIdent splits an identifier into lower-case words on separators and
// camel-case boundaries.
// Examples:
//   - "valueFieldName" -> ["value", "field", "name"]
//   - "prev-same-level" -> ["prev", "same", "level"]
//   - "HTMLValue" -> ["html", "value"]
func TokenizeIdent(s string) []string {
	var tokens []string

	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsWord(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

// startsWord reports whether a new word starts at runes[i]: a lower-to-upper
// transition, or the last capital of an acronym followed by a lower-case rune.
func startsWord(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}
