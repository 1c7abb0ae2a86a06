package schema

import (
	"strings"
	"unicode"
)

// normalizeHeader lowers a header and trims surrounding whitespace.
func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// stripWhitespace removes every whitespace rune from a lowered header, so
// "Qty  On Hand" and "qtyonhand" compare equal.
func stripWhitespace(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ResolveColumn maps an ordered candidate list onto a table's actual headers.
// Two comparators are tried in order: exact match ignoring case, then match
// ignoring case and all whitespace inside the header. Within each pass the
// candidate order expresses caller preference: the first candidate with a
// matching header wins. Returns the header index, or -1 when no candidate
// matches; absence is the caller's decision to treat as fatal.
func ResolveColumn(headers []string, candidates []string) int {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = normalizeHeader(h)
	}

	for _, cand := range candidates {
		want := normalizeHeader(cand)
		for i, h := range normalized {
			if h == want {
				return i
			}
		}
	}

	for _, cand := range candidates {
		want := stripWhitespace(cand)
		if want == "" {
			continue
		}
		for i, h := range headers {
			if stripWhitespace(h) == want {
				return i
			}
		}
	}

	return -1
}
