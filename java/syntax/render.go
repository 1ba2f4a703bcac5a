package syntax

import (
	"strings"
	"unicode"
)

// NormalizeType collapses the source text of a type into its canonical
// single-line rendering: no whitespace around punctuation, one space after
// commas, one space on each side of the '&' of an intersection bound, and
// single spaces between words ("? extends Number").
func NormalizeType(src string) string {
	var sb strings.Builder
	pendingSpace := false
	var prev rune
	for _, r := range src {
		if unicode.IsSpace(r) {
			pendingSpace = true
			continue
		}
		if sb.Len() > 0 {
			switch {
			case prev == ',' || prev == '&' || r == '&':
				sb.WriteByte(' ')
			case pendingSpace && !isTypePunct(prev) && !isTypePunct(r):
				sb.WriteByte(' ')
			}
		}
		sb.WriteRune(r)
		prev = r
		pendingSpace = false
	}
	return sb.String()
}

func isTypePunct(r rune) bool {
	switch r {
	case '<', '>', ',', '.', '[', ']', '(', ')':
		return true
	}
	return false
}
