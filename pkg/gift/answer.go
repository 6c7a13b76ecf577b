package gift

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// NormalizeAnswer folds case, trims, and strips all whitespace so that
// " Sky Blue " and "skyblue" compare equal.
func NormalizeAnswer(s string) string {
	folded := cases.Fold().String(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, folded)
}

// Accepts reports whether guess matches any of the gift's answers.
func (g Gift) Accepts(guess string) bool {
	normalized := NormalizeAnswer(guess)
	if normalized == "" {
		return false
	}
	for _, answer := range g.Answers {
		if NormalizeAnswer(answer) == normalized {
			return true
		}
	}
	return false
}
