package prompt

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/width"
)

// normalize folds case and full-width forms so "ＹＥＳ" and "５" read like "yes" and "5".
func normalize(text string) string {
	return cases.Fold().String(width.Narrow.String(strings.TrimSpace(text)))
}

func tokens(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '+' && r != '.'
	})
}
