// Package casing centralizes identifier case conversion for the code
// generators. Every target language derives method and type names through
// this package; no generator carries its own casing logic.
package casing

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English, cases.NoLower)

// split breaks an identifier into lowercase words. It handles snake_case,
// kebab-case, space-separated, and camelCase input.
func split(s string) []string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	for _, r := range s {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '/' || r == '.':
			flush()
		case unicode.IsUpper(r):
			flush()
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return words
}

// Pascal converts an identifier to PascalCase (Go exported names, type names).
func Pascal(s string) string {
	var b strings.Builder
	for _, w := range split(s) {
		b.WriteString(titleCaser.String(w))
	}
	return b.String()
}

// Camel converts an identifier to camelCase (TypeScript methods, IDL fields).
func Camel(s string) string {
	words := split(s)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(words[0])
	for _, w := range words[1:] {
		b.WriteString(titleCaser.String(w))
	}
	return b.String()
}

// Snake converts an identifier to snake_case (Python methods and modules).
func Snake(s string) string {
	return strings.Join(split(s), "_")
}
