package customize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Compact removes all whitespace: "Gateway 1" -> "Gateway1".
func Compact(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// TitleCase upper-cases the first letter of every word: "gateway 1 items" -> "Gateway 1 Items".
func TitleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// UpperSnake converts a key to an upper-case constant name: "gateway-1" -> "GATEWAY_1".
func UpperSnake(s string) string {
	words := splitWords(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word)
	}
	return strings.Join(words, "_")
}

// splitWords splits a string into words (handles camelCase, PascalCase, snake_case, kebab-case).
func splitWords(s string) []string {
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")

	var result strings.Builder
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			prev := rune(s[i-1])
			if !unicode.IsSpace(prev) && !unicode.IsUpper(prev) {
				result.WriteRune(' ')
			}
		}
		result.WriteRune(r)
	}

	return strings.Fields(result.String())
}
