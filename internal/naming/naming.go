// Package naming provides the case conversions used for generated identifiers.
package naming

import (
	"strings"
	"sync"
	"unicode"

	"github.com/gertd/go-pluralize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Words splits s into words. Any rune that is neither a letter nor a digit
// separates words, and so do case changes: "fooBar" splits before "B" and
// "HTTPServer" splits before "S". Digits stay with the preceding word.
// Example: "/webgraph_host/{id}" -> ["webgraph", "host", "id"]
// Example: "getHTTPStatus" -> ["get", "HTTP", "Status"]
func Words(s string) []string {
	s = norm.NFC.String(s)

	var words []string
	for _, field := range strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		words = append(words, splitCaseBoundaries(field)...)
	}
	return words
}

type caseMode int

const (
	modeBoundary caseMode = iota
	modeLower
	modeUpper
)

func splitCaseBoundaries(word string) []string {
	runes := []rune(word)
	var out []string
	start := 0
	mode := modeBoundary
	for i := 0; i+1 < len(runes); i++ {
		c, next := runes[i], runes[i+1]
		nextMode := mode
		switch {
		case unicode.IsLower(c):
			nextMode = modeLower
		case unicode.IsUpper(c):
			nextMode = modeUpper
		}

		switch {
		case nextMode == modeLower && unicode.IsUpper(next):
			out = append(out, string(runes[start:i+1]))
			start = i + 1
			mode = modeBoundary
		case mode == modeUpper && unicode.IsUpper(c) && unicode.IsLower(next):
			out = append(out, string(runes[start:i]))
			start = i
			mode = modeBoundary
		default:
			mode = nextMode
		}
	}
	return append(out, string(runes[start:]))
}

// ToLowerCamelCase joins the words of s with the first word lowercased and
// every later word capitalized.
// Example: "webgraph_host_ingoing" -> "webgraphHostIngoing"
// Example: "/_users_{id}" -> "usersId"
func ToLowerCamelCase(s string) string {
	words := Words(s)
	if len(words) == 0 {
		return ""
	}
	lower := cases.Lower(language.Und)
	title := cases.Title(language.Und)

	var b strings.Builder
	b.WriteString(lower.String(words[0]))
	for _, w := range words[1:] {
		b.WriteString(title.String(w))
	}
	return b.String()
}

// ToShoutySnakeCase uppercases every word of s and joins them with "_".
// Example: "ChatModels" -> "CHAT_MODELS"
func ToShoutySnakeCase(s string) string {
	words := Words(s)
	upper := cases.Upper(language.Und)
	for i, w := range words {
		words[i] = upper.String(w)
	}
	return strings.Join(words, "_")
}

var pluralizer = sync.OnceValue(pluralize.NewClient)

// Pluralize inflects word for count: a count of exactly one keeps the
// singular form, any other count yields the plural.
// Example: Pluralize("Status", 3) -> "Statuses"
func Pluralize(word string, count int) string {
	return pluralizer().Pluralize(word, count, false)
}

// ConstantName names the constant list of a literal-union type: the last
// word of typeName is inflected for count and the result is converted to
// SHOUTY_SNAKE_CASE.
// Example: ConstantName("PetKind", 3) -> "PET_KINDS"
func ConstantName(typeName string, count int) string {
	words := Words(typeName)
	if len(words) == 0 {
		return ""
	}
	words[len(words)-1] = Pluralize(words[len(words)-1], count)
	return ToShoutySnakeCase(strings.Join(words, "_"))
}
