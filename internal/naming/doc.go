// Package naming provides case conversion and inflection for generated
// identifiers.
//
// Word splitting follows the usual rules for mixed-case identifiers: any
// non-alphanumeric rune separates words, a lower-to-upper transition starts
// a new word, and an acronym ends before the capital that begins the next
// word. Operation names are built with [ToLowerCamelCase] and enum constant
// names with [Pluralize] followed by [ToShoutySnakeCase].
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
