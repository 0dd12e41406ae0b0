// Package httputil provides HTTP method, status code, and media type helpers
// for operation extraction.
package httputil

import (
	"mime"
	"strconv"
	"strings"
)

// HTTP Status Code Constants
const (
	StatusCodeLength = 3   // Standard length of HTTP status codes (e.g., "200", "404")
	MinStatusCode    = 100 // Minimum valid HTTP status code
	MaxStatusCode    = 599 // Maximum valid HTTP status code
	WildcardChar     = 'X' // Wildcard character used in status code patterns (e.g., "2XX")

	// StatusDefault is the catch-all response key.
	StatusDefault = "default"
	// StatusOK is the preferred response key.
	StatusOK = "200"
)

// HTTP Method Constants
const (
	MethodGet     = "GET"
	MethodPut     = "PUT"
	MethodPost    = "POST"
	MethodDelete  = "DELETE"
	MethodOptions = "OPTIONS"
	MethodHead    = "HEAD"
	MethodPatch   = "PATCH"
	MethodTrace   = "TRACE"
)

// Methods lists the methods operations are extracted for, in emission order.
var Methods = []string{
	MethodDelete,
	MethodGet,
	MethodPut,
	MethodPost,
	MethodHead,
	MethodTrace,
	MethodPatch,
}

// Media types recognized in request and response content.
const (
	MediaTypeJSON        = "application/json"
	MediaTypePlain       = "text/plain"
	MediaTypeEventStream = "text/event-stream"
)

// ValidateStatusCode checks if a status code string is valid according to OpenAPI spec.
// Valid values are:
//   - "default" for default response
//   - Extension fields starting with "x-"
//   - Wildcard patterns: 1XX, 2XX, 3XX, 4XX, 5XX
//   - Numeric codes: 100-599
func ValidateStatusCode(code string) bool {
	if code == StatusDefault {
		return true
	}

	if strings.HasPrefix(code, "x-") {
		return true
	}

	if len(code) == StatusCodeLength {
		if code[1] == WildcardChar && code[2] == WildcardChar {
			return code[0] >= '1' && code[0] <= '5'
		}
		if _, ok := numericStatus(code); ok {
			return true
		}
	}

	return false
}

func numericStatus(code string) (int, bool) {
	if len(code) != StatusCodeLength {
		return 0, false
	}
	for i := range len(code) {
		if code[i] < '0' || code[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(code)
	if err != nil || n < MinStatusCode || n > MaxStatusCode {
		return 0, false
	}
	return n, true
}

// SuccessRank orders success response keys: numeric 2xx codes rank by
// value, and the "2XX" wildcard ranks after all of them. The second result
// is false for any other key.
func SuccessRank(code string) (int, bool) {
	if n, ok := numericStatus(code); ok {
		return n, n >= 200 && n < 300
	}
	if code == "2XX" {
		return 300, true
	}
	return 0, false
}

// MediaTypeBase strips parameters such as charset from a media type and
// lowercases it. An unparsable value is returned trimmed and lowercased.
func MediaTypeBase(mediaType string) string {
	base, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(mediaType))
	}
	return base
}
