// Package options provides shared utilities for option validation across packages.
package options

import (
	"strings"

	"github.com/oeb25/abeye/oaserrors"
)

// Source is one way of supplying an input document, such as a file path or
// inline content.
type Source struct {
	Name string
	Set  bool
}

// ExactlyOne returns an *oaserrors.ConfigError for the "source" option
// unless exactly one of sources is set. The error value is the number of
// sources that were set.
func ExactlyOne(sources ...Source) error {
	n := 0
	names := make([]string, 0, len(sources))
	for _, s := range sources {
		names = append(names, s.Name)
		if s.Set {
			n++
		}
	}
	if n == 1 {
		return nil
	}
	return &oaserrors.ConfigError{
		Option:  "source",
		Value:   n,
		Message: "exactly one of " + listNames(names) + " must be provided",
	}
}

// listNames joins names as an English list: "a or b", "a, b, or c".
func listNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " or " + names[1]
	}
	return strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
}
