package typesys

import (
	"cmp"
	"slices"
	"strings"
)

// Compare is a total order over types. Kinds are ranked in declaration
// order; types of the same kind are compared by content, recursively.
//
// The order depends only on structure, never on the order in which types
// were interned, so sorting with Compare gives the same result however
// resolution was scheduled.
func Compare(a, b Type) int {
	if a.n == b.n {
		return 0
	}
	if c := cmp.Compare(a.Kind(), b.Kind()); c != 0 {
		return c
	}
	switch a.Kind() {
	case KindReference, KindIdent:
		return strings.Compare(a.n.name, b.n.name)
	case KindObject:
		return slices.CompareFunc(a.n.fields, b.n.fields, compareField)
	case KindArray, KindTuple, KindOr, KindAnd:
		return slices.CompareFunc(a.n.elems, b.n.elems, Compare)
	}
	return 0
}

func compareField(a, b Field) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	if a.Optional != b.Optional {
		if a.Optional {
			return 1
		}
		return -1
	}
	return Compare(a.Type, b.Type)
}
