package typesys

import (
	"slices"
	"strconv"
)

// Simplify rewrites t into canonical form:
//
//   - Object, Array and Tuple are simplified pointwise.
//   - Or members are simplified, sorted with Compare and deduplicated.
//   - And members are simplified, sorted and deduplicated. When every member
//     is an Object the members are merged into one Object, visiting members
//     in canonical order; on a field conflict the later field wins unless
//     the earlier one is an Ident and the later one is plain String.
//   - Reference and the primitive kinds are returned unchanged.
//
// Simplify is idempotent and memoized per Store. Concurrent calls for the
// same type share one computation.
func (s *Store) Simplify(t Type) Type {
	s.own(t)
	if out, ok := s.lookupSimplified(t); ok {
		return out
	}
	v, _, _ := s.simplifyFlight.Do(strconv.FormatUint(t.n.id, 10), func() (any, error) {
		if out, ok := s.lookupSimplified(t); ok {
			return out, nil
		}
		out := s.simplify(t)
		s.simplifyMu.Lock()
		s.simplified[t.n] = out
		s.simplifyMu.Unlock()
		return out, nil
	})
	return v.(Type)
}

func (s *Store) lookupSimplified(t Type) (Type, bool) {
	s.simplifyMu.RLock()
	defer s.simplifyMu.RUnlock()
	out, ok := s.simplified[t.n]
	return out, ok
}

func (s *Store) simplify(t Type) Type {
	switch t.Kind() {
	case KindObject:
		fields := make(map[string]Property, len(t.n.fields))
		for _, f := range t.n.fields {
			fields[f.Name] = Property{Type: s.Simplify(f.Type), Optional: f.Optional}
		}
		return s.Object(fields)
	case KindArray:
		return s.Array(s.Simplify(t.Elem()))
	case KindTuple:
		elems := make([]Type, len(t.n.elems))
		for i, e := range t.n.elems {
			elems[i] = s.Simplify(e)
		}
		return s.Tuple(elems...)
	case KindOr:
		return s.Or(s.canonicalMembers(t.n.elems)...)
	case KindAnd:
		members := s.canonicalMembers(t.n.elems)
		for _, m := range members {
			if m.Kind() != KindObject {
				return s.And(members...)
			}
		}
		return s.mergeObjects(members)
	default:
		return t
	}
}

// canonicalMembers simplifies members, then sorts and deduplicates them.
func (s *Store) canonicalMembers(members []Type) []Type {
	out := make([]Type, len(members))
	for i, m := range members {
		out[i] = s.Simplify(m)
	}
	slices.SortFunc(out, Compare)
	return slices.Compact(out)
}

func (s *Store) mergeObjects(objects []Type) Type {
	fields := make(map[string]Property)
	for _, obj := range objects {
		for _, f := range obj.Fields() {
			if old, ok := fields[f.Name]; ok &&
				old.Type.Kind() == KindIdent && f.Type.Kind() == KindString {
				continue
			}
			fields[f.Name] = f.Property
		}
	}
	return s.Object(fields)
}
