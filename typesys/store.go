package typesys

import (
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Store interns types. Every constructor returns the one handle that stands
// for its structural content, so two calls with equal arguments return ==
// handles. A Store lives for one generation run and never evicts.
//
// A Store is safe for concurrent use. Types from different stores must not
// be mixed.
type Store struct {
	mu       sync.Mutex
	interned map[string]*node
	nextID   uint64

	simplifyMu     sync.RWMutex
	simplified     map[*node]Type
	simplifyFlight singleflight.Group
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		interned:   make(map[string]*node),
		simplified: make(map[*node]Type),
	}
}

// Len returns the number of distinct types interned so far.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.interned)
}

// Reference returns the placeholder for the named top-level type.
func (s *Store) Reference(name string) Type {
	return s.intern(&node{kind: KindReference, name: name})
}

// Ident returns the string literal type for value.
func (s *Store) Ident(value string) Type {
	return s.intern(&node{kind: KindIdent, name: value})
}

// Number returns the number type.
func (s *Store) Number() Type { return s.intern(&node{kind: KindNumber}) }

// String returns the string type.
func (s *Store) String() Type { return s.intern(&node{kind: KindString}) }

// Boolean returns the boolean type.
func (s *Store) Boolean() Type { return s.intern(&node{kind: KindBoolean}) }

// Object returns the object type with the given fields. Field order in the
// result is by name.
func (s *Store) Object(fields map[string]Property) Type {
	names := slices.Sorted(maps.Keys(fields))
	fs := make([]Field, len(names))
	for i, name := range names {
		s.own(fields[name].Type)
		fs[i] = Field{Name: name, Property: fields[name]}
	}
	return s.intern(&node{kind: KindObject, fields: fs})
}

// Array returns the array type with elements of type elem.
func (s *Store) Array(elem Type) Type {
	return s.intern(&node{kind: KindArray, elems: s.ownAll([]Type{elem})})
}

// Tuple returns the fixed-length tuple of elems.
func (s *Store) Tuple(elems ...Type) Type {
	return s.intern(&node{kind: KindTuple, elems: s.ownAll(elems)})
}

// Or returns the union of members. Member order is kept as given; use
// Simplify for the canonical form.
func (s *Store) Or(members ...Type) Type {
	return s.intern(&node{kind: KindOr, elems: s.ownAll(members)})
}

// And returns the intersection of members. Member order is kept as given;
// use Simplify for the canonical form.
func (s *Store) And(members ...Type) Type {
	return s.intern(&node{kind: KindAnd, elems: s.ownAll(members)})
}

func (s *Store) own(t Type) {
	if t.n == nil {
		panic("typesys: invalid Type")
	}
	if t.n.store != s {
		panic("typesys: Type belongs to a different Store")
	}
}

func (s *Store) ownAll(ts []Type) []Type {
	for _, t := range ts {
		s.own(t)
	}
	return slices.Clone(ts)
}

func (s *Store) intern(n *node) Type {
	key := n.key()

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.interned[key]; ok {
		return Type{n: existing}
	}
	s.nextID++
	n.id = s.nextID
	n.store = s
	s.interned[key] = n
	return Type{n: n}
}

// key is the canonical structural encoding of n. Children are encoded by
// their interned id, which is unique per structure within a Store.
func (n *node) key() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(int(n.kind)))
	b.WriteByte(':')
	switch n.kind {
	case KindReference, KindIdent:
		b.WriteString(strconv.Quote(n.name))
	case KindObject:
		for _, f := range n.fields {
			b.WriteString(strconv.Quote(f.Name))
			if f.Optional {
				b.WriteByte('?')
			} else {
				b.WriteByte('!')
			}
			b.WriteString(strconv.FormatUint(f.Type.n.id, 10))
			b.WriteByte(',')
		}
	default:
		for _, e := range n.elems {
			b.WriteString(strconv.FormatUint(e.n.id, 10))
			b.WriteByte(',')
		}
	}
	return b.String()
}
