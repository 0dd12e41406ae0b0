package typesys

import (
	"strconv"
	"strings"
)

// Kind identifies the variant of a Type. The declaration order is also the
// rank used by Compare.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindReference
	KindObject
	KindArray
	KindTuple
	KindOr
	KindAnd
	KindNumber
	KindString
	KindBoolean
	KindIdent
)

var kindNames = [...]string{
	KindInvalid:   "invalid",
	KindReference: "reference",
	KindObject:    "object",
	KindArray:     "array",
	KindTuple:     "tuple",
	KindOr:        "or",
	KindAnd:       "and",
	KindNumber:    "number",
	KindString:    "string",
	KindBoolean:   "boolean",
	KindIdent:     "ident",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Type is a handle to an interned type. Handles from the same Store are
// equal exactly when the types they denote are structurally equal, so Type
// is usable as a map key and comparable with ==.
//
// The zero Type is invalid.
type Type struct {
	n *node
}

type node struct {
	store  *Store
	id     uint64
	kind   Kind
	name   string  // Reference name or Ident literal
	fields []Field // Object, sorted by name
	elems  []Type  // Array (one element), Tuple, Or, And
}

// Property is an object field's type and whether it may be omitted.
type Property struct {
	Type     Type
	Optional bool
}

// Field is a named Property.
type Field struct {
	Name string
	Property
}

// IsValid reports whether t was produced by a Store.
func (t Type) IsValid() bool { return t.n != nil }

// Kind returns the variant of t.
func (t Type) Kind() Kind {
	if t.n == nil {
		return KindInvalid
	}
	return t.n.kind
}

// Name returns the referenced name of a Reference or the literal of an Ident.
func (t Type) Name() string {
	if t.n == nil {
		return ""
	}
	return t.n.name
}

// Fields returns the fields of an Object ordered by name.
// The slice must not be modified.
func (t Type) Fields() []Field {
	if t.Kind() != KindObject {
		return nil
	}
	return t.n.fields
}

// Field looks up an Object field by name.
func (t Type) Field(name string) (Property, bool) {
	for _, f := range t.Fields() {
		if f.Name == name {
			return f.Property, true
		}
	}
	return Property{}, false
}

// Elem returns the element type of an Array.
func (t Type) Elem() Type {
	if t.Kind() != KindArray {
		return Type{}
	}
	return t.n.elems[0]
}

// Members returns the elements of a Tuple or the members of an Or or And.
// The slice must not be modified.
func (t Type) Members() []Type {
	switch t.Kind() {
	case KindTuple, KindOr, KindAnd:
		return t.n.elems
	}
	return nil
}

// Constants returns the literal values of an Or whose members are all
// Idents, in member order.
func (t Type) Constants() ([]string, bool) {
	if t.Kind() != KindOr {
		return nil, false
	}
	values := make([]string, 0, len(t.n.elems))
	for _, m := range t.n.elems {
		if m.Kind() != KindIdent {
			return nil, false
		}
		values = append(values, m.Name())
	}
	return values, true
}

// String renders t on a single line for logs and diagnostics.
func (t Type) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t Type) write(b *strings.Builder) {
	switch t.Kind() {
	case KindInvalid:
		b.WriteString("<invalid>")
	case KindReference:
		b.WriteString(t.n.name)
	case KindIdent:
		b.WriteString(strconv.Quote(t.n.name))
	case KindNumber, KindString, KindBoolean:
		b.WriteString(t.n.kind.String())
	case KindObject:
		b.WriteByte('{')
		for i, f := range t.n.fields {
			if i > 0 {
				b.WriteString("; ")
			}
			b.WriteString(f.Name)
			if f.Optional {
				b.WriteByte('?')
			}
			b.WriteString(": ")
			f.Type.write(b)
		}
		b.WriteByte('}')
	case KindArray:
		t.n.elems[0].writeOperand(b)
		b.WriteString("[]")
	case KindTuple:
		b.WriteByte('[')
		for i, e := range t.n.elems {
			if i > 0 {
				b.WriteString(", ")
			}
			e.write(b)
		}
		b.WriteByte(']')
	case KindOr, KindAnd:
		sep := " | "
		if t.n.kind == KindAnd {
			sep = " & "
		}
		if len(t.n.elems) == 0 {
			b.WriteString(t.n.kind.String() + "()")
			return
		}
		for i, e := range t.n.elems {
			if i > 0 {
				b.WriteString(sep)
			}
			e.writeOperand(b)
		}
	}
}

func (t Type) writeOperand(b *strings.Builder) {
	if k := t.Kind(); (k == KindOr || k == KindAnd) && len(t.n.elems) > 1 {
		b.WriteByte('(')
		t.write(b)
		b.WriteByte(')')
		return
	}
	t.write(b)
}
