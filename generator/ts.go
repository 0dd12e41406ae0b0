package generator

import (
	"bytes"
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-json"

	"github.com/oeb25/abeye/internal/naming"
	"github.com/oeb25/abeye/internal/pathutil"
	"github.com/oeb25/abeye/oaserrors"
	"github.com/oeb25/abeye/operations"
	"github.com/oeb25/abeye/resolver"
	"github.com/oeb25/abeye/typesys"
)

//go:embed preamble.ts
var preamble string

var tsIdentifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// tsReserved lists words that cannot name a type alias.
var tsReserved = map[string]bool{
	"any": true, "bigint": true, "boolean": true, "break": true, "case": true,
	"catch": true, "class": true, "const": true, "continue": true, "debugger": true,
	"default": true, "delete": true, "do": true, "else": true, "enum": true,
	"export": true, "extends": true, "false": true, "finally": true, "for": true,
	"function": true, "if": true, "import": true, "in": true, "instanceof": true,
	"never": true, "new": true, "null": true, "number": true, "object": true,
	"return": true, "string": true, "super": true, "switch": true, "symbol": true,
	"this": true, "throw": true, "true": true, "try": true, "typeof": true,
	"undefined": true, "unknown": true, "var": true, "void": true, "while": true,
	"with": true,
}

// checkTypeName reports whether name can be emitted as an exported type alias.
func checkTypeName(name string) error {
	if !tsIdentifier.MatchString(name) {
		return oaserrors.Unsupported("type name", "%q is not a TypeScript identifier", name)
	}
	if tsReserved[name] {
		return oaserrors.Unsupported("type name", "%q is a reserved word", name)
	}
	return nil
}

// tsString renders s as a double-quoted string literal. JSON string syntax
// is a subset of TypeScript's.
func tsString(s string) string {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	// Encoding a string value cannot fail.
	_ = enc.Encode(s)
	return strings.TrimSuffix(b.String(), "\n")
}

// indent prefixes every non-empty line of s with two spaces.
func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = "  " + line
		}
	}
	return strings.Join(lines, "\n")
}

// tsKey renders an object property key, quoting it when it is not an
// identifier.
func tsKey(name string) string {
	if tsIdentifier.MatchString(name) {
		return name
	}
	return tsString(name)
}

// tsType renders t as a TypeScript type expression. Objects span several
// lines with their fields indented.
func tsType(t typesys.Type) string {
	switch t.Kind() {
	case typesys.KindReference:
		return t.Name()
	case typesys.KindIdent:
		return tsString(t.Name())
	case typesys.KindNumber:
		return "number"
	case typesys.KindString:
		return "string"
	case typesys.KindBoolean:
		return "boolean"
	case typesys.KindObject:
		fields := t.Fields()
		if len(fields) == 0 {
			return "{}"
		}
		lines := make([]string, len(fields))
		for i, f := range fields {
			opt := ""
			if f.Optional {
				opt = "?"
			}
			lines[i] = fmt.Sprintf("%s%s: %s;", tsKey(f.Name), opt, tsType(f.Type))
		}
		return "{\n" + indent(strings.Join(lines, "\n")) + "\n}"
	case typesys.KindArray:
		return tsOperand(t.Elem(), false) + "[]"
	case typesys.KindTuple:
		elems := t.Members()
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = tsType(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case typesys.KindOr:
		members := t.Members()
		if len(members) == 0 {
			return "never"
		}
		parts := make([]string, len(members))
		for i, m := range members {
			parts[i] = tsType(m)
		}
		return strings.Join(parts, " | ")
	case typesys.KindAnd:
		members := t.Members()
		if len(members) == 0 {
			return "unknown"
		}
		parts := make([]string, len(members))
		for i, m := range members {
			parts[i] = tsOperand(m, true)
		}
		return strings.Join(parts, " & ")
	}
	return "never"
}

// tsOperand renders t where a union, or an intersection outside another
// intersection, needs parentheses to keep its meaning.
func tsOperand(t typesys.Type, inAnd bool) string {
	s := tsType(t)
	switch t.Kind() {
	case typesys.KindOr:
		if len(t.Members()) > 1 {
			return "(" + s + ")"
		}
	case typesys.KindAnd:
		if !inAnd && len(t.Members()) > 1 {
			return "(" + s + ")"
		}
	}
	return s
}

// paramsObject builds the required-field object for a parameter list.
func paramsObject(store *typesys.Store, params []operations.Param) typesys.Type {
	fields := make(map[string]typesys.Property, len(params))
	for _, p := range params {
		fields[p.Name] = typesys.Property{Type: p.Type}
	}
	return store.Object(fields)
}

// tsURL renders the request path as a template literal, substituting path
// parameters and appending the query string.
func tsURL(path string, hasQuery bool) string {
	var b strings.Builder
	b.WriteByte('`')
	for _, seg := range pathutil.Segments(path) {
		if !seg.Param {
			b.WriteString(escapeTemplate(seg.Text))
			continue
		}
		access := "params." + seg.Text
		if !tsIdentifier.MatchString(seg.Text) {
			access = "params[" + tsString(seg.Text) + "]"
		}
		b.WriteString("${encodeURIComponent(" + access + ")}")
	}
	if hasQuery {
		b.WriteString("?${new URLSearchParams(query)}")
	}
	b.WriteByte('`')
	return b.String()
}

func escapeTemplate(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "`", "\\`")
	return strings.ReplaceAll(s, "${", "\\${")
}

// tsOperation renders the callable for op. path is the request path with
// the API prefix already removed.
func tsOperation(store *typesys.Store, op *operations.Operation, path string) (string, error) {
	if op.Response == nil {
		return "", oaserrors.Unsupported("operation without response", "")
	}

	var props, args []string
	args = append(args, tsString(op.Method), tsURL(path, len(op.QueryParams) > 0))
	if len(op.PathParams) > 0 {
		props = append(props, "params: "+tsType(paramsObject(store, op.PathParams)))
	}
	if len(op.QueryParams) > 0 {
		props = append(props, "query: "+tsType(paramsObject(store, op.QueryParams)))
	}
	if op.Body != nil {
		props = append(props, "body: "+tsType(op.Body.Type))
		args = append(args, "body")
	}
	props = append(props, "options?: ApiOptions")
	args = append(args, "options")

	var call string
	switch op.Response.Format {
	case operations.ResponsePlain:
		call = "requestPlain"
	case operations.ResponseJSON:
		call = "requestJson<" + tsType(op.Response.Type) + ">"
	case operations.ResponseEventStream:
		call = "sse<" + tsType(op.Response.Type) + ">"
	default:
		return "", oaserrors.Unsupported("response format", "%s", op.Response.Format)
	}
	return fmt.Sprintf("(%s) => %s(%s)", strings.Join(props, ", "), call, strings.Join(args, ", ")), nil
}

// namedOperation pairs an operation with its key in the api object.
type namedOperation struct {
	name string
	path string
	op   *operations.Operation
}

// writeTS renders the complete TypeScript module into buf.
func writeTS(buf *bytes.Buffer, store *typesys.Store, ops []namedOperation, types []resolver.Resolved) error {
	buf.WriteString(preamble)
	buf.WriteString("\n")

	entries := make([]string, len(ops))
	for i, n := range ops {
		fn, err := tsOperation(store, n.op, n.path)
		if err != nil {
			return &oaserrors.OperationError{Path: n.op.Path, Method: n.op.Method, Cause: err}
		}
		entries[i] = tsKey(n.name) + ": " + fn + ","
	}
	fmt.Fprintf(buf, "export const api = {\n%s\n};\n", indent(strings.Join(entries, "\n")))
	buf.WriteString("\n")

	for _, r := range types {
		if err := checkTypeName(r.Name); err != nil {
			return &oaserrors.SchemaError{Schema: r.Name, Cause: err}
		}
		buf.WriteString(Declaration(r.Name, r.Type))
	}
	return nil
}

// TypeScript renders t as a TypeScript type expression.
func TypeScript(t typesys.Type) string {
	return tsType(t)
}

// Declaration renders the exported type alias for a component schema. A
// union of string literals is followed by a constant listing its members.
func Declaration(name string, t typesys.Type) string {
	var b strings.Builder
	fmt.Fprintf(&b, "export type %s = %s;\n", name, tsType(t))
	if values, ok := t.Constants(); ok {
		quoted := make([]string, len(values))
		for i, v := range values {
			quoted[i] = tsString(v)
		}
		constName := naming.ConstantName(name, len(values))
		fmt.Fprintf(&b, "export const %s = [%s] satisfies %s[];\n", constName, strings.Join(quoted, ", "), name)
	}
	return b.String()
}
