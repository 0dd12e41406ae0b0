package resolver

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/oeb25/abeye/internal/schemautil"
	"github.com/oeb25/abeye/oaserrors"
	"github.com/oeb25/abeye/parser"
	"github.com/oeb25/abeye/typesys"
)

// Resolver turns the schemas of one document into types of one Store.
//
// Every component schema is resolved at most once; later requests for the
// same name reuse the cached result, including a cached failure. A Resolver
// is safe for concurrent use.
type Resolver struct {
	doc         *parser.Document
	store       *typesys.Store
	logger      parser.Logger
	concurrency int

	mu     sync.Mutex
	named  map[string]result
	flight singleflight.Group

	cyclic func() map[string][]string
}

type result struct {
	typ typesys.Type
	err error
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithStore makes the Resolver intern into s instead of a fresh Store.
func WithStore(s *typesys.Store) Option {
	return func(r *Resolver) { r.store = s }
}

// WithLogger sets the logger. Each resolved component schema is logged at
// debug level.
func WithLogger(l parser.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// WithConcurrency bounds the number of schemas ResolveAll resolves at once.
// Default: runtime.GOMAXPROCS(0)
func WithConcurrency(n int) Option {
	return func(r *Resolver) { r.concurrency = n }
}

// New creates a Resolver for doc.
func New(doc *parser.Document, opts ...Option) *Resolver {
	r := &Resolver{
		doc:   doc,
		named: make(map[string]result),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.store == nil {
		r.store = typesys.NewStore()
	}
	r.logger = parser.OrNop(r.logger)
	if r.concurrency <= 0 {
		r.concurrency = runtime.GOMAXPROCS(0)
	}
	r.cyclic = sync.OnceValue(func() map[string][]string {
		members := make(map[string][]string)
		for _, cycle := range schemautil.BuildInlineGraph(doc).Cycles() {
			for _, name := range cycle {
				members[name] = cycle
			}
		}
		return members
	})
	return r
}

// Store returns the Store types are interned into.
func (r *Resolver) Store() *typesys.Store { return r.store }

// Document returns the document being resolved.
func (r *Resolver) Document() *parser.Document { return r.doc }

// SchemaByName looks up a component schema. A "#/components/schemas/"
// prefix is accepted and stripped.
func (r *Resolver) SchemaByName(name string) (*parser.Schema, error) {
	name = strings.TrimPrefix(name, schemautil.SchemaRefPrefix)
	schema, ok := r.doc.Schema(name)
	if !ok || schema == nil {
		return nil, &oaserrors.ReferenceError{Ref: name}
	}
	if schema.Ref != "" {
		return nil, oaserrors.Unsupported("component reference", "%s is a $ref to %s", name, schema.Ref)
	}
	return schema, nil
}

// Shallow resolves a schema that may be a reference. A reference to a
// component whose name has no underscore yields a Reference placeholder;
// an underscore name is resolved and inlined. Inline schemas are resolved
// with Deep.
func (r *Resolver) Shallow(schema *parser.Schema) (typesys.Type, error) {
	if schema == nil {
		return typesys.Type{}, oaserrors.Unsupported("missing schema", "")
	}
	if schema.Ref == "" {
		return r.Deep(schema)
	}
	name, ok := schemautil.SchemaRefName(schema.Ref)
	if !ok {
		return typesys.Type{}, oaserrors.Unsupported("non-local reference", "%s", schema.Ref)
	}
	return r.byName(name)
}

// byName applies the shallow rule to a component name.
func (r *Resolver) byName(name string) (typesys.Type, error) {
	name = strings.TrimPrefix(name, schemautil.SchemaRefPrefix)
	if !schemautil.IsInlined(name) {
		if _, ok := r.doc.Schema(name); !ok {
			return typesys.Type{}, &oaserrors.ReferenceError{Ref: name}
		}
		return r.store.Reference(name), nil
	}
	return r.Named(name)
}

// Named resolves a component schema deeply. The result is computed once per
// Resolver; concurrent callers wait for the first computation.
func (r *Resolver) Named(name string) (typesys.Type, error) {
	name = strings.TrimPrefix(name, schemautil.SchemaRefPrefix)

	r.mu.Lock()
	res, ok := r.named[name]
	r.mu.Unlock()
	if ok {
		return res.typ, res.err
	}

	if cycle, ok := r.cyclic()[name]; ok {
		return typesys.Type{}, &oaserrors.SchemaError{
			Schema: name,
			Cause:  oaserrors.Unsupported("circular inline reference", "%s", strings.Join(cycle, " -> ")),
		}
	}

	v, _, _ := r.flight.Do(name, func() (any, error) {
		r.mu.Lock()
		res, ok := r.named[name]
		r.mu.Unlock()
		if ok {
			return res, nil
		}

		res = r.resolveNamed(name)

		r.mu.Lock()
		r.named[name] = res
		r.mu.Unlock()
		return res, nil
	})
	res = v.(result)
	return res.typ, res.err
}

func (r *Resolver) resolveNamed(name string) result {
	schema, err := r.SchemaByName(name)
	if err != nil {
		return result{err: err}
	}
	t, err := r.Deep(schema)
	if err != nil {
		return result{err: &oaserrors.SchemaError{Schema: name, Cause: err}}
	}
	r.logger.Debug("resolved schema", "name", name, "type", t.String())
	return result{typ: t}
}

// Deep resolves an inline schema. A declared type takes precedence; without
// one the schema must be a oneOf or an allOf.
func (r *Resolver) Deep(schema *parser.Schema) (typesys.Type, error) {
	if schema == nil {
		return typesys.Type{}, oaserrors.Unsupported("missing schema", "")
	}
	if schema.Ref != "" {
		return r.Shallow(schema)
	}
	switch schemautil.Classify(schema) {
	case schemautil.KindTyped:
		return r.typed(schema)
	case schemautil.KindTypeList:
		return typesys.Type{}, oaserrors.Unsupported("type array",
			"%s", strings.Join(schemautil.GetSchemaTypes(schema), ", "))
	case schemautil.KindOneOf:
		members, err := r.shallowAll(schema.OneOf)
		if err != nil {
			return typesys.Type{}, err
		}
		return r.store.Or(members...), nil
	case schemautil.KindAllOf:
		members, err := r.shallowAll(schema.AllOf)
		if err != nil {
			return typesys.Type{}, err
		}
		return r.store.And(members...), nil
	case schemautil.KindAnyOf:
		return typesys.Type{}, oaserrors.Unsupported("anyOf", "")
	case schemautil.KindNot:
		return typesys.Type{}, oaserrors.Unsupported("not", "")
	default:
		return typesys.Type{}, oaserrors.Unsupported("free-form schema", "")
	}
}

func (r *Resolver) typed(schema *parser.Schema) (typesys.Type, error) {
	switch typ := schemautil.GetSchemaTypes(schema)[0]; typ {
	case "string":
		if len(schema.Enum) == 0 {
			return r.store.String(), nil
		}
		members := make([]typesys.Type, len(schema.Enum))
		for i, v := range schema.Enum {
			s, ok := v.(string)
			if !ok {
				return typesys.Type{}, oaserrors.Unsupported("non-string enum value", "%v", v)
			}
			members[i] = r.store.Ident(s)
		}
		return r.store.Or(members...), nil
	case "number", "integer":
		return r.store.Number(), nil
	case "boolean":
		return r.store.Boolean(), nil
	case "object":
		return r.object(schema)
	case "array":
		return r.array(schema)
	default:
		return typesys.Type{}, oaserrors.Unsupported("unknown type", "%s", typ)
	}
}

func (r *Resolver) object(schema *parser.Schema) (typesys.Type, error) {
	if schema.Discriminator != nil {
		return r.discriminated(schema.Discriminator)
	}
	fields := make(map[string]typesys.Property, schema.Properties.Len())
	for name, prop := range schema.Properties.All() {
		t, err := r.Shallow(prop)
		if err != nil {
			return typesys.Type{}, fmt.Errorf("property %s: %w", name, err)
		}
		fields[name] = typesys.Property{Type: t, Optional: !schema.IsRequired(name)}
	}
	return r.store.Object(fields), nil
}

func (r *Resolver) discriminated(d *parser.Discriminator) (typesys.Type, error) {
	if ext := d.Extensions(); len(ext) > 0 {
		return typesys.Type{}, oaserrors.Unsupported("discriminator extension", "%s", strings.Join(ext, ", "))
	}
	if n := d.Mapping.Len(); n < 2 {
		return typesys.Type{}, oaserrors.Unsupported("discriminator mapping", "%d entries, need at least 2", n)
	}
	variants := make([]typesys.Type, 0, d.Mapping.Len())
	for tag, target := range d.Mapping.All() {
		t, err := r.byName(target)
		if err != nil {
			return typesys.Type{}, fmt.Errorf("discriminator %s=%s: %w", d.PropertyName, tag, err)
		}
		marker := r.store.Object(map[string]typesys.Property{
			d.PropertyName: {Type: r.store.Ident(tag)},
		})
		variants = append(variants, r.store.And(marker, t))
	}
	return r.store.Or(variants...), nil
}

// MaxTupleLength is the largest fixed array length typed as a tuple.
const MaxTupleLength = 1024

func (r *Resolver) array(schema *parser.Schema) (typesys.Type, error) {
	if schema.Items == nil {
		return typesys.Type{}, oaserrors.Unsupported("array without items", "")
	}
	elem, err := r.Shallow(schema.Items)
	if err != nil {
		return typesys.Type{}, fmt.Errorf("items: %w", err)
	}
	switch lo, hi := schema.MinItems, schema.MaxItems; {
	case lo == nil && hi == nil:
		return r.store.Array(elem), nil
	case lo != nil && hi != nil && *lo == *hi && *lo >= 0 && *lo <= MaxTupleLength:
		elems := make([]typesys.Type, *lo)
		for i := range elems {
			elems[i] = elem
		}
		return r.store.Tuple(elems...), nil
	default:
		return typesys.Type{}, oaserrors.Unsupported("array bounds", "minItems=%s maxItems=%s", bound(lo), bound(hi))
	}
}

func bound(n *int) string {
	if n == nil {
		return "unset"
	}
	return fmt.Sprint(*n)
}

func (r *Resolver) shallowAll(schemas []*parser.Schema) ([]typesys.Type, error) {
	out := make([]typesys.Type, len(schemas))
	for i, s := range schemas {
		t, err := r.Shallow(s)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// Resolved is one exported component schema with its simplified type.
type Resolved struct {
	Name string
	Type typesys.Type
}

// ResolveAll resolves and simplifies every component schema whose name has
// no underscore, in document order. Schemas are resolved in parallel; the
// result does not depend on scheduling.
func (r *Resolver) ResolveAll(ctx context.Context) ([]Resolved, error) {
	if cycles := schemautil.BuildInlineGraph(r.doc).Cycles(); len(cycles) > 0 {
		return nil, &oaserrors.SchemaError{
			Schema: cycles[0][0],
			Cause:  oaserrors.Unsupported("circular inline reference", "%s", strings.Join(cycles[0], " -> ")),
		}
	}

	var names []string
	for _, name := range r.doc.SchemaNames() {
		if !schemautil.IsInlined(name) {
			names = append(names, name)
		}
	}

	out := make([]Resolved, len(names))
	errs := make([]error, len(names))
	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := r.Named(name)
			if err != nil {
				errs[i] = err
				return nil
			}
			out[i] = Resolved{Name: name, Type: r.store.Simplify(t)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Report the first failure in document order.
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
