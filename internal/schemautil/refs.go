package schemautil

import (
	"slices"
	"strings"

	"github.com/oeb25/abeye/parser"
)

// InlineGraph maps each component schema name to the inlined component
// schemas its resolution expands, in first-seen order.
type InlineGraph map[string][]string

// BuildInlineGraph collects, for every component schema of doc, the
// underscore-named components reached through $ref or discriminator mapping
// targets anywhere inside it. References to other components become named
// placeholders and contribute no edge.
func BuildInlineGraph(doc *parser.Document) InlineGraph {
	graph := make(InlineGraph)
	for _, name := range doc.SchemaNames() {
		schema, _ := doc.Schema(name)
		c := &inlineCollector{seen: make(map[string]bool)}
		c.walk(schema)
		graph[name] = c.names
	}
	return graph
}

type inlineCollector struct {
	names []string
	seen  map[string]bool
}

func (c *inlineCollector) add(ref string) {
	name := strings.TrimPrefix(ref, SchemaRefPrefix)
	if name == "" || !IsInlined(name) || c.seen[name] {
		return
	}
	c.seen[name] = true
	c.names = append(c.names, name)
}

func (c *inlineCollector) walk(s *parser.Schema) {
	if s == nil {
		return
	}
	if s.Ref != "" {
		if name, ok := SchemaRefName(s.Ref); ok {
			c.add(name)
		}
		return
	}
	for _, prop := range s.Properties.All() {
		c.walk(prop)
	}
	c.walk(s.Items)
	for _, group := range [][]*parser.Schema{s.OneOf, s.AllOf, s.AnyOf} {
		for _, member := range group {
			c.walk(member)
		}
	}
	c.walk(s.Not)
	if s.Discriminator != nil {
		for _, target := range s.Discriminator.Mapping.All() {
			c.add(target)
		}
	}
}

// Cycles returns every set of inlined schemas that expand into each other.
// Each cycle is sorted by name and cycles are ordered by their first name.
//
// The strongly connected components are found with Tarjan's algorithm; a
// component is a cycle when it has more than one member or a self-loop.
func (g InlineGraph) Cycles() [][]string {
	var (
		index   = 0
		stack   []string
		indices = make(map[string]int)
		lowlink = make(map[string]int)
		onStack = make(map[string]bool)
		cycles  [][]string
	)

	var strongConnect func(string)
	strongConnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g[v] {
			if _, visited := indices[w]; !visited {
				strongConnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		if lowlink[v] == indices[v] {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			if len(scc) > 1 || slices.Contains(g[v], v) {
				slices.Sort(scc)
				cycles = append(cycles, scc)
			}
		}
	}

	nodes := make([]string, 0, len(g))
	for node := range g {
		nodes = append(nodes, node)
	}
	slices.Sort(nodes)
	for _, node := range nodes {
		if _, visited := indices[node]; !visited {
			strongConnect(node)
		}
	}

	slices.SortFunc(cycles, func(a, b []string) int { return strings.Compare(a[0], b[0]) })
	return cycles
}
