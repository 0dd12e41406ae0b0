package parser

import (
	"fmt"
	"iter"
	"strings"

	"go.yaml.in/yaml/v4"
)

// OrderedMap is a string-keyed mapping that remembers document order.
//
// Paths, component schemas, properties, discriminator mappings and
// responses are all decoded into an OrderedMap so that generated output
// follows the order the document author chose.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

// NewOrderedMap builds an OrderedMap holding keys in the given order, with
// values taken from values.
func NewOrderedMap[V any](keys []string, values map[string]V) OrderedMap[V] {
	var m OrderedMap[V]
	for _, k := range keys {
		m.Set(k, values[k])
	}
	return m
}

// Len returns the number of entries.
func (m *OrderedMap[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *OrderedMap[V]) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// Get returns the value stored under key.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	var zero V
	if m == nil || m.values == nil {
		return zero, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Set stores value under key. A new key is appended; an existing key keeps
// its original position.
func (m *OrderedMap[V]) Set(key string, value V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// All iterates over entries in insertion order.
func (m *OrderedMap[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// UnmarshalYAML decodes a YAML mapping, keeping key order.
func (m *OrderedMap[V]) UnmarshalYAML(node *yaml.Node) error {
	return m.decode(node, false)
}

func (m *OrderedMap[V]) decode(node *yaml.Node, skipExtensions bool) error {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if skipExtensions && strings.HasPrefix(key, "x-") {
			continue
		}
		var v V
		if err := node.Content[i+1].Decode(&v); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		m.Set(key, v)
	}
	return nil
}

// Paths holds the path items of a document keyed by path template.
// Specification extensions are dropped while decoding.
type Paths struct {
	OrderedMap[*PathItem]
}

// UnmarshalYAML decodes the paths object.
func (p *Paths) UnmarshalYAML(node *yaml.Node) error {
	return p.decode(node, true)
}

// Responses holds the responses of an operation keyed by status code.
// Specification extensions are dropped while decoding.
type Responses struct {
	OrderedMap[*Response]
}

// UnmarshalYAML decodes the responses object.
func (r *Responses) UnmarshalYAML(node *yaml.Node) error {
	return r.decode(node, true)
}
