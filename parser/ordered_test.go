package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func TestOrderedMap_KeepsDocumentOrder(t *testing.T) {
	var m OrderedMap[int]
	require.NoError(t, yaml.Unmarshal([]byte("zeta: 1\nalpha: 2\nmid: 3\n"), &m))

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, m.Keys())
	v, ok := m.Get("alpha")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	var seen []string
	for k := range m.All() {
		seen = append(seen, k)
	}
	assert.Equal(t, m.Keys(), seen)
}

func TestOrderedMap_JSONInput(t *testing.T) {
	var m OrderedMap[string]
	require.NoError(t, yaml.Unmarshal([]byte(`{"b": "x", "a": "y"}`), &m))
	assert.Equal(t, []string{"b", "a"}, m.Keys())
}

func TestOrderedMap_SetKeepsPosition(t *testing.T) {
	var m OrderedMap[string]
	m.Set("a", "1")
	m.Set("b", "2")
	m.Set("a", "3")

	assert.Equal(t, []string{"a", "b"}, m.Keys())
	v, _ := m.Get("a")
	assert.Equal(t, "3", v)
	assert.Equal(t, 2, m.Len())
}

func TestOrderedMap_NilSafe(t *testing.T) {
	var m *OrderedMap[string]
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Keys())
	_, ok := m.Get("a")
	assert.False(t, ok)
	for range m.All() {
		t.Fatal("nil map should not yield")
	}
}

func TestOrderedMap_RejectsSequence(t *testing.T) {
	var m OrderedMap[string]
	err := yaml.Unmarshal([]byte("- a\n- b\n"), &m)
	assert.Error(t, err)
}

func TestPaths_SkipsExtensions(t *testing.T) {
	var p Paths
	src := "x-internal: true\n/pets:\n  get: {}\n/users:\n  post: {}\n"
	require.NoError(t, yaml.Unmarshal([]byte(src), &p))

	assert.Equal(t, []string{"/pets", "/users"}, p.Keys())
	item, ok := p.Get("/pets")
	require.True(t, ok)
	assert.NotNil(t, item.Get)
}

func TestResponses_SkipsExtensions(t *testing.T) {
	var r Responses
	src := "\"404\":\n  description: missing\nx-trace: 1\n\"200\":\n  description: ok\n"
	require.NoError(t, yaml.Unmarshal([]byte(src), &r))
	assert.Equal(t, []string{"404", "200"}, r.Keys())
}

func TestNewOrderedMap(t *testing.T) {
	m := NewOrderedMap([]string{"b", "a"}, map[string]int{"a": 1, "b": 2})
	assert.Equal(t, []string{"b", "a"}, m.Keys())
	v, _ := m.Get("b")
	assert.Equal(t, 2, v)
}
