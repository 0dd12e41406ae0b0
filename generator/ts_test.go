package generator

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oeb25/abeye/oaserrors"
	"github.com/oeb25/abeye/operations"
	"github.com/oeb25/abeye/typesys"
)

func TestTSType(t *testing.T) {
	s := typesys.NewStore()
	dog, cat := s.Ident("dog"), s.Ident("cat")
	a := s.Object(map[string]typesys.Property{"a": {Type: s.Number()}})
	b := s.Object(map[string]typesys.Property{"b": {Type: s.String(), Optional: true}})

	tests := []struct {
		name string
		typ  typesys.Type
		want string
	}{
		{"reference", s.Reference("Pet"), "Pet"},
		{"ident", dog, `"dog"`},
		{"empty object", s.Object(nil), "{}"},
		{"object", a, "{\n  a: number;\n}"},
		{"optional field", b, "{\n  b?: string;\n}"},
		{"array of union", s.Array(s.Or(dog, cat)), `("dog" | "cat")[]`},
		{"array of single union", s.Array(s.Or(dog)), `"dog"[]`},
		{"array of intersection", s.Array(s.And(s.Reference("A"), s.Reference("B"))), "(A & B)[]"},
		{"union inside intersection", s.And(s.Or(dog, cat), s.Reference("B")), `("dog" | "cat") & B`},
		{"intersection inside intersection", s.And(s.And(s.Reference("A"), s.Reference("B")), s.Reference("C")), "A & B & C"},
		{"tuple", s.Tuple(s.Number(), s.Boolean()), "[number, boolean]"},
		{"empty union", s.Or(), "never"},
		{"empty intersection", s.And(), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeScript(tt.typ))
		})
	}
}

func TestTSKey(t *testing.T) {
	assert.Equal(t, "name", tsKey("name"))
	assert.Equal(t, "$ref", tsKey("$ref"))
	assert.Equal(t, "_x1", tsKey("_x1"))
	assert.Equal(t, `"content-type"`, tsKey("content-type"))
	assert.Equal(t, `"1st"`, tsKey("1st"))
	assert.Equal(t, `"a b"`, tsKey("a b"))
}

func TestTSString(t *testing.T) {
	assert.Equal(t, `"plain"`, tsString("plain"))
	assert.Equal(t, `"a\"b\\c\n"`, tsString("a\"b\\c\n"))
	assert.Equal(t, `"<&>"`, tsString("<&>"))
	assert.Equal(t, `"\u0007"`, tsString("\a"))
	assert.Equal(t, `"\u0000x"`, tsString("\x00x"))
	assert.Equal(t, `"héllo 😀"`, tsString("héllo 😀"))

	out := tsString("bad\xffbyte")
	assert.True(t, utf8.ValidString(out))
	assert.NotContains(t, out, `\x`)
}

func TestCheckTypeName(t *testing.T) {
	require.NoError(t, checkTypeName("Pet"))
	require.NoError(t, checkTypeName("$Pet2"))
	for _, name := range []string{"Foo-Bar", "1st", "a b", "", "string", "default"} {
		err := checkTypeName(name)
		assert.ErrorIs(t, err, oaserrors.ErrUnsupported, name)
	}
}

func TestTSURL(t *testing.T) {
	tests := []struct {
		path     string
		hasQuery bool
		want     string
	}{
		{"pets", false, "`pets`"},
		{"pets", true, "`pets?${new URLSearchParams(query)}`"},
		{"pets/{id}/name", false, "`pets/${encodeURIComponent(params.id)}/name`"},
		{"pets/{pet-id}", false, "`pets/${encodeURIComponent(params[\"pet-id\"])}`"},
		{"/abs/path", false, "`/abs/path`"},
		{"price/`usd`", false, "`price/\\`usd\\``"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, tsURL(tt.path, tt.hasQuery))
		})
	}
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "  a\n\n  b", indent("a\n\nb"))
	assert.Equal(t, "", indent(""))
}

func TestDeclaration(t *testing.T) {
	s := typesys.NewStore()

	got := Declaration("PetKind", s.Or(s.Ident("dog"), s.Ident("cat")))
	assert.Equal(t, "export type PetKind = \"dog\" | \"cat\";\n"+
		"export const PET_KINDS = [\"dog\", \"cat\"] satisfies PetKind[];\n", got)

	got = Declaration("Mode", s.Or(s.Ident("fast")))
	assert.Equal(t, "export type Mode = \"fast\";\nexport const MODE = [\"fast\"] satisfies Mode[];\n", got)

	got = Declaration("Count", s.Number())
	assert.Equal(t, "export type Count = number;\n", got)
}

func TestTSOperation_NilResponse(t *testing.T) {
	op := &operations.Operation{Path: "/ping", Method: "GET"}
	_, err := tsOperation(typesys.NewStore(), op, "ping")
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrUnsupported)
}

func TestTSOperation_Plain(t *testing.T) {
	s := typesys.NewStore()
	op := &operations.Operation{
		Path:     "/ping",
		Method:   "GET",
		Response: &operations.ResponseKind{Format: operations.ResponsePlain},
	}
	got, err := tsOperation(s, op, "ping")
	require.NoError(t, err)
	assert.True(t, strings.Contains(got, "requestPlain("), got)
	assert.True(t, strings.Contains(got, "`ping`"), got)
}

func TestNameOperations(t *testing.T) {
	ops := []*operations.Operation{
		{Path: "/beta/api/pets", Method: "GET"},
		{Path: "/beta/api/pets", Method: "POST"},
		{Path: "/beta/api/pets/{pet-id}/name", Method: "GET"},
		{Path: "/beta/api/webgraph/host/ingoing", Method: "GET"},
	}
	names, err := OperationNames(ops, "/beta/api/")
	require.NoError(t, err)
	assert.Equal(t, []string{"getPets", "postPets", "petsPetIdName", "webgraphHostIngoing"}, names)

	named, err := nameOperations(ops, "/beta/api")
	require.NoError(t, err)
	assert.Equal(t, "pets/{pet-id}/name", named[2].path)
}

func TestNameOperations_Errors(t *testing.T) {
	tests := []struct {
		name   string
		ops    []*operations.Operation
		prefix string
		is     error
	}{
		{
			name:   "prefix mismatch",
			ops:    []*operations.Operation{{Path: "/apis/pets", Method: "GET"}},
			prefix: "/api",
			is:     oaserrors.ErrConfig,
		},
		{
			name:   "nothing after prefix",
			ops:    []*operations.Operation{{Path: "/api", Method: "GET"}},
			prefix: "/api",
			is:     oaserrors.ErrUnsupported,
		},
		{
			name: "collision",
			ops: []*operations.Operation{
				{Path: "/pet_name", Method: "GET"},
				{Path: "/pet/name", Method: "GET"},
			},
			is: oaserrors.ErrUnsupported,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := nameOperations(tt.ops, tt.prefix)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.is)
			var opErr *oaserrors.OperationError
			assert.ErrorAs(t, err, &opErr)
		})
	}
}

func TestStripPrefix(t *testing.T) {
	got, ok := stripPrefix("/api/pets", "/api")
	assert.True(t, ok)
	assert.Equal(t, "pets", got)

	_, ok = stripPrefix("/apis/pets", "/api")
	assert.False(t, ok)

	got, ok = stripPrefix("/pets", "")
	assert.True(t, ok)
	assert.Equal(t, "/pets", got)
}
