package generator

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oeb25/abeye/internal/testutil"
	"github.com/oeb25/abeye/oaserrors"
	"github.com/oeb25/abeye/parser"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestGenerate_Golden(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		prefix string
	}{
		{name: "petstore", file: "testdata/petstore.yaml", prefix: "/beta/api/"},
		{name: "types_only", file: "testdata/types_only.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := GenerateWithOptions(context.Background(),
				WithFilePath(tt.file),
				WithAPIPrefix(tt.prefix),
			)
			require.NoError(t, err)
			newGoldie(t).Assert(t, tt.name, result.Source)
		})
	}
}

func TestGenerate_ResultCounts(t *testing.T) {
	result, err := GenerateWithOptions(context.Background(),
		WithFilePath("testdata/petstore.yaml"),
		WithAPIPrefix("/beta/api"),
		WithConcurrency(2),
	)
	require.NoError(t, err)

	assert.Equal(t, TargetTypeScript, result.Target)
	assert.Equal(t, "testdata/petstore.yaml", result.SourcePath)
	assert.Equal(t, "3.0.3", result.Version)
	assert.Equal(t, 4, result.Operations)
	assert.Equal(t, []string{"getPets", "postPets", "petsPetIdName", "webgraphHostIngoing"}, result.OperationNames)
	assert.Equal(t, 6, result.Types)
	assert.Equal(t, []string{"NewPet_Base", "Event_Created", "Event_Deleted"}, result.Skipped)
	assert.Positive(t, result.InternedTypes)
}

func TestGenerate_Deterministic(t *testing.T) {
	parsed, err := parser.New().Parse(context.Background(), "testdata/petstore.yaml")
	require.NoError(t, err)

	g := New()
	g.APIPrefix = "/beta/api"
	g.Concurrency = 8
	first, err := g.GenerateParsed(context.Background(), parsed)
	require.NoError(t, err)
	for range 10 {
		again, err := g.GenerateParsed(context.Background(), parsed)
		require.NoError(t, err)
		assert.Equal(t, string(first.Source), string(again.Source))
	}
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		prefix string
		is     error
		msg    string
	}{
		{
			name: "operation without response",
			doc: `
openapi: 3.0.3
paths:
  /ping:
    head:
      responses: {}
`,
			is:  oaserrors.ErrUnsupported,
			msg: "generator: HEAD /ping: unsupported construct: operation without response",
		},
		{
			name: "prefix mismatch",
			doc: `
openapi: 3.0.3
paths:
  /other/ping:
    get:
      responses:
        "200":
          description: ok
          content:
            text/plain:
              schema: {type: string}
`,
			prefix: "/api",
			is:     oaserrors.ErrConfig,
			msg:    "generator: GET /other/ping: configuration error for api-prefix (value: /api): path does not start with the API prefix",
		},
		{
			name: "bad schema",
			doc: `
openapi: 3.0.3
components:
  schemas:
    Loose: {description: anything}
`,
			is:  oaserrors.ErrUnsupported,
			msg: `generator: schema "Loose": unsupported construct: free-form schema`,
		},
		{
			name: "schema name not an identifier",
			doc: `
openapi: 3.0.3
components:
  schemas:
    Foo-Bar: {type: string}
`,
			is:  oaserrors.ErrUnsupported,
			msg: `generator: schema "Foo-Bar": unsupported construct: type name ("Foo-Bar" is not a TypeScript identifier)`,
		},
		{
			name: "schema name reserved",
			doc: `
openapi: 3.0.3
components:
  schemas:
    string: {type: integer}
`,
			is:  oaserrors.ErrUnsupported,
			msg: `generator: schema "string": unsupported construct: type name ("string" is a reserved word)`,
		},
		{
			name: "name collision",
			doc: `
openapi: 3.0.3
paths:
  /a-b:
    get:
      responses:
        "200":
          description: ok
          content:
            text/plain:
              schema: {type: string}
  /a/b:
    get:
      responses:
        "200":
          description: ok
          content:
            text/plain:
              schema: {type: string}
`,
			is:  oaserrors.ErrUnsupported,
			msg: "generator: GET /a/b: unsupported construct: operation name collision (aB is also the name of GET /a-b)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			g.APIPrefix = tt.prefix
			_, err := g.Generate(context.Background(), testutil.ParseDocument(t, tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.is)
			assert.Equal(t, tt.msg, err.Error())
		})
	}
}

func TestGenerateWithOptions_Validation(t *testing.T) {
	_, err := GenerateWithOptions(context.Background())
	assert.ErrorIs(t, err, oaserrors.ErrConfig)

	parsed, err := parser.New().Parse(context.Background(), "testdata/types_only.yaml")
	require.NoError(t, err)
	_, err = GenerateWithOptions(context.Background(), WithFilePath("x.yaml"), WithParsed(parsed))
	assert.ErrorIs(t, err, oaserrors.ErrConfig)

	_, err = GenerateWithOptions(context.Background(), WithParsed(parsed), WithTarget("rust"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid targets: ts")

	_, err = GenerateWithOptions(context.Background(), WithParsed(parsed), WithConcurrency(-1))
	assert.ErrorIs(t, err, oaserrors.ErrConfig)

	_, err = GenerateWithOptions(context.Background(), WithParsed(nil))
	assert.ErrorIs(t, err, oaserrors.ErrConfig)

	res, err := GenerateWithOptions(context.Background(), WithParsed(parsed), WithTarget(" TS "))
	require.NoError(t, err)
	assert.Equal(t, TargetTypeScript, res.Target)
}

func TestGenerateWithOptions_Stdin(t *testing.T) {
	res, err := GenerateWithOptions(context.Background(),
		WithFilePath("-"),
		WithParserOptions(parser.WithStdin(strings.NewReader("openapi: 3.0.0\ncomponents: {schemas: {N: {type: number}}}\n"))),
	)
	require.NoError(t, err)
	assert.Equal(t, "<stdin>", res.SourcePath)
	assert.True(t, strings.HasSuffix(string(res.Source), "export type N = number;\n"))
}

func TestWriteFile_SkipsUnchanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "api.ts")
	res := &GenerateResult{Source: []byte("export const x = 1;\n")}

	written, err := res.WriteFile(path)
	require.NoError(t, err)
	assert.True(t, written)

	info, err := os.Stat(path)
	require.NoError(t, err)
	modTime := info.ModTime()

	written, err = res.WriteFile(path)
	require.NoError(t, err)
	assert.False(t, written)
	info, err = os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, modTime, info.ModTime())

	res.Source = []byte("export const x = 2;\n")
	written, err = res.WriteFile(path)
	require.NoError(t, err)
	assert.True(t, written)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "export const x = 2;\n", string(data))
}

func TestParseTarget(t *testing.T) {
	got, err := ParseTarget("ts")
	require.NoError(t, err)
	assert.Equal(t, TargetTypeScript, got)

	_, err = ParseTarget("go")
	var cfgErr *oaserrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "target", cfgErr.Option)
}

func TestWriteFile_RefusesSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real.ts")
	link := filepath.Join(dir, "api.ts")
	require.NoError(t, os.WriteFile(target, []byte("// keep\n"), 0o600))
	require.NoError(t, os.Symlink(target, link))

	res := &GenerateResult{Source: []byte("export const x = 1;\n")}
	written, err := res.WriteFile(link)
	require.Error(t, err)
	assert.False(t, written)
	assert.Contains(t, err.Error(), "symlink")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "// keep\n", string(data))
}
