package operations

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/oeb25/abeye/internal/testutil"
	"github.com/oeb25/abeye/oaserrors"
	"github.com/oeb25/abeye/parser"
	"github.com/oeb25/abeye/resolver"
)

func describe(op *Operation) string {
	var b strings.Builder
	b.WriteString(op.Method + " " + op.Path)
	writeParams := func(label string, params []Param) {
		if len(params) == 0 {
			return
		}
		parts := make([]string, len(params))
		for i, p := range params {
			parts[i] = p.Name + ": " + p.Type.String()
		}
		b.WriteString(" " + label + "(" + strings.Join(parts, ", ") + ")")
	}
	writeParams("params", op.PathParams)
	writeParams("query", op.QueryParams)
	if op.Body != nil {
		b.WriteString(" body(" + op.Body.Type.String() + ")")
	}
	if op.Response != nil {
		b.WriteString(" -> " + op.Status + " " + op.Response.Format.String())
		if op.Response.Type.IsValid() {
			b.WriteString(" " + op.Response.Type.String())
		}
	}
	return b.String()
}

// TestExtractAll_Archives runs every testdata archive: an openapi.yaml plus
// either a "want" file with one described operation per line or an "error"
// file with the expected message.
func TestExtractAll_Archives(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(strings.TrimSuffix(filepath.Base(path), ".txtar"), func(t *testing.T) {
			ar, err := txtar.ParseFile(path)
			require.NoError(t, err)
			files := make(map[string]string)
			for _, f := range ar.Files {
				files[f.Name] = string(f.Data)
			}

			doc := testutil.ParseDocument(t, files["openapi.yaml"])
			ops, err := New(resolver.New(doc)).ExtractAll(context.Background())

			if wantErr, ok := files["error"]; ok {
				require.Error(t, err)
				assert.Equal(t, strings.TrimSpace(wantErr), err.Error())
				return
			}
			require.NoError(t, err)
			lines := make([]string, len(ops))
			for i, op := range ops {
				lines[i] = describe(op)
			}
			assert.Equal(t, strings.TrimSpace(files["want"]), strings.Join(lines, "\n"))
		})
	}
}

func TestExtract_ErrorKinds(t *testing.T) {
	doc := testutil.ParseDocument(t, `
openapi: 3.0.3
paths:
  /a:
    get:
      parameters:
        - {name: h, in: header, schema: {type: string}}
      responses: {}
  /b:
    get:
      responses:
        "200":
          description: ok
          content:
            text/plain:
              schema: {type: number}
`)
	ex := New(resolver.New(doc))

	a, _ := doc.Paths.Get("/a")
	_, err := ex.ExtractPath("/a", a)
	assert.ErrorIs(t, err, oaserrors.ErrUnsupported)
	var opErr *oaserrors.OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "GET", opErr.Method)
	assert.Equal(t, "/a", opErr.Path)

	b, _ := doc.Paths.Get("/b")
	_, err = ex.ExtractPath("/b", b)
	assert.ErrorIs(t, err, oaserrors.ErrTypeMismatch)
	var mismatch *oaserrors.TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "number", mismatch.Actual)
}

func TestExtract_BodyIsSimplified(t *testing.T) {
	doc := testutil.ParseDocument(t, `
openapi: 3.0.3
components:
  schemas:
    Body_Base:
      type: object
      required: [id]
      properties:
        id: {type: string}
`)
	r := resolver.New(doc)
	op := &parser.Operation{
		RequestBody: &parser.RequestBody{
			Content: parser.NewOrderedMap([]string{"application/json"}, map[string]*parser.MediaType{
				"application/json": {Schema: &parser.Schema{AllOf: []*parser.Schema{
					{Ref: "#/components/schemas/Body_Base"},
					{Type: "object", Properties: parser.NewOrderedMap([]string{"n"}, map[string]*parser.Schema{
						"n": {Type: "number"},
					})},
				}}},
			}),
		},
	}

	got, err := New(r).Extract("/x", "POST", op)
	require.NoError(t, err)
	require.NotNil(t, got.Body)
	assert.Equal(t, "{id: string; n?: number}", got.Body.Type.String())
	assert.Nil(t, got.Response)
	assert.Empty(t, got.Status)
}

func TestExtract_RequestBodyRejections(t *testing.T) {
	r := resolver.New(testutil.ParseDocument(t, "openapi: 3.0.3\n"))
	ex := New(r)
	object := &parser.Schema{Type: "object"}

	tests := []struct {
		name    string
		content map[string]*parser.MediaType
		keys    []string
	}{
		{"no content", nil, nil},
		{"form", map[string]*parser.MediaType{"application/x-www-form-urlencoded": {Schema: object}}, []string{"application/x-www-form-urlencoded"}},
		{"no schema", map[string]*parser.MediaType{"application/json": {}}, []string{"application/json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := &parser.Operation{RequestBody: &parser.RequestBody{Content: parser.NewOrderedMap(tt.keys, tt.content)}}
			_, err := ex.Extract("/x", "POST", op)
			assert.ErrorIs(t, err, oaserrors.ErrUnsupported)
		})
	}
}

func TestSelectResponse(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want string
	}{
		{"single", []string{"404"}, "404"},
		{"single default", []string{"default"}, "default"},
		{"prefers 200", []string{"default", "201", "200"}, "200"},
		{"lowest success", []string{"default", "204", "202", "400"}, "202"},
		{"numeric before wildcard", []string{"2XX", "206"}, "206"},
		{"wildcard success", []string{"default", "2XX"}, "2XX"},
		{"default", []string{"400", "default", "500"}, "default"},
		{"first", []string{"404", "500"}, "404"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := make(map[string]*parser.Response, len(tt.keys))
			for _, k := range tt.keys {
				values[k] = &parser.Response{Description: k}
			}
			responses := parser.Responses{OrderedMap: parser.NewOrderedMap(tt.keys, values)}

			status, resp, ok := SelectResponse(&responses)
			require.True(t, ok)
			assert.Equal(t, tt.want, status)
			assert.Equal(t, tt.want, resp.Description)
		})
	}

	_, _, ok := SelectResponse(&parser.Responses{})
	assert.False(t, ok)
}

func TestExtractAll_Cancelled(t *testing.T) {
	doc := testutil.ParseDocument(t, `
openapi: 3.0.3
paths:
  /a:
    get:
      responses: {}
`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(resolver.New(doc)).ExtractAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResponseFormat_String(t *testing.T) {
	assert.Equal(t, "plain", ResponsePlain.String())
	assert.Equal(t, "json", ResponseJSON.String())
	assert.Equal(t, "event-stream", ResponseEventStream.String())
	assert.Equal(t, "ResponseFormat(9)", ResponseFormat(9).String())
}

func TestCheckStatusCodes(t *testing.T) {
	tests := []struct {
		key string
		ok  bool
	}{
		{"200", true},
		{"2XX", true},
		{"default", true},
		{"599", true},
		{"20", false},
		{"6XX", false},
		{"600", false},
		{"2xx", false},
		{"ok", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			responses := parser.Responses{OrderedMap: parser.NewOrderedMap(
				[]string{tt.key}, map[string]*parser.Response{tt.key: {}})}
			err := checkStatusCodes(&responses)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, oaserrors.ErrUnsupported)
		})
	}
}

func TestCheckPathParams(t *testing.T) {
	params := func(names ...string) []Param {
		out := make([]Param, len(names))
		for i, n := range names {
			out[i] = Param{Name: n}
		}
		return out
	}
	assert.NoError(t, checkPathParams("/pets", nil))
	assert.NoError(t, checkPathParams("/hosts/{host}/ports/{port}", params("host", "port")))
	assert.NoError(t, checkPathParams("/a/{x}/b/{x}", params("x")))

	err := checkPathParams("/hosts/{host}/ports/{port}", params("host"))
	assert.ErrorIs(t, err, oaserrors.ErrUnsupported)
	assert.EqualError(t, err, "unsupported construct: path parameters (port is in the path template but not declared)")

	err = checkPathParams("/hosts/{host}", params("host", "port"))
	assert.EqualError(t, err, "unsupported construct: path parameters (port is declared but not in the path template)")
}
