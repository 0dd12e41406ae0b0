// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"

	"github.com/oeb25/abeye/parser"
)

// ParseResult parses src, failing the test on error.
func ParseResult(t testing.TB, src string) *parser.ParseResult {
	t.Helper()
	res, err := parser.New().ParseBytes([]byte(src))
	if err != nil {
		t.Fatalf("Failed to parse document: %v", err)
	}
	return res
}

// ParseDocument parses src and returns the decoded document.
func ParseDocument(t testing.TB, src string) *parser.Document {
	t.Helper()
	return ParseResult(t, src).Document
}

// NewSimpleDocument returns a minimal OAS 3.0 document as a generic map,
// ready to be written with [WriteTempYAML] or [WriteTempJSON].
// Contains one GET /ping operation answering a Pong schema.
func NewSimpleDocument() map[string]any {
	return map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":   "Test API",
			"version": "1.0.0",
		},
		"paths": map[string]any{
			"/ping": map[string]any{
				"get": map[string]any{
					"responses": map[string]any{
						"200": map[string]any{
							"description": "ok",
							"content": map[string]any{
								"application/json": map[string]any{
									"schema": map[string]any{"$ref": "#/components/schemas/Pong"},
								},
							},
						},
					},
				},
			},
		},
		"components": map[string]any{
			"schemas": map[string]any{
				"Pong": map[string]any{
					"type":     "object",
					"required": []any{"ok"},
					"properties": map[string]any{
						"ok": map[string]any{"type": "boolean"},
					},
				},
			},
		},
	}
}

// WriteTempYAML marshals a document to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t testing.TB, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}
	return writeTemp(t, "test.yaml", data)
}

// WriteTempJSON marshals a document to JSON and writes it to a temporary file.
// Returns the path to the temporary file.
func WriteTempJSON(t testing.TB, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}
	return writeTemp(t, "test.json", data)
}

func writeTemp(t testing.TB, name string, data []byte) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, data, 0o600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}
	return tmpFile
}
