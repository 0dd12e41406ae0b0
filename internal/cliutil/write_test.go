package cliutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritef(t *testing.T) {
	var buf bytes.Buffer
	Writef(&buf, "%s: %d operations, %v", "petstore", 4, true)
	assert.Equal(t, "petstore: 4 operations, true", buf.String())
}

// errorWriter is a writer that always returns an error
type errorWriter struct{}

func (errorWriter) Write([]byte) (int, error) {
	return 0, &writeError{}
}

type writeError struct{}

func (e *writeError) Error() string {
	return "simulated write error"
}

func TestWritef_WriteError(t *testing.T) {
	var errBuf bytes.Buffer
	prev := ErrOutput
	ErrOutput = &errBuf
	t.Cleanup(func() { ErrOutput = prev })

	Writef(errorWriter{}, "This will fail")
	assert.Equal(t, "write error: simulated write error\n", errBuf.String())
}

func TestWriteSource(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"terminated", "export {};\n", "export {};\n"},
		{"unterminated", "export {};", "export {};\n"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			WriteSource(&buf, []byte(tt.src))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, [][]string{
		{"getPets", "GET /pets"},
		{"webgraphHostIngoing", "GET /webgraph/{host}/ingoing"},
	}))
	assert.Equal(t,
		"getPets              GET /pets\n"+
			"webgraphHostIngoing  GET /webgraph/{host}/ingoing\n",
		buf.String())
}
