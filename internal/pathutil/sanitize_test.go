package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeOutputPath(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "api.ts")
	require.NoError(t, os.WriteFile(existing, []byte("export {};\n"), 0o600))
	link := filepath.Join(dir, "link.ts")
	require.NoError(t, os.Symlink(existing, link))
	linkDir := filepath.Join(dir, "linkdir")
	require.NoError(t, os.Symlink(dir, linkDir))

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr string
	}{
		{name: "existing file", path: existing, want: existing},
		{name: "new file", path: filepath.Join(dir, "gen", "client.ts"), want: filepath.Join(dir, "gen", "client.ts")},
		{name: "dot-dot resolved", path: filepath.Join(dir, "gen", "..", "api.ts"), want: existing},
		{name: "empty", path: "", wantErr: "empty output path"},
		{name: "symlink", path: link, wantErr: "refusing to write to symlink"},
		{name: "symlinked directory", path: linkDir, wantErr: "refusing to write to symlink"},
		{name: "directory", path: dir, wantErr: "output path is a directory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeOutputPath(tt.path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeOutputPath_Relative(t *testing.T) {
	got, err := SanitizeOutputPath("api.ts")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
}
