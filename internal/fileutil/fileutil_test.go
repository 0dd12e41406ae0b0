package fileutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteIfChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "api.ts")

	written, err := WriteIfChanged(path, []byte("one"), ReadableByAll)
	require.NoError(t, err)
	assert.True(t, written)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, ReadableByAll, info.Mode().Perm()&ReadableByAll)

	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(path, old, old))

	written, err = WriteIfChanged(path, []byte("one"), ReadableByAll)
	require.NoError(t, err)
	assert.False(t, written)
	info, err = os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old))

	written, err = WriteIfChanged(path, []byte("two"), ReadableByAll)
	require.NoError(t, err)
	assert.True(t, written)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}

func TestWriteIfChanged_DirectoryInTheWay(t *testing.T) {
	dir := t.TempDir()
	_, err := WriteIfChanged(dir, []byte("x"), ReadableByAll)
	require.Error(t, err)
}
