package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExists(t *testing.T) {
	dir := t.TempDir()

	exists, err := Exists(filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	assert.False(t, exists)

	path := filepath.Join(dir, "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0600))
	exists, err = Exists(path)
	require.NoError(t, err)
	assert.True(t, exists)

	// A directory is not a file.
	exists, err = Exists(dir)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCreateDirectoryIfNotExist(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "path")

	require.NoError(t, CreateDirectoryIfNotExist(dir))
	ok, err := DirectoryExists(dir)
	require.NoError(t, err)
	assert.True(t, ok)

	// Creating it again is a no-op.
	require.NoError(t, CreateDirectoryIfNotExist(dir))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded, err := ExpandPath("~/.packpal/config.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".packpal/config.json"), expanded)

	unchanged, err := ExpandPath("/etc/packpal.json")
	require.NoError(t, err)
	assert.Equal(t, "/etc/packpal.json", unchanged)
}
