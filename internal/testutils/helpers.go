package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteStoryDir creates a directory named storyID inside a temp dir and
// seeds it with files. It returns the absolute directory path and fails the
// test immediately on error.
func WriteStoryDir(t *testing.T, storyID string, files map[string]string) string {
	t.Helper()

	// Loam prefers absolute paths, though t.TempDir usually returns one.
	absPath, err := filepath.Abs(filepath.Join(t.TempDir(), storyID))
	require.NoError(t, err, "Failed to get absolute path for temp dir")
	require.NoError(t, os.MkdirAll(absPath, 0o755))

	for name, content := range files {
		path := filepath.Join(absPath, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to seed %s", name)
	}

	return absPath
}
