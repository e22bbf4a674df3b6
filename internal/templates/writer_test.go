package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	outDir := t.TempDir()

	fullPath, err := WriteFile(outDir, "docs/pages/about/overview.md", []byte("content"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(outDir, "docs", "pages", "about", "overview.md"), fullPath)

	// #nosec G304 -- fullPath is controlled by test.
	data, err := os.ReadFile(fullPath)
	require.NoError(t, err)
	require.Equal(t, "content", string(data))

	_, err = WriteFile(outDir, "docs/pages/about/overview.md", []byte("replaced"))
	require.NoError(t, err)
	// #nosec G304 -- fullPath is controlled by test.
	data, err = os.ReadFile(fullPath)
	require.NoError(t, err)
	require.Equal(t, "replaced", string(data))
}

func TestWriteFile_PathTraversal(t *testing.T) {
	outDir := t.TempDir()

	_, err := WriteFile(outDir, "../outside.md", []byte("content"))
	require.Error(t, err)

	_, err = WriteFile(outDir, "/abs.md", []byte("content"))
	require.Error(t, err)

	_, err = WriteFile("", "x.md", nil)
	require.Error(t, err)
}
