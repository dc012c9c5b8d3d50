package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.yaml")

	require.NoError(t, AtomicWriteFile(path, []byte("version: 1\n"), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "version: 1\n", string(data))

	// Overwrite replaces the content without leaving temp files behind.
	// 覆盖写入替换内容，且不残留临时文件。
	require.NoError(t, AtomicWriteFile(path, []byte("version: 2\n"), 0o644))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "version: 2\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestReadLines(t *testing.T) {
	t.Run("skips blank lines and trims", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vars.env")
		require.NoError(t, os.WriteFile(path, []byte("a=1\n\n  b=2  \n\n"), 0o644))

		lines, err := ReadLines(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"a=1", "b=2"}, lines)
	})

	t.Run("missing file yields no lines", func(t *testing.T) {
		lines, err := ReadLines(filepath.Join(t.TempDir(), "absent"))
		require.NoError(t, err)
		assert.Nil(t, lines)
	})

	t.Run("empty path yields no lines", func(t *testing.T) {
		lines, err := ReadLines("")
		require.NoError(t, err)
		assert.Nil(t, lines)
	})
}
