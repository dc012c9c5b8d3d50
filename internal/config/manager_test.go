package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livp123/logconf/internal/activate"
	"github.com/livp123/logconf/internal/resolve"
	"github.com/livp123/logconf/pkg/errors"
)

func writeDocument(t *testing.T, dir string, name string, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const managerYAML = `
version: 1
root:
  level: WARNING
  handlers: [file]
loggers:
  app:
    level: $level
    handlers: [file]
handlers:
  file:
    class: file
    level: $level
    formatter: default
    filename: $logfile
formatters:
  default:
    format: "%(asctime)s - %(name)s - %(levelname)s - %(message)s"
`

func TestManagerLifecycle(t *testing.T) {
	dir := t.TempDir()
	path := writeDocument(t, dir, "logger.yaml", managerYAML)

	mgr := NewManager(path)
	assert.Equal(t, path, mgr.Path())

	require.NoError(t, mgr.Load())

	t.Run("resolved is unavailable before resolve", func(t *testing.T) {
		_, err := mgr.Resolved()
		assert.ErrorIs(t, err, errors.ErrNotResolved)
	})

	t.Run("resolve with missing variable fails", func(t *testing.T) {
		mgr.SetVars(resolve.Vars{"level": "INFO"})
		err := mgr.Resolve()
		require.ErrorIs(t, err, errors.ErrUnresolvedPlaceholder)
		assert.Contains(t, err.Error(), "$logfile")
	})

	t.Run("resolve with complete mapping", func(t *testing.T) {
		logfile := filepath.Join(dir, "app.log")
		mgr.SetVars(resolve.Vars{"level": "INFO", "logfile": logfile})
		require.NoError(t, mgr.Resolve())

		resolved, err := mgr.Resolved()
		require.NoError(t, err)
		assert.Equal(t, "INFO", resolved.Handlers["file"].Level)
		assert.Equal(t, logfile, resolved.Handlers["file"].Filename)

		// The loaded document keeps its tokens.
		// 已加载文档保留占位符。
		assert.Equal(t, "$logfile", mgr.Document().Handlers["file"].Filename)
	})

	t.Run("activate", func(t *testing.T) {
		registry, err := mgr.Activate(activate.Options{})
		require.NoError(t, err)
		registry.Get("app").Info("hello")
		require.NoError(t, registry.Close())

		data, err := os.ReadFile(filepath.Join(dir, "app.log"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "hello")
	})

	t.Run("setvars discards the resolved copy", func(t *testing.T) {
		mgr.SetVars(resolve.Vars{})
		_, err := mgr.Resolved()
		assert.ErrorIs(t, err, errors.ErrNotResolved)
	})
}

func TestManagerLoadErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing document", func(t *testing.T) {
		mgr := NewManager(filepath.Join(dir, "absent.yaml"))
		assert.ErrorIs(t, mgr.Load(), errors.ErrDocumentNotFound)
	})

	t.Run("invalid document", func(t *testing.T) {
		path := writeDocument(t, dir, "bad.yaml", `
version: 2
root:
  level: WARNING
  handlers: [ghost]
handlers:
  console:
    class: console
    level: INFO
    formatter: default
formatters:
  default:
    format: "%(message)s"
`)
		mgr := NewManager(path)
		assert.ErrorIs(t, mgr.Load(), errors.ErrSchemaInvalid)
	})

	t.Run("resolve before load", func(t *testing.T) {
		mgr := NewManager(filepath.Join(dir, "never-loaded.yaml"))
		assert.ErrorIs(t, mgr.Resolve(), errors.ErrDocumentNotFound)
	})
}

// TestManagerSaveRoundTrip verifies save-then-load yields an identical
// document, tokens included.
// TestManagerSaveRoundTrip 验证保存后重新加载得到包含占位符的相同文档。
func TestManagerSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := writeDocument(t, dir, "logger.yaml", managerYAML)

	mgr := NewManager(path)
	require.NoError(t, mgr.Load())
	before := mgr.Document()

	require.NoError(t, mgr.Save())

	reloaded := NewManager(path)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, before, reloaded.Document())
}

func TestManagerValidateReport(t *testing.T) {
	dir := t.TempDir()
	path := writeDocument(t, dir, "logger.yaml", `
version: 1
root:
  level: WARNING
  handlers: [console]
handlers:
  console:
    class: console
    level: INFO
    formatter: default
  spare:
    class: console
    level: INFO
    formatter: default
formatters:
  default:
    format: "%(message)s"
`)

	mgr := NewManager(path)
	require.NoError(t, mgr.Load())

	result := mgr.Validate()
	assert.True(t, result.Valid)
	require.NotEmpty(t, result.Warnings)
	assert.Equal(t, "handlers.spare", result.Warnings[0].Field)
}
