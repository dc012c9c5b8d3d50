package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livp123/logconf/pkg/errors"
)

const sampleYAML = `
version: 1
root:
  level: WARNING
  handlers: [console]
handlers:
  console:
    class: console
    level: INFO
    formatter: default
    stream: stderr
  file:
    class: file
    level: $file_level
    formatter: default
    filename: $logfile
formatters:
  default:
    format: "%(asctime)s - %(name)s - %(levelname)s - %(message)s"
    datefmt: "%Y-%m-%d %H:%M:%S"
`

const sampleJSON = `{
  "version": 1,
  "root": {"level": "WARNING", "handlers": ["console"]},
  "handlers": {
    "console": {"class": "console", "level": "INFO", "formatter": "default", "stream": "stderr"},
    "file": {"class": "file", "level": "$file_level", "formatter": "default", "filename": "$logfile"}
  },
  "formatters": {
    "default": {"format": "%(asctime)s - %(name)s - %(levelname)s - %(message)s", "datefmt": "%Y-%m-%d %H:%M:%S"}
  }
}`

// TestParseEquivalence verifies the two serializations of one schema
// parse to identical structures.
// TestParseEquivalence 验证同一模式的两种序列化解析为相同结构。
func TestParseEquivalence(t *testing.T) {
	fromYAML, err := Parse([]byte(sampleYAML), FormatYAML)
	require.NoError(t, err)
	fromJSON, err := Parse([]byte(sampleJSON), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, fromYAML, fromJSON)
	assert.Equal(t, 1, fromYAML.Version)
	assert.Equal(t, "$logfile", fromYAML.Handlers["file"].Filename)
	assert.Equal(t, "%Y-%m-%d %H:%M:%S", fromYAML.Formatters["default"].DateFormat)
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path   string
		format Format
		ok     bool
	}{
		{"logger.yaml", FormatYAML, true},
		{"logger.yml", FormatYAML, true},
		{"LOGGER.YAML", FormatYAML, true},
		{"logger.json", FormatJSON, true},
		{"logger.toml", "", false},
		{"logger", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			format, err := FormatForPath(tt.path)
			if !tt.ok {
				assert.ErrorIs(t, err, errors.ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.format, format)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("yaml file", func(t *testing.T) {
		path := filepath.Join(dir, "logger.yaml")
		require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

		doc, err := Load(path)
		require.NoError(t, err)
		assert.Len(t, doc.Handlers, 2)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "absent.yaml"))
		assert.ErrorIs(t, err, errors.ErrDocumentNotFound)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "logger.ini"))
		assert.ErrorIs(t, err, errors.ErrUnsupportedFormat)
	})

	t.Run("malformed document", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		_, err := Load(path)
		assert.ErrorIs(t, err, errors.ErrSchemaInvalid)
	})
}

// TestEncodeRoundTrip verifies serialize-then-reparse yields an identical
// structure in both formats.
// TestEncodeRoundTrip 验证两种格式下序列化再解析得到相同结构。
func TestEncodeRoundTrip(t *testing.T) {
	doc, err := Parse([]byte(sampleYAML), FormatYAML)
	require.NoError(t, err)

	for _, format := range []Format{FormatYAML, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			data, err := Encode(doc, format)
			require.NoError(t, err)

			reparsed, err := Parse(data, format)
			require.NoError(t, err)
			assert.Equal(t, doc, reparsed)
		})
	}
}

func TestClone(t *testing.T) {
	doc, err := Parse([]byte(sampleYAML), FormatYAML)
	require.NoError(t, err)

	clone := doc.Clone()
	require.Equal(t, doc, clone)

	clone.Root.Handlers[0] = "mutated"
	h := clone.Handlers["file"]
	h.Filename = "/other/path.log"
	clone.Handlers["file"] = h

	assert.Equal(t, "console", doc.Root.Handlers[0])
	assert.Equal(t, "$logfile", doc.Handlers["file"].Filename)
}
