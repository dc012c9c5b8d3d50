package activate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/livp123/logconf/internal/schema"
	"github.com/livp123/logconf/pkg/errors"
)

func TestTemplateFields(t *testing.T) {
	fields, err := templateFields("%(asctime)s - %(name)s - %(levelname)s - %(message)s", "formatters.default.format")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{
		"asctime":   true,
		"name":      true,
		"levelname": true,
		"message":   true,
	}, fields)

	fields, err = templateFields("%(levelname)s %(message)s", "f")
	require.NoError(t, err)
	assert.Len(t, fields, 2)

	_, err = templateFields("%(thread)s %(message)s", "f")
	assert.ErrorIs(t, err, errors.ErrSchemaInvalid)

	_, err = templateFields("%(message", "f")
	assert.ErrorIs(t, err, errors.ErrSchemaInvalid)
}

func TestConvertDateFormat(t *testing.T) {
	tests := []struct {
		pattern string
		layout  string
	}{
		{"", ""},
		{"%Y-%m-%d %H:%M:%S", "2006-01-02 15:04:05"},
		{"%d/%b/%Y", "02/Jan/2006"},
		{"%I:%M %p", "03:04 PM"},
		{"%H:%M:%S %z", "15:04:05 -0700"},
		{"100%% %Y", "100% 2006"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			layout, err := convertDateFormat(tt.pattern, "f")
			require.NoError(t, err)
			assert.Equal(t, tt.layout, layout)
		})
	}

	t.Run("unsupported directive", func(t *testing.T) {
		_, err := convertDateFormat("%Y %f", "formatters.default.datefmt")
		require.ErrorIs(t, err, errors.ErrInvalidDateFormat)
		assert.Contains(t, err.Error(), "%f")
	})

	t.Run("trailing percent", func(t *testing.T) {
		_, err := convertDateFormat("%Y %", "f")
		assert.ErrorIs(t, err, errors.ErrInvalidDateFormat)
	})
}

func TestBuildEncoder(t *testing.T) {
	enc, err := buildEncoder(schema.FormatterConfig{
		Format:     "%(asctime)s - %(name)s - %(levelname)s - %(message)s",
		DateFormat: "%Y-%m-%d %H:%M:%S",
	}, "formatters.default")
	require.NoError(t, err)
	assert.NotNil(t, enc)

	_, err = buildEncoder(schema.FormatterConfig{Format: "%(pid)s"}, "formatters.bad")
	assert.Error(t, err)
}

func TestZapLevel(t *testing.T) {
	tests := []struct {
		name  string
		level zapcore.Level
	}{
		{schema.LevelNotSet, zapcore.DebugLevel},
		{"", zapcore.DebugLevel},
		{schema.LevelDebug, zapcore.DebugLevel},
		{schema.LevelInfo, zapcore.InfoLevel},
		{schema.LevelWarning, zapcore.WarnLevel},
		{schema.LevelError, zapcore.ErrorLevel},
		{schema.LevelCritical, zapcore.FatalLevel},
	}
	for _, tt := range tests {
		level, err := zapLevel(tt.name, "f")
		require.NoError(t, err)
		assert.Equal(t, tt.level, level)
	}

	_, err := zapLevel("TRACE", "root.level")
	assert.ErrorIs(t, err, errors.ErrUnknownLevel)
}

func TestMaxLevel(t *testing.T) {
	assert.Equal(t, zapcore.InfoLevel, maxLevel(zapcore.DebugLevel, zapcore.InfoLevel))
	assert.Equal(t, zapcore.ErrorLevel, maxLevel(zapcore.ErrorLevel, zapcore.WarnLevel))
}
