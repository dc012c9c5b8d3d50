package tailer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livp123/logconf/internal/schema"
	"github.com/livp123/logconf/pkg/errors"
)

func tailDocument(dir string) *schema.Document {
	return &schema.Document{
		Version: 1,
		Root:    schema.RootConfig{Level: schema.LevelWarning, Handlers: []string{"file"}},
		Handlers: map[string]schema.HandlerConfig{
			"file": {
				Class: schema.ClassFile, Level: schema.LevelInfo,
				Formatter: "default", Filename: filepath.Join(dir, "app.log"),
			},
			"console": {
				Class: schema.ClassConsole, Level: schema.LevelInfo,
				Formatter: "default",
			},
		},
		Formatters: map[string]schema.FormatterConfig{
			"default": {Format: "%(message)s"},
		},
	}
}

func TestWatchDocumentStreamsAppendedLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	require.NoError(t, os.WriteFile(path, []byte("old line\n"), 0o644))

	tl := NewTailer()
	require.NoError(t, tl.WatchDocument(tailDocument(dir), ""))
	defer tl.Stop()

	// Give the follower time to seek to the end before appending.
	// 给跟踪器留出定位到文件末尾的时间，再追加内容。
	time.Sleep(300 * time.Millisecond)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("new line\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	select {
	case ev := <-tl.Events:
		assert.Equal(t, "new line", ev.Line)
		assert.Equal(t, "file", ev.Handler)
		assert.Equal(t, path, ev.Source)
	case <-time.After(10 * time.Second):
		t.Fatal("no event received for appended line")
	}
}

func TestWatchDocumentHandlerSelection(t *testing.T) {
	dir := t.TempDir()
	doc := tailDocument(dir)

	t.Run("unknown handler", func(t *testing.T) {
		tl := NewTailer()
		err := tl.WatchDocument(doc, "ghost")
		assert.ErrorIs(t, err, errors.ErrHandlerNotFound)
	})

	t.Run("console handler is not followable", func(t *testing.T) {
		tl := NewTailer()
		err := tl.WatchDocument(doc, "console")
		assert.ErrorIs(t, err, errors.ErrHandlerNotFound)
	})

	t.Run("no file handlers at all", func(t *testing.T) {
		consoleOnly := tailDocument(dir)
		delete(consoleOnly.Handlers, "file")
		tl := NewTailer()
		err := tl.WatchDocument(consoleOnly, "")
		assert.ErrorIs(t, err, errors.ErrHandlerNotFound)
	})
}

func TestStopClosesEvents(t *testing.T) {
	dir := t.TempDir()
	tl := NewTailer()
	require.NoError(t, tl.WatchDocument(tailDocument(dir), "file"))

	tl.Stop()

	_, open := <-tl.Events
	assert.False(t, open, "event channel must be closed after Stop")
}
