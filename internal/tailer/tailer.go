package tailer

import (
	"io"
	"sync"
	"time"

	"github.com/nxadm/tail"

	"github.com/livp123/logconf/internal/schema"
	"github.com/livp123/logconf/pkg/errors"
)

// Event is one line read from a followed handler file.
// Event 是从跟踪的处理器文件中读取的一行。
type Event struct {
	Handler   string
	Source    string
	Line      string
	Timestamp time.Time
}

// Tailer follows the file sinks of a resolved document and streams their
// lines. Rotation by the sink reopens the file transparently.
// Tailer 跟踪解析后文档的文件输出端并流式输出其行。
// 输出端轮转时透明地重新打开文件。
type Tailer struct {
	Events chan Event

	mu       sync.Mutex
	wg       sync.WaitGroup
	tails    []*tail.Tail
	followed map[string]bool
}

// NewTailer creates an idle tailer.
// NewTailer 创建空闲的 Tailer。
func NewTailer() *Tailer {
	return &Tailer{
		Events:   make(chan Event, 1024),
		followed: make(map[string]bool),
	}
}

// WatchDocument follows every file handler of the document. When handler
// is non-empty only that handler is followed; naming a handler that is
// not a file handler is an error.
// WatchDocument 跟踪文档中的每个文件处理器。handler 非空时只跟踪该处理器；
// 指定的名称不是文件处理器时报错。
func (t *Tailer) WatchDocument(doc *schema.Document, handler string) error {
	matched := false
	for name, h := range doc.Handlers {
		if handler != "" && name != handler {
			continue
		}
		if h.Class != schema.ClassFile {
			continue
		}
		matched = true
		if err := t.watch(name, h.Filename); err != nil {
			return err
		}
	}
	if !matched {
		if handler != "" {
			return errors.NewHandlerNotFoundError(handler)
		}
		return errors.NewHandlerNotFoundError("no file handlers defined")
	}
	return nil
}

// watch starts following one file. The follower is created synchronously
// so Stop always sees every follower that WatchDocument registered.
// watch 开始跟踪单个文件。跟踪器同步创建，
// 使 Stop 总能看到 WatchDocument 注册的所有跟踪器。
func (t *Tailer) watch(handler string, filename string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.followed[filename] {
		return nil
	}

	config := tail.Config{
		Location:  &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd},
		Follow:    true,
		ReOpen:    true, // Handle sink rotation
		MustExist: false,
		Poll:      true, // Fallback if inotify fails
		Logger:    tail.DiscardingLogger,
	}
	follower, err := tail.TailFile(filename, config)
	if err != nil {
		return err
	}

	t.followed[filename] = true
	t.tails = append(t.tails, follower)
	t.wg.Add(1)
	go t.pump(handler, filename, follower)
	return nil
}

func (t *Tailer) pump(handler string, filename string, follower *tail.Tail) {
	defer t.wg.Done()

	for line := range follower.Lines {
		if line.Err != nil {
			continue
		}
		t.Events <- Event{
			Handler:   handler,
			Source:    filename,
			Line:      line.Text,
			Timestamp: line.Time,
		}
	}
}

// Stop stops every follower and closes the event channel.
// Stop 停止所有跟踪并关闭事件通道。
func (t *Tailer) Stop() {
	t.mu.Lock()
	tails := t.tails
	t.mu.Unlock()
	for _, follower := range tails {
		follower.Stop()
	}
	t.wg.Wait()
	close(t.Events)
}
