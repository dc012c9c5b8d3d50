package activate

import (
	"io"
	"sort"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Registry holds the live loggers produced by an activation. It is
// read-only after construction; the configuration it came from cannot be
// mutated at runtime.
// Registry 保存激活产生的日志器。构造后只读；其来源配置在运行时不可变。
type Registry struct {
	loggers map[string]*zap.SugaredLogger
	root    *zap.SugaredLogger
	closers []io.Closer
}

// Get returns the logger configured under name. Names without an entry
// fall back to the root logger.
// Get 返回以 name 配置的日志器。没有条目的名称回退到根日志器。
func (r *Registry) Get(name string) *zap.SugaredLogger {
	if lg, ok := r.loggers[name]; ok {
		return lg
	}
	return r.root
}

// Root returns the root logger.
// Root 返回根日志器。
func (r *Registry) Root() *zap.SugaredLogger {
	return r.root
}

// Names returns the configured logger names in stable order.
// Names 按稳定顺序返回已配置的日志器名称。
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.loggers))
	for name := range r.loggers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sync flushes every logger's buffered entries.
// Sync 刷新每个日志器缓存的条目。
func (r *Registry) Sync() error {
	var err error
	err = multierr.Append(err, r.root.Sync())
	for _, name := range r.Names() {
		err = multierr.Append(err, r.loggers[name].Sync())
	}
	return err
}

// Close flushes and releases every file sink owned by the activation.
// Close 刷新并释放激活持有的所有文件输出端。
func (r *Registry) Close() error {
	err := r.Sync()
	for _, c := range r.closers {
		err = multierr.Append(err, c.Close())
	}
	return err
}
