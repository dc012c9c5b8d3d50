package activate

import (
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/expr-lang/expr/vm"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/livp123/logconf/internal/metrics"
	"github.com/livp123/logconf/internal/resolve"
	"github.com/livp123/logconf/internal/schema"
	"github.com/livp123/logconf/pkg/errors"
)

// Options tunes an activation.
// Options 调整激活行为。
type Options struct {
	// InstrumentRecords counts every emitted record in the Prometheus
	// registry, labeled by logger and level.
	// InstrumentRecords 将每条输出记录计入 Prometheus 注册表，按日志器和级别打标签。
	InstrumentRecords bool
}

// handlerSink is a constructed handler: its encoder, its write target,
// its minimum level and its optional compiled filter. One sink is built
// per handler definition and shared by every logger referencing it, so
// two loggers pointing at the same file handler write through one
// rotated file, not two.
// handlerSink 是构造好的处理器：编码器、写入目标、最小级别和可选的已编译过滤器。
// 每个处理器定义只构造一个 sink，由引用它的所有日志器共享，
// 因此指向同一文件处理器的两个日志器写入同一个轮转文件而不是两个。
type handlerSink struct {
	encoder zapcore.Encoder
	writer  zapcore.WriteSyncer
	level   zapcore.Level
	filter  *vm.Program
}

// Activate hands a fully resolved document to the logging facility and
// returns the resulting logger registry. The document is not mutated and
// the registry is immutable once built.
// Activate 将完全解析的文档交给日志设施并返回日志器注册表。
// 文档不会被修改，注册表构建后不可变。
func Activate(doc *schema.Document) (*Registry, error) {
	return ActivateWithOptions(doc, Options{})
}

// ActivateWithOptions is Activate with explicit options.
// ActivateWithOptions 是带显式选项的 Activate。
func ActivateWithOptions(doc *schema.Document, opts Options) (*Registry, error) {
	if err := resolve.Unresolved(doc); err != nil {
		return nil, err
	}
	if result := schema.NewStrictValidator().Validate(doc); !result.Valid {
		return nil, result.Err()
	}

	encoders := make(map[string]zapcore.Encoder, len(doc.Formatters))
	for _, name := range sortedKeys(doc.Formatters) {
		enc, err := buildEncoder(doc.Formatters[name], "formatters."+name)
		if err != nil {
			return nil, err
		}
		encoders[name] = enc
	}

	var closers []io.Closer
	classes := make(map[string]int)
	sinks := make(map[string]*handlerSink, len(doc.Handlers))
	for _, name := range sortedKeys(doc.Handlers) {
		sink, closer, err := buildSink(name, doc.Handlers[name], encoders)
		if err != nil {
			for _, c := range closers {
				c.Close()
			}
			return nil, err
		}
		if closer != nil {
			closers = append(closers, closer)
		}
		sinks[name] = sink
		classes[doc.Handlers[name].Class]++
	}

	var hooks []zap.Option
	if opts.InstrumentRecords {
		hooks = append(hooks, zap.Hooks(func(ent zapcore.Entry) error {
			metrics.RecordsEmitted.WithLabelValues(ent.LoggerName, levelName(ent.Level)).Inc()
			return nil
		}))
	}

	rootLevel, err := zapLevel(doc.Root.Level, "root.level")
	if err != nil {
		return nil, err
	}
	root := zap.New(
		zapcore.NewTee(buildCores(doc.Root.Handlers, rootLevel, sinks)...),
		hooks...,
	).Named("root").Sugar()

	loggers := make(map[string]*zap.SugaredLogger, len(doc.Loggers))
	for _, name := range sortedKeys(doc.Loggers) {
		lc := doc.Loggers[name]
		level, err := zapLevel(lc.Level, "loggers."+name+".level")
		if err != nil {
			return nil, err
		}
		cores := buildCores(lc.Handlers, level, sinks)
		if lc.Propagate {
			cores = append(cores, buildCores(doc.Root.Handlers, level, sinks)...)
		}
		loggers[name] = zap.New(zapcore.NewTee(cores...), hooks...).Named(name).Sugar()
	}

	metrics.ActivationsTotal.Inc()
	metrics.HandlersActive.Reset()
	for class, n := range classes {
		metrics.HandlersActive.WithLabelValues(class).Set(float64(n))
	}

	return &Registry{loggers: loggers, root: root, closers: closers}, nil
}

// buildSink constructs one handler's encoder, write target and level.
// The returned closer is non-nil only for file handlers.
// buildSink 构造单个处理器的编码器、写入目标和级别。
// 仅文件处理器返回非空的 closer。
func buildSink(name string, h schema.HandlerConfig, encoders map[string]zapcore.Encoder) (*handlerSink, io.Closer, error) {
	field := "handlers." + name

	level, err := zapLevel(h.Level, field+".level")
	if err != nil {
		return nil, nil, err
	}

	enc, ok := encoders[h.Formatter]
	if !ok {
		return nil, nil, errors.NewDanglingReferenceError("formatter", h.Formatter, field+".formatter")
	}

	sink := &handlerSink{encoder: enc, level: level}

	switch h.Class {
	case schema.ClassConsole:
		switch h.Stream {
		case schema.StreamStderr:
			sink.writer = zapcore.Lock(os.Stderr)
		case schema.StreamStdout, "":
			sink.writer = zapcore.Lock(os.Stdout)
		default:
			return nil, nil, errors.NewStreamError(h.Stream, field+".stream")
		}
	case schema.ClassFile:
		if dir := filepath.Dir(h.Filename); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, err
			}
		}
		lj := &lumberjack.Logger{
			Filename:   h.Filename,
			MaxSize:    h.MaxSize,
			MaxBackups: h.MaxBackups,
			MaxAge:     h.MaxAge,
			Compress:   h.Compress,
		}
		sink.writer = zapcore.AddSync(lj)
		return finishSink(sink, h, name, lj)
	default:
		return nil, nil, errors.NewClassError(h.Class, field+".class")
	}

	return finishSink(sink, h, name, nil)
}

func finishSink(sink *handlerSink, h schema.HandlerConfig, name string, closer io.Closer) (*handlerSink, io.Closer, error) {
	if h.Filter != "" {
		program, err := compileFilter(h.Filter, name)
		if err != nil {
			if closer != nil {
				closer.Close()
			}
			return nil, nil, err
		}
		sink.filter = program
	}
	return sink, closer, nil
}

// buildCores produces one core per handler reference. A record must
// clear both the logger's and the handler's minimum level, so the core
// is gated on the stricter of the two.
// buildCores 为每个处理器引用生成一个核心。
// 记录必须同时超过日志器和处理器的最小级别，因此核心以两者中更严格的为门槛。
func buildCores(handlers []string, loggerLevel zapcore.Level, sinks map[string]*handlerSink) []zapcore.Core {
	cores := make([]zapcore.Core, 0, len(handlers))
	for _, name := range handlers {
		sink, ok := sinks[name]
		if !ok {
			// validated earlier; an unknown name here is a programming error
			continue
		}
		var core zapcore.Core = zapcore.NewCore(
			sink.encoder.Clone(),
			sink.writer,
			maxLevel(loggerLevel, sink.level),
		)
		if sink.filter != nil {
			core = &filteredCore{Core: core, program: sink.filter}
		}
		cores = append(cores, core)
	}
	return cores
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
