package schema

// Level names accepted by the document schema. They mirror the severity
// ladder of the external logging facility.
// 文档模式接受的级别名称，与外部日志设施的严重性等级一致。
const (
	LevelNotSet   = "NOTSET"
	LevelDebug    = "DEBUG"
	LevelInfo     = "INFO"
	LevelWarning  = "WARNING"
	LevelError    = "ERROR"
	LevelCritical = "CRITICAL"
)

// Handler class identifiers. Console handlers bind a process stream,
// file handlers bind a rotated file sink.
// 处理器类型标识。console 绑定进程流，file 绑定轮转文件。
const (
	ClassConsole = "console"
	ClassFile    = "file"
)

// Stream identifiers for console handlers.
// console 处理器的流标识。
const (
	StreamStdout = "stdout"
	StreamStderr = "stderr"
)

// Document represents the top-level logging configuration document.
// It is parsed from one of two equivalent serializations (JSON or YAML)
// of the same schema.
// Document 表示顶级日志配置文档。
// 它从同一模式的两种等价序列化（JSON 或 YAML）之一解析而来。
type Document struct {
	Version    int                        `yaml:"version" json:"version"`
	Root       RootConfig                 `yaml:"root" json:"root"`
	Loggers    map[string]LoggerConfig    `yaml:"loggers,omitempty" json:"loggers,omitempty"`
	Handlers   map[string]HandlerConfig   `yaml:"handlers" json:"handlers"`
	Formatters map[string]FormatterConfig `yaml:"formatters" json:"formatters"`
}

// RootConfig is the root logger entry. Lookups of names without an
// explicit logger entry fall back to it.
// RootConfig 是根日志器条目，未显式配置的名称回退到它。
type RootConfig struct {
	Level    string   `yaml:"level" json:"level"`
	Handlers []string `yaml:"handlers" json:"handlers"`
}

// LoggerConfig is a named entry point that accepts messages at or above
// a minimum severity and forwards them to its handlers in order.
// LoggerConfig 是命名的日志入口，接受不低于最小严重性的消息并按顺序转发给处理器。
type LoggerConfig struct {
	Level    string   `yaml:"level" json:"level"`
	Handlers []string `yaml:"handlers" json:"handlers"`
	// Propagate forwards records to the root handlers as well.
	// Propagate 表示是否同时转发给根处理器。
	Propagate bool `yaml:"propagate,omitempty" json:"propagate,omitempty"`
}

// HandlerConfig is a sink definition. String fields may carry unresolved
// $name placeholder tokens until resolution.
// HandlerConfig 是输出端定义。字符串字段在解析前可能携带未解析的 $name 占位符。
type HandlerConfig struct {
	Class     string `yaml:"class" json:"class"`
	Level     string `yaml:"level" json:"level"`
	Formatter string `yaml:"formatter" json:"formatter"`

	// Stream: console handlers only ("stdout" or "stderr", default stdout).
	// Stream：仅用于 console 处理器（"stdout" 或 "stderr"，默认 stdout）。
	Stream string `yaml:"stream,omitempty" json:"stream,omitempty"`

	// Filename: file handlers only. Rotation is delegated to the sink.
	// Filename：仅用于 file 处理器。轮转由输出端负责。
	Filename   string `yaml:"filename,omitempty" json:"filename,omitempty"`
	MaxSize    int    `yaml:"max_size,omitempty" json:"max_size,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty" json:"max_backups,omitempty"`
	MaxAge     int    `yaml:"max_age,omitempty" json:"max_age,omitempty"`
	Compress   bool   `yaml:"compress,omitempty" json:"compress,omitempty"`

	// Filter: optional expression evaluated per record; records failing
	// the filter are skipped by this handler.
	// Filter：可选的表达式，逐条记录求值；不满足的记录被此处理器跳过。
	Filter string `yaml:"filter,omitempty" json:"filter,omitempty"`
}

// FormatterConfig controls how a record is rendered to text by the
// external facility. Format is a template with %(field)s placeholders
// (asctime, name, levelname, message); DateFormat is a strftime pattern.
// FormatterConfig 控制外部设施如何将记录渲染为文本。
// Format 是带 %(field)s 占位符的模板，DateFormat 是 strftime 模式。
type FormatterConfig struct {
	Format     string `yaml:"format" json:"format"`
	DateFormat string `yaml:"datefmt,omitempty" json:"datefmt,omitempty"`
}

// Clone returns a deep copy of the document. Resolution never mutates
// its input, so every transformation starts from a clone.
// Clone 返回文档的深拷贝。解析绝不修改输入，所有转换都从拷贝开始。
func (d *Document) Clone() *Document {
	out := &Document{
		Version: d.Version,
		Root: RootConfig{
			Level:    d.Root.Level,
			Handlers: append([]string(nil), d.Root.Handlers...),
		},
	}
	if d.Loggers != nil {
		out.Loggers = make(map[string]LoggerConfig, len(d.Loggers))
		for name, lg := range d.Loggers {
			lg.Handlers = append([]string(nil), lg.Handlers...)
			out.Loggers[name] = lg
		}
	}
	if d.Handlers != nil {
		out.Handlers = make(map[string]HandlerConfig, len(d.Handlers))
		for name, h := range d.Handlers {
			out.Handlers[name] = h
		}
	}
	if d.Formatters != nil {
		out.Formatters = make(map[string]FormatterConfig, len(d.Formatters))
		for name, f := range d.Formatters {
			out.Formatters[name] = f
		}
	}
	return out
}

// ValidLevel reports whether name is one of the schema level names.
// ValidLevel 报告 name 是否为合法的级别名称。
func ValidLevel(name string) bool {
	switch name {
	case LevelNotSet, LevelDebug, LevelInfo, LevelWarning, LevelError, LevelCritical:
		return true
	}
	return false
}

// ValidClass reports whether class is a known handler class.
// ValidClass 报告 class 是否为已知的处理器类型。
func ValidClass(class string) bool {
	return class == ClassConsole || class == ClassFile
}
