package logger

// Config defines the configuration for the tool's own diagnostic logging.
// This is independent of the documents being loaded: it controls how
// logconf reports on itself, not what the activated facility does.
// Config 定义工具自身诊断日志的配置。
// 它独立于被加载的文档：控制 logconf 如何报告自身，而非激活后的设施行为。
type Config struct {
	Level string `yaml:"level"`
	// Level: 日志级别（debug, info, warn, error）
	Path string `yaml:"path"`
	// Path: 日志文件路径，为空时输出到 stderr
	MaxSize int `yaml:"max_size"`
	// MaxSize: 轮转前的最大大小（MB）
	MaxBackups int `yaml:"max_backups"`
	// MaxBackups: 保留的旧文件最大数量
	MaxAge int `yaml:"max_age"`
	// MaxAge: 保留旧文件的最大天数
	Compress bool `yaml:"compress"`
	// Compress: 是否压缩旧文件
}
