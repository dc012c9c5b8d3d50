package activate

import (
	"github.com/livp123/logconf/internal/resolve"
	"github.com/livp123/logconf/internal/schema"
)

// Check performs a dry-run activation: strict validation plus encoder
// and filter construction, without opening any sink. A nil error means
// Activate would succeed apart from I/O failures.
// Check 执行试运行激活：严格验证加上编码器和过滤器构造，但不打开任何输出端。
// 返回 nil 表示除 I/O 失败外 Activate 必定成功。
func Check(doc *schema.Document) error {
	if err := resolve.Unresolved(doc); err != nil {
		return err
	}
	if result := schema.NewStrictValidator().Validate(doc); !result.Valid {
		return result.Err()
	}

	for _, name := range sortedKeys(doc.Formatters) {
		if _, err := buildEncoder(doc.Formatters[name], "formatters."+name); err != nil {
			return err
		}
	}
	for _, name := range sortedKeys(doc.Handlers) {
		h := doc.Handlers[name]
		if _, err := zapLevel(h.Level, "handlers."+name+".level"); err != nil {
			return err
		}
		if h.Filter != "" {
			if _, err := compileFilter(h.Filter, name); err != nil {
				return err
			}
		}
	}
	if _, err := zapLevel(doc.Root.Level, "root.level"); err != nil {
		return err
	}
	for logName, lc := range doc.Loggers {
		if _, err := zapLevel(lc.Level, "loggers."+logName+".level"); err != nil {
			return err
		}
	}
	return nil
}
