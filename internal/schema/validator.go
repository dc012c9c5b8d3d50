package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/livp123/logconf/pkg/errors"
)

// ValidationError represents a single validation error.
// ValidationError 表示单个验证错误。
type ValidationError struct {
	Field   string `json:"field"`   // Field path (e.g., "handlers.file.level")
	Message string `json:"message"` // Error message
	Value   any    `json:"value"`   // The invalid value (optional)

	err error
}

// Unwrap exposes the sentinel category of the error.
// Unwrap 暴露错误的哨兵类别。
func (e ValidationError) Unwrap() error { return e.err }

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationWarning represents a potential issue that's not critical.
// ValidationWarning 表示非关键的潜在问题。
type ValidationWarning struct {
	Field   string `json:"field"`   // Field path
	Message string `json:"message"` // Warning message
	Value   any    `json:"value"`   // The value causing warning (optional)
}

// ValidationResult contains all validation errors and warnings.
// ValidationResult 包含所有验证错误和警告。
type ValidationResult struct {
	Valid    bool                `json:"valid"`    // Whether the document is valid
	Errors   []ValidationError   `json:"errors"`   // Critical errors
	Warnings []ValidationWarning `json:"warnings"` // Non-critical warnings
}

// AddError adds a schema validation error.
// AddError 添加模式验证错误。
func (r *ValidationResult) AddError(field, message string, value any) {
	r.addError(field, message, value, errors.NewSchemaError(field, message))
}

func (r *ValidationResult) addError(field, message string, value any, err error) {
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
		err:     err,
	})
	r.Valid = false
}

// AddWarning adds a validation warning.
// AddWarning 添加验证警告。
func (r *ValidationResult) AddWarning(field, message string, value any) {
	r.Warnings = append(r.Warnings, ValidationWarning{
		Field:   field,
		Message: message,
		Value:   value,
	})
}

// Err returns the first validation error, or nil if the document is
// valid. Loading is all-or-nothing, so one terminal error is enough for
// programmatic callers; the full list stays available for reporting.
// Err 返回第一个验证错误，文档有效时返回 nil。
// 加载是全有或全无的，程序化调用方只需一个终止性错误，完整列表仍可用于报告。
func (r *ValidationResult) Err() error {
	if r.Valid || len(r.Errors) == 0 {
		return nil
	}
	return r.Errors[0]
}

// DocumentValidator provides configuration document validation.
// DocumentValidator 提供配置文档验证功能。
type DocumentValidator struct {
	// AllowPlaceholders skips value checks (levels, streams) on fields
	// still carrying $ tokens. Reference checks always run.
	// AllowPlaceholders 跳过仍携带 $ 占位符字段的取值检查，引用检查始终执行。
	AllowPlaceholders bool
}

// NewDocumentValidator creates a validator for unresolved documents.
// NewDocumentValidator 创建用于未解析文档的验证器。
func NewDocumentValidator() *DocumentValidator {
	return &DocumentValidator{AllowPlaceholders: true}
}

// NewStrictValidator creates a validator for fully-resolved documents.
// NewStrictValidator 创建用于完全解析后文档的验证器。
func NewStrictValidator() *DocumentValidator {
	return &DocumentValidator{AllowPlaceholders: false}
}

// Validate validates the entire document: required top-level entries,
// enum values, and cross-references.
// Validate 验证整个文档：必需的顶级条目、枚举取值和交叉引用。
func (v *DocumentValidator) Validate(doc *Document) *ValidationResult {
	result := &ValidationResult{Valid: true, Errors: []ValidationError{}, Warnings: []ValidationWarning{}}

	if doc == nil {
		result.AddError("document", "document is empty", nil)
		return result
	}

	v.validateTopLevel(doc, result)
	v.validateRoot(doc, result)
	v.validateLoggers(doc, result)
	v.validateHandlers(doc, result)
	v.validateFormatters(doc, result)
	v.detectUnreferenced(doc, result)

	return result
}

// validateTopLevel checks the required top-level entries.
// validateTopLevel 检查必需的顶级条目。
func (v *DocumentValidator) validateTopLevel(doc *Document, result *ValidationResult) {
	if doc.Version != 1 {
		result.AddError("version", "version must be 1", doc.Version)
	}
	if len(doc.Handlers) == 0 {
		result.AddError("handlers", "at least one handler must be defined", nil)
	}
	if len(doc.Formatters) == 0 {
		result.AddError("formatters", "at least one formatter must be defined", nil)
	}
}

// validateRoot validates the root logger entry.
// validateRoot 验证根日志器条目。
func (v *DocumentValidator) validateRoot(doc *Document, result *ValidationResult) {
	v.checkLevel(doc.Root.Level, "root.level", result)
	v.checkHandlerRefs(doc, doc.Root.Handlers, "root.handlers", result)
}

// validateLoggers validates every named logger entry.
// validateLoggers 验证每个命名日志器条目。
func (v *DocumentValidator) validateLoggers(doc *Document, result *ValidationResult) {
	for _, name := range sortedKeys(doc.Loggers) {
		lg := doc.Loggers[name]
		fieldPrefix := fmt.Sprintf("loggers.%s", name)

		v.checkLevel(lg.Level, fieldPrefix+".level", result)

		if len(lg.Handlers) == 0 && !lg.Propagate {
			result.AddWarning(fieldPrefix+".handlers",
				"logger has no handlers and does not propagate - records will be discarded", nil)
		}
		v.checkHandlerRefs(doc, lg.Handlers, fieldPrefix+".handlers", result)

		// Duplicate handler names deliver every record twice.
		// 重复的处理器名称会使每条记录投递两次。
		seen := make(map[string]int)
		for i, h := range lg.Handlers {
			if prev, ok := seen[h]; ok {
				result.AddWarning(fmt.Sprintf("%s.handlers[%d]", fieldPrefix, i),
					fmt.Sprintf("handler %q already listed at index %d", h, prev), h)
			}
			seen[h] = i
		}
	}
}

// validateHandlers validates every handler entry.
// validateHandlers 验证每个处理器条目。
func (v *DocumentValidator) validateHandlers(doc *Document, result *ValidationResult) {
	for _, name := range sortedKeys(doc.Handlers) {
		h := doc.Handlers[name]
		fieldPrefix := fmt.Sprintf("handlers.%s", name)

		if !v.skip(h.Class) && !ValidClass(h.Class) {
			result.addError(fieldPrefix+".class",
				fmt.Sprintf("handler class must be %q or %q", ClassConsole, ClassFile),
				h.Class, errors.NewClassError(h.Class, fieldPrefix+".class"))
		}

		v.checkLevel(h.Level, fieldPrefix+".level", result)

		if h.Formatter == "" {
			result.AddError(fieldPrefix+".formatter", "formatter reference is required", nil)
		} else if _, ok := doc.Formatters[h.Formatter]; !ok {
			result.addError(fieldPrefix+".formatter",
				fmt.Sprintf("formatter %q is not defined", h.Formatter),
				h.Formatter, errors.NewDanglingReferenceError("formatter", h.Formatter, fieldPrefix+".formatter"))
		}

		switch h.Class {
		case ClassConsole:
			if h.Stream != "" && !v.skip(h.Stream) && h.Stream != StreamStdout && h.Stream != StreamStderr {
				result.addError(fieldPrefix+".stream",
					fmt.Sprintf("stream must be %q or %q", StreamStdout, StreamStderr),
					h.Stream, errors.NewStreamError(h.Stream, fieldPrefix+".stream"))
			}
			if h.Filename != "" {
				result.AddWarning(fieldPrefix+".filename",
					"filename is ignored for console handlers", h.Filename)
			}
		case ClassFile:
			if h.Filename == "" {
				result.AddError(fieldPrefix+".filename",
					"filename is required for file handlers", nil)
			}
			if h.MaxSize < 0 {
				result.AddError(fieldPrefix+".max_size", "max size cannot be negative", h.MaxSize)
			}
			if h.MaxBackups < 0 {
				result.AddError(fieldPrefix+".max_backups", "max backups cannot be negative", h.MaxBackups)
			}
			if h.MaxAge < 0 {
				result.AddError(fieldPrefix+".max_age", "max age cannot be negative", h.MaxAge)
			}
		}
	}
}

// validateFormatters validates every formatter entry.
// validateFormatters 验证每个格式化器条目。
func (v *DocumentValidator) validateFormatters(doc *Document, result *ValidationResult) {
	for _, name := range sortedKeys(doc.Formatters) {
		f := doc.Formatters[name]
		fieldPrefix := fmt.Sprintf("formatters.%s", name)

		if f.Format == "" {
			result.AddError(fieldPrefix+".format", "format template is required", nil)
		} else if !strings.Contains(f.Format, "%(message)s") {
			result.AddWarning(fieldPrefix+".format",
				"format template does not reference %(message)s - rendered records will omit the message", f.Format)
		}
	}
}

// detectUnreferenced warns about defined-but-unused handlers and formatters.
// detectUnreferenced 对已定义但未被引用的处理器和格式化器发出警告。
func (v *DocumentValidator) detectUnreferenced(doc *Document, result *ValidationResult) {
	usedHandlers := make(map[string]bool)
	for _, h := range doc.Root.Handlers {
		usedHandlers[h] = true
	}
	for _, lg := range doc.Loggers {
		for _, h := range lg.Handlers {
			usedHandlers[h] = true
		}
	}
	for _, name := range sortedKeys(doc.Handlers) {
		if !usedHandlers[name] {
			result.AddWarning(fmt.Sprintf("handlers.%s", name),
				"handler is defined but not referenced by any logger", name)
		}
	}

	usedFormatters := make(map[string]bool)
	for _, h := range doc.Handlers {
		usedFormatters[h.Formatter] = true
	}
	for _, name := range sortedKeys(doc.Formatters) {
		if !usedFormatters[name] {
			result.AddWarning(fmt.Sprintf("formatters.%s", name),
				"formatter is defined but not referenced by any handler", name)
		}
	}
}

// checkHandlerRefs verifies that every referenced handler exists.
// checkHandlerRefs 验证每个被引用的处理器都已定义。
func (v *DocumentValidator) checkHandlerRefs(doc *Document, refs []string, field string, result *ValidationResult) {
	for i, name := range refs {
		if _, ok := doc.Handlers[name]; !ok {
			f := fmt.Sprintf("%s[%d]", field, i)
			result.addError(f,
				fmt.Sprintf("handler %q is not defined", name),
				name, errors.NewDanglingReferenceError("handler", name, f))
		}
	}
}

// checkLevel verifies a level enum value, honoring AllowPlaceholders.
// checkLevel 验证级别枚举值，并遵循 AllowPlaceholders 设置。
func (v *DocumentValidator) checkLevel(level string, field string, result *ValidationResult) {
	if level == "" || v.skip(level) {
		return
	}
	if !ValidLevel(level) {
		result.addError(field,
			fmt.Sprintf("level must be one of NOTSET, DEBUG, INFO, WARNING, ERROR, CRITICAL (got %q)", level),
			level, errors.NewLevelError(level, field))
	}
}

// skip reports whether a value still carries placeholder tokens and
// value checks should be deferred until after resolution.
// skip 报告取值是否仍携带占位符、取值检查应推迟到解析之后。
func (v *DocumentValidator) skip(value string) bool {
	return v.AllowPlaceholders && strings.ContainsRune(value, '$')
}

// sortedKeys returns map keys in stable order so reports are deterministic.
// sortedKeys 按稳定顺序返回 map 键，使报告具有确定性。
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ValidateDocument validates a document from raw bytes.
// ValidateDocument 从原始字节验证文档。
func ValidateDocument(data []byte, format Format) (*ValidationResult, error) {
	doc, err := Parse(data, format)
	if err != nil {
		return nil, err
	}
	return NewDocumentValidator().Validate(doc), nil
}
