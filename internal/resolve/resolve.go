package resolve

import (
	"fmt"
	"strings"

	"github.com/livp123/logconf/internal/schema"
	"github.com/livp123/logconf/pkg/errors"
)

// Resolve substitutes every $name placeholder in the document from the
// supplied variable mapping and returns a fully-resolved copy. The input
// document is never mutated. A token without a mapping entry fails with
// an unresolved-placeholder error naming the token and its field.
// Resolve 用提供的变量映射替换文档中的每个 $name 占位符，返回完全解析的副本。
// 输入文档绝不被修改。没有映射条目的占位符会失败，并指明占位符及其字段。
func Resolve(doc *schema.Document, vars Vars) (*schema.Document, error) {
	out := doc.Clone()
	err := walk(out, func(field string, value *string) error {
		expanded, err := Expand(*value, field, vars)
		if err != nil {
			return err
		}
		*value = expanded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Unresolved returns the first remaining placeholder error in the
// document, or nil when every string value is fully resolved.
// Unresolved 返回文档中第一个残留占位符错误，全部解析完毕时返回 nil。
func Unresolved(doc *schema.Document) error {
	return walk(doc.Clone(), func(field string, value *string) error {
		_, err := Expand(*value, field, nil)
		return err
	})
}

// walk visits every string value of the document in a stable order,
// passing its field path alongside.
// walk 按稳定顺序访问文档中的每个字符串值，并附带其字段路径。
func walk(doc *schema.Document, fn func(field string, value *string) error) error {
	if err := fn("root.level", &doc.Root.Level); err != nil {
		return err
	}
	for i := range doc.Root.Handlers {
		if err := fn(fmt.Sprintf("root.handlers[%d]", i), &doc.Root.Handlers[i]); err != nil {
			return err
		}
	}

	for _, name := range sortedKeys(doc.Loggers) {
		lg := doc.Loggers[name]
		fieldPrefix := fmt.Sprintf("loggers.%s", name)
		if err := fn(fieldPrefix+".level", &lg.Level); err != nil {
			return err
		}
		for i := range lg.Handlers {
			if err := fn(fmt.Sprintf("%s.handlers[%d]", fieldPrefix, i), &lg.Handlers[i]); err != nil {
				return err
			}
		}
		doc.Loggers[name] = lg
	}

	for _, name := range sortedKeys(doc.Handlers) {
		h := doc.Handlers[name]
		fieldPrefix := fmt.Sprintf("handlers.%s", name)
		for _, fv := range []struct {
			field string
			value *string
		}{
			{fieldPrefix + ".class", &h.Class},
			{fieldPrefix + ".level", &h.Level},
			{fieldPrefix + ".formatter", &h.Formatter},
			{fieldPrefix + ".stream", &h.Stream},
			{fieldPrefix + ".filename", &h.Filename},
			{fieldPrefix + ".filter", &h.Filter},
		} {
			if err := fn(fv.field, fv.value); err != nil {
				return err
			}
		}
		doc.Handlers[name] = h
	}

	for _, name := range sortedKeys(doc.Formatters) {
		f := doc.Formatters[name]
		fieldPrefix := fmt.Sprintf("formatters.%s", name)
		if err := fn(fieldPrefix+".format", &f.Format); err != nil {
			return err
		}
		if err := fn(fieldPrefix+".datefmt", &f.DateFormat); err != nil {
			return err
		}
		doc.Formatters[name] = f
	}

	return nil
}

// Expand substitutes $name and ${name} tokens in a single value. $$ is
// the literal-dollar escape. Token names match [A-Za-z_][A-Za-z0-9_]*.
// Expand 替换单个值中的 $name 和 ${name} 占位符。$$ 转义为字面美元符号。
func Expand(value string, field string, vars Vars) (string, error) {
	if !strings.ContainsRune(value, '$') {
		return value, nil
	}

	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); {
		c := value[i]
		if c != '$' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(value) {
			return "", errors.NewInvalidPlaceholderError(field, value)
		}

		switch next := value[i+1]; {
		case next == '$':
			b.WriteByte('$')
			i += 2
		case next == '{':
			end := strings.IndexByte(value[i+2:], '}')
			if end < 0 {
				return "", errors.NewInvalidPlaceholderError(field, value)
			}
			name := value[i+2 : i+2+end]
			if !validName(name) {
				return "", errors.NewInvalidPlaceholderError(field, value)
			}
			sub, ok := vars[name]
			if !ok {
				return "", errors.NewUnresolvedPlaceholderError(name, field)
			}
			b.WriteString(sub)
			i += 2 + end + 1
		case isNameStart(next):
			j := i + 1
			for j < len(value) && isNameByte(value[j]) {
				j++
			}
			name := value[i+1 : j]
			sub, ok := vars[name]
			if !ok {
				return "", errors.NewUnresolvedPlaceholderError(name, field)
			}
			b.WriteString(sub)
			i = j
		default:
			return "", errors.NewInvalidPlaceholderError(field, value)
		}
	}
	return b.String(), nil
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameByte(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9')
}

func validName(name string) bool {
	if name == "" || !isNameStart(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if !isNameByte(name[i]) {
			return false
		}
	}
	return true
}
