package activate

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/livp123/logconf/internal/schema"
	"github.com/livp123/logconf/pkg/errors"
)

// Template field names understood by the encoder mapping.
// 编码器映射理解的模板字段名称。
const (
	fieldAsctime   = "asctime"
	fieldName      = "name"
	fieldLevelname = "levelname"
	fieldMessage   = "message"
)

// buildEncoder translates a formatter definition into an encoder for the
// facility. The %(field)s placeholders present in the template select
// which record fields the encoder emits; rendering itself (ordering,
// separators) is owned by the encoder, not by this package.
// buildEncoder 将格式化器定义翻译为设施的编码器。
// 模板中出现的 %(field)s 占位符决定编码器输出哪些记录字段；
// 渲染本身（顺序、分隔符）由编码器负责，不属于本包。
func buildEncoder(f schema.FormatterConfig, field string) (zapcore.Encoder, error) {
	fields, err := templateFields(f.Format, field+".format")
	if err != nil {
		return nil, err
	}

	layout, err := convertDateFormat(f.DateFormat, field+".datefmt")
	if err != nil {
		return nil, err
	}

	cfg := zapcore.EncoderConfig{
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}
	if layout == "" {
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout(layout)
	}

	if fields[fieldAsctime] {
		cfg.TimeKey = fieldAsctime
	}
	if fields[fieldName] {
		cfg.NameKey = fieldName
	}
	if fields[fieldLevelname] {
		cfg.LevelKey = fieldLevelname
	}
	if fields[fieldMessage] {
		cfg.MessageKey = fieldMessage
	}

	return zapcore.NewConsoleEncoder(cfg), nil
}

// templateFields extracts the %(field)s placeholders from a format
// template and rejects fields the mapping cannot express.
// templateFields 提取格式模板中的 %(field)s 占位符，拒绝映射无法表达的字段。
func templateFields(format string, field string) (map[string]bool, error) {
	fields := make(map[string]bool)
	for i := 0; i < len(format); {
		idx := strings.Index(format[i:], "%(")
		if idx < 0 {
			break
		}
		start := i + idx + 2
		end := strings.IndexByte(format[start:], ')')
		if end < 0 {
			return nil, errors.NewSchemaError(field, "unterminated %( placeholder in format template")
		}
		name := format[start : start+end]
		switch name {
		case fieldAsctime, fieldName, fieldLevelname, fieldMessage:
			fields[name] = true
		default:
			return nil, errors.NewSchemaError(field, fmt.Sprintf("unknown format field %%(%s)s", name))
		}
		i = start + end + 1
	}
	return fields, nil
}

// strftime directives expressible as Go reference-time layout elements.
// 可表示为 Go 参考时间布局元素的 strftime 指令。
var strftimeLayout = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'H': "15",
	'I': "03",
	'M': "04",
	'S': "05",
	'p': "PM",
	'a': "Mon",
	'A': "Monday",
	'b': "Jan",
	'B': "January",
	'z': "-0700",
	'Z': "MST",
}

// convertDateFormat translates a strftime pattern into a Go time layout.
// An empty pattern returns an empty layout, letting the caller fall back
// to the facility default.
// convertDateFormat 将 strftime 模式翻译为 Go 时间布局。
// 空模式返回空布局，由调用方回退到设施默认值。
func convertDateFormat(pattern string, field string) (string, error) {
	if pattern == "" {
		return "", nil
	}

	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(pattern) {
			return "", errors.NewDateFormatError("%", field)
		}
		i++
		d := pattern[i]
		if d == '%' {
			b.WriteByte('%')
			continue
		}
		layout, ok := strftimeLayout[d]
		if !ok {
			return "", errors.NewDateFormatError("%"+string(d), field)
		}
		b.WriteString(layout)
	}
	return b.String(), nil
}
