package schema

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/livp123/logconf/pkg/errors"
)

// Format identifies a document serialization.
// Format 标识文档的序列化格式。
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatForPath derives the serialization format from a file extension.
// FormatForPath 根据文件扩展名推导序列化格式。
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.NewFormatError(path)
	}
}

// Load reads and parses a document from disk, choosing the parser by
// file extension.
// Load 从磁盘读取并解析文档，按扩展名选择解析器。
func Load(path string) (*Document, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	safePath := filepath.Clean(path) // Sanitize path to prevent directory traversal
	data, err := os.ReadFile(safePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ErrDocumentNotFound
		}
		return nil, err
	}

	return Parse(data, format)
}

// Parse decodes a document from raw bytes in the given format.
// Parse 从给定格式的原始字节解码文档。
func Parse(data []byte, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.NewSchemaError("document", err.Error())
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, errors.NewSchemaError("document", err.Error())
		}
	default:
		return nil, errors.NewFormatError(string(format))
	}
	return &doc, nil
}

// Encode serializes a document in the given format. YAML output uses
// two-space indentation; JSON output is indented for readability.
// Encode 按给定格式序列化文档。YAML 使用两空格缩进，JSON 带缩进输出。
func Encode(doc *Document, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	default:
		return nil, errors.NewFormatError(string(format))
	}
}
