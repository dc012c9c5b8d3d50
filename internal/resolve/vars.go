package resolve

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/livp123/logconf/internal/utils/fileutil"
	"github.com/livp123/logconf/pkg/errors"
)

// Vars is the mapping of placeholder names to concrete values supplied
// by the calling environment at activation time.
// Vars 是调用环境在激活时提供的占位符名称到具体值的映射。
type Vars map[string]string

// FromPairs builds a mapping from "name=value" pairs.
// FromPairs 从 "name=value" 形式的键值对构建映射。
func FromPairs(pairs []string) (Vars, error) {
	vars := make(Vars, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || !validName(name) {
			return nil, errors.NewInvalidPlaceholderError("vars", pair)
		}
		vars[name] = value
	}
	return vars, nil
}

// FromEnv builds a mapping from environment variables carrying the given
// prefix. "LOGCONF_LOGFILE=x" with prefix "LOGCONF_" maps to logfile=x;
// names are lowercased to match document token spelling.
// FromEnv 从带有给定前缀的环境变量构建映射，名称转为小写以匹配文档中的占位符写法。
func FromEnv(prefix string) Vars {
	vars := make(Vars)
	for _, entry := range os.Environ() {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(name, prefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(name, prefix))
		if validName(key) && value != "" {
			vars[key] = value
		}
	}
	return vars
}

// FromFile builds a mapping from a file of "name=value" lines. Blank
// lines and #-comments are skipped.
// FromFile 从 "name=value" 行的文件构建映射，跳过空行和 # 注释。
func FromFile(path string) (Vars, error) {
	lines, err := fileutil.ReadLines(path)
	if err != nil {
		return nil, err
	}
	vars := make(Vars, len(lines))
	for i, line := range lines {
		if strings.HasPrefix(line, "#") {
			continue
		}
		name, value, ok := strings.Cut(line, "=")
		name = strings.TrimSpace(name)
		if !ok || !validName(name) {
			return nil, errors.NewInvalidPlaceholderError(fmt.Sprintf("%s:%d", path, i+1), line)
		}
		vars[name] = strings.TrimSpace(value)
	}
	return vars, nil
}

// Merge combines mappings left to right, later mappings overriding
// earlier ones.
// Merge 从左到右合并映射，后者覆盖前者。
func Merge(mappings ...Vars) Vars {
	out := make(Vars)
	for _, m := range mappings {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// sortedKeys returns map keys in stable order so resolution errors are
// deterministic.
// sortedKeys 按稳定顺序返回 map 键，使解析错误具有确定性。
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
