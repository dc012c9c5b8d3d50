package config

import (
	"sync"

	"github.com/livp123/logconf/internal/activate"
	"github.com/livp123/logconf/internal/metrics"
	"github.com/livp123/logconf/internal/resolve"
	"github.com/livp123/logconf/internal/schema"
	"github.com/livp123/logconf/internal/utils/fileutil"
	"github.com/livp123/logconf/pkg/errors"
)

// Manager owns the lifecycle of one configuration document: load,
// validate, resolve against a variable mapping, and activate. It is safe
// for concurrent use.
// Manager 管理单个配置文档的生命周期：加载、验证、按变量映射解析、激活。
// 可安全并发使用。
type Manager struct {
	path string

	mu       sync.RWMutex
	doc      *schema.Document
	resolved *schema.Document
	vars     resolve.Vars
}

// NewManager creates a manager bound to a document path. Nothing is read
// until Load.
// NewManager 创建绑定到文档路径的管理器。Load 之前不读取任何内容。
func NewManager(path string) *Manager {
	return &Manager{path: path, vars: resolve.Vars{}}
}

// Path returns the bound document path.
// Path 返回绑定的文档路径。
func (m *Manager) Path() string {
	return m.path
}

// Load reads and parses the document from disk, then validates it with
// placeholder tolerance. Any previously resolved state is discarded.
// Load 从磁盘读取并解析文档，然后以容忍占位符的方式验证。
// 丢弃之前的解析结果。
func (m *Manager) Load() error {
	format, err := schema.FormatForPath(m.path)
	if err != nil {
		return err
	}
	doc, err := schema.Load(m.path)
	if err != nil {
		return err
	}

	result := schema.NewDocumentValidator().Validate(doc)
	if !result.Valid {
		metrics.ValidationErrors.WithLabelValues("load").Add(float64(len(result.Errors)))
		return result.Err()
	}

	m.mu.Lock()
	m.doc = doc
	m.resolved = nil
	m.mu.Unlock()

	metrics.DocumentsLoaded.WithLabelValues(string(format)).Inc()
	return nil
}

// SetVars replaces the variable mapping used by Resolve.
// SetVars 替换 Resolve 使用的变量映射。
func (m *Manager) SetVars(vars resolve.Vars) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vars = vars
	m.resolved = nil
}

// Resolve substitutes every placeholder in the loaded document and
// strictly validates the result. The resolved copy is cached until the
// next Load or SetVars.
// Resolve 替换已加载文档中的所有占位符并严格验证结果。
// 解析副本会缓存，直到下一次 Load 或 SetVars。
func (m *Manager) Resolve() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.doc == nil {
		return errors.ErrDocumentNotFound
	}

	resolved, err := resolve.Resolve(m.doc, m.vars)
	if err != nil {
		return err
	}

	result := schema.NewStrictValidator().Validate(resolved)
	if !result.Valid {
		metrics.ValidationErrors.WithLabelValues("resolve").Add(float64(len(result.Errors)))
		return result.Err()
	}

	m.resolved = resolved
	metrics.DocumentsResolved.Inc()
	return nil
}

// Validate re-runs validation on the loaded document and returns the
// full report, warnings included.
// Validate 对已加载文档重新验证，返回包含警告的完整报告。
func (m *Manager) Validate() *schema.ValidationResult {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return schema.NewDocumentValidator().Validate(m.doc)
}

// Document returns a copy of the loaded (unresolved) document, or nil.
// Document 返回已加载（未解析）文档的副本，可能为 nil。
func (m *Manager) Document() *schema.Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.doc == nil {
		return nil
	}
	return m.doc.Clone()
}

// Resolved returns a copy of the resolved document. It fails when
// Resolve has not run since the last Load or SetVars.
// Resolved 返回解析后文档的副本。自上次 Load 或 SetVars 以来未执行
// Resolve 时返回错误。
func (m *Manager) Resolved() (*schema.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.resolved == nil {
		return nil, errors.ErrNotResolved
	}
	return m.resolved.Clone(), nil
}

// Activate hands the resolved document to the logging facility.
// Activate 将解析后的文档交给日志设施。
func (m *Manager) Activate(opts activate.Options) (*activate.Registry, error) {
	doc, err := m.Resolved()
	if err != nil {
		return nil, err
	}
	return activate.ActivateWithOptions(doc, opts)
}

// Save writes the loaded document back to its path atomically, in the
// format the path's extension names.
// Save 以路径扩展名对应的格式，将已加载文档原子地写回其路径。
func (m *Manager) Save() error {
	m.mu.RLock()
	doc := m.doc
	m.mu.RUnlock()

	if doc == nil {
		return errors.ErrDocumentNotFound
	}

	format, err := schema.FormatForPath(m.path)
	if err != nil {
		return err
	}
	data, err := schema.Encode(doc, format)
	if err != nil {
		return err
	}
	return fileutil.AtomicWriteFile(m.path, data, 0o644)
}
