package activate

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"go.uber.org/zap/zapcore"

	"github.com/livp123/logconf/pkg/errors"
)

// FilterEnv is the environment a handler filter expression is evaluated
// against, once per record.
// FilterEnv 是处理器过滤表达式的求值环境，每条记录求值一次。
type FilterEnv struct {
	Name    string
	Level   string
	Message string
}

// compileFilter compiles a handler filter expression. Expressions must
// evaluate to a boolean.
// compileFilter 编译处理器过滤表达式。表达式必须求值为布尔值。
func compileFilter(src string, handler string) (*vm.Program, error) {
	program, err := expr.Compile(src, expr.Env(FilterEnv{}), expr.AsBool())
	if err != nil {
		return nil, errors.NewFilterError(handler, err)
	}
	return program, nil
}

// filteredCore wraps a handler core and skips records failing the
// compiled filter. Evaluation errors drop the record rather than letting
// an unfilterable record through.
// filteredCore 包装处理器核心，跳过未通过过滤器的记录。
// 求值出错时丢弃记录，而不是放过无法过滤的记录。
type filteredCore struct {
	zapcore.Core
	program *vm.Program
}

func (c *filteredCore) With(fields []zapcore.Field) zapcore.Core {
	return &filteredCore{Core: c.Core.With(fields), program: c.program}
}

func (c *filteredCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.Enabled(ent.Level) {
		return ce
	}
	env := FilterEnv{
		Name:    ent.LoggerName,
		Level:   levelName(ent.Level),
		Message: ent.Message,
	}
	out, err := vm.Run(c.program, env)
	if err != nil {
		return ce
	}
	if pass, ok := out.(bool); !ok || !pass {
		return ce
	}
	return ce.AddCore(ent, c)
}
