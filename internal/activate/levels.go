package activate

import (
	"go.uber.org/zap/zapcore"

	"github.com/livp123/logconf/internal/schema"
	"github.com/livp123/logconf/pkg/errors"
)

// zapLevel maps a schema level name onto the facility's severity ladder.
// NOTSET (and the empty string) gate nothing and map to the lowest level.
// zapLevel 将模式级别名称映射到设施的严重性等级。
// NOTSET（及空字符串）不做过滤，映射到最低级别。
func zapLevel(name string, field string) (zapcore.Level, error) {
	switch name {
	case schema.LevelNotSet, "":
		return zapcore.DebugLevel, nil
	case schema.LevelDebug:
		return zapcore.DebugLevel, nil
	case schema.LevelInfo:
		return zapcore.InfoLevel, nil
	case schema.LevelWarning:
		return zapcore.WarnLevel, nil
	case schema.LevelError:
		return zapcore.ErrorLevel, nil
	case schema.LevelCritical:
		return zapcore.FatalLevel, nil
	default:
		return zapcore.InvalidLevel, errors.NewLevelError(name, field)
	}
}

// levelName is the inverse mapping, used for filter environments and
// metric labels.
// levelName 是反向映射，用于过滤器环境和指标标签。
func levelName(level zapcore.Level) string {
	switch level {
	case zapcore.DebugLevel:
		return schema.LevelDebug
	case zapcore.InfoLevel:
		return schema.LevelInfo
	case zapcore.WarnLevel:
		return schema.LevelWarning
	case zapcore.ErrorLevel:
		return schema.LevelError
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return schema.LevelCritical
	default:
		return schema.LevelNotSet
	}
}

// maxLevel returns the stricter of two thresholds. A record must clear
// both the logger's and the handler's minimum level.
// maxLevel 返回两个阈值中更严格的那个。记录必须同时超过日志器和处理器的最小级别。
func maxLevel(a, b zapcore.Level) zapcore.Level {
	if a > b {
		return a
	}
	return b
}
