// Package zapadapter provides a logger that writes to a go.uber.org/zap.Logger.
package zapadapter

import (
	"github.com/jackc/pgcopy"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Logger struct {
	logger *zap.Logger
}

func NewLogger(logger *zap.Logger) *Logger {
	return &Logger{logger: logger.WithOptions(zap.AddCallerSkip(1))}
}

func (pl *Logger) Log(level pgcopy.LogLevel, msg string, data map[string]any) {
	keys := maps.Keys(data)
	slices.Sort(keys)
	fields := make([]zapcore.Field, len(keys))
	for i, k := range keys {
		fields[i] = zap.Any(k, data[k])
	}

	switch level {
	case pgcopy.LogLevelTrace:
		pl.logger.Debug(msg, append(fields, zap.Stringer("PGCOPY_LOG_LEVEL", level))...)
	case pgcopy.LogLevelDebug:
		pl.logger.Debug(msg, fields...)
	case pgcopy.LogLevelInfo:
		pl.logger.Info(msg, fields...)
	case pgcopy.LogLevelWarn:
		pl.logger.Warn(msg, fields...)
	case pgcopy.LogLevelError:
		pl.logger.Error(msg, fields...)
	default:
		pl.logger.Error(msg, append(fields, zap.Stringer("INVALID_PGCOPY_LOG_LEVEL", level))...)
	}
}
