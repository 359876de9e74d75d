// Package log15adapter provides a logger that writes to a github.com/inconshreveable/log15.Logger
// log.
package log15adapter

import (
	"github.com/jackc/pgcopy"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Log15Logger interface defines the subset of
// github.com/inconshreveable/log15.Logger that this adapter uses.
type Log15Logger interface {
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	Crit(msg string, ctx ...any)
}

type Logger struct {
	l Log15Logger
}

func NewLogger(l Log15Logger) *Logger {
	return &Logger{l: l}
}

func (l *Logger) Log(level pgcopy.LogLevel, msg string, data map[string]any) {
	keys := maps.Keys(data)
	slices.Sort(keys)
	logArgs := make([]any, 0, len(data)*2+2)
	for _, k := range keys {
		logArgs = append(logArgs, k, data[k])
	}

	switch level {
	case pgcopy.LogLevelTrace:
		l.l.Debug(msg, append(logArgs, "PGCOPY_LOG_LEVEL", level)...)
	case pgcopy.LogLevelDebug:
		l.l.Debug(msg, logArgs...)
	case pgcopy.LogLevelInfo:
		l.l.Info(msg, logArgs...)
	case pgcopy.LogLevelWarn:
		l.l.Warn(msg, logArgs...)
	case pgcopy.LogLevelError:
		l.l.Error(msg, logArgs...)
	default:
		l.l.Error(msg, append(logArgs, "INVALID_PGCOPY_LOG_LEVEL", level)...)
	}
}
