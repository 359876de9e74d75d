// Package testingadapter provides a logger that writes to a test or benchmark
// log.
package testingadapter

import (
	"fmt"

	"github.com/jackc/pgcopy"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// TestingLogger interface defines the subset of testing.TB methods used by this
// adapter.
type TestingLogger interface {
	Log(args ...any)
}

type Logger struct {
	l TestingLogger
}

func NewLogger(l TestingLogger) *Logger {
	return &Logger{l: l}
}

func (l *Logger) Log(level pgcopy.LogLevel, msg string, data map[string]any) {
	keys := maps.Keys(data)
	slices.Sort(keys)
	logArgs := make([]any, 0, 2+len(data))
	logArgs = append(logArgs, level, msg)
	for _, k := range keys {
		logArgs = append(logArgs, fmt.Sprintf("%s=%v", k, data[k]))
	}
	l.l.Log(logArgs...)
}
