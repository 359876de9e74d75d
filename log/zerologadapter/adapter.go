// Package zerologadapter provides a logger that writes to a github.com/rs/zerolog.
package zerologadapter

import (
	"github.com/jackc/pgcopy"
	"github.com/rs/zerolog"
)

type Logger struct {
	logger     zerolog.Logger
	skipModule bool
}

type option func(logger *Logger)

// WithoutPGCopyModule disables adding module:pgcopy to the default logger context.
func WithoutPGCopyModule() option {
	return func(logger *Logger) {
		logger.skipModule = true
	}
}

// NewLogger accepts a zerolog.Logger as input and returns a new custom pgcopy
// logging facade as output.
func NewLogger(logger zerolog.Logger, options ...option) *Logger {
	l := Logger{logger: logger}
	for _, opt := range options {
		opt(&l)
	}
	if !l.skipModule {
		l.logger = l.logger.With().Str("module", "pgcopy").Logger()
	}
	return &l
}

func (pl *Logger) Log(level pgcopy.LogLevel, msg string, data map[string]any) {
	var zlevel zerolog.Level
	switch level {
	case pgcopy.LogLevelNone:
		zlevel = zerolog.NoLevel
	case pgcopy.LogLevelError:
		zlevel = zerolog.ErrorLevel
	case pgcopy.LogLevelWarn:
		zlevel = zerolog.WarnLevel
	case pgcopy.LogLevelInfo:
		zlevel = zerolog.InfoLevel
	case pgcopy.LogLevelDebug:
		zlevel = zerolog.DebugLevel
	default:
		zlevel = zerolog.DebugLevel
	}

	pgcopylog := pl.logger.With().Fields(data).Logger()
	pgcopylog.WithLevel(zlevel).Msg(msg)
}
