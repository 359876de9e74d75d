package zerologadapter_test

import (
	"bytes"
	"testing"

	"github.com/jackc/pgcopy"
	"github.com/jackc/pgcopy/log/zerologadapter"
	"github.com/rs/zerolog"
)

func TestLogger(t *testing.T) {

	t.Run("default", func(t *testing.T) {
		var buf bytes.Buffer
		zlogger := zerolog.New(&buf)
		logger := zerologadapter.NewLogger(zlogger)
		logger.Log(pgcopy.LogLevelInfo, "hello", map[string]any{"one": "two"})
		const want = `{"level":"info","module":"pgcopy","one":"two","message":"hello"}
`
		got := buf.String()
		if got != want {
			t.Errorf("%s != %s", got, want)
		}
	})

	t.Run("disable pgcopy module", func(t *testing.T) {
		var buf bytes.Buffer
		zlogger := zerolog.New(&buf)
		logger := zerologadapter.NewLogger(zlogger, zerologadapter.WithoutPGCopyModule())
		logger.Log(pgcopy.LogLevelInfo, "hello", nil)
		const want = `{"level":"info","message":"hello"}
`
		got := buf.String()
		if got != want {
			t.Errorf("%s != %s", got, want)
		}
	})

	t.Run("encoder finish", func(t *testing.T) {
		var buf bytes.Buffer
		logger := zerologadapter.NewLogger(zerolog.New(&buf))
		e, err := pgcopy.NewCopyToBinary(pgcopy.Schema{}, pgcopy.WithLogger(logger, pgcopy.LogLevelDebug))
		if err != nil {
			t.Fatal(err)
		}
		e.Finish()
		const want = `{"level":"debug","module":"pgcopy","bytes":21,"rows":0,"message":"Finish"}
`
		got := buf.String()
		if got != want {
			t.Errorf("%s != %s", got, want)
		}
	})
}
