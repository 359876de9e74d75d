package kitlogadapter_test

import (
	"bytes"
	"testing"

	"github.com/go-kit/log"
	"github.com/jackc/pgcopy"
	"github.com/jackc/pgcopy/log/kitlogadapter"
	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := kitlogadapter.NewLogger(log.NewLogfmtLogger(&buf))

	logger.Log(pgcopy.LogLevelInfo, "hello", map[string]any{"b": 2, "a": "x"})
	assert.Equal(t, "level=info a=x b=2 msg=hello\n", buf.String())

	buf.Reset()
	logger.Log(pgcopy.LogLevelTrace, "chatty", nil)
	assert.Equal(t, "PGCOPY_LOG_LEVEL=trace msg=chatty\n", buf.String())

	buf.Reset()
	logger.Log(pgcopy.LogLevel(42), "odd", nil)
	assert.Equal(t, "INVALID_PGCOPY_LOG_LEVEL=\"invalid level 42\" error=odd\n", buf.String())
}
