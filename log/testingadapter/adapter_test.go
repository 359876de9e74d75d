package testingadapter_test

import (
	"fmt"
	"testing"

	"github.com/jackc/pgcopy"
	"github.com/jackc/pgcopy/log/testingadapter"
	"github.com/stretchr/testify/assert"
)

type recorder struct {
	lines []string
}

func (r *recorder) Log(args ...any) {
	r.lines = append(r.lines, fmt.Sprintln(args...))
}

func TestLogger(t *testing.T) {
	r := &recorder{}
	logger := testingadapter.NewLogger(r)
	logger.Log(pgcopy.LogLevelDebug, "Finish", map[string]any{"rows": 2, "bytes": 45})
	assert.Equal(t, []string{"debug Finish bytes=45 rows=2\n"}, r.lines)

	// *testing.T satisfies TestingLogger.
	var _ testingadapter.TestingLogger = t
}
