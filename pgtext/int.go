package pgtext

import (
	"strconv"
	"strings"
)

// ParseInt32 parses a base 10 integer. Leading and trailing whitespace is
// ignored.
func ParseInt32(s string) (int32, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, newParseError("INT4", s, unwrapNumError(err))
	}
	return int32(n), nil
}

// FormatInt32 writes n in base 10.
func FormatInt32(buf FormatBuffer, n int32) Nestable {
	var scratch [12]byte
	buf.Write(strconv.AppendInt(scratch[:0], int64(n), 10))
	return NestableYes
}

// ParseInt64 parses a base 10 integer. Leading and trailing whitespace is
// ignored.
func ParseInt64(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, newParseError("INT8", s, unwrapNumError(err))
	}
	return n, nil
}

// FormatInt64 writes n in base 10.
func FormatInt64(buf FormatBuffer, n int64) Nestable {
	var scratch [20]byte
	buf.Write(strconv.AppendInt(scratch[:0], n, 10))
	return NestableYes
}
