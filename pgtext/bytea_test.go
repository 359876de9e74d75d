package pgtext_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/jackc/pgcopy/pgtext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBytes(t *testing.T) {
	tests := []struct {
		in   string
		want []byte
	}{
		{`\x68656c6c6f`, []byte("hello")},
		{`\x68656C6C6F`, []byte("hello")},
		{`\x`, []byte{}},
		{`hel\154o`, []byte("hello")},
		{`a\\b`, []byte(`a\b`)},
		{`\000\377`, []byte{0, 0xff}},
		{``, []byte{}},
		{`plain`, []byte("plain")},
	}
	for _, tt := range tests {
		b, err := pgtext.ParseBytes(tt.in)
		require.NoErrorf(t, err, "%q", tt.in)
		assert.Equalf(t, tt.want, b, "%q", tt.in)
	}
}

func TestParseBytesErrors(t *testing.T) {
	tests := []struct {
		in    string
		cause string
	}{
		{`bad\9`, "invalid bytea escape sequence"},
		{`\400`, "invalid bytea escape sequence"},
		{`\12`, "invalid bytea escape sequence"},
		{`abc\`, "bytea input ends with escape character"},
	}
	for _, tt := range tests {
		_, err := pgtext.ParseBytes(tt.in)
		var ee *pgtext.EscapeError
		require.Truef(t, errors.As(err, &ee), "%q", tt.in)
		assert.Equal(t, tt.cause, ee.Cause)
	}

	for _, s := range []string{`\x6`, `\xzz`} {
		_, err := pgtext.ParseBytes(s)
		var pe *pgtext.ParseError
		require.Truef(t, errors.As(err, &pe), "%q", s)
		assert.Equal(t, "BYTEA", pe.Type)
	}
}

func TestFormatBytes(t *testing.T) {
	var buf bytes.Buffer
	require.Equal(t, pgtext.NestableYes, pgtext.FormatBytes(&buf, []byte("hello")))
	assert.Equal(t, `\x68656c6c6f`, buf.String())

	long := bytes.Repeat([]byte{0xab, 0x01}, 100)
	buf.Reset()
	pgtext.FormatBytes(&buf, long)
	back, err := pgtext.ParseBytes(buf.String())
	require.NoError(t, err)
	assert.Equal(t, long, back)

	buf.Reset()
	pgtext.FormatBytes(&buf, nil)
	assert.Equal(t, `\x`, buf.String())
}

func TestFormatString(t *testing.T) {
	var buf bytes.Buffer
	require.Equal(t, pgtext.NestableMayNeedEscaping, pgtext.FormatString(&buf, `a "b", {c}`))
	assert.Equal(t, `a "b", {c}`, buf.String())
}
