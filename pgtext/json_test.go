package pgtext_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgcopy/pgtext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"b": 1, "a": [true, null, 1.50]}`, `{"a":[true,null,1.50],"b":1}`},
		{` "x" `, `"x"`},
		{`{"x":"<&>"}`, `{"x":"<&>"}`},
		{`{"a":1,"a":2}`, `{"a":2}`},
		{`12345678901234567890`, `12345678901234567890`},
	}
	for _, tt := range tests {
		j, err := pgtext.ParseJSON(tt.in)
		require.NoErrorf(t, err, "%q", tt.in)
		assert.Equal(t, tt.want, j.String())
	}

	_, err := pgtext.ParseJSON("{\"b\":1,\"a\":\"\xff\"}")
	require.EqualError(t, err, "Invalid JSONB '{\"b\":1,\"a\":\"\xff\"}': invalid UTF-8")

	for _, s := range []string{"", "{", `{} x`, `{}{}`, `{'a':1}`, "\"\xc3\""} {
		_, err := pgtext.ParseJSON(s)
		var pe *pgtext.ParseError
		require.Truef(t, errors.As(err, &pe), "%q", s)
		assert.Equal(t, "JSONB", pe.Type)
	}
}

func TestFormatJSON(t *testing.T) {
	j, err := pgtext.ParseJSON(`{"b": {"c": [1, 2]}, "a": 1}`)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.Equal(t, pgtext.NestableMayNeedEscaping, pgtext.FormatJSON(&buf, j))
	assert.Equal(t, `{"a":1,"b":{"c":[1,2]}}`, buf.String())

	buf.Reset()
	pgtext.FormatJSONPretty(&buf, j)
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": {\n    \"c\": [\n      1,\n      2\n    ]\n  }\n}", buf.String())
}

func TestUUID(t *testing.T) {
	want := uuid.Must(uuid.FromString("a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11"))

	for _, s := range []string{
		"a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11",
		" A0EEBC99-9C0B-4EF8-BB6D-6BB9BD380A11 ",
		"{a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11}",
		"a0eebc999c0b4ef8bb6d6bb9bd380a11",
	} {
		u, err := pgtext.ParseUUID(s)
		require.NoErrorf(t, err, "%q", s)
		assert.Equal(t, want, u)
	}

	_, err := pgtext.ParseUUID("a0eebc99")
	var pe *pgtext.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "UUID", pe.Type)

	var buf bytes.Buffer
	require.Equal(t, pgtext.NestableYes, pgtext.FormatUUID(&buf, want))
	assert.Equal(t, "a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11", buf.String())
}
