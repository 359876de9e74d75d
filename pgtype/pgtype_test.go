package pgtype_test

import (
	"bytes"
	"testing"

	"github.com/jackc/pgcopy/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		name string
		want pgtype.Type
		oid  uint32
		str  string
	}{
		{"int4", pgtype.Of(pgtype.Int32), pgtype.Int4OID, "int4"},
		{"INTEGER", pgtype.Of(pgtype.Int32), pgtype.Int4OID, "int4"},
		{"bigint", pgtype.Of(pgtype.Int64), pgtype.Int8OID, "int8"},
		{"timestamp with time zone", pgtype.Of(pgtype.Timestamptz), pgtype.TimestamptzOID, "timestamptz"},
		{"text[]", pgtype.ListOf(pgtype.Of(pgtype.Text)), pgtype.TextArrayOID, "text[]"},
		{" numeric [] [] ", pgtype.ListOf(pgtype.ListOf(pgtype.Of(pgtype.Numeric))), pgtype.NumericArrayOID, "numeric[][]"},
		{"jsonb", pgtype.Of(pgtype.JSONB), pgtype.JSONBOID, "jsonb"},
		{"uuid[]", pgtype.ListOf(pgtype.Of(pgtype.UUID)), pgtype.UUIDArrayOID, "uuid[]"},
	}
	for _, tt := range tests {
		typ, err := pgtype.ParseType(tt.name)
		require.NoErrorf(t, err, "%q", tt.name)
		assert.Equal(t, tt.want, typ)
		assert.Equal(t, tt.oid, typ.OID())
		assert.Equal(t, tt.str, typ.String())
	}

	_, err := pgtype.ParseType("money")
	require.EqualError(t, err, `unknown type "money"`)
}

func TestTypeElem(t *testing.T) {
	list := pgtype.ListOf(pgtype.ListOf(pgtype.Of(pgtype.Bool)))
	assert.True(t, list.IsList())
	assert.Equal(t, pgtype.ListOf(pgtype.Of(pgtype.Bool)), list.Elem())
	assert.False(t, list.Elem().Elem().IsList())
	assert.Panics(t, func() { pgtype.Of(pgtype.Bool).Elem() })
}

func TestTextRoundTrip(t *testing.T) {
	tests := []struct {
		typ string
		in  string
		out string
	}{
		{"bool", "yes", "t"},
		{"int4", " 42 ", "42"},
		{"int8", "-9000000000", "-9000000000"},
		{"float4", "1.5", "1.5"},
		{"float8", "-inf", "-Infinity"},
		{"date", "epoch", "1970-01-01"},
		{"time", "10:30", "10:30:00"},
		{"timestamp", "2024-01-15T10:30:00.5", "2024-01-15 10:30:00.5"},
		{"timestamptz", "2024-01-15 10:30:00+02", "2024-01-15 08:30:00+00"},
		{"interval", "1 day 2 hours", "1 day 02:00:00"},
		{"numeric", "1.50", "1.50"},
		{"bytea", `hel\154o`, `\x68656c6c6f`},
		{"text", "a b", "a b"},
		{"jsonb", `{"b":1, "a":2}`, `{"a":2,"b":1}`},
		{"uuid", "A0EEBC99-9C0B-4EF8-BB6D-6BB9BD380A11", "a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11"},
		{"int4[]", "{1, NULL ,3}", "{1,NULL,3}"},
		{"text[]", `{"a,b",c,"NULL",""}`, `{"a,b",c,"NULL",""}`},
		{"int4[][]", "{{1,2},{3,4}}", "{{1,2},{3,4}}"},
		{"date[]", "{2024-01-15,epoch}", "{2024-01-15,1970-01-01}"},
		{"timestamp[]", `{"2024-01-15 10:30:00"}`, `{"2024-01-15 10:30:00"}`},
		{"jsonb[]", `{"{\"a\": [1, 2]}"}`, `{"{\"a\":[1,2]}"}`},
	}
	for _, tt := range tests {
		typ, err := pgtype.ParseType(tt.typ)
		require.NoError(t, err)

		v, err := typ.ParseText(tt.in)
		require.NoErrorf(t, err, "%s %q", tt.typ, tt.in)

		var buf bytes.Buffer
		_, err = typ.FormatText(&buf, v)
		require.NoErrorf(t, err, "%s %q", tt.typ, tt.in)
		assert.Equalf(t, tt.out, buf.String(), "%s %q", tt.typ, tt.in)
	}
}

func TestFormatTextErrors(t *testing.T) {
	var buf bytes.Buffer

	_, err := pgtype.Of(pgtype.Int32).FormatText(&buf, nil)
	require.EqualError(t, err, "cannot format NULL as int4")

	_, err = pgtype.Of(pgtype.Int32).FormatText(&buf, "42")
	require.EqualError(t, err, "cannot convert string to int4")

	_, err = pgtype.ListOf(pgtype.Of(pgtype.Int32)).FormatText(&buf, []any{int32(1), "x"})
	require.EqualError(t, err, "cannot convert string to int4")
}

func TestParseTextList(t *testing.T) {
	v, err := pgtype.ListOf(pgtype.Of(pgtype.Int32)).ParseText("{1,NULL,3}")
	require.NoError(t, err)
	assert.Equal(t, []any{int32(1), nil, int32(3)}, v)

	_, err = pgtype.ListOf(pgtype.Of(pgtype.Int32)).ParseText("{1,x}")
	require.Error(t, err)
}

func TestIsNull(t *testing.T) {
	assert.True(t, pgtype.IsNull(nil))
	assert.True(t, pgtype.IsNull([]byte(nil)))
	assert.True(t, pgtype.IsNull([]any(nil)))
	assert.False(t, pgtype.IsNull([]byte{}))
	assert.False(t, pgtype.IsNull(""))
	assert.False(t, pgtype.IsNull(int32(0)))
}
