package pgtext_test

import (
	"bytes"
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/jackc/pgcopy/pgtext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInt32(t *testing.T) {
	n, err := pgtext.ParseInt32(" -42 ")
	require.NoError(t, err)
	assert.EqualValues(t, -42, n)

	n, err = pgtext.ParseInt32("2147483647")
	require.NoError(t, err)
	assert.EqualValues(t, math.MaxInt32, n)

	_, err = pgtext.ParseInt32("2147483648")
	var pe *pgtext.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "INT4", pe.Type)
	assert.ErrorIs(t, err, strconv.ErrRange)

	_, err = pgtext.ParseInt32("12a")
	require.EqualError(t, err, "Invalid INT4 '12a': invalid syntax")
}

func TestParseInt64(t *testing.T) {
	n, err := pgtext.ParseInt64("9223372036854775807")
	require.NoError(t, err)
	assert.EqualValues(t, int64(math.MaxInt64), n)

	_, err = pgtext.ParseInt64("9223372036854775808")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid INT8")
}

func TestFormatInt(t *testing.T) {
	var buf bytes.Buffer
	require.Equal(t, pgtext.NestableYes, pgtext.FormatInt32(&buf, math.MinInt32))
	buf.WriteByte(' ')
	require.Equal(t, pgtext.NestableYes, pgtext.FormatInt64(&buf, math.MaxInt64))
	assert.Equal(t, "-2147483648 9223372036854775807", buf.String())
}

func TestParseFloat64(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1.5", 1.5},
		{" -0.25 ", -0.25},
		{"1e3", 1000},
		{"inf", math.Inf(1)},
		{"Infinity", math.Inf(1)},
		{"+inf", math.Inf(1)},
		{"+INFINITY", math.Inf(1)},
		{"-inf", math.Inf(-1)},
		{"-Infinity", math.Inf(-1)},
	}
	for _, tt := range tests {
		f, err := pgtext.ParseFloat64(tt.in)
		require.NoErrorf(t, err, "%q", tt.in)
		assert.Equalf(t, tt.want, f, "%q", tt.in)
	}

	f, err := pgtext.ParseFloat64("NaN")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(f))

	_, err = pgtext.ParseFloat64("one")
	require.EqualError(t, err, "Invalid FLOAT8 'one': invalid syntax")

	for _, in := range []string{"0x1p3", "-0X10", "1_000", "1.5e", ".", "+", "1e+", "1.2.3", "0x1.8p1"} {
		_, err := pgtext.ParseFloat64(in)
		assert.ErrorIsf(t, err, strconv.ErrSyntax, "%q", in)
	}

	for _, in := range []string{".5", "5.", "-1.5E-3", "+2e+10"} {
		_, err := pgtext.ParseFloat64(in)
		assert.NoErrorf(t, err, "%q", in)
	}
}

func TestParseFloat32(t *testing.T) {
	f, err := pgtext.ParseFloat32("0.1")
	require.NoError(t, err)
	assert.Equal(t, float32(0.1), f)

	f, err = pgtext.ParseFloat32("-infinity")
	require.NoError(t, err)
	assert.True(t, math.IsInf(float64(f), -1))

	_, err = pgtext.ParseFloat32("1e40")
	var pe *pgtext.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "FLOAT4", pe.Type)

	_, err = pgtext.ParseFloat32("0x1p3")
	require.EqualError(t, err, "Invalid FLOAT4 '0x1p3': invalid syntax")

	_, err = pgtext.ParseFloat32("1_0")
	require.EqualError(t, err, "Invalid FLOAT4 '1_0': invalid syntax")
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		f    float64
		want string
	}{
		{1.5, "1.5"},
		{0.1, "0.1"},
		{-3, "-3"},
		{1e21, "1000000000000000000000"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{math.NaN(), "NaN"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		require.Equal(t, pgtext.NestableYes, pgtext.FormatFloat64(&buf, tt.f))
		assert.Equal(t, tt.want, buf.String())
	}

	var buf bytes.Buffer
	pgtext.FormatFloat32(&buf, 0.1)
	assert.Equal(t, "0.1", buf.String())
}

func TestNumeric(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{" 1.50 ", "1.50"},
		{"-0.001", "-0.001"},
		{"1e3", "1000"},
		{"12345678901234567890.123456789", "12345678901234567890.123456789"},
		{"NaN", "NaN"},
		{"Infinity", "Infinity"},
		{"-Infinity", "-Infinity"},
	}
	for _, tt := range tests {
		d, err := pgtext.ParseNumeric(tt.in)
		require.NoErrorf(t, err, "%q", tt.in)

		var buf bytes.Buffer
		require.Equal(t, pgtext.NestableYes, pgtext.FormatNumeric(&buf, d))
		assert.Equal(t, tt.want, buf.String())
	}

	for _, s := range []string{"", "abc", "1.2.3", "sNaN"} {
		_, err := pgtext.ParseNumeric(s)
		var pe *pgtext.ParseError
		require.Truef(t, errors.As(err, &pe), "%q", s)
		assert.Equal(t, "NUMERIC", pe.Type)
	}
}
