package pgtext

import (
	"math"
	"strconv"
	"strings"
)

// parseFloat handles the special values PostgreSQL accepts for float4 and
// float8 before deferring to strconv. strconv also accepts hexadecimal
// mantissas and underscores, so the literal is checked against the decimal
// grammar first.
func parseFloat(s string, bitSize int) (float64, error) {
	trimmed := strings.TrimSpace(s)
	switch strings.ToLower(trimmed) {
	case "inf", "infinity", "+inf", "+infinity":
		return math.Inf(1), nil
	case "-inf", "-infinity":
		return math.Inf(-1), nil
	case "nan":
		return math.NaN(), nil
	}
	if !isDecimalFloat(trimmed) {
		return 0, &strconv.NumError{Func: "ParseFloat", Num: trimmed, Err: strconv.ErrSyntax}
	}
	return strconv.ParseFloat(trimmed, bitSize)
}

// isDecimalFloat reports whether s is [+-]digits[.digits][(e|E)[+-]digits]
// with at least one digit before or after the point.
func isDecimalFloat(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	digits := 0
	for ; i < len(s) && isDigit(s[i]); i++ {
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for ; i < len(s) && isDigit(s[i]); i++ {
			digits++
		}
	}
	if digits == 0 {
		return false
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == start {
			return false
		}
	}

	return i == len(s)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// ParseFloat32 parses a 32-bit float.
//
// In addition to decimal literals the following case-insensitive special
// values are accepted:
//
//	inf, infinity, +inf, +infinity  positive infinity
//	-inf, -infinity                 negative infinity
//	nan                             NaN
func ParseFloat32(s string) (float32, error) {
	f, err := parseFloat(s, 32)
	if err != nil {
		return 0, newParseError("FLOAT4", s, unwrapNumError(err))
	}
	return float32(f), nil
}

// FormatFloat32 writes f using the shortest decimal form that round trips.
// Infinities are written as Infinity and -Infinity.
func FormatFloat32(buf FormatBuffer, f float32) Nestable {
	appendFloat(buf, float64(f), 32)
	return NestableYes
}

// ParseFloat64 parses a 64-bit float. See ParseFloat32 for the special
// values.
func ParseFloat64(s string) (float64, error) {
	f, err := parseFloat(s, 64)
	if err != nil {
		return 0, newParseError("FLOAT8", s, unwrapNumError(err))
	}
	return f, nil
}

// FormatFloat64 writes f using the shortest decimal form that round trips.
// Infinities are written as Infinity and -Infinity.
func FormatFloat64(buf FormatBuffer, f float64) Nestable {
	appendFloat(buf, f, 64)
	return NestableYes
}

func appendFloat(buf FormatBuffer, f float64, bitSize int) {
	switch {
	case math.IsInf(f, 1):
		buf.WriteString("Infinity")
	case math.IsInf(f, -1):
		buf.WriteString("-Infinity")
	default:
		var scratch [32]byte
		buf.Write(strconv.AppendFloat(scratch[:0], f, 'f', -1, bitSize))
	}
}
