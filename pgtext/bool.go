package pgtext

import (
	"errors"
	"strings"
)

var errBool = errors.New("unable to parse bool")

// ParseBool parses a boolean.
//
// The accepted inputs are the literals t, tr, tru, true, y, ye, yes, on and 1
// for true and f, fa, fal, fals, false, n, no, of, off and 0 for false,
// compared case-insensitively after trimming surrounding whitespace. This is
// a fixed table, not prefix matching: "o" is rejected.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "t", "tr", "tru", "true", "y", "ye", "yes", "on", "1":
		return true, nil
	case "f", "fa", "fal", "fals", "false", "n", "no", "of", "off", "0":
		return false, nil
	default:
		return false, newParseError("BOOLEAN", s, errBool)
	}
}

// BoolText returns the text form of b without allocating.
func BoolText(b bool) string {
	if b {
		return "t"
	}
	return "f"
}

// FormatBool writes b as "t" or "f".
func FormatBool(buf FormatBuffer, b bool) Nestable {
	buf.WriteString(BoolText(b))
	return NestableYes
}
