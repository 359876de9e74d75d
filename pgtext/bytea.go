package pgtext

import (
	"encoding/hex"
	"strings"
)

// ParseBytes parses a bytea literal.
//
// Input that starts with `\x` is in the hex format: the rest must be an even
// number of hex digits. Anything else is in the traditional escape format,
// where bytes are taken literally except for `\\`, which is a backslash, and
// `\NNN` with NNN an octal number from 000 to 377, which is the byte with
// that value.
func ParseBytes(s string) ([]byte, error) {
	if strings.HasPrefix(s, `\x`) {
		b, err := hex.DecodeString(s[2:])
		if err != nil {
			return nil, newParseError("BYTEA", s, err)
		}
		return b, nil
	}
	return parseBytesTraditional(s)
}

func parseBytesTraditional(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b != '\\' {
			out = append(out, b)
			continue
		}

		i++
		if i >= len(s) {
			return nil, escapeErrorf("bytea input ends with escape character")
		}
		if s[i] == '\\' {
			out = append(out, '\\')
			continue
		}

		if i+2 >= len(s) || !isOctal(s[i], '3') || !isOctal(s[i+1], '7') || !isOctal(s[i+2], '7') {
			return nil, escapeErrorf("invalid bytea escape sequence")
		}
		out = append(out, (s[i]-'0')<<6|(s[i+1]-'0')<<3|(s[i+2]-'0'))
		i += 2
	}
	return out, nil
}

func isOctal(c, hi byte) bool {
	return c >= '0' && c <= hi
}

// FormatBytes writes b in the hex format: `\x` followed by two lowercase hex
// digits per byte.
func FormatBytes(buf FormatBuffer, b []byte) Nestable {
	buf.WriteString(`\x`)
	var scratch [64]byte
	for len(b) > 0 {
		n := len(b)
		if n > len(scratch)/2 {
			n = len(scratch) / 2
		}
		hex.Encode(scratch[:], b[:n])
		buf.Write(scratch[:2*n])
		b = b[n:]
	}
	return NestableYes
}
