package pgtext

import (
	"errors"
	"strings"

	"github.com/cockroachdb/apd"
)

// ParseNumeric parses an arbitrary precision decimal. Leading and trailing
// whitespace is ignored. NaN, Infinity and -Infinity are accepted; signaling
// NaN is not.
func ParseNumeric(s string) (*apd.Decimal, error) {
	d, _, err := apd.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil, newParseError("NUMERIC", s, err)
	}
	if d.Form == apd.NaNSignaling {
		return nil, newParseError("NUMERIC", s, errors.New("signaling NaN is not supported"))
	}
	return d, nil
}

// FormatNumeric writes d in plain decimal notation without an exponent.
func FormatNumeric(buf FormatBuffer, d *apd.Decimal) Nestable {
	buf.WriteString(d.Text('f'))
	return NestableYes
}
