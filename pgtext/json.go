package pgtext

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"unicode/utf8"
)

// JSON is a JSON document in canonical compact form: no insignificant
// whitespace, object keys sorted and deduplicated (the last value wins), and
// numbers kept exactly as written. Values are produced by ParseJSON.
type JSON []byte

func (j JSON) String() string {
	return string(j)
}

// ParseJSON parses a JSON document. Leading and trailing whitespace is
// ignored. s must be valid UTF-8.
func ParseJSON(s string) (JSON, error) {
	if !utf8.ValidString(s) {
		return nil, newParseError("JSONB", s, errors.New("invalid UTF-8"))
	}

	dec := json.NewDecoder(strings.NewReader(strings.TrimSpace(s)))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, newParseError("JSONB", s, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, newParseError("JSONB", s, errors.New("unexpected trailing data"))
	}

	var out bytes.Buffer
	enc := json.NewEncoder(&out)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, newParseError("JSONB", s, err)
	}
	return JSON(bytes.TrimSuffix(out.Bytes(), []byte{'\n'})), nil
}

// FormatJSON writes j in compact form.
func FormatJSON(buf FormatBuffer, j JSON) Nestable {
	buf.Write(j)
	return NestableMayNeedEscaping
}

// FormatJSONPretty writes j indented by two spaces per level. The pretty form
// is never nested in a list.
func FormatJSONPretty(buf FormatBuffer, j JSON) {
	var out bytes.Buffer
	if err := json.Indent(&out, j, "", "  "); err != nil {
		// j did not come from ParseJSON; write it as is.
		buf.Write(j)
		return
	}
	buf.Write(out.Bytes())
}
