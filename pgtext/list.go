package pgtext

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ParseList parses a list literal such as `{1,NULL,"a b",{2,3}}`.
//
// Unquoted elements that are exactly NULL (ignoring surrounding whitespace)
// produce makeNull(). Every other element is passed to parseElem: quoted
// elements with their escapes removed, unquoted elements as is, and nested
// lists as the complete `{...}` literal so parseElem can recurse.
//
// Malformed list syntax is reported as an *EscapeError. Errors from parseElem
// are returned unchanged.
func ParseList[T any](s string, makeNull func() T, parseElem func(string) (T, error)) ([]T, error) {
	elems := []T{}

	if s == "" {
		return nil, errUnexpectedEnd()
	}
	if s[0] != '{' {
		return nil, escapeErrorf("expected '{', found %s", runeAt(s, 0))
	}

	i := 1
	for {
		if i >= len(s) {
			return nil, errUnexpectedEnd()
		}

		switch s[i] {
		case '}':
			i++
			if i < len(s) {
				return nil, escapeErrorf("unexpected leftover input %s", s[i:])
			}
			return elems, nil

		case ' ':
			i++
			continue

		case '"':
			var text strings.Builder
			i++
		quoted:
			for {
				if i >= len(s) {
					return nil, errUnexpectedEnd()
				}
				switch c := s[i]; c {
				case '"':
					i++
					break quoted
				case '\\':
					i++
					if i >= len(s) {
						return nil, errUnexpectedEnd()
					}
					if s[i] != '\\' && s[i] != '"' {
						return nil, escapeErrorf("bad escape \\%s", runeAt(s, i))
					}
					text.WriteByte(s[i])
				default:
					text.WriteByte(c)
				}
				i++
			}
			elem, err := parseElem(text.String())
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)

		case '{':
			end, err := scanNestedList(s, i)
			if err != nil {
				return nil, err
			}
			elem, err := parseElem(s[i:end])
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
			i = end

		default:
			start := i
			for {
				if i >= len(s) {
					return nil, errUnexpectedEnd()
				}
				if c := s[i]; c == '}' || c == ',' || c == ' ' {
					break
				}
				i++
			}
			text := s[start:i]
			if strings.TrimSpace(text) == "NULL" {
				elems = append(elems, makeNull())
			} else {
				elem, err := parseElem(text)
				if err != nil {
					return nil, err
				}
				elems = append(elems, elem)
			}
		}

		for i < len(s) && s[i] == ' ' {
			i++
		}
		if i >= len(s) {
			return nil, errUnexpectedEnd()
		}
		switch s[i] {
		case ',':
			i++
		case '}':
			i++
			if i < len(s) {
				return nil, escapeErrorf("unexpected leftover input %s", s[i:])
			}
			return elems, nil
		default:
			return nil, escapeErrorf("expected ',' or '}', found '%s'", runeAt(s, i))
		}
	}
}

// scanNestedList returns the index just past the '}' that balances the '{'
// at s[start]. Braces inside quoted elements do not count.
func scanNestedList(s string, start int) (int, error) {
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, nil
			}
		case '"':
			for i++; ; i++ {
				if i >= len(s) {
					return 0, errUnexpectedEnd()
				}
				if s[i] == '\\' {
					i++
					continue
				}
				if s[i] == '"' {
					break
				}
			}
		}
	}
	return 0, errUnexpectedEnd()
}

func errUnexpectedEnd() *EscapeError {
	return &EscapeError{Cause: "unexpected end of input"}
}

func runeAt(s string, i int) string {
	r, _ := utf8.DecodeRuneInString(s[i:])
	return string(r)
}

// ListElementWriter is handed to the element formatter of FormatList.
type ListElementWriter struct {
	buf FormatBuffer
}

// WriteNull writes the element as NULL.
func (w ListElementWriter) WriteNull() Nestable {
	w.buf.WriteString("NULL")
	return NestableYes
}

// NonNullBuffer returns the buffer a non-null element is written into.
func (w ListElementWriter) NonNullBuffer() FormatBuffer {
	return w.buf
}

// FormatList writes elems as a list literal. formatElem writes each element
// and reports whether it may need escaping; elements that may are quoted and
// escaped in place when they contain a list special character, are empty, or
// are the literal NULL. The result is always safe to nest in another list.
func FormatList[T any](buf FormatBuffer, elems []T, formatElem func(ListElementWriter, T) Nestable) Nestable {
	buf.WriteByte('{')
	for i, elem := range elems {
		start := buf.Len()
		if formatElem(ListElementWriter{buf: buf}, elem) == NestableMayNeedEscaping {
			escapeListElem(buf, start)
		}
		if i < len(elems)-1 {
			buf.WriteByte(',')
		}
	}
	buf.WriteByte('}')
	return NestableYes
}

// needsListEscaping reports whether elem must be quoted: it is empty, is NULL
// once trimmed, or contains a list special character or whitespace. Only the
// upper case NULL reads back as a NULL element.
func needsListEscaping(elem []byte) bool {
	if len(elem) == 0 || strings.TrimSpace(string(elem)) == "NULL" {
		return true
	}
	for _, c := range elem {
		switch c {
		case '{', '}', ',', '"', '\\', ' ', '\t', '\n', '\r', '\v', '\f':
			return true
		}
	}
	return false
}

// escapeListElem quotes and escapes, in place, the element that starts at
// start and runs to the end of buf.
//
// The buffer is grown by the number of bytes escaping adds and the element is
// then copied backward from its last byte to the new end, inserting a
// backslash before each '"' and '\'. The write index stays at or ahead of the
// read index, so no byte is read after it has been overwritten.
func escapeListElem(buf FormatBuffer, start int) {
	elem := buf.Bytes()[start:]
	if !needsListEscaping(elem) {
		return
	}

	// Two quotes plus one backslash per quote or backslash.
	extras := 2
	for _, c := range elem {
		if c == '"' || c == '\\' {
			extras++
		}
	}

	origEnd := buf.Len()
	newEnd := origEnd + extras
	for i := 0; i < extras; i++ {
		buf.WriteByte(0)
	}

	b := buf.Bytes()
	wi := newEnd - 1
	b[wi] = '"'
	wi--
	for ri := origEnd - 1; ri >= start; ri-- {
		if wi < ri {
			panic(fmt.Sprintf("pgtext: list escape write index %d passed read index %d", wi, ri))
		}
		c := b[ri]
		b[wi] = c
		wi--
		if c == '\\' || c == '"' {
			b[wi] = '\\'
			wi--
		}
	}
	b[wi] = '"'

	if wi != start {
		panic(fmt.Sprintf("pgtext: list escape ended at %d, expected %d", wi, start))
	}
}
