package pgtext

import "io"

// FormatBuffer is the sink every formatter writes into. Bytes must return a
// mutable view of everything written so far; FormatList rewrites list
// elements in place through it. *bytes.Buffer satisfies FormatBuffer.
type FormatBuffer interface {
	io.Writer
	io.ByteWriter
	io.StringWriter
	Len() int
	Bytes() []byte
}

// Nestable reports whether formatted output can be embedded in a list literal
// without escaping.
type Nestable int

const (
	// NestableYes means the output never contains a list special character
	// and is never the literal NULL.
	NestableYes Nestable = iota
	// NestableMayNeedEscaping means the output must be checked, and possibly
	// quoted, before it is embedded in a list literal.
	NestableMayNeedEscaping
)

func (n Nestable) String() string {
	switch n {
	case NestableYes:
		return "yes"
	case NestableMayNeedEscaping:
		return "may need escaping"
	default:
		return "invalid"
	}
}
