package pgtext

// FormatString writes s verbatim. Text has no parse function: the raw input
// is the value.
func FormatString(buf FormatBuffer, s string) Nestable {
	buf.WriteString(s)
	return NestableMayNeedEscaping
}
