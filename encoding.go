package pgcopy

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// clientEncodings maps cleaned PostgreSQL encoding names and their common
// aliases to the matching encoding.
var clientEncodings = map[string]encoding.Encoding{
	"utf8":      unicode.UTF8,
	"unicode":   unicode.UTF8,
	"sqlascii":  encoding.Nop,
	"latin1":    charmap.ISO8859_1,
	"iso88591":  charmap.ISO8859_1,
	"latin2":    charmap.ISO8859_2,
	"iso88592":  charmap.ISO8859_2,
	"latin3":    charmap.ISO8859_3,
	"iso88593":  charmap.ISO8859_3,
	"latin4":    charmap.ISO8859_4,
	"iso88594":  charmap.ISO8859_4,
	"latin5":    charmap.ISO8859_9,
	"iso88599":  charmap.ISO8859_9,
	"latin6":    charmap.ISO8859_10,
	"iso885910": charmap.ISO8859_10,
	"latin7":    charmap.ISO8859_13,
	"iso885913": charmap.ISO8859_13,
	"latin8":    charmap.ISO8859_14,
	"iso885914": charmap.ISO8859_14,
	"latin9":    charmap.ISO8859_15,
	"iso885915": charmap.ISO8859_15,
	"latin10":   charmap.ISO8859_16,
	"iso885916": charmap.ISO8859_16,
	"iso88595":  charmap.ISO8859_5,
	"iso88596":  charmap.ISO8859_6,
	"iso88597":  charmap.ISO8859_7,
	"iso88598":  charmap.ISO8859_8,
	"koi8":      charmap.KOI8R,
	"koi8r":     charmap.KOI8R,
	"koi8u":     charmap.KOI8U,
	"win866":    charmap.CodePage866,
	"alt":       charmap.CodePage866,
	"win874":    charmap.Windows874,
	"win1250":   charmap.Windows1250,
	"win1251":   charmap.Windows1251,
	"win":       charmap.Windows1251,
	"win1252":   charmap.Windows1252,
	"win1253":   charmap.Windows1253,
	"win1254":   charmap.Windows1254,
	"win1255":   charmap.Windows1255,
	"win1256":   charmap.Windows1256,
	"win1257":   charmap.Windows1257,
	"win1258":   charmap.Windows1258,
	"eucjp":     japanese.EUCJP,
	"sjis":      japanese.ShiftJIS,
	"shiftjis":  japanese.ShiftJIS,
	"mskanji":   japanese.ShiftJIS,
	"euckr":     korean.EUCKR,
	"uhc":       korean.EUCKR,
	"gbk":       simplifiedchinese.GBK,
	"gb18030":   simplifiedchinese.GB18030,
	"big5":      traditionalchinese.Big5,

	"windows1250": charmap.Windows1250,
	"windows1251": charmap.Windows1251,
	"windows1252": charmap.Windows1252,
	"windows1253": charmap.Windows1253,
	"windows1254": charmap.Windows1254,
	"windows1255": charmap.Windows1255,
	"windows1256": charmap.Windows1256,
	"windows1257": charmap.Windows1257,
	"windows1258": charmap.Windows1258,
}

// cleanEncodingName lowercases name and drops everything but letters and
// digits, so "UTF-8", "utf8" and "Utf_8" are the same encoding.
func cleanEncodingName(name string) string {
	var sb strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case 'a' <= c && c <= 'z', '0' <= c && c <= '9':
			sb.WriteByte(c)
		case 'A' <= c && c <= 'Z':
			sb.WriteByte(c + 'a' - 'A')
		}
	}
	return sb.String()
}

// LookupEncoding resolves a client encoding name. The empty name is UTF8.
func LookupEncoding(name string) (encoding.Encoding, error) {
	if name == "" {
		return unicode.UTF8, nil
	}
	if enc, ok := clientEncodings[cleanEncodingName(name)]; ok {
		return enc, nil
	}
	return nil, errors.Errorf("%q is not a valid encoding name", name)
}

// DecodeReader returns a reader that converts r from the client encoding to
// UTF-8. Binary input is returned unchanged.
func (c CopyFromConfig) DecodeReader(r io.Reader) (io.Reader, error) {
	enc, err := LookupEncoding(c.Encoding)
	if err != nil {
		return nil, err
	}
	if c.Format == FormatBinary || enc == unicode.UTF8 {
		return r, nil
	}
	return enc.NewDecoder().Reader(r), nil
}

// EncodeWriter returns a writer that converts UTF-8 written to it into the
// client encoding on w. Binary output is returned unchanged.
func (c CopyToConfig) EncodeWriter(w io.Writer) (io.Writer, error) {
	enc, err := LookupEncoding(c.Encoding)
	if err != nil {
		return nil, err
	}
	if c.Format == FormatBinary || enc == unicode.UTF8 {
		return w, nil
	}
	return enc.NewEncoder().Writer(w), nil
}
