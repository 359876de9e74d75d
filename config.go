package pgcopy

import (
	"strings"

	"github.com/jackc/pgproto3/v2"
	"github.com/pkg/errors"
)

// Defaults shared with any text or CSV row codec.
const (
	DefaultTextDelimiter = '\t'
	DefaultTextNull      = `\N`
	DefaultCSVDelimiter  = ','
	DefaultCSVNull       = ""
	DefaultCSVQuote      = '"'
	DefaultCSVHeader     = false
)

// Format is the data format of a COPY.
type Format int

const (
	FormatText Format = iota
	FormatCSV
	FormatBinary
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatCSV:
		return "csv"
	case FormatBinary:
		return "binary"
	default:
		return "invalid"
	}
}

// ParseFormat parses a FORMAT option value. Empty is text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, nil
	case "csv":
		return FormatCSV, nil
	case "binary":
		return FormatBinary, nil
	default:
		return 0, errors.Errorf("COPY format %q not recognized", s)
	}
}

// formatCode is the wire format code announced in CopyInResponse and
// CopyOutResponse.
func (f Format) formatCode() uint16 {
	if f == FormatBinary {
		return 1
	}
	return 0
}

// TextConfig configures the text format.
type TextConfig struct {
	Delimiter byte
	Null      string
}

func DefaultTextConfig() TextConfig {
	return TextConfig{Delimiter: DefaultTextDelimiter, Null: DefaultTextNull}
}

func (c TextConfig) validate() error {
	if err := validateDelimiter(c.Delimiter); err != nil {
		return err
	}
	if strings.ContainsAny(c.Null, "\r\n") {
		return errors.New("COPY null representation cannot use newline or carriage return")
	}
	if strings.IndexByte(`\.abcdefghijklmnopqrstuvwxyz0123456789`, c.Delimiter) >= 0 {
		return errors.Errorf("COPY delimiter cannot be %q", c.Delimiter)
	}
	if strings.IndexByte(c.Null, c.Delimiter) >= 0 {
		return errors.New("COPY delimiter must not appear in the NULL specification")
	}
	return nil
}

// CSVConfig configures the CSV format in both directions.
type CSVConfig struct {
	Delimiter byte
	Null      string
	Header    bool
	Quote     byte
	Escape    byte
}

func DefaultCSVConfig() CSVConfig {
	return CSVConfig{
		Delimiter: DefaultCSVDelimiter,
		Null:      DefaultCSVNull,
		Header:    DefaultCSVHeader,
		Quote:     DefaultCSVQuote,
		Escape:    DefaultCSVQuote,
	}
}

func (c CSVConfig) validate() error {
	if err := validateDelimiter(c.Delimiter); err != nil {
		return err
	}
	if strings.ContainsAny(c.Null, "\r\n") {
		return errors.New("COPY null representation cannot use newline or carriage return")
	}
	if c.Delimiter == c.Quote {
		return errors.New("COPY delimiter and quote must be different")
	}
	if strings.IndexByte(c.Null, c.Delimiter) >= 0 {
		return errors.New("COPY delimiter must not appear in the NULL specification")
	}
	if strings.IndexByte(c.Null, c.Quote) >= 0 {
		return errors.New("CSV quote character must not appear in the NULL specification")
	}
	return nil
}

func validateDelimiter(d byte) error {
	if d == '\n' || d == '\r' {
		return errors.New("COPY delimiter cannot be newline or carriage return")
	}
	return nil
}

// CSVFromConfig configures CSV input. ForceNotNull and ForceNull are indexed
// by column; when present they have one entry per column.
type CSVFromConfig struct {
	CSVConfig
	ForceNotNull []bool
	ForceNull    []bool
}

// ForceNotNullAt reports whether column i never matches the null string.
func (c CSVFromConfig) ForceNotNullAt(i int) bool {
	return i < len(c.ForceNotNull) && c.ForceNotNull[i]
}

// ForceNullAt reports whether a quoted value of column i that matches the
// null string is NULL.
func (c CSVFromConfig) ForceNullAt(i int) bool {
	return i < len(c.ForceNull) && c.ForceNull[i]
}

// CSVToConfig configures CSV output. ForceQuote is indexed by column; when
// present it has one entry per column.
type CSVToConfig struct {
	CSVConfig
	ForceQuote []bool
}

// ForceQuoteAt reports whether every non-NULL value of column i is quoted.
func (c CSVToConfig) ForceQuoteAt(i int) bool {
	return i < len(c.ForceQuote) && c.ForceQuote[i]
}

func validateVector(name string, v []bool, arity int) error {
	if v != nil && len(v) != arity {
		return errors.Errorf("%s has %d entries for %d columns", name, len(v), arity)
	}
	return nil
}

// CopyFromConfig describes the input of a COPY FROM. Only the member
// matching Format is meaningful.
type CopyFromConfig struct {
	Format   Format
	Text     TextConfig
	CSV      CSVFromConfig
	Encoding string // client encoding name; empty is UTF8
}

// Validate checks c against a relation of the given arity.
func (c CopyFromConfig) Validate(arity int) error {
	if _, err := LookupEncoding(c.Encoding); err != nil {
		return err
	}
	switch c.Format {
	case FormatText:
		return c.Text.validate()
	case FormatCSV:
		if err := c.CSV.validate(); err != nil {
			return err
		}
		if err := validateVector("FORCE_NOT_NULL", c.CSV.ForceNotNull, arity); err != nil {
			return err
		}
		return validateVector("FORCE_NULL", c.CSV.ForceNull, arity)
	case FormatBinary:
		return nil
	default:
		return errors.Errorf("invalid format %d", int(c.Format))
	}
}

// InResponse returns the message a server sends to start this COPY FROM.
func (c CopyFromConfig) InResponse(arity int) *pgproto3.CopyInResponse {
	return &pgproto3.CopyInResponse{
		OverallFormat:     byte(c.Format.formatCode()),
		ColumnFormatCodes: columnFormatCodes(c.Format, arity),
	}
}

// CopyToConfig describes the output of a COPY TO. Only the member matching
// Format is meaningful.
type CopyToConfig struct {
	Format   Format
	Text     TextConfig
	CSV      CSVToConfig
	Encoding string // client encoding name; empty is UTF8
}

// Validate checks c against a relation of the given arity.
func (c CopyToConfig) Validate(arity int) error {
	if _, err := LookupEncoding(c.Encoding); err != nil {
		return err
	}
	switch c.Format {
	case FormatText:
		return c.Text.validate()
	case FormatCSV:
		if err := c.CSV.validate(); err != nil {
			return err
		}
		return validateVector("FORCE_QUOTE", c.CSV.ForceQuote, arity)
	case FormatBinary:
		return nil
	default:
		return errors.Errorf("invalid format %d", int(c.Format))
	}
}

// OutResponse returns the message a server sends to start this COPY TO.
func (c CopyToConfig) OutResponse(arity int) *pgproto3.CopyOutResponse {
	return &pgproto3.CopyOutResponse{
		OverallFormat:     byte(c.Format.formatCode()),
		ColumnFormatCodes: columnFormatCodes(c.Format, arity),
	}
}

func columnFormatCodes(f Format, arity int) []uint16 {
	codes := make([]uint16, arity)
	for i := range codes {
		codes[i] = f.formatCode()
	}
	return codes
}
