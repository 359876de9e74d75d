package pgcopy_test

import (
	"testing"

	"github.com/jackc/pgcopy"
	"github.com/jackc/pgproto3/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	text := pgcopy.DefaultTextConfig()
	assert.Equal(t, byte('\t'), text.Delimiter)
	assert.Equal(t, `\N`, text.Null)

	csv := pgcopy.DefaultCSVConfig()
	assert.Equal(t, byte(','), csv.Delimiter)
	assert.Equal(t, "", csv.Null)
	assert.False(t, csv.Header)
	assert.Equal(t, byte('"'), csv.Quote)
	assert.Equal(t, csv.Quote, csv.Escape)

	from := pgcopy.CSVFromConfig{CSVConfig: csv}
	assert.False(t, from.ForceNotNullAt(0))
	assert.False(t, from.ForceNullAt(3))

	to := pgcopy.CSVToConfig{CSVConfig: csv, ForceQuote: []bool{false, true}}
	assert.False(t, to.ForceQuoteAt(0))
	assert.True(t, to.ForceQuoteAt(1))
	assert.False(t, to.ForceQuoteAt(2))
}

func TestFormat(t *testing.T) {
	for _, f := range []pgcopy.Format{pgcopy.FormatText, pgcopy.FormatCSV, pgcopy.FormatBinary} {
		parsed, err := pgcopy.ParseFormat(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, parsed)
	}

	f, err := pgcopy.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, pgcopy.FormatText, f)

	f, err = pgcopy.ParseFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, pgcopy.FormatCSV, f)

	_, err = pgcopy.ParseFormat("xml")
	assert.EqualError(t, err, `COPY format "xml" not recognized`)
}

func TestCopyFromConfigValidate(t *testing.T) {
	csv := pgcopy.DefaultCSVConfig()

	tests := []struct {
		name string
		cfg  pgcopy.CopyFromConfig
		err  string
	}{
		{"text default", pgcopy.CopyFromConfig{Format: pgcopy.FormatText, Text: pgcopy.DefaultTextConfig()}, ""},
		{"binary", pgcopy.CopyFromConfig{Format: pgcopy.FormatBinary}, ""},
		{"csv vectors", pgcopy.CopyFromConfig{Format: pgcopy.FormatCSV, CSV: pgcopy.CSVFromConfig{CSVConfig: csv, ForceNotNull: []bool{true, false}, ForceNull: []bool{false, false}}}, ""},
		{"csv short vector", pgcopy.CopyFromConfig{Format: pgcopy.FormatCSV, CSV: pgcopy.CSVFromConfig{CSVConfig: csv, ForceNull: []bool{true}}}, "FORCE_NULL has 1 entries for 2 columns"},
		{"text newline delimiter", pgcopy.CopyFromConfig{Format: pgcopy.FormatText, Text: pgcopy.TextConfig{Delimiter: '\n', Null: `\N`}}, "COPY delimiter cannot be newline or carriage return"},
		{"text backslash delimiter", pgcopy.CopyFromConfig{Format: pgcopy.FormatText, Text: pgcopy.TextConfig{Delimiter: '\\', Null: `\N`}}, `COPY delimiter cannot be '\\'`},
		{"text delimiter in null", pgcopy.CopyFromConfig{Format: pgcopy.FormatText, Text: pgcopy.TextConfig{Delimiter: '|', Null: "a|b"}}, "COPY delimiter must not appear in the NULL specification"},
		{"null with newline", pgcopy.CopyFromConfig{Format: pgcopy.FormatText, Text: pgcopy.TextConfig{Delimiter: '\t', Null: "\r"}}, "COPY null representation cannot use newline or carriage return"},
		{"csv quote is delimiter", pgcopy.CopyFromConfig{Format: pgcopy.FormatCSV, CSV: pgcopy.CSVFromConfig{CSVConfig: pgcopy.CSVConfig{Delimiter: '"', Quote: '"', Escape: '"'}}}, "COPY delimiter and quote must be different"},
		{"csv quote in null", pgcopy.CopyFromConfig{Format: pgcopy.FormatCSV, CSV: pgcopy.CSVFromConfig{CSVConfig: pgcopy.CSVConfig{Delimiter: ',', Null: `""`, Quote: '"', Escape: '"'}}}, "CSV quote character must not appear in the NULL specification"},
		{"bad encoding", pgcopy.CopyFromConfig{Format: pgcopy.FormatBinary, Encoding: "klingon"}, `"klingon" is not a valid encoding name`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate(2)
			if tt.err == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.err)
			}
		})
	}
}

func TestCopyToConfigValidate(t *testing.T) {
	cfg := pgcopy.CopyToConfig{Format: pgcopy.FormatCSV, CSV: pgcopy.CSVToConfig{CSVConfig: pgcopy.DefaultCSVConfig(), ForceQuote: []bool{true}}}
	assert.NoError(t, cfg.Validate(1))
	assert.EqualError(t, cfg.Validate(3), "FORCE_QUOTE has 1 entries for 3 columns")

	cfg = pgcopy.CopyToConfig{Format: pgcopy.FormatText, Text: pgcopy.TextConfig{Delimiter: 'x', Null: `\N`}}
	assert.EqualError(t, cfg.Validate(1), `COPY delimiter cannot be 'x'`)
}

func TestCopyResponses(t *testing.T) {
	from := pgcopy.CopyFromConfig{Format: pgcopy.FormatBinary}
	assert.Equal(t, &pgproto3.CopyInResponse{OverallFormat: 1, ColumnFormatCodes: []uint16{1, 1, 1}}, from.InResponse(3))

	to := pgcopy.CopyToConfig{Format: pgcopy.FormatCSV, CSV: pgcopy.CSVToConfig{CSVConfig: pgcopy.DefaultCSVConfig()}}
	resp := to.OutResponse(2)
	assert.Equal(t, &pgproto3.CopyOutResponse{OverallFormat: 0, ColumnFormatCodes: []uint16{0, 0}}, resp)
	assert.Equal(t, []byte{'H', 0, 0, 0, 11, 0, 0, 2, 0, 0, 0, 0}, resp.Encode(nil))
}
