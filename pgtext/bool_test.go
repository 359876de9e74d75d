package pgtext_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/jackc/pgcopy/pgtext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBool(t *testing.T) {
	for _, s := range []string{"t", "tr", "tru", "true", "y", "ye", "yes", "on", "1", " on ", "TRUE", "Yes"} {
		b, err := pgtext.ParseBool(s)
		require.NoErrorf(t, err, "%q", s)
		assert.Truef(t, b, "%q", s)
	}

	for _, s := range []string{"f", "fa", "fal", "fals", "false", "n", "no", "of", "off", "0", "\tOFF\n"} {
		b, err := pgtext.ParseBool(s)
		require.NoErrorf(t, err, "%q", s)
		assert.Falsef(t, b, "%q", s)
	}

	for _, s := range []string{"", "o", "truee", "2", "nope"} {
		_, err := pgtext.ParseBool(s)
		var pe *pgtext.ParseError
		require.Truef(t, errors.As(err, &pe), "%q", s)
		assert.Equal(t, "BOOLEAN", pe.Type)
	}
}

func TestParseBoolErrorMessage(t *testing.T) {
	_, err := pgtext.ParseBool("o")
	require.EqualError(t, err, "Invalid BOOLEAN 'o': unable to parse bool")
}

func TestFormatBool(t *testing.T) {
	var buf bytes.Buffer
	require.Equal(t, pgtext.NestableYes, pgtext.FormatBool(&buf, true))
	require.Equal(t, pgtext.NestableYes, pgtext.FormatBool(&buf, false))
	assert.Equal(t, "tf", buf.String())
	assert.Equal(t, "t", pgtext.BoolText(true))
	assert.Equal(t, "f", pgtext.BoolText(false))
}
