package pgcopy_test

import (
	"testing"

	"github.com/jackc/pgcopy"
	"github.com/jackc/pgcopy/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSchema(t *testing.T) {
	schema, err := pgcopy.ParseSchema("id:int8, tags : text[],bool")
	require.NoError(t, err)
	assert.Equal(t, pgcopy.Schema{
		{Name: "id", Type: pgtype.Of(pgtype.Int64)},
		{Name: "tags", Type: pgtype.ListOf(pgtype.Of(pgtype.Text))},
		{Name: "column3", Type: pgtype.Of(pgtype.Bool)},
	}, schema)
	assert.Equal(t, []string{"id", "tags", "column3"}, schema.Names())
	assert.Equal(t, "id:int8,tags:text[],column3:bool", schema.String())
	assert.Equal(t, 1, schema.Index("tags"))
	assert.Equal(t, -1, schema.Index("missing"))

	schema, err = pgcopy.ParseSchema("  ")
	require.NoError(t, err)
	assert.Empty(t, schema)

	_, err = pgcopy.ParseSchema("id:int4,x:money")
	assert.EqualError(t, err, `column 2: unknown type "money"`)

	_, err = pgcopy.ParseSchema(":int4")
	assert.EqualError(t, err, "column 1: empty name")
}

func TestSchemaParseRow(t *testing.T) {
	schema := mustParseSchema(t, "id:int4,name:text,ok:bool")

	row, err := schema.ParseRow([]*string{strPtr("7"), nil, strPtr("YES")})
	require.NoError(t, err)
	assert.Equal(t, []any{int32(7), nil, true}, row)

	_, err = schema.ParseRow([]*string{strPtr("x"), nil, nil})
	var parseErr *pgcopy.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "INT4", parseErr.Type)
	assert.EqualError(t, err, `column "id": Invalid INT4 'x': invalid syntax`)

	_, err = schema.ParseRow([]*string{nil})
	var arityErr *pgcopy.ArityError
	require.ErrorAs(t, err, &arityErr)
}
