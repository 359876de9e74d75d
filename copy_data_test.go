package pgcopy_test

import (
	"bytes"
	"testing"

	"github.com/jackc/pgcopy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyDataWriter(t *testing.T) {
	var buf bytes.Buffer
	w := pgcopy.NewCopyDataWriter(&buf)

	n, err := w.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = w.Write(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, w.Done())
	assert.Equal(t, []byte{
		'd', 0, 0, 0, 7, 'a', 'b', 'c',
		'c', 0, 0, 0, 4,
	}, buf.Bytes())

	_, err = w.Write([]byte("x"))
	assert.EqualError(t, err, "copy data: write after Done")
	assert.EqualError(t, w.Done(), "copy data: Done called twice")
}

func TestCopyDataWriterStream(t *testing.T) {
	schema := mustParseSchema(t, "int4")
	cfg, err := pgcopy.NewCopyToConfig(pgcopy.CopyOptions{Format: "binary"}, schema)
	require.NoError(t, err)

	var buf bytes.Buffer
	w := pgcopy.NewCopyDataWriter(&buf)
	require.NoError(t, w.WriteMessage(cfg.OutResponse(len(schema))))
	_, err = pgcopy.WriteBinary(w, schema, pgcopy.CopyFromRows([][]any{{1}}))
	require.NoError(t, err)
	require.NoError(t, w.Done())

	out := buf.Bytes()
	assert.Equal(t, []byte{'H', 0, 0, 0, 9, 1, 0, 1, 0, 1}, out[:10])
	out = out[10:]

	payload := len(binaryHeader) + 10 + 2
	assert.Equal(t, byte('d'), out[0])
	assert.Equal(t, []byte{0, 0, 0, byte(4 + payload)}, out[1:5])
	assert.Equal(t, binaryHeader, out[5:5+len(binaryHeader)])
	assert.Equal(t, []byte{'c', 0, 0, 0, 4}, out[5+payload:])
}
