/*
Package pgcopy encodes and decodes PostgreSQL COPY data.

CopyToBinary produces the COPY BINARY stream a server reads during
COPY ... FROM STDIN (FORMAT binary). Values are native Go values, or strings
parsed through a Schema with the text codec in package pgtext:

	schema, err := pgcopy.ParseSchema("id:int4,name:text")
	enc, err := pgcopy.NewCopyToBinary(schema)
	err = enc.EncodeRow([]any{int32(1), "alice"})
	data := enc.Finish()

CopyFromBinary reads the same stream back, one row at a time.

	dec, err := pgcopy.NewCopyFromBinary(r, schema)
	for dec.Next() {
		values, err := dec.Values()
		...
	}
	err = dec.Err()

CopyFromConfig and CopyToConfig hold the text and CSV format options of a COPY
statement. NewCopyFromConfig and NewCopyToConfig resolve them from CopyOptions
the way the server does.

Logging

The encoder and decoder accept a Logger through WithLogger. Adapters for
popular logging packages live under log/.
*/
package pgcopy
