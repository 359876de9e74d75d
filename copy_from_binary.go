package pgcopy

import (
	"encoding/binary"
	"io"

	"github.com/jackc/chunkreader/v2"
	"github.com/pkg/errors"
)

const (
	// Bit 16 of the header flags is set when each tuple carries an OID.
	binaryFlagOIDs = 1 << 16
	// Bits 17-31 are reserved for flags a reader must understand.
	binaryCriticalFlags = 0xffff0000 &^ binaryFlagOIDs
)

// CopyFromBinary decodes a COPY BINARY stream. It implements RowSource, so
// a decoded stream can be passed straight to WriteBinary. A CopyFromBinary
// is not safe for concurrent use.
type CopyFromBinary struct {
	cr       *chunkreader.ChunkReader
	schema   Schema
	settings settings

	arena  []byte
	spans  []fieldSpan
	fields [][]byte

	rows int64
	done bool
	err  error
}

type fieldSpan struct {
	start, end int
	null       bool
}

// NewCopyFromBinary reads and validates the COPY BINARY header from r and
// returns a decoder for the tuples that follow. Tuples must have one field
// per column of schema.
func NewCopyFromBinary(r io.Reader, schema Schema, opts ...Option) (*CopyFromBinary, error) {
	d := &CopyFromBinary{
		cr:       chunkreader.New(r),
		schema:   schema,
		settings: newSettings(opts),
		arena:    make([]byte, 0, 1024),
		spans:    make([]fieldSpan, len(schema)),
		fields:   make([][]byte, len(schema)),
	}

	if err := d.readHeader(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *CopyFromBinary) readHeader() error {
	buf, err := d.cr.Next(len(binarySignature) + 8)
	if err != nil {
		return errors.Wrap(unexpectedEOF(err), "COPY file signature not recognized")
	}
	if string(buf[:len(binarySignature)]) != binarySignature {
		return errors.New("COPY file signature not recognized")
	}

	flags := binary.BigEndian.Uint32(buf[len(binarySignature):])
	if flags&binaryFlagOIDs != 0 {
		return errors.New("COPY file has OIDs, which are not supported")
	}
	if flags&binaryCriticalFlags != 0 {
		return errors.New("unrecognized critical flags in COPY file header")
	}

	extLen := int32(binary.BigEndian.Uint32(buf[len(binarySignature)+4:]))
	if extLen < 0 {
		return errors.New("invalid COPY file header (missing length)")
	}
	if int64(extLen) > int64(d.settings.maxFieldLen) {
		return errors.Errorf("COPY file header extension of %d bytes exceeds the %d byte limit", extLen, d.settings.maxFieldLen)
	}
	for n := int(extLen); n > 0; {
		c := min(n, readChunkLen)
		if _, err := d.cr.Next(c); err != nil {
			return errors.Wrap(unexpectedEOF(err), "invalid COPY file header (wrong length)")
		}
		n -= c
	}
	return nil
}

// readChunkLen bounds each read of a field or header extension so memory
// grows with the bytes actually received, not with the length prefix.
const readChunkLen = 8192

// readField appends the next n bytes of the stream to dst.
func (d *CopyFromBinary) readField(dst []byte, n int) ([]byte, error) {
	for n > 0 {
		c := min(n, readChunkLen)
		buf, err := d.cr.Next(c)
		if err != nil {
			return dst, err
		}
		dst = append(dst, buf...)
		n -= c
	}
	return dst, nil
}

func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// Next reads the next tuple. It returns false at the trailer or on error; Err
// distinguishes the two.
func (d *CopyFromBinary) Next() bool {
	if d.done || d.err != nil {
		return false
	}

	buf, err := d.cr.Next(2)
	if err != nil {
		d.fail(errors.Wrap(unexpectedEOF(err), "read field count"))
		return false
	}

	fieldCount := int16(binary.BigEndian.Uint16(buf))
	if fieldCount == -1 {
		d.done = true
		d.settings.logger.log(LogLevelDebug, "CopyFromBinary done", map[string]any{"rows": d.rows})
		return false
	}
	if int(fieldCount) != len(d.schema) {
		d.fail(&ArityError{Expected: len(d.schema), Got: int(fieldCount)})
		return false
	}

	d.arena = d.arena[:0]
	for i := range d.spans {
		buf, err := d.cr.Next(4)
		if err != nil {
			d.fail(errors.Wrapf(unexpectedEOF(err), "column %q: read field length", d.schema[i].Name))
			return false
		}

		n := int32(binary.BigEndian.Uint32(buf))
		if n == -1 {
			d.spans[i] = fieldSpan{null: true}
			continue
		}
		if n < 0 {
			d.fail(errors.Errorf("column %q: invalid field length %d", d.schema[i].Name, n))
			return false
		}

		if int64(n) > int64(d.settings.maxFieldLen) {
			d.fail(errors.Errorf("column %q: field of %d bytes exceeds the %d byte limit", d.schema[i].Name, n, d.settings.maxFieldLen))
			return false
		}

		start := len(d.arena)
		d.arena, err = d.readField(d.arena, int(n))
		if err != nil {
			d.fail(errors.Wrapf(unexpectedEOF(err), "column %q: read field", d.schema[i].Name))
			return false
		}
		d.spans[i] = fieldSpan{start: start, end: len(d.arena)}
	}

	for i, s := range d.spans {
		if s.null {
			d.fields[i] = nil
		} else {
			d.fields[i] = d.arena[s.start:s.end:s.end]
		}
	}

	d.rows++
	return true
}

func (d *CopyFromBinary) fail(err error) {
	d.err = err
	d.settings.logger.log(LogLevelError, "CopyFromBinary", map[string]any{"row": d.rows + 1, "err": err})
}

// RawValues returns the undecoded fields of the current tuple; a nil field
// is NULL. The returned slices are only valid until the next call to Next.
func (d *CopyFromBinary) RawValues() [][]byte {
	return d.fields
}

// Values decodes the fields of the current tuple.
func (d *CopyFromBinary) Values() ([]any, error) {
	values := make([]any, len(d.fields))
	for i, f := range d.fields {
		v, err := d.schema[i].Type.DecodeBinary(f)
		if err != nil {
			return nil, errors.Wrapf(err, "column %q", d.schema[i].Name)
		}
		values[i] = v
	}
	return values, nil
}

// Err returns the first error encountered while reading.
func (d *CopyFromBinary) Err() error {
	return d.err
}

// Rows returns the number of tuples read.
func (d *CopyFromBinary) Rows() int64 {
	return d.rows
}
