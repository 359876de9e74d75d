package pgcopy

import (
	"io"

	"github.com/jackc/pgcopy/cast"
	"github.com/jackc/pgcopy/pgtype"
	"github.com/jackc/pgio"
	"github.com/pkg/errors"
)

// binarySignature starts every COPY BINARY stream.
const binarySignature = "PGCOPY\n\377\r\n\000"

const defaultFlushThreshold = 65536

// defaultMaxFieldLen is PostgreSQL's MaxAllocSize less one, the largest
// field a server will write.
const defaultMaxFieldLen = 1<<30 - 1

type settings struct {
	logger         logger
	flushThreshold int
	maxFieldLen    int
}

// Option configures a CopyToBinary, a CopyFromBinary or WriteBinary.
type Option func(*settings)

// WithLogger sends log output at or above level to l.
func WithLogger(l Logger, level LogLevel) Option {
	return func(s *settings) {
		s.logger = logger{l: l, level: level}
	}
}

// WithFlushThreshold sets how many bytes WriteBinary buffers before writing.
// The default is 64 KiB.
func WithFlushThreshold(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.flushThreshold = n
		}
	}
}

// WithMaxFieldLen sets the largest field or header extension, in bytes,
// CopyFromBinary accepts. The default is 1 GiB less one byte.
func WithMaxFieldLen(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxFieldLen = n
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{flushThreshold: defaultFlushThreshold, maxFieldLen: defaultMaxFieldLen}
	for _, o := range opts {
		o(&s)
	}
	return s
}

// CopyToBinary encodes rows into the COPY BINARY format. A CopyToBinary is
// not safe for concurrent use.
type CopyToBinary struct {
	schema     Schema
	fieldCount int16
	settings   settings

	out     []byte
	scratch []byte

	rows     int64
	flushed  int64
	finished bool
}

// NewCopyToBinary returns an encoder for rows of schema. The encoder's output
// starts with the COPY BINARY header. It fails with a *RangeError when schema
// has more columns than the format can describe.
func NewCopyToBinary(schema Schema, opts ...Option) (*CopyToBinary, error) {
	fieldCount, err := cast.Int16("field count", len(schema))
	if err != nil {
		return nil, err
	}

	e := &CopyToBinary{
		schema:     schema,
		fieldCount: fieldCount,
		settings:   newSettings(opts),
	}

	e.out = append(e.out, binarySignature...)
	e.out = pgio.AppendInt32(e.out, 0) // flags
	e.out = pgio.AppendInt32(e.out, 0) // header extension length

	return e, nil
}

// EncodeRow appends one tuple. row must have one value per schema column;
// nil is NULL. When EncodeRow fails the output is left as it was before the
// call.
func (e *CopyToBinary) EncodeRow(row []any) error {
	if e.finished {
		return ErrFinished
	}
	if len(row) != len(e.schema) {
		err := &ArityError{Expected: len(e.schema), Got: len(row)}
		e.logRowError(row, err)
		return err
	}

	start := len(e.out)
	e.out = pgio.AppendInt16(e.out, e.fieldCount)
	for i, v := range row {
		if pgtype.IsNull(v) {
			e.out = pgio.AppendInt32(e.out, -1)
			continue
		}

		scratch, err := e.schema[i].Type.EncodeBinary(v, e.scratch[:0])
		if err == nil {
			e.scratch = scratch
			var n int32
			if n, err = cast.Int32("field length", len(scratch)); err == nil {
				e.out = pgio.AppendInt32(e.out, n)
				e.out = append(e.out, scratch...)
				continue
			}
		}

		e.out = e.out[:start]
		err = errors.Wrapf(err, "column %q", e.schema[i].Name)
		e.logRowError(row, err)
		return err
	}

	e.rows++
	return nil
}

func (e *CopyToBinary) logRowError(row []any, err error) {
	if e.settings.logger.shouldLog(LogLevelError) {
		e.settings.logger.log(LogLevelError, "EncodeRow", map[string]any{
			"row":    e.rows + 1,
			"values": logRowValues(row),
			"err":    err,
		})
	}
}

// Len returns the number of bytes buffered since the last Flush.
func (e *CopyToBinary) Len() int {
	return len(e.out)
}

// Rows returns the number of rows encoded.
func (e *CopyToBinary) Rows() int64 {
	return e.rows
}

// Flush returns the bytes encoded since the last Flush and clears them. The
// returned slice is owned by the caller.
func (e *CopyToBinary) Flush() []byte {
	out := e.out
	e.out = make([]byte, 0, cap(out))
	e.flushed += int64(len(out))
	return out
}

// Finish appends the trailer and returns the remaining bytes. The encoder
// cannot be used afterwards: EncodeRow returns ErrFinished and a second call
// to Finish panics.
func (e *CopyToBinary) Finish() []byte {
	if e.finished {
		panic("pgcopy: Finish called on finished CopyToBinary")
	}
	e.finished = true
	e.out = pgio.AppendInt16(e.out, -1)

	out := e.out
	e.out = nil
	e.flushed += int64(len(out))

	e.settings.logger.log(LogLevelDebug, "Finish", map[string]any{"rows": e.rows, "bytes": e.flushed})
	return out
}

// RowSource is the interface used by WriteBinary as the source for rows.
type RowSource interface {
	// Next returns true if there is another row and makes the next row data
	// available to Values(). When there are no more rows available or an error
	// has occurred it returns false.
	Next() bool

	// Values returns the values for the current row.
	Values() ([]any, error)

	// Err returns any error that has been encountered by the RowSource. If
	// this is not nil WriteBinary will abort the copy.
	Err() error
}

// CopyFromRows returns a RowSource interface over the provided rows slice.
func CopyFromRows(rows [][]any) RowSource {
	return &copyFromRows{rows: rows, idx: -1}
}

type copyFromRows struct {
	rows [][]any
	idx  int
}

func (ctr *copyFromRows) Next() bool {
	ctr.idx++
	return ctr.idx < len(ctr.rows)
}

func (ctr *copyFromRows) Values() ([]any, error) {
	return ctr.rows[ctr.idx], nil
}

func (ctr *copyFromRows) Err() error {
	return nil
}

// CopyFromSlice returns a RowSource interface over a dynamic func making it
// usable by WriteBinary.
func CopyFromSlice(length int, next func(int) ([]any, error)) RowSource {
	return &copyFromSlice{next: next, idx: -1, len: length}
}

type copyFromSlice struct {
	next func(int) ([]any, error)
	idx  int
	len  int
	err  error
}

func (cts *copyFromSlice) Next() bool {
	cts.idx++
	return cts.idx < cts.len
}

func (cts *copyFromSlice) Values() ([]any, error) {
	values, err := cts.next(cts.idx)
	if err != nil {
		cts.err = err
	}
	return values, err
}

func (cts *copyFromSlice) Err() error {
	return cts.err
}

// WriteBinary encodes every row of src as a COPY BINARY stream written to w.
// Output is written whenever more than the flush threshold is buffered and
// once more with the trailer at the end. It returns the number of rows
// encoded.
func WriteBinary(w io.Writer, schema Schema, src RowSource, opts ...Option) (int64, error) {
	e, err := NewCopyToBinary(schema, opts...)
	if err != nil {
		return 0, err
	}

	for src.Next() {
		if e.Len() > e.settings.flushThreshold {
			if _, err := w.Write(e.Flush()); err != nil {
				return e.Rows(), errors.Wrap(err, "write copy data")
			}
		}

		values, err := src.Values()
		if err != nil {
			return e.Rows(), err
		}
		if err := e.EncodeRow(values); err != nil {
			return e.Rows(), err
		}
	}

	if err := src.Err(); err != nil {
		return e.Rows(), err
	}

	if _, err := w.Write(e.Finish()); err != nil {
		return e.Rows(), errors.Wrap(err, "write copy data")
	}
	return e.Rows(), nil
}
