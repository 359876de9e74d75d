package pgcopy

import (
	"io"

	"github.com/jackc/pgproto3/v2"
	"github.com/pkg/errors"
)

// CopyDataWriter frames everything written to it as CopyData messages of the
// PostgreSQL frontend/backend protocol.
type CopyDataWriter struct {
	w    io.Writer
	buf  []byte
	done bool
}

// NewCopyDataWriter returns a CopyDataWriter that writes messages to w.
func NewCopyDataWriter(w io.Writer) *CopyDataWriter {
	return &CopyDataWriter{w: w}
}

// WriteMessage writes a single protocol message, such as the CopyInResponse
// or CopyOutResponse that precedes the data.
func (cw *CopyDataWriter) WriteMessage(msg pgproto3.Message) error {
	cw.buf = msg.Encode(cw.buf[:0])
	_, err := cw.w.Write(cw.buf)
	return err
}

// Write sends p as one CopyData message. Empty writes send nothing.
func (cw *CopyDataWriter) Write(p []byte) (int, error) {
	if cw.done {
		return 0, errors.New("copy data: write after Done")
	}
	if len(p) == 0 {
		return 0, nil
	}
	if err := cw.WriteMessage(&pgproto3.CopyData{Data: p}); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Done sends CopyDone. Further writes fail.
func (cw *CopyDataWriter) Done() error {
	if cw.done {
		return errors.New("copy data: Done called twice")
	}
	cw.done = true
	return cw.WriteMessage(&pgproto3.CopyDone{})
}
