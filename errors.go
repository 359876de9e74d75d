package pgcopy

import (
	"fmt"

	"github.com/jackc/pgcopy/cast"
	"github.com/jackc/pgcopy/pgtext"
	"github.com/pkg/errors"
)

type (
	// RangeError is returned when a count or length does not fit its wire
	// slot.
	RangeError = cast.RangeError
	// ParseError is returned when a literal is not valid input for its type.
	ParseError = pgtext.ParseError
	// EscapeError is returned for malformed list or bytea escape syntax.
	EscapeError = pgtext.EscapeError
)

// ErrFinished is returned by CopyToBinary.EncodeRow after Finish.
var ErrFinished = errors.New("copy to binary: encoder is finished")

// ArityError is returned when a row does not have one value per schema
// column.
type ArityError struct {
	Expected int
	Got      int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("expected %d values, got %d values", e.Expected, e.Got)
}
