package pgtext

import (
	"errors"
	"fmt"
)

// ParseError is returned when a literal is not valid input for a type.
type ParseError struct {
	Type  string // SQL type name, e.g. "DATE"
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Invalid %s '%s': %v", e.Type, e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// EscapeError is returned for a malformed bytea escape sequence or malformed
// list literal syntax.
type EscapeError struct {
	Cause string
}

func (e *EscapeError) Error() string {
	return e.Cause
}

func newParseError(typ, input string, err error) *ParseError {
	return &ParseError{Type: typ, Input: input, Err: err}
}

func escapeErrorf(format string, args ...any) *EscapeError {
	return &EscapeError{Cause: fmt.Sprintf(format, args...)}
}

// unwrapNumError strips the strconv.NumError wrapper so ParseError does not
// repeat the input twice.
func unwrapNumError(err error) error {
	if inner := errors.Unwrap(err); inner != nil {
		return inner
	}
	return err
}
