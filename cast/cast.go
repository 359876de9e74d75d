// Package cast narrows integers into the fixed-width integers used by the
// COPY wire formats.
package cast

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// RangeError is returned when a value does not fit into the target width.
type RangeError struct {
	Context string // what was being narrowed, e.g. "field count"
	Bits    int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s does not fit into an i%d", e.Context, e.Bits)
}

// Int16 narrows v into an int16. cx labels the value in the returned error.
func Int16[T constraints.Integer](cx string, v T) (int16, error) {
	n := int16(v)
	if T(n) != v || (n < 0) != (v < 0) {
		return 0, &RangeError{Context: cx, Bits: 16}
	}
	return n, nil
}

// Int32 narrows v into an int32. cx labels the value in the returned error.
func Int32[T constraints.Integer](cx string, v T) (int32, error) {
	n := int32(v)
	if T(n) != v || (n < 0) != (v < 0) {
		return 0, &RangeError{Context: cx, Bits: 32}
	}
	return n, nil
}
