package cast_test

import (
	"errors"
	"math"
	"testing"

	"github.com/jackc/pgcopy/cast"
	"github.com/stretchr/testify/require"
)

func TestInt16(t *testing.T) {
	t.Parallel()

	n, err := cast.Int16("field count", 3)
	require.NoError(t, err)
	require.EqualValues(t, 3, n)

	n, err = cast.Int16("field count", uint64(math.MaxInt16))
	require.NoError(t, err)
	require.EqualValues(t, math.MaxInt16, n)

	n, err = cast.Int16("field count", int64(math.MinInt16))
	require.NoError(t, err)
	require.EqualValues(t, math.MinInt16, n)

	for _, v := range []int64{math.MaxInt16 + 1, 40000, math.MinInt16 - 1, math.MaxInt64} {
		_, err = cast.Int16("field count", v)
		require.Error(t, err)
		var rangeErr *cast.RangeError
		require.True(t, errors.As(err, &rangeErr))
		require.Equal(t, "field count does not fit into an i16", err.Error())
	}

	_, err = cast.Int16("field count", uint16(math.MaxUint16))
	require.EqualError(t, err, "field count does not fit into an i16")
}

func TestInt32(t *testing.T) {
	t.Parallel()

	n, err := cast.Int32("field length", uint(math.MaxInt32))
	require.NoError(t, err)
	require.EqualValues(t, math.MaxInt32, n)

	_, err = cast.Int32("field length", uint32(math.MaxUint32))
	require.EqualError(t, err, "field length does not fit into an i32")

	_, err = cast.Int32("field length", uint64(math.MaxUint64))
	require.EqualError(t, err, "field length does not fit into an i32")

	_, err = cast.Int32("months", int64(math.MinInt32)-1)
	require.EqualError(t, err, "months does not fit into an i32")
}
