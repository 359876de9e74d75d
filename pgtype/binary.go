package pgtype

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/cockroachdb/apd"
	"github.com/gofrs/uuid"
	"github.com/jackc/pgcopy/cast"
	"github.com/jackc/pgcopy/pgtext"
	"github.com/jackc/pgio"
)

const (
	microsecFromUnixEpochToY2K = 946684800 * 1000000
	secFromUnixEpochToY2K      = 946684800
	daysFromUnixEpochToY2K     = 10957

	negativeInfinityMicrosecondOffset = -9223372036854775808
	infinityMicrosecondOffset         = 9223372036854775807
	negativeInfinityDayOffset         = -2147483648
	infinityDayOffset                 = 2147483647

	jsonbVersion = 1
)

var errInfinite = errors.New("infinite values are not supported")

// EncodeBinary appends the binary representation of v to buf. v must not be
// NULL (see IsNull); the caller writes NULL as a -1 length.
func (t Type) EncodeBinary(v any, buf []byte) ([]byte, error) {
	if IsNull(v) {
		return nil, fmt.Errorf("cannot encode NULL as %s", t)
	}
	if t.IsList() {
		return t.encodeArray(v, buf)
	}

	v, err := t.normalize(v)
	if err != nil {
		return nil, err
	}

	switch t.Base {
	case Bool:
		if v.(bool) {
			return append(buf, 1), nil
		}
		return append(buf, 0), nil
	case Int32:
		return pgio.AppendInt32(buf, v.(int32)), nil
	case Int64:
		return pgio.AppendInt64(buf, v.(int64)), nil
	case Float32:
		return pgio.AppendUint32(buf, math.Float32bits(v.(float32))), nil
	case Float64:
		return pgio.AppendUint64(buf, math.Float64bits(v.(float64))), nil
	case Date:
		return encodeDate(v.(time.Time), buf)
	case Time:
		return pgio.AppendInt64(buf, int64(v.(time.Duration)/time.Microsecond)), nil
	case Timestamp:
		ts := v.(time.Time)
		wall := time.Date(ts.Year(), ts.Month(), ts.Day(), ts.Hour(), ts.Minute(), ts.Second(), ts.Nanosecond(), time.UTC)
		return encodeTimestamp(wall, buf)
	case Timestamptz:
		return encodeTimestamp(v.(time.Time), buf)
	case Interval:
		iv := v.(pgtext.Interval)
		buf = pgio.AppendInt64(buf, iv.Microseconds)
		buf = pgio.AppendInt32(buf, iv.Days)
		return pgio.AppendInt32(buf, iv.Months), nil
	case Numeric:
		return encodeNumeric(v.(*apd.Decimal), buf)
	case Bytea:
		return append(buf, v.([]byte)...), nil
	case Text:
		return append(buf, v.(string)...), nil
	case JSONB:
		buf = append(buf, jsonbVersion)
		return append(buf, v.(pgtext.JSON)...), nil
	case UUID:
		u := v.(uuid.UUID)
		return append(buf, u[:]...), nil
	default:
		return nil, fmt.Errorf("unknown type %s", t)
	}
}

func encodeDate(d time.Time, buf []byte) ([]byte, error) {
	midnight := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	days, err := cast.Int32("date", midnight.Unix()/86400-daysFromUnixEpochToY2K)
	if err != nil {
		return nil, err
	}
	return pgio.AppendInt32(buf, days), nil
}

func encodeTimestamp(ts time.Time, buf []byte) ([]byte, error) {
	sec := ts.Unix() - secFromUnixEpochToY2K
	if sec > math.MaxInt64/1000000-1 || sec < math.MinInt64/1000000+1 {
		return nil, fmt.Errorf("timestamp %v is out of range", ts)
	}
	return pgio.AppendInt64(buf, sec*1000000+int64(ts.Nanosecond()/1000)), nil
}

// DecodeBinary decodes the binary representation of a value of type t. A nil
// src is NULL and decodes to nil.
func (t Type) DecodeBinary(src []byte) (any, error) {
	if src == nil {
		return nil, nil
	}
	if t.IsList() {
		return t.decodeArray(src)
	}

	if size := t.Base.binarySize(); size >= 0 && len(src) != size {
		return nil, fmt.Errorf("invalid length for %s: %d", t, len(src))
	}

	switch t.Base {
	case Bool:
		return src[0] == 1, nil
	case Int32:
		return int32(binary.BigEndian.Uint32(src)), nil
	case Int64:
		return int64(binary.BigEndian.Uint64(src)), nil
	case Float32:
		return math.Float32frombits(binary.BigEndian.Uint32(src)), nil
	case Float64:
		return math.Float64frombits(binary.BigEndian.Uint64(src)), nil
	case Date:
		days := int32(binary.BigEndian.Uint32(src))
		if days == infinityDayOffset || days == negativeInfinityDayOffset {
			return nil, errInfinite
		}
		d := time.Unix((int64(days)+daysFromUnixEpochToY2K)*86400, 0).UTC()
		if err := t.checkYear(d); err != nil {
			return nil, err
		}
		return d, nil
	case Time:
		return time.Duration(int64(binary.BigEndian.Uint64(src))) * time.Microsecond, nil
	case Timestamp, Timestamptz:
		microsecSinceY2K := int64(binary.BigEndian.Uint64(src))
		if microsecSinceY2K == infinityMicrosecondOffset || microsecSinceY2K == negativeInfinityMicrosecondOffset {
			return nil, errInfinite
		}
		ts := time.Unix(
			microsecFromUnixEpochToY2K/1000000+microsecSinceY2K/1000000,
			(microsecFromUnixEpochToY2K%1000000*1000)+(microsecSinceY2K%1000000*1000),
		).UTC()
		if err := t.checkYear(ts); err != nil {
			return nil, err
		}
		return ts, nil
	case Interval:
		return pgtext.Interval{
			Microseconds: int64(binary.BigEndian.Uint64(src)),
			Days:         int32(binary.BigEndian.Uint32(src[8:])),
			Months:       int32(binary.BigEndian.Uint32(src[12:])),
		}, nil
	case Numeric:
		return decodeNumeric(src)
	case Bytea:
		return append([]byte{}, src...), nil
	case Text:
		return string(src), nil
	case JSONB:
		if len(src) == 0 {
			return nil, errors.New("jsonb too short")
		}
		if src[0] != jsonbVersion {
			return nil, fmt.Errorf("unknown jsonb version number %d", src[0])
		}
		return pgtext.ParseJSON(string(src[1:]))
	case UUID:
		return uuid.FromBytes(src)
	default:
		return nil, fmt.Errorf("unknown type %s", t)
	}
}

// binarySize returns the fixed size of the binary representation of s, or -1
// if it is variable.
func (s ScalarType) binarySize() int {
	switch s {
	case Bool:
		return 1
	case Int32, Float32, Date:
		return 4
	case Int64, Float64, Time, Timestamp, Timestamptz:
		return 8
	case Interval, UUID:
		return 16
	default:
		return -1
	}
}
