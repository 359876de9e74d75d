package pgtype

import (
	"fmt"
	"math/big"
	"time"

	"github.com/cockroachdb/apd"
	"github.com/gofrs/uuid"
	"github.com/jackc/pgcopy/cast"
	"github.com/jackc/pgcopy/pgtext"
	"github.com/shopspring/decimal"
)

// IsNull reports whether v is a NULL datum: nil, a nil []byte or a nil
// *apd.Decimal.
func IsNull(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case []byte:
		return v == nil
	case *apd.Decimal:
		return v == nil
	case []any:
		return v == nil
	default:
		return false
	}
}

func (t Type) convertErr(v any) error {
	return fmt.Errorf("cannot convert %T to %s", v, t)
}

// normalize converts v to the canonical Go representation of the scalar type
// t.Base. The canonical representations are the ones produced by ParseText
// and DecodeBinary.
func (t Type) normalize(v any) (any, error) {
	switch t.Base {
	case Bool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case Int32:
		switch v := v.(type) {
		case int32:
			return v, nil
		case int16:
			return int32(v), nil
		case int:
			return cast.Int32("int4 value", v)
		case int64:
			return cast.Int32("int4 value", v)
		}
	case Int64:
		switch v := v.(type) {
		case int64:
			return v, nil
		case int32:
			return int64(v), nil
		case int:
			return int64(v), nil
		}
	case Float32:
		if f, ok := v.(float32); ok {
			return f, nil
		}
	case Float64:
		switch v := v.(type) {
		case float64:
			return v, nil
		case float32:
			return float64(v), nil
		}
	case Date, Timestamp:
		if ts, ok := v.(time.Time); ok {
			if err := t.checkYear(ts); err != nil {
				return nil, err
			}
			return ts, nil
		}
	case Timestamptz:
		if ts, ok := v.(time.Time); ok {
			if err := t.checkYear(ts.UTC()); err != nil {
				return nil, err
			}
			return ts, nil
		}
	case Time:
		if d, ok := v.(time.Duration); ok {
			if d < 0 || d >= 24*time.Hour {
				return nil, fmt.Errorf("time of day %v is out of range", d)
			}
			return d, nil
		}
	case Interval:
		switch v := v.(type) {
		case pgtext.Interval:
			return v, nil
		case time.Duration:
			return pgtext.Interval{Microseconds: int64(v / time.Microsecond)}, nil
		}
	case Numeric:
		switch v := v.(type) {
		case *apd.Decimal:
			return v, nil
		case apd.Decimal:
			return &v, nil
		case decimal.Decimal:
			return decimalToAPD(v), nil
		}
	case Bytea:
		if b, ok := v.([]byte); ok {
			return b, nil
		}
	case Text:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case JSONB:
		if j, ok := v.(pgtext.JSON); ok {
			return j, nil
		}
	case UUID:
		switch v := v.(type) {
		case uuid.UUID:
			return v, nil
		case [16]byte:
			return uuid.UUID(v), nil
		}
	}
	return nil, t.convertErr(v)
}

// checkYear rejects dates whose year has no text representation.
func (t Type) checkYear(ts time.Time) error {
	if y := ts.Year(); y < pgtext.MinYear || y > pgtext.MaxYear {
		return fmt.Errorf("%s year %d is out of range", t, y)
	}
	return nil
}

func decimalToAPD(d decimal.Decimal) *apd.Decimal {
	coeff := d.Coefficient()
	out := &apd.Decimal{Exponent: d.Exponent(), Negative: coeff.Sign() < 0}
	out.Coeff.Abs(coeff)
	return out
}

func newAPD(coeff *big.Int, exp int32, negative bool) *apd.Decimal {
	out := &apd.Decimal{Exponent: exp, Negative: negative && coeff.Sign() != 0}
	out.Coeff.Set(coeff)
	return out
}
