package pgtype

import (
	"fmt"
	"time"

	"github.com/cockroachdb/apd"
	"github.com/gofrs/uuid"
	"github.com/jackc/pgcopy/pgtext"
)

// ParseText parses the text representation of a value of type t. Lists are
// returned as []any with nil for NULL elements.
func (t Type) ParseText(s string) (any, error) {
	if t.IsList() {
		elem := t.Elem()
		return pgtext.ParseList(s, func() any { return nil }, elem.ParseText)
	}

	switch t.Base {
	case Bool:
		return pgtext.ParseBool(s)
	case Int32:
		return pgtext.ParseInt32(s)
	case Int64:
		return pgtext.ParseInt64(s)
	case Float32:
		return pgtext.ParseFloat32(s)
	case Float64:
		return pgtext.ParseFloat64(s)
	case Date:
		return pgtext.ParseDate(s)
	case Time:
		return pgtext.ParseTime(s)
	case Timestamp:
		return pgtext.ParseTimestamp(s)
	case Timestamptz:
		return pgtext.ParseTimestamptz(s)
	case Interval:
		return pgtext.ParseInterval(s)
	case Numeric:
		return pgtext.ParseNumeric(s)
	case Bytea:
		return pgtext.ParseBytes(s)
	case Text:
		return s, nil
	case JSONB:
		return pgtext.ParseJSON(s)
	case UUID:
		return pgtext.ParseUUID(s)
	default:
		return nil, fmt.Errorf("unknown type %s", t)
	}
}

// FormatText writes the canonical text representation of v to buf. v must
// not be NULL; NULL list elements are written as NULL.
func (t Type) FormatText(buf pgtext.FormatBuffer, v any) (pgtext.Nestable, error) {
	if IsNull(v) {
		return 0, fmt.Errorf("cannot format NULL as %s", t)
	}

	if t.IsList() {
		elems, ok := v.([]any)
		if !ok {
			return 0, t.convertErr(v)
		}
		elem := t.Elem()
		var err error
		n := pgtext.FormatList(buf, elems, func(w pgtext.ListElementWriter, e any) pgtext.Nestable {
			if IsNull(e) {
				return w.WriteNull()
			}
			if err != nil {
				return pgtext.NestableYes
			}
			var nestable pgtext.Nestable
			nestable, err = elem.FormatText(w.NonNullBuffer(), e)
			return nestable
		})
		if err != nil {
			return 0, err
		}
		return n, nil
	}

	v, err := t.normalize(v)
	if err != nil {
		return 0, err
	}

	switch v := v.(type) {
	case bool:
		return pgtext.FormatBool(buf, v), nil
	case int32:
		return pgtext.FormatInt32(buf, v), nil
	case int64:
		return pgtext.FormatInt64(buf, v), nil
	case float32:
		return pgtext.FormatFloat32(buf, v), nil
	case float64:
		return pgtext.FormatFloat64(buf, v), nil
	case pgtext.Interval:
		return pgtext.FormatInterval(buf, v), nil
	case *apd.Decimal:
		return pgtext.FormatNumeric(buf, v), nil
	case []byte:
		return pgtext.FormatBytes(buf, v), nil
	case string:
		return pgtext.FormatString(buf, v), nil
	case pgtext.JSON:
		return pgtext.FormatJSON(buf, v), nil
	case uuid.UUID:
		return pgtext.FormatUUID(buf, v), nil
	}

	return t.formatTemporal(buf, v)
}

func (t Type) formatTemporal(buf pgtext.FormatBuffer, v any) (pgtext.Nestable, error) {
	switch t.Base {
	case Date:
		return pgtext.FormatDate(buf, v.(time.Time)), nil
	case Time:
		return pgtext.FormatTime(buf, v.(time.Duration)), nil
	case Timestamp:
		return pgtext.FormatTimestamp(buf, v.(time.Time)), nil
	case Timestamptz:
		return pgtext.FormatTimestamptz(buf, v.(time.Time)), nil
	default:
		return 0, t.convertErr(v)
	}
}
