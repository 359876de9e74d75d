// Package pgtype describes the scalar and list types a COPY column can have
// and converts their values to and from the PostgreSQL text and binary
// formats.
package pgtype

import (
	"fmt"
	"strings"
)

// PostgreSQL type OIDs. Array types of a list column use the array OID of
// the base type regardless of how deeply the list is nested.
const (
	BoolOID             = 16
	ByteaOID            = 17
	Int8OID             = 20
	Int4OID             = 23
	TextOID             = 25
	Float4OID           = 700
	Float8OID           = 701
	BoolArrayOID        = 1000
	ByteaArrayOID       = 1001
	Int4ArrayOID        = 1007
	TextArrayOID        = 1009
	Int8ArrayOID        = 1016
	Float4ArrayOID      = 1021
	Float8ArrayOID      = 1022
	DateOID             = 1082
	TimeOID             = 1083
	TimestampOID        = 1114
	TimestampArrayOID   = 1115
	DateArrayOID        = 1182
	TimeArrayOID        = 1183
	TimestamptzOID      = 1184
	TimestamptzArrayOID = 1185
	IntervalOID         = 1186
	IntervalArrayOID    = 1187
	NumericArrayOID     = 1231
	NumericOID          = 1700
	UUIDOID             = 2950
	UUIDArrayOID        = 2951
	JSONBOID            = 3802
	JSONBArrayOID       = 3807
)

// ScalarType is the element type at the bottom of every column type.
type ScalarType int

const (
	Bool ScalarType = iota
	Int32
	Int64
	Float32
	Float64
	Date
	Time
	Timestamp
	Timestamptz
	Interval
	Numeric
	Bytea
	Text
	JSONB
	UUID
)

type scalarInfo struct {
	name     string
	oid      uint32
	arrayOID uint32
}

var scalars = [...]scalarInfo{
	Bool:        {"bool", BoolOID, BoolArrayOID},
	Int32:       {"int4", Int4OID, Int4ArrayOID},
	Int64:       {"int8", Int8OID, Int8ArrayOID},
	Float32:     {"float4", Float4OID, Float4ArrayOID},
	Float64:     {"float8", Float8OID, Float8ArrayOID},
	Date:        {"date", DateOID, DateArrayOID},
	Time:        {"time", TimeOID, TimeArrayOID},
	Timestamp:   {"timestamp", TimestampOID, TimestampArrayOID},
	Timestamptz: {"timestamptz", TimestamptzOID, TimestamptzArrayOID},
	Interval:    {"interval", IntervalOID, IntervalArrayOID},
	Numeric:     {"numeric", NumericOID, NumericArrayOID},
	Bytea:       {"bytea", ByteaOID, ByteaArrayOID},
	Text:        {"text", TextOID, TextArrayOID},
	JSONB:       {"jsonb", JSONBOID, JSONBArrayOID},
	UUID:        {"uuid", UUIDOID, UUIDArrayOID},
}

func (s ScalarType) valid() bool {
	return s >= 0 && int(s) < len(scalars)
}

func (s ScalarType) String() string {
	if !s.valid() {
		return fmt.Sprintf("ScalarType(%d)", int(s))
	}
	return scalars[s].name
}

// Type is a column type: a scalar type wrapped in zero or more levels of
// list. The zero value is bool.
type Type struct {
	Base ScalarType
	Dims int // list nesting depth, 0 for a scalar
}

// Of returns the scalar type s.
func Of(s ScalarType) Type {
	return Type{Base: s}
}

// ListOf returns the type of a list whose elements are t.
func ListOf(t Type) Type {
	t.Dims++
	return t
}

// IsList reports whether t is a list type.
func (t Type) IsList() bool {
	return t.Dims > 0
}

// Elem returns the element type of a list type. It panics if t is not a list.
func (t Type) Elem() Type {
	if t.Dims == 0 {
		panic(fmt.Sprintf("pgtype: Elem of non-list type %s", t))
	}
	t.Dims--
	return t
}

// OID returns the PostgreSQL type OID of t.
func (t Type) OID() uint32 {
	if t.Dims > 0 {
		return scalars[t.Base].arrayOID
	}
	return scalars[t.Base].oid
}

func (t Type) String() string {
	return t.Base.String() + strings.Repeat("[]", t.Dims)
}

var typeNames = map[string]ScalarType{
	"bool":                        Bool,
	"boolean":                     Bool,
	"int4":                        Int32,
	"int":                         Int32,
	"integer":                     Int32,
	"int8":                        Int64,
	"bigint":                      Int64,
	"float4":                      Float32,
	"real":                        Float32,
	"float8":                      Float64,
	"double precision":            Float64,
	"date":                        Date,
	"time":                        Time,
	"time without time zone":      Time,
	"timestamp":                   Timestamp,
	"timestamp without time zone": Timestamp,
	"timestamptz":                 Timestamptz,
	"timestamp with time zone":    Timestamptz,
	"interval":                    Interval,
	"numeric":                     Numeric,
	"decimal":                     Numeric,
	"bytea":                       Bytea,
	"text":                        Text,
	"varchar":                     Text,
	"jsonb":                       JSONB,
	"uuid":                        UUID,
}

// ParseType parses a type name such as "int4", "timestamp with time zone" or
// "text[][]". Names are case-insensitive; each trailing "[]" adds one level
// of list.
func ParseType(name string) (Type, error) {
	s := strings.ToLower(strings.TrimSpace(name))

	var dims int
	for strings.HasSuffix(s, "[]") {
		dims++
		s = strings.TrimSpace(strings.TrimSuffix(s, "[]"))
	}

	base, ok := typeNames[s]
	if !ok {
		return Type{}, fmt.Errorf("unknown type %q", name)
	}
	return Type{Base: base, Dims: dims}, nil
}
