package pgtype

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/jackc/pgcopy/cast"
	"github.com/jackc/pgio"
)

// Information on the internals of PostgreSQL arrays can be found in
// src/include/utils/array.h and src/backend/utils/adt/arrayfuncs.c. Of
// particular interest is the array_send function.

type ArrayHeader struct {
	ContainsNull bool
	ElementOID   uint32
	Dimensions   []ArrayDimension
}

type ArrayDimension struct {
	Length     int32
	LowerBound int32
}

func (dst *ArrayHeader) DecodeBinary(src []byte) (int, error) {
	if len(src) < 12 {
		return 0, fmt.Errorf("array header too short: %d", len(src))
	}

	rp := 0

	numDims := int(binary.BigEndian.Uint32(src[rp:]))
	rp += 4

	dst.ContainsNull = binary.BigEndian.Uint32(src[rp:]) == 1
	rp += 4

	dst.ElementOID = binary.BigEndian.Uint32(src[rp:])
	rp += 4

	if numDims < 0 || numDims > maxArrayDims {
		return 0, fmt.Errorf("invalid number of array dimensions: %d", numDims)
	}
	dst.Dimensions = nil
	if numDims > 0 {
		dst.Dimensions = make([]ArrayDimension, numDims)
	}
	if len(src) < 12+numDims*8 {
		return 0, fmt.Errorf("array header too short for %d dimensions: %d", numDims, len(src))
	}
	for i := range dst.Dimensions {
		dst.Dimensions[i].Length = int32(binary.BigEndian.Uint32(src[rp:]))
		rp += 4

		dst.Dimensions[i].LowerBound = int32(binary.BigEndian.Uint32(src[rp:]))
		rp += 4
	}

	return rp, nil
}

func (src ArrayHeader) EncodeBinary(buf []byte) []byte {
	buf = pgio.AppendInt32(buf, int32(len(src.Dimensions)))

	var containsNull int32
	if src.ContainsNull {
		containsNull = 1
	}
	buf = pgio.AppendInt32(buf, containsNull)

	buf = pgio.AppendUint32(buf, src.ElementOID)

	for i := range src.Dimensions {
		buf = pgio.AppendInt32(buf, src.Dimensions[i].Length)
		buf = pgio.AppendInt32(buf, src.Dimensions[i].LowerBound)
	}

	return buf
}

// maxArrayDims is PostgreSQL's MAXDIM.
const maxArrayDims = 6

func cardinality(dimensions []ArrayDimension) int {
	if len(dimensions) == 0 {
		return 0
	}

	elementCount := 1
	for _, d := range dimensions {
		if d.Length != 0 && elementCount > math.MaxInt32/int(d.Length) {
			return -1
		}
		elementCount *= int(d.Length)
	}

	return elementCount
}

// flattenList checks that the nested list v has the same length at every
// position of each level and returns its shape and its leaf elements in row
// major order.
func (t Type) flattenList(v any) ([]int, []any, error) {
	shape := make([]int, t.Dims)
	cur := v
	for level := range shape {
		elems, ok := cur.([]any)
		if !ok {
			break
		}
		shape[level] = len(elems)
		if len(elems) == 0 {
			break
		}
		cur = elems[0]
	}

	var flat []any
	var walk func(v any, level int) error
	walk = func(v any, level int) error {
		elems, ok := v.([]any)
		if !ok || elems == nil {
			if IsNull(v) {
				return fmt.Errorf("%s: nested list cannot be NULL", t)
			}
			return t.convertErr(v)
		}
		if len(elems) != shape[level] {
			return fmt.Errorf("%s: multidimensional lists must have sub-lists with matching dimensions", t)
		}
		if level == len(shape)-1 {
			flat = append(flat, elems...)
			return nil
		}
		for _, e := range elems {
			if err := walk(e, level+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(v, 0); err != nil {
		return nil, nil, err
	}

	return shape, flat, nil
}

func (t Type) encodeArray(v any, buf []byte) ([]byte, error) {
	shape, flat, err := t.flattenList(v)
	if err != nil {
		return nil, err
	}

	header := ArrayHeader{ElementOID: scalars[t.Base].oid}
	if len(flat) > 0 {
		header.Dimensions = make([]ArrayDimension, len(shape))
		for i, n := range shape {
			length, err := cast.Int32("list length", n)
			if err != nil {
				return nil, err
			}
			header.Dimensions[i] = ArrayDimension{Length: length, LowerBound: 1}
		}
	}

	containsNullIndex := len(buf) + 4
	buf = header.EncodeBinary(buf)

	elemType := Type{Base: t.Base}
	for _, e := range flat {
		sp := len(buf)
		buf = pgio.AppendInt32(buf, -1)
		if IsNull(e) {
			pgio.SetInt32(buf[containsNullIndex:], 1)
			continue
		}

		buf, err = elemType.EncodeBinary(e, buf)
		if err != nil {
			return nil, err
		}
		length, err := cast.Int32("list element length", len(buf[sp:])-4)
		if err != nil {
			return nil, err
		}
		pgio.SetInt32(buf[sp:], length)
	}

	return buf, nil
}

func (t Type) decodeArray(src []byte) (any, error) {
	var header ArrayHeader
	rp, err := header.DecodeBinary(src)
	if err != nil {
		return nil, err
	}

	if len(header.Dimensions) == 0 {
		return []any{}, nil
	}
	if len(header.Dimensions) != t.Dims {
		return nil, fmt.Errorf("cannot decode %d dimensional array into %s", len(header.Dimensions), t)
	}
	if header.ElementOID != scalars[t.Base].oid {
		return nil, fmt.Errorf("cannot decode array of OID %d into %s", header.ElementOID, t)
	}
	for _, d := range header.Dimensions {
		if d.Length < 0 {
			return nil, fmt.Errorf("invalid array dimension length %d", d.Length)
		}
	}

	count := cardinality(header.Dimensions)
	if count == 0 {
		return []any{}, nil
	}
	// Every element takes at least its 4 byte length.
	if count < 0 || count > len(src[rp:])/4 {
		return nil, fmt.Errorf("array of %d elements does not fit in %d bytes", count, len(src[rp:]))
	}

	elemType := Type{Base: t.Base}
	flat := make([]any, count)
	for i := range flat {
		if len(src[rp:]) < 4 {
			return nil, fmt.Errorf("array element %d: incomplete length", i)
		}
		elemLen := int(int32(binary.BigEndian.Uint32(src[rp:])))
		rp += 4

		if elemLen == -1 {
			continue
		}
		if elemLen < 0 || len(src[rp:]) < elemLen {
			return nil, fmt.Errorf("array element %d: invalid length %d", i, elemLen)
		}
		flat[i], err = elemType.DecodeBinary(src[rp : rp+elemLen])
		if err != nil {
			return nil, fmt.Errorf("array element %d: %w", i, err)
		}
		rp += elemLen
	}
	if rp != len(src) {
		return nil, fmt.Errorf("array has %d bytes of trailing data", len(src)-rp)
	}

	return nest(flat, header.Dimensions), nil
}

// nest rebuilds nested lists from elements stored in row major order.
func nest(flat []any, dims []ArrayDimension) []any {
	if len(dims) == 1 {
		return flat
	}
	n := int(dims[0].Length)
	stride := len(flat) / n
	out := make([]any, n)
	for i := range out {
		out[i] = nest(flat[i*stride:(i+1)*stride], dims[1:])
	}
	return out
}
