package pgtype

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/cockroachdb/apd"
	"github.com/jackc/pgcopy/cast"
	"github.com/jackc/pgio"
)

// PostgreSQL internal numeric storage uses 16-bit "digits" with base of 10,000
const nbase = 10000

const (
	pgNumericPosSign    = 0x0000
	pgNumericNegSign    = 0x4000
	pgNumericNaNSign    = 0xc000
	pgNumericPosInfSign = 0xd000
	pgNumericNegInfSign = 0xf000

	pgNumericNaN    = 0x00000000c0000000
	pgNumericPosInf = 0x00000000d0000000
	pgNumericNegInf = 0x00000000f0000000
)

var (
	big0     = big.NewInt(0)
	big10    = big.NewInt(10)
	bigNBase = big.NewInt(nbase)
)

// encodeNumeric writes d as a sequence of base 10000 digits, most
// significant first, with the display scale taken from d's exponent.
func encodeNumeric(d *apd.Decimal, buf []byte) ([]byte, error) {
	switch d.Form {
	case apd.NaN, apd.NaNSignaling:
		return pgio.AppendUint64(buf, pgNumericNaN), nil
	case apd.Infinite:
		if d.Negative {
			return pgio.AppendUint64(buf, pgNumericNegInf), nil
		}
		return pgio.AppendUint64(buf, pgNumericPosInf), nil
	}

	absInt := new(big.Int).Abs(&d.Coeff)
	exp := d.Exponent

	var dscale int32
	if exp < 0 {
		dscale = -exp
	}

	// Align the exponent to a multiple of 4 so the coefficient splits evenly
	// into base 10000 digits.
	if r := ((exp % 4) + 4) % 4; r != 0 {
		absInt.Mul(absInt, new(big.Int).Exp(big10, big.NewInt(int64(r)), nil))
		exp -= r
	}

	// Least significant first.
	var digits []int16
	remainder := new(big.Int)
	for absInt.Cmp(big0) != 0 {
		absInt.DivMod(absInt, bigNBase, remainder)
		digits = append(digits, int16(remainder.Int64()))
	}

	weight := len(digits) - 1 + int(exp/4)
	for len(digits) > 0 && digits[0] == 0 {
		digits = digits[1:]
	}

	sign := uint16(pgNumericPosSign)
	if len(digits) == 0 {
		weight = 0
	} else if d.Negative {
		sign = pgNumericNegSign
	}

	ndigits, err := cast.Int16("numeric digit count", len(digits))
	if err != nil {
		return nil, err
	}
	weight16, err := cast.Int16("numeric weight", weight)
	if err != nil {
		return nil, err
	}
	dscale16, err := cast.Int16("numeric scale", dscale)
	if err != nil {
		return nil, err
	}

	buf = pgio.AppendInt16(buf, ndigits)
	buf = pgio.AppendInt16(buf, weight16)
	buf = pgio.AppendUint16(buf, sign)
	buf = pgio.AppendInt16(buf, dscale16)
	for i := len(digits) - 1; i >= 0; i-- {
		buf = pgio.AppendInt16(buf, digits[i])
	}
	return buf, nil
}

func decodeNumeric(src []byte) (*apd.Decimal, error) {
	if len(src) < 8 {
		return nil, fmt.Errorf("numeric incomplete %v", src)
	}

	ndigits := int(binary.BigEndian.Uint16(src))
	weight := int16(binary.BigEndian.Uint16(src[2:]))
	sign := binary.BigEndian.Uint16(src[4:])
	dscale := int16(binary.BigEndian.Uint16(src[6:]))
	rp := 8

	switch sign {
	case pgNumericNaNSign:
		return &apd.Decimal{Form: apd.NaN}, nil
	case pgNumericPosInfSign:
		return &apd.Decimal{Form: apd.Infinite}, nil
	case pgNumericNegInfSign:
		return &apd.Decimal{Form: apd.Infinite, Negative: true}, nil
	case pgNumericPosSign, pgNumericNegSign:
	default:
		return nil, fmt.Errorf("invalid numeric sign 0x%04x", sign)
	}
	if dscale < 0 {
		return nil, fmt.Errorf("invalid numeric scale %d", dscale)
	}

	if len(src[rp:]) != ndigits*2 {
		return nil, fmt.Errorf("numeric incomplete %v", src)
	}

	accum := new(big.Int)
	digit := new(big.Int)
	for i := 0; i < ndigits; i++ {
		d := binary.BigEndian.Uint16(src[rp:])
		if d >= nbase {
			return nil, fmt.Errorf("invalid numeric digit %d", d)
		}
		accum.Mul(accum, bigNBase)
		accum.Add(accum, digit.SetUint64(uint64(d)))
		rp += 2
	}

	exp := (int32(weight) - int32(ndigits) + 1) * 4
	target := -int32(dscale)
	switch {
	case exp > target:
		accum.Mul(accum, new(big.Int).Exp(big10, big.NewInt(int64(exp-target)), nil))
	case exp < target:
		accum.Quo(accum, new(big.Int).Exp(big10, big.NewInt(int64(target-exp)), nil))
	}

	return newAPD(accum, target, sign == pgNumericNegSign), nil
}
