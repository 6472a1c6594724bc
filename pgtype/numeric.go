package pgtype

import (
	"encoding/binary"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/jackc/pgreq/pgerr"
	"github.com/jackc/pgreq/pgproto"
)

const (
	numericPos = 0x0000
	numericNeg = 0x4000
	numericNaN = 0xC000
)

// Numeric scans a numeric column into a decimal.Decimal. NaN is not
// representable and yields a protocol value error.
type Numeric struct {
	P *decimal.Decimal
}

func (Numeric) Compatible(fd pgproto.FieldDescription) error {
	return oneOf(fd.DataTypeOID, NumericOID)
}

func (t Numeric) Scan(src []byte, fd pgproto.FieldDescription) error {
	if src == nil {
		return pgerr.UnexpectedNull
	}

	if fd.Format == pgproto.BinaryFormat {
		return t.scanBinary(src)
	}

	d, err := decimal.NewFromString(string(trim(src)))
	if err != nil {
		return pgerr.ProtocolValueError
	}
	*t.P = d
	return nil
}

// scanBinary decodes the numeric wire form: a four int16 header
// (ndigits, weight, sign, dscale) followed by ndigits base-10000 digits.
func (t Numeric) scanBinary(src []byte) error {
	if len(src) < 8 {
		return pgerr.ProtocolValueError
	}

	ndigits := int(int16(binary.BigEndian.Uint16(src)))
	weight := int(int16(binary.BigEndian.Uint16(src[2:])))
	sign := int(binary.BigEndian.Uint16(src[4:]))

	if len(src) != 8+2*ndigits {
		return pgerr.ProtocolValueError
	}

	switch sign {
	case numericPos, numericNeg:
	case numericNaN:
		return pgerr.ProtocolValueError
	default:
		return pgerr.ProtocolValueError
	}

	acc := new(big.Int)
	chunk := new(big.Int)
	base := big.NewInt(10000)
	for i := 0; i < ndigits; i++ {
		d := int16(binary.BigEndian.Uint16(src[8+2*i:]))
		if d < 0 || d > 9999 {
			return pgerr.ProtocolValueError
		}
		acc.Mul(acc, base)
		acc.Add(acc, chunk.SetInt64(int64(d)))
	}
	if sign == numericNeg {
		acc.Neg(acc)
	}

	exp := 4 * (weight - ndigits + 1)
	*t.P = decimal.NewFromBigInt(acc, int32(exp))
	return nil
}
