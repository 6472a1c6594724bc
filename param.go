package pgreq

import (
	"encoding/binary"
	"math"
	"strconv"
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"

	"github.com/jackc/pgreq/pgproto"
	"github.com/jackc/pgreq/pgtype"
)

// ParamFormat controls how parameter values are submitted to the server.
type ParamFormat int8

const (
	// ParamFormatText submits every parameter in text format.
	ParamFormatText ParamFormat = iota

	// ParamFormatSelectBest submits each parameter in binary format when
	// the parameter type supports it and in text format otherwise.
	ParamFormatSelectBest
)

// Param is a type-erased reference to one bound parameter value. It
// knows its type OID and whether a binary rendering is available.
type Param struct {
	oid    uint32
	binary bool
	value  interface{} // nil means SQL NULL
}

// OID returns the parameter's type OID.
func (p Param) OID() uint32 {
	return p.oid
}

// NullParam is a NULL of unspecified type.
func NullParam() Param {
	return Param{}
}

// Int2Param is a smallint parameter.
func Int2Param(v int16) Param {
	return Param{oid: pgtype.Int2OID, binary: true, value: v}
}

// Int4Param is an integer parameter.
func Int4Param(v int32) Param {
	return Param{oid: pgtype.Int4OID, binary: true, value: v}
}

// Int8Param is a bigint parameter.
func Int8Param(v int64) Param {
	return Param{oid: pgtype.Int8OID, binary: true, value: v}
}

// Float8Param is a double precision parameter.
func Float8Param(v float64) Param {
	return Param{oid: pgtype.Float8OID, binary: true, value: v}
}

// BoolParam is a boolean parameter.
func BoolParam(v bool) Param {
	return Param{oid: pgtype.BoolOID, binary: true, value: v}
}

// TextParam is a text parameter. It is also the raw escape hatch: the
// string is submitted verbatim with an unspecified type OID so the
// server infers the type from context.
func TextParam(v string) Param {
	return Param{value: v}
}

// ByteaParam is a bytea parameter.
func ByteaParam(v []byte) Param {
	return Param{oid: pgtype.ByteaOID, binary: true, value: v}
}

// UUIDParam is a uuid parameter.
func UUIDParam(v uuid.UUID) Param {
	return Param{oid: pgtype.UUIDOID, binary: true, value: v}
}

// NumericParam is a numeric parameter.
func NumericParam(v decimal.Decimal) Param {
	return Param{oid: pgtype.NumericOID, value: v}
}

// DateParam is a date parameter.
func DateParam(v pgtype.Date) Param {
	return Param{oid: pgtype.DateOID, value: v}
}

// TimeParam is a time parameter.
func TimeParam(v pgtype.Time) Param {
	return Param{oid: pgtype.TimeOID, value: v}
}

// TimetzParam is a time with time zone parameter.
func TimetzParam(v pgtype.Timetz) Param {
	return Param{oid: pgtype.TimetzOID, value: v}
}

// TimestampParam is a timestamp without time zone parameter. The
// wall-clock reading of v is submitted; its location is ignored.
func TimestampParam(v time.Time) Param {
	return Param{oid: pgtype.TimestampOID, value: pgtype.Timestamp{Time: v}}
}

// TimestamptzParam is a timestamp with time zone parameter.
func TimestamptzParam(v time.Time) Param {
	return Param{oid: pgtype.TimestamptzOID, value: pgtype.Timestamptz{Time: v}}
}

// IntervalParam is an interval parameter.
func IntervalParam(v pgtype.Interval) Param {
	return Param{oid: pgtype.IntervalOID, value: v}
}

func (p Param) encodeText() []byte {
	switch v := p.value.(type) {
	case int16:
		return strconv.AppendInt(nil, int64(v), 10)
	case int32:
		return strconv.AppendInt(nil, int64(v), 10)
	case int64:
		return strconv.AppendInt(nil, v, 10)
	case float64:
		return strconv.AppendFloat(nil, v, 'g', -1, 64)
	case bool:
		if v {
			return []byte{'t'}
		}
		return []byte{'f'}
	case string:
		return []byte(v)
	case []byte:
		return pgtype.AppendHexBytea(nil, v)
	case uuid.UUID:
		return []byte(v.String())
	case decimal.Decimal:
		return []byte(v.String())
	case pgtype.Date:
		return []byte(v.String())
	case pgtype.Time:
		return []byte(v.String())
	case pgtype.Timetz:
		return []byte(v.String())
	case pgtype.Timestamp:
		return []byte(v.String())
	case pgtype.Timestamptz:
		return []byte(v.String())
	case pgtype.Interval:
		return []byte(v.String())
	default:
		return nil
	}
}

func (p Param) encodeBinary() []byte {
	switch v := p.value.(type) {
	case int16:
		buf := make([]byte, 2)
		binary.BigEndian.PutUint16(buf, uint16(v))
		return buf
	case int32:
		buf := make([]byte, 4)
		binary.BigEndian.PutUint32(buf, uint32(v))
		return buf
	case int64:
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, uint64(v))
		return buf
	case float64:
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, math.Float64bits(v))
		return buf
	case bool:
		if v {
			return []byte{1}
		}
		return []byte{0}
	case []byte:
		buf := make([]byte, len(v))
		copy(buf, v)
		return buf
	case uuid.UUID:
		buf := make([]byte, 16)
		copy(buf, v[:])
		return buf
	default:
		return nil
	}
}

// encodeParams renders params into Bind message values and format
// codes. With ParamFormatText a single text format entry covers all
// parameters; with ParamFormatSelectBest a per-parameter vector is
// produced.
func encodeParams(params []Param, fmt ParamFormat) (values [][]byte, formatCodes []int16) {
	values = make([][]byte, len(params))

	if fmt == ParamFormatText {
		if len(params) > 0 {
			formatCodes = []int16{pgproto.TextFormat}
		}
		for i, p := range params {
			if p.value == nil {
				continue
			}
			values[i] = p.encodeText()
		}
		return values, formatCodes
	}

	formatCodes = make([]int16, len(params))
	for i, p := range params {
		if p.binary {
			formatCodes[i] = pgproto.BinaryFormat
		}
		if p.value == nil {
			continue
		}
		if p.binary {
			values[i] = p.encodeBinary()
		} else {
			values[i] = p.encodeText()
		}
	}
	return values, formatCodes
}

func paramOIDs(params []Param) []uint32 {
	oids := make([]uint32, len(params))
	for i, p := range params {
		oids[i] = p.oid
	}
	return oids
}
