// Package pgtype implements the field codec layer: scan targets that
// validate result column metadata and decode text or binary PostgreSQL
// values into Go values.
package pgtype

import (
	"github.com/jackc/pgreq/pgerr"
	"github.com/jackc/pgreq/pgproto"
)

// PostgreSQL oids for the supported types.
const (
	BoolOID        = 16
	ByteaOID       = 17
	Int8OID        = 20
	Int2OID        = 21
	Int4OID        = 23
	TextOID        = 25
	Float8OID      = 701
	VarcharOID     = 1043
	DateOID        = 1082
	TimeOID        = 1083
	TimestampOID   = 1114
	TimestamptzOID = 1184
	IntervalOID    = 1186
	TimetzOID      = 1266
	NumericOID     = 1700
	UUIDOID        = 2950
)

// Target is a destination for one decoded result column. Compatible
// reports whether the column's declared type can be decoded into this
// target; Scan decodes a single datum. A nil src represents SQL NULL.
type Target interface {
	Compatible(fd pgproto.FieldDescription) error
	Scan(src []byte, fd pgproto.FieldDescription) error
}

// InfinityModifier marks date and timestamp values that are infinitely
// early or late.
type InfinityModifier int8

const (
	Infinity         InfinityModifier = 1
	Finite           InfinityModifier = 0
	NegativeInfinity InfinityModifier = -1
)

func (im InfinityModifier) String() string {
	switch im {
	case Finite:
		return "finite"
	case Infinity:
		return "infinity"
	case NegativeInfinity:
		return "-infinity"
	default:
		return "invalid"
	}
}

func oneOf(oid uint32, admissible ...uint32) error {
	for _, a := range admissible {
		if oid == a {
			return nil
		}
	}
	return pgerr.IncompatibleFieldType
}
