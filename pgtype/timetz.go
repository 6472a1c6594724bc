package pgtype

import (
	"encoding/binary"

	"github.com/jackc/pgreq/pgerr"
	"github.com/jackc/pgreq/pgproto"
)

// Timetz holds a time-of-day with timezone column value. OffsetSeconds
// is east-positive seconds from UTC.
type Timetz struct {
	Microseconds  int64
	OffsetSeconds int32
}

func (*Timetz) Compatible(fd pgproto.FieldDescription) error {
	return oneOf(fd.DataTypeOID, TimetzOID)
}

func (dst *Timetz) Scan(src []byte, fd pgproto.FieldDescription) error {
	if src == nil {
		return pgerr.UnexpectedNull
	}

	if fd.Format == pgproto.BinaryFormat {
		if len(src) != 12 {
			return pgerr.ProtocolValueError
		}
		us := int64(binary.BigEndian.Uint64(src))
		// the wire carries seconds west of UTC
		offsetWest := int32(binary.BigEndian.Uint32(src[8:]))
		*dst = Timetz{Microseconds: us, OffsetSeconds: -offsetWest}
		return nil
	}

	us, rest, err := parseTimePrefix(trim(src))
	if err != nil {
		return err
	}
	offset, err := parseTZSuffix(rest)
	if err != nil {
		return err
	}

	*dst = Timetz{Microseconds: us, OffsetSeconds: offset}
	return nil
}

// String renders the value the way the server would, e.g.
// "12:34:23.43535+05".
func (t Timetz) String() string {
	return string(appendTZOffset(appendTimeOfDay(nil, t.Microseconds), t.OffsetSeconds))
}
