package pgtype

import (
	"encoding/binary"

	"github.com/jackc/pgreq/pgerr"
	"github.com/jackc/pgreq/pgproto"
)

// Time holds a time-of-day column value as microseconds since midnight.
type Time struct {
	Microseconds int64
}

func (*Time) Compatible(fd pgproto.FieldDescription) error {
	return oneOf(fd.DataTypeOID, TimeOID)
}

func (dst *Time) Scan(src []byte, fd pgproto.FieldDescription) error {
	if src == nil {
		return pgerr.UnexpectedNull
	}

	if fd.Format == pgproto.BinaryFormat {
		if len(src) != 8 {
			return pgerr.ProtocolValueError
		}
		*dst = Time{Microseconds: int64(binary.BigEndian.Uint64(src))}
		return nil
	}

	us, rest, err := parseTimePrefix(trim(src))
	if err != nil {
		return err
	}
	if len(trim(rest)) != 0 {
		return pgerr.ProtocolValueError
	}

	*dst = Time{Microseconds: us}
	return nil
}

// String renders the time of day the way the server would.
func (t Time) String() string {
	return string(appendTimeOfDay(nil, t.Microseconds))
}
