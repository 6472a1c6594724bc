package pgtype

import (
	"encoding/binary"
	"time"

	"github.com/jackc/pgreq/pgerr"
	"github.com/jackc/pgreq/pgproto"
)

// Timestamptz holds a timestamp-with-timezone column value as a UTC
// instant.
type Timestamptz struct {
	Time             time.Time
	InfinityModifier InfinityModifier
}

func (*Timestamptz) Compatible(fd pgproto.FieldDescription) error {
	return oneOf(fd.DataTypeOID, TimestamptzOID)
}

func (dst *Timestamptz) Scan(src []byte, fd pgproto.FieldDescription) error {
	if src == nil {
		return pgerr.UnexpectedNull
	}

	if fd.Format == pgproto.BinaryFormat {
		if len(src) != 8 {
			return pgerr.ProtocolValueError
		}
		us := int64(binary.BigEndian.Uint64(src))
		*dst = Timestamptz{Time: microsecondsToTime(us)}
		return nil
	}

	t, im, err := parseTextTimestamp(src, true)
	if err != nil {
		return err
	}
	*dst = Timestamptz{Time: t, InfinityModifier: im}
	return nil
}

// String renders the UTC instant with an explicit zero offset, e.g.
// "2026-02-08 12:34:23.43535+00".
func (ts Timestamptz) String() string {
	switch ts.InfinityModifier {
	case Infinity:
		return "infinity"
	case NegativeInfinity:
		return "-infinity"
	}
	return string(append(appendTimestamp(nil, ts.Time.UTC()), "+00"...))
}
