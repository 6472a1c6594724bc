package pgtype

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/jackc/pgreq/pgerr"
	"github.com/jackc/pgreq/pgproto"
)

// Date holds a date column value as a civil day. Time is midnight UTC
// of that day.
type Date struct {
	Time             time.Time
	InfinityModifier InfinityModifier
}

func (*Date) Compatible(fd pgproto.FieldDescription) error {
	return oneOf(fd.DataTypeOID, DateOID)
}

func (dst *Date) Scan(src []byte, fd pgproto.FieldDescription) error {
	if src == nil {
		return pgerr.UnexpectedNull
	}

	if fd.Format == pgproto.BinaryFormat {
		if len(src) != 4 {
			return pgerr.ProtocolValueError
		}
		daysSinceEpoch := int32(binary.BigEndian.Uint32(src))
		*dst = Date{Time: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, int(daysSinceEpoch))}
		return nil
	}

	if im, ok := parseInfinity(src); ok {
		*dst = Date{InfinityModifier: im}
		return nil
	}

	s, bc := consumeBC(src)
	year, month, day, err := parseDateParts(s)
	if err != nil {
		return err
	}
	if bc {
		year = 1 - year
	}
	if !validCivilDate(year, month, day) {
		return pgerr.ProtocolValueError
	}

	*dst = Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
	return nil
}

// String renders the date the way the server would with DateStyle = ISO.
func (d Date) String() string {
	switch d.InfinityModifier {
	case Infinity:
		return "infinity"
	case NegativeInfinity:
		return "-infinity"
	}
	year := d.Time.Year()
	if year < 1 {
		return fmt.Sprintf("%04d-%02d-%02d BC", 1-year, d.Time.Month(), d.Time.Day())
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, d.Time.Month(), d.Time.Day())
}
