package pgtype

import (
	"bytes"
	"encoding/binary"
	"time"

	"github.com/jackc/pgreq/pgerr"
	"github.com/jackc/pgreq/pgproto"
)

// Timestamp holds a timestamp-without-timezone column value. Time is the
// naive wall-clock reading placed in UTC.
type Timestamp struct {
	Time             time.Time
	InfinityModifier InfinityModifier
}

func (*Timestamp) Compatible(fd pgproto.FieldDescription) error {
	return oneOf(fd.DataTypeOID, TimestampOID)
}

func (dst *Timestamp) Scan(src []byte, fd pgproto.FieldDescription) error {
	if src == nil {
		return pgerr.UnexpectedNull
	}

	if fd.Format == pgproto.BinaryFormat {
		if len(src) != 8 {
			return pgerr.ProtocolValueError
		}
		us := int64(binary.BigEndian.Uint64(src))
		*dst = Timestamp{Time: microsecondsToTime(us)}
		return nil
	}

	t, im, err := parseTextTimestamp(src, false)
	if err != nil {
		return err
	}
	*dst = Timestamp{Time: t, InfinityModifier: im}
	return nil
}

// String renders the value the way the server would with
// DateStyle = ISO, e.g. "2026-02-08 12:34:23.43535".
func (ts Timestamp) String() string {
	switch ts.InfinityModifier {
	case Infinity:
		return "infinity"
	case NegativeInfinity:
		return "-infinity"
	}
	return string(appendTimestamp(nil, ts.Time))
}

func appendTimestamp(dst []byte, t time.Time) []byte {
	us := int64(t.Hour())*microsecondsPerHour + int64(t.Minute())*microsecondsPerMinute +
		int64(t.Second())*microsecondsPerSecond + int64(t.Nanosecond()/1000)

	year := t.Year()
	bc := year < 1
	if bc {
		year = 1 - year
	}
	dst = append(dst, formatCivil(year, int(t.Month()), t.Day())...)
	dst = append(dst, ' ')
	dst = appendTimeOfDay(dst, us)
	if bc {
		dst = append(dst, " BC"...)
	}
	return dst
}

func formatCivil(year, month, day int) string {
	var buf [16]byte
	b := buf[:0]
	if year >= 10000 {
		b = appendInt(b, year)
	} else {
		b = append(b, byte('0'+year/1000), byte('0'+year/100%10), byte('0'+year/10%10), byte('0'+year%10))
	}
	b = append(b, '-', byte('0'+month/10), byte('0'+month%10), '-', byte('0'+day/10), byte('0'+day%10))
	return string(b)
}

func appendInt(dst []byte, n int) []byte {
	if n >= 10 {
		dst = appendInt(dst, n/10)
	}
	return append(dst, byte('0'+n%10))
}

// parseTextTimestamp parses "YYYY-MM-DD{ |T}HH:MM:SS[.ffffff]" with an
// optional BC marker and, when withTZ is set, a timezone suffix that is
// subtracted to yield UTC.
func parseTextTimestamp(src []byte, withTZ bool) (time.Time, InfinityModifier, error) {
	if im, ok := parseInfinity(src); ok {
		return time.Time{}, im, nil
	}

	s, bc := consumeBC(src)
	sep := bytes.IndexAny(s, " T")
	if sep < 0 {
		return time.Time{}, Finite, pgerr.ProtocolValueError
	}

	year, month, day, err := parseDateParts(s[:sep])
	if err != nil {
		return time.Time{}, Finite, err
	}
	if bc {
		year = 1 - year
	}
	if !validCivilDate(year, month, day) {
		return time.Time{}, Finite, pgerr.ProtocolValueError
	}

	us, rest, err := parseTimePrefix(trim(s[sep+1:]))
	if err != nil {
		return time.Time{}, Finite, err
	}

	var offset int32
	if withTZ {
		offset, err = parseTZSuffix(rest)
		if err != nil {
			return time.Time{}, Finite, err
		}
	} else if len(trim(rest)) != 0 {
		return time.Time{}, Finite, pgerr.ProtocolValueError
	}

	sec := us / microsecondsPerSecond
	rem := us % microsecondsPerSecond
	t := time.Date(year, time.Month(month), day, 0, 0, int(sec), int(rem)*1000, time.UTC)
	if offset != 0 {
		t = t.Add(-time.Duration(offset) * time.Second)
	}
	return t, Finite, nil
}
