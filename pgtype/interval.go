package pgtype

import (
	"bytes"
	"encoding/binary"
	"strconv"

	"github.com/jackc/pgreq/pgerr"
	"github.com/jackc/pgreq/pgproto"
)

// Interval holds an interval column value in the server's three
// components: microseconds, days and months.
type Interval struct {
	Microseconds int64
	Days         int32
	Months       int32
}

func (*Interval) Compatible(fd pgproto.FieldDescription) error {
	return oneOf(fd.DataTypeOID, IntervalOID)
}

func (dst *Interval) Scan(src []byte, fd pgproto.FieldDescription) error {
	if src == nil {
		return pgerr.UnexpectedNull
	}

	if fd.Format == pgproto.BinaryFormat {
		if len(src) != 16 {
			return pgerr.ProtocolValueError
		}
		*dst = Interval{
			Microseconds: int64(binary.BigEndian.Uint64(src)),
			Days:         int32(binary.BigEndian.Uint32(src[8:])),
			Months:       int32(binary.BigEndian.Uint32(src[12:])),
		}
		return nil
	}

	return dst.scanText(src)
}

// scanText parses the IntervalStyle = postgres form: whitespace
// separated "<n> <unit>" pairs plus an optional signed HH:MM:SS[.f]
// time part, e.g. "1 year 2 mons 3 days 04:05:06.000007".
func (dst *Interval) scanText(src []byte) error {
	if len(trim(src)) == 0 {
		return pgerr.ProtocolValueError
	}

	var out Interval

	tokens := bytes.Fields(src)
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if bytes.IndexByte(tok, ':') >= 0 {
			sign := int64(1)
			if tok[0] == '-' {
				sign = -1
				tok = tok[1:]
			} else if tok[0] == '+' {
				tok = tok[1:]
			}
			us, rest, err := parseTimePrefix(tok)
			if err != nil {
				return err
			}
			if len(rest) != 0 {
				return pgerr.ProtocolValueError
			}
			out.Microseconds += sign * us
			continue
		}

		// "<integer> <unit>" pair
		end := digitsEnd(tok)
		if end != len(tok) {
			return pgerr.ProtocolValueError
		}
		val, err := strconv.ParseInt(string(tok), 10, 64)
		if err != nil {
			return pgerr.ProtocolValueError
		}
		i++
		if i >= len(tokens) {
			return pgerr.ProtocolValueError
		}

		switch string(tokens[i]) {
		case "year", "years":
			out.Months += int32(val * 12)
		case "mon", "mons":
			out.Months += int32(val)
		case "day", "days":
			out.Days += int32(val)
		case "hour", "hours":
			out.Microseconds += val * microsecondsPerHour
		case "minute", "minutes":
			out.Microseconds += val * microsecondsPerMinute
		case "second", "seconds":
			out.Microseconds += val * microsecondsPerSecond
		default:
			return pgerr.ProtocolValueError
		}
	}

	*dst = out
	return nil
}

// String renders the interval the way the server would with
// IntervalStyle = postgres, e.g. "1 year 2 mons 3 days 04:05:06.000007".
func (iv Interval) String() string {
	var dst []byte

	appendUnit := func(val int64, singular, plural string) {
		if len(dst) > 0 {
			dst = append(dst, ' ')
		}
		dst = strconv.AppendInt(dst, val, 10)
		dst = append(dst, ' ')
		if val == 1 || val == -1 {
			dst = append(dst, singular...)
		} else {
			dst = append(dst, plural...)
		}
	}

	years := int64(iv.Months) / 12
	months := int64(iv.Months) % 12
	if years != 0 {
		appendUnit(years, "year", "years")
	}
	if months != 0 {
		appendUnit(months, "mon", "mons")
	}
	if iv.Days != 0 {
		appendUnit(int64(iv.Days), "day", "days")
	}

	if iv.Microseconds != 0 || len(dst) == 0 {
		if len(dst) > 0 {
			dst = append(dst, ' ')
		}
		us := iv.Microseconds
		if us < 0 {
			dst = append(dst, '-')
			us = -us
		}
		dst = appendTimeOfDay(dst, us)
	}

	return string(dst)
}
