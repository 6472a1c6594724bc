package pgtype

import (
	"time"

	"github.com/jackc/pgreq/pgerr"
)

const (
	microsecondsPerSecond = 1000000
	microsecondsPerMinute = 60 * microsecondsPerSecond
	microsecondsPerHour   = 60 * microsecondsPerMinute
)

// pgEpochUnix is 2000-01-01 00:00:00 UTC, the origin for binary date and
// timestamp encodings, as a Unix timestamp.
const pgEpochUnix = 946684800

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

func trim(s []byte) []byte {
	for len(s) > 0 && isSpace(s[0]) {
		s = s[1:]
	}
	for len(s) > 0 && isSpace(s[len(s)-1]) {
		s = s[:len(s)-1]
	}
	return s
}

func lower(b byte) byte {
	if 'A' <= b && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

func equalFold(s []byte, t string) bool {
	if len(s) != len(t) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if lower(s[i]) != lower(t[i]) {
			return false
		}
	}
	return true
}

// consumeBC strips a trailing "BC" marker (case-insensitive) and any
// surrounding whitespace.
func consumeBC(s []byte) ([]byte, bool) {
	s = trim(s)
	if len(s) < 2 || !equalFold(s[len(s)-2:], "BC") {
		return s, false
	}
	return trim(s[:len(s)-2]), true
}

func parseInfinity(s []byte) (InfinityModifier, bool) {
	s = trim(s)
	if equalFold(s, "infinity") {
		return Infinity, true
	}
	if equalFold(s, "-infinity") {
		return NegativeInfinity, true
	}
	return Finite, false
}

// digitRun parses a run of at least one decimal digit starting at s and
// returns the value and the number of bytes consumed, or consumed == 0.
func digitRun(s []byte) (val int64, consumed int) {
	for consumed < len(s) && s[consumed] >= '0' && s[consumed] <= '9' {
		val = val*10 + int64(s[consumed]-'0')
		consumed++
	}
	return val, consumed
}

// parseDateParts parses "YYYY-MM-DD" with no surrounding bytes other
// than whitespace.
func parseDateParts(s []byte) (year, month, day int, err error) {
	s = trim(s)

	y, n := digitRun(s)
	if n == 0 {
		return 0, 0, 0, pgerr.ProtocolValueError
	}
	s = s[n:]
	if len(s) == 0 || s[0] != '-' {
		return 0, 0, 0, pgerr.ProtocolValueError
	}
	s = s[1:]

	m, n := digitRun(s)
	if n == 0 {
		return 0, 0, 0, pgerr.ProtocolValueError
	}
	s = s[n:]
	if len(s) == 0 || s[0] != '-' {
		return 0, 0, 0, pgerr.ProtocolValueError
	}
	s = s[1:]

	d, n := digitRun(s)
	if n == 0 || n != len(s) {
		return 0, 0, 0, pgerr.ProtocolValueError
	}

	return int(y), int(m), int(d), nil
}

// validCivilDate reports whether year/month/day name a real calendar day.
func validCivilDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}

// parseTimePrefix parses "HH:MM:SS[.ffffff]" at the start of s and
// returns the time of day in microseconds plus the unconsumed suffix.
//
// The fractional part, when present, must have at least one digit;
// fewer than six digits scale up to microseconds, more than six are
// truncated. HH may be 24 only when all lower fields are zero.
func parseTimePrefix(s []byte) (us int64, rest []byte, err error) {
	hours, n := digitRun(s)
	if n == 0 {
		return 0, nil, pgerr.ProtocolValueError
	}
	s = s[n:]
	if len(s) == 0 || s[0] != ':' {
		return 0, nil, pgerr.ProtocolValueError
	}
	s = s[1:]

	minutes, n := digitRun(s)
	if n == 0 {
		return 0, nil, pgerr.ProtocolValueError
	}
	s = s[n:]
	if len(s) == 0 || s[0] != ':' {
		return 0, nil, pgerr.ProtocolValueError
	}
	s = s[1:]

	seconds, n := digitRun(s)
	if n == 0 {
		return 0, nil, pgerr.ProtocolValueError
	}
	s = s[n:]

	var frac int64
	if len(s) > 0 && s[0] == '.' {
		s = s[1:]
		var fn int
		frac, fn = digitRun(s)
		if fn == 0 {
			return 0, nil, pgerr.ProtocolValueError
		}
		s = s[fn:]
		for i := fn; i < 6; i++ {
			frac *= 10
		}
		for i := 6; i < fn; i++ {
			frac /= 10
		}
	}

	if minutes > 59 || seconds > 59 {
		return 0, nil, pgerr.ProtocolValueError
	}
	if hours > 24 {
		return 0, nil, pgerr.ProtocolValueError
	}
	if hours == 24 && (minutes != 0 || seconds != 0 || frac != 0) {
		return 0, nil, pgerr.ProtocolValueError
	}

	us = hours*microsecondsPerHour + minutes*microsecondsPerMinute + seconds*microsecondsPerSecond + frac
	return us, s, nil
}

// parseTZSuffix parses a complete timezone suffix: empty (UTC), a zone
// abbreviation (Z, UTC, UT, GMT), or sign + "HH", "HH:MM" or "HHMM".
// The result is east-positive seconds from UTC.
func parseTZSuffix(s []byte) (int32, error) {
	s = trim(s)
	if len(s) == 0 {
		return 0, nil
	}

	if equalFold(s, "Z") || equalFold(s, "UTC") || equalFold(s, "UT") || equalFold(s, "GMT") {
		return 0, nil
	}

	if s[0] != '+' && s[0] != '-' {
		return 0, pgerr.ProtocolValueError
	}
	sign := int32(1)
	if s[0] == '-' {
		sign = -1
	}
	s = s[1:]

	var hours int32
	digits := 0
	for len(s) > 0 && s[0] >= '0' && s[0] <= '9' && digits < 2 {
		hours = hours*10 + int32(s[0]-'0')
		s = s[1:]
		digits++
	}
	if digits == 0 {
		return 0, pgerr.ProtocolValueError
	}

	var minutes int32
	switch {
	case len(s) == 0:
		// HH only
	case s[0] == ':':
		s = s[1:]
		if len(s) != 2 || s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
			return 0, pgerr.ProtocolValueError
		}
		minutes = int32(s[0]-'0')*10 + int32(s[1]-'0')
		s = s[2:]
	case s[0] >= '0' && s[0] <= '9':
		// four digit HHMM form
		if len(s) != 2 || s[1] < '0' || s[1] > '9' {
			return 0, pgerr.ProtocolValueError
		}
		minutes = int32(s[0]-'0')*10 + int32(s[1]-'0')
		s = s[2:]
	default:
		return 0, pgerr.ProtocolValueError
	}

	if len(s) != 0 {
		return 0, pgerr.ProtocolValueError
	}
	if hours > 15 || minutes > 59 {
		return 0, pgerr.ProtocolValueError
	}

	return sign * (hours*3600 + minutes*60), nil
}

// appendTimeOfDay renders us microseconds since midnight as
// HH:MM:SS[.ffffff] with trailing fraction zeros trimmed.
func appendTimeOfDay(dst []byte, us int64) []byte {
	hours := us / microsecondsPerHour
	us -= hours * microsecondsPerHour
	minutes := us / microsecondsPerMinute
	us -= minutes * microsecondsPerMinute
	seconds := us / microsecondsPerSecond
	frac := us - seconds*microsecondsPerSecond

	dst = append(dst, byte('0'+hours/10), byte('0'+hours%10), ':',
		byte('0'+minutes/10), byte('0'+minutes%10), ':',
		byte('0'+seconds/10), byte('0'+seconds%10))

	if frac != 0 {
		var buf [7]byte
		buf[0] = '.'
		for i := 6; i >= 1; i-- {
			buf[i] = byte('0' + frac%10)
			frac /= 10
		}
		n := 7
		for buf[n-1] == '0' {
			n--
		}
		dst = append(dst, buf[:n]...)
	}

	return dst
}

// appendTZOffset renders east-positive offset seconds as +HH[:MM[:SS]].
func appendTZOffset(dst []byte, offset int32) []byte {
	sign := byte('+')
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	hours := offset / 3600
	minutes := offset % 3600 / 60
	seconds := offset % 60

	dst = append(dst, sign, byte('0'+hours/10), byte('0'+hours%10))
	if minutes != 0 || seconds != 0 {
		dst = append(dst, ':', byte('0'+minutes/10), byte('0'+minutes%10))
	}
	if seconds != 0 {
		dst = append(dst, ':', byte('0'+seconds/10), byte('0'+seconds%10))
	}
	return dst
}

// microsecondsToTime converts microseconds since the PostgreSQL epoch
// into a time.Time in UTC without overflowing time.Duration.
func microsecondsToTime(us int64) time.Time {
	sec := us / microsecondsPerSecond
	rem := us % microsecondsPerSecond
	if rem < 0 {
		sec--
		rem += microsecondsPerSecond
	}
	return time.Unix(pgEpochUnix+sec, rem*1000).UTC()
}
