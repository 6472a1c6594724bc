package pgtype_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackc/pgreq/pgerr"
	"github.com/jackc/pgreq/pgproto"
	"github.com/jackc/pgreq/pgtype"
)

func textField(oid uint32) pgproto.FieldDescription {
	return pgproto.FieldDescription{DataTypeOID: oid, Format: pgproto.TextFormat}
}

func binaryField(oid uint32) pgproto.FieldDescription {
	return pgproto.FieldDescription{DataTypeOID: oid, Format: pgproto.BinaryFormat}
}

func TestDateScanText(t *testing.T) {
	successfulTests := []struct {
		src    string
		result pgtype.Date
	}{
		{src: "1977-06-21", result: pgtype.Date{Time: time.Date(1977, 6, 21, 0, 0, 0, 0, time.UTC)}},
		{src: "2000-01-01", result: pgtype.Date{Time: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)}},
		{src: "0001-01-01", result: pgtype.Date{Time: time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)}},
		{src: "2016-02-29", result: pgtype.Date{Time: time.Date(2016, 2, 29, 0, 0, 0, 0, time.UTC)}},
		{src: "12200-01-02", result: pgtype.Date{Time: time.Date(12200, 1, 2, 0, 0, 0, 0, time.UTC)}},
		{src: "0010-02-03 BC", result: pgtype.Date{Time: time.Date(-9, 2, 3, 0, 0, 0, 0, time.UTC)}},
		{src: "infinity", result: pgtype.Date{InfinityModifier: pgtype.Infinity}},
		{src: "-infinity", result: pgtype.Date{InfinityModifier: pgtype.NegativeInfinity}},
	}

	for _, tt := range successfulTests {
		var d pgtype.Date
		err := d.Scan([]byte(tt.src), textField(pgtype.DateOID))
		require.NoErrorf(t, err, "%s", tt.src)
		assert.Equalf(t, tt.result, d, "%s", tt.src)
	}

	failTests := []struct {
		src string
		err error
	}{
		{src: "", err: pgerr.ProtocolValueError},
		{src: "1977-06", err: pgerr.ProtocolValueError},
		{src: "1977/06/21", err: pgerr.ProtocolValueError},
		{src: "2015-02-29", err: pgerr.ProtocolValueError},
		{src: "1977-13-01", err: pgerr.ProtocolValueError},
		{src: "1977-00-01", err: pgerr.ProtocolValueError},
		{src: "1977-06-21x", err: pgerr.ProtocolValueError},
	}

	for _, tt := range failTests {
		var d pgtype.Date
		err := d.Scan([]byte(tt.src), textField(pgtype.DateOID))
		assert.Equalf(t, tt.err, err, "%q", tt.src)
	}
}

func TestDateScanTextRoundTrip(t *testing.T) {
	var d pgtype.Date
	require.NoError(t, d.Scan([]byte("1977-06-21"), textField(pgtype.DateOID)))
	assert.Equal(t, time.Date(1977, 6, 21, 0, 0, 0, 0, time.UTC), d.Time)
	assert.Equal(t, "1977-06-21", d.String())
}

func TestDateScanBinary(t *testing.T) {
	var d pgtype.Date
	err := d.Scan([]byte{0xff, 0xff, 0xdf, 0xdb}, binaryField(pgtype.DateOID))
	require.NoError(t, err)
	assert.Equal(t, time.Date(1977, 6, 21, 0, 0, 0, 0, time.UTC), d.Time)

	err = d.Scan([]byte{0, 0, 0}, binaryField(pgtype.DateOID))
	assert.Equal(t, pgerr.ProtocolValueError, err)

	err = d.Scan(nil, binaryField(pgtype.DateOID))
	assert.Equal(t, pgerr.UnexpectedNull, err)
}

func TestDateCompatible(t *testing.T) {
	var d pgtype.Date
	assert.NoError(t, d.Compatible(textField(pgtype.DateOID)))
	assert.Equal(t, pgerr.IncompatibleFieldType, d.Compatible(textField(pgtype.TimestampOID)))
}

func TestTimeScanText(t *testing.T) {
	successfulTests := []struct {
		src    string
		result int64
	}{
		{src: "21:06:19", result: 21*3600e6 + 6*60e6 + 19e6},
		{src: "00:00:00", result: 0},
		{src: "24:00:00", result: 24 * 3600e6},
		{src: "01:02:03.5", result: 1*3600e6 + 2*60e6 + 3e6 + 500000},
		{src: "01:02:03.123456", result: 1*3600e6 + 2*60e6 + 3e6 + 123456},
		{src: "01:02:03.1234567", result: 1*3600e6 + 2*60e6 + 3e6 + 123456},
		{src: " 12:00:00 ", result: 12 * 3600e6},
	}

	for _, tt := range successfulTests {
		var tm pgtype.Time
		err := tm.Scan([]byte(tt.src), textField(pgtype.TimeOID))
		require.NoErrorf(t, err, "%q", tt.src)
		assert.Equalf(t, tt.result, tm.Microseconds, "%q", tt.src)
	}

	failTests := []string{
		"",
		"12:00",
		"12:60:00",
		"12:00:60",
		"25:00:00",
		"24:00:01",
		"24:00:00.000001",
		"12:00:00.", // fraction marker with no digits
		"12:00:00x",
		"12.00.00",
	}

	for _, src := range failTests {
		var tm pgtype.Time
		err := tm.Scan([]byte(src), textField(pgtype.TimeOID))
		assert.Equalf(t, pgerr.ProtocolValueError, err, "%q", src)
	}
}

func TestTimeScanBinary(t *testing.T) {
	var tm pgtype.Time
	err := tm.Scan([]byte{0x00, 0x00, 0x00, 0x11, 0xb0, 0xb3, 0x88, 0xc0}, binaryField(pgtype.TimeOID))
	require.NoError(t, err)
	assert.Equal(t, int64(21*3600e6+6*60e6+19e6), tm.Microseconds)
	assert.Equal(t, "21:06:19", tm.String())

	err = tm.Scan([]byte{0, 0, 0, 0}, binaryField(pgtype.TimeOID))
	assert.Equal(t, pgerr.ProtocolValueError, err)
}

func TestTimetzScanText(t *testing.T) {
	successfulTests := []struct {
		src    string
		result pgtype.Timetz
	}{
		{src: "21:06:19+07:00", result: pgtype.Timetz{Microseconds: 21*3600e6 + 6*60e6 + 19e6, OffsetSeconds: 7 * 3600}},
		{src: "12:34:23.435350+05", result: pgtype.Timetz{Microseconds: 12*3600e6 + 34*60e6 + 23e6 + 435350, OffsetSeconds: 5 * 3600}},
		{src: "01:02:03-08:30", result: pgtype.Timetz{Microseconds: 1*3600e6 + 2*60e6 + 3e6, OffsetSeconds: -(8*3600 + 30*60)}},
		{src: "01:02:03-0830", result: pgtype.Timetz{Microseconds: 1*3600e6 + 2*60e6 + 3e6, OffsetSeconds: -(8*3600 + 30*60)}},
		{src: "01:02:03Z", result: pgtype.Timetz{Microseconds: 1*3600e6 + 2*60e6 + 3e6}},
		{src: "01:02:03 UTC", result: pgtype.Timetz{Microseconds: 1*3600e6 + 2*60e6 + 3e6}},
		{src: "01:02:03 GMT", result: pgtype.Timetz{Microseconds: 1*3600e6 + 2*60e6 + 3e6}},
		{src: "01:02:03", result: pgtype.Timetz{Microseconds: 1*3600e6 + 2*60e6 + 3e6}},
	}

	for _, tt := range successfulTests {
		var v pgtype.Timetz
		err := v.Scan([]byte(tt.src), textField(pgtype.TimetzOID))
		require.NoErrorf(t, err, "%q", tt.src)
		assert.Equalf(t, tt.result, v, "%q", tt.src)
	}

	failTests := []string{
		"01:02:03+16",
		"01:02:03+07:60",
		"01:02:03+",
		"01:02:03*07",
		"01:02:03+07:0",
		"01:02:03+070",
	}

	for _, src := range failTests {
		var v pgtype.Timetz
		err := v.Scan([]byte(src), textField(pgtype.TimetzOID))
		assert.Equalf(t, pgerr.ProtocolValueError, err, "%q", src)
	}
}

func TestTimetzScanBinary(t *testing.T) {
	src := []byte{0x00, 0x00, 0x00, 0x0a, 0x89, 0xe9, 0x36, 0x56, 0xff, 0xff, 0xb9, 0xb0}

	var v pgtype.Timetz
	err := v.Scan(src, binaryField(pgtype.TimetzOID))
	require.NoError(t, err)
	assert.Equal(t, int64(12*3600e6+34*60e6+23e6+435350), v.Microseconds)
	assert.Equal(t, int32(5*3600), v.OffsetSeconds)
	// trailing fractional zeros are trimmed, as the server does
	assert.Equal(t, "12:34:23.43535+05", v.String())

	err = v.Scan(src[:8], binaryField(pgtype.TimetzOID))
	assert.Equal(t, pgerr.ProtocolValueError, err)
}

func TestTimestampScanText(t *testing.T) {
	successfulTests := []struct {
		src    string
		result pgtype.Timestamp
	}{
		{src: "1977-06-21 21:06:19", result: pgtype.Timestamp{Time: time.Date(1977, 6, 21, 21, 6, 19, 0, time.UTC)}},
		{src: "1977-06-21T21:06:19", result: pgtype.Timestamp{Time: time.Date(1977, 6, 21, 21, 6, 19, 0, time.UTC)}},
		{src: "2026-02-08 12:34:23.435350", result: pgtype.Timestamp{Time: time.Date(2026, 2, 8, 12, 34, 23, 435350000, time.UTC)}},
		{src: "0001-02-03 04:05:06 BC", result: pgtype.Timestamp{Time: time.Date(0, 2, 3, 4, 5, 6, 0, time.UTC)}},
		{src: "infinity", result: pgtype.Timestamp{InfinityModifier: pgtype.Infinity}},
		{src: "-infinity", result: pgtype.Timestamp{InfinityModifier: pgtype.NegativeInfinity}},
	}

	for _, tt := range successfulTests {
		var v pgtype.Timestamp
		err := v.Scan([]byte(tt.src), textField(pgtype.TimestampOID))
		require.NoErrorf(t, err, "%q", tt.src)
		assert.Equalf(t, tt.result, v, "%q", tt.src)
	}

	failTests := []string{
		"1977-06-21",
		"1977-06-21 12:00:00+05", // offsets belong to timestamptz
		"1977-06-21 12:00",
		"1977-02-29 12:00:00",
	}

	for _, src := range failTests {
		var v pgtype.Timestamp
		err := v.Scan([]byte(src), textField(pgtype.TimestampOID))
		assert.Equalf(t, pgerr.ProtocolValueError, err, "%q", src)
	}
}

func TestTimestampScanBinary(t *testing.T) {
	var v pgtype.Timestamp
	err := v.Scan([]byte{0x00, 0x02, 0xed, 0x4e, 0x02, 0xc9, 0xd6, 0x56}, binaryField(pgtype.TimestampOID))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 8, 12, 34, 23, 435350000, time.UTC), v.Time)
	assert.Equal(t, "2026-02-08 12:34:23.43535", v.String())

	err = v.Scan([]byte{0, 0, 0, 0}, binaryField(pgtype.TimestampOID))
	assert.Equal(t, pgerr.ProtocolValueError, err)
}

func TestTimestampTextBinaryEquivalence(t *testing.T) {
	var text, bin pgtype.Timestamp
	require.NoError(t, text.Scan([]byte("2026-02-08 12:34:23.435350"), textField(pgtype.TimestampOID)))
	require.NoError(t, bin.Scan([]byte{0x00, 0x02, 0xed, 0x4e, 0x02, 0xc9, 0xd6, 0x56}, binaryField(pgtype.TimestampOID)))
	assert.Equal(t, text, bin)
}

func TestTimestamptzScanText(t *testing.T) {
	successfulTests := []struct {
		src    string
		result pgtype.Timestamptz
	}{
		{src: "2000-01-01 00:00:00+00", result: pgtype.Timestamptz{Time: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)}},
		{src: "2000-01-01 05:00:00+05", result: pgtype.Timestamptz{Time: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)}},
		{src: "1999-12-31 19:00:00-05", result: pgtype.Timestamptz{Time: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)}},
		{src: "2000-01-01 02:30:00+02:30", result: pgtype.Timestamptz{Time: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)}},
		{src: "2000-01-01 00:00:00Z", result: pgtype.Timestamptz{Time: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)}},
	}

	for _, tt := range successfulTests {
		var v pgtype.Timestamptz
		err := v.Scan([]byte(tt.src), textField(pgtype.TimestamptzOID))
		require.NoErrorf(t, err, "%q", tt.src)
		assert.Truef(t, tt.result.Time.Equal(v.Time), "%q: %v", tt.src, v.Time)
	}
}

func TestTimestamptzScanBinary(t *testing.T) {
	var v pgtype.Timestamptz
	err := v.Scan([]byte{0x00, 0x02, 0xed, 0x4e, 0x02, 0xc9, 0xd6, 0x56}, binaryField(pgtype.TimestamptzOID))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 8, 12, 34, 23, 435350000, time.UTC), v.Time)
}

func TestIntervalScanText(t *testing.T) {
	successfulTests := []struct {
		src    string
		result pgtype.Interval
	}{
		{
			src:    "1 year 2 mons 3 days 04:05:06.000007",
			result: pgtype.Interval{Months: 14, Days: 3, Microseconds: 4*3600e6 + 5*60e6 + 6e6 + 7},
		},
		{src: "1 mon", result: pgtype.Interval{Months: 1}},
		{src: "-2 years", result: pgtype.Interval{Months: -24}},
		{src: "5 days", result: pgtype.Interval{Days: 5}},
		{src: "00:00:01", result: pgtype.Interval{Microseconds: 1e6}},
		{src: "-00:00:01", result: pgtype.Interval{Microseconds: -1e6}},
		{src: "+01:00:00", result: pgtype.Interval{Microseconds: 3600e6}},
		{src: "3 hours 2 minutes 1 seconds", result: pgtype.Interval{Microseconds: 3*3600e6 + 2*60e6 + 1e6}},
		{src: "-1 days +02:03:04", result: pgtype.Interval{Days: -1, Microseconds: 2*3600e6 + 3*60e6 + 4e6}},
	}

	for _, tt := range successfulTests {
		var v pgtype.Interval
		err := v.Scan([]byte(tt.src), textField(pgtype.IntervalOID))
		require.NoErrorf(t, err, "%q", tt.src)
		assert.Equalf(t, tt.result, v, "%q", tt.src)
	}

	failTests := []string{
		"",
		"1 fortnight",
		"banana",
		"1",
		"1 year tail",
	}

	for _, src := range failTests {
		var v pgtype.Interval
		err := v.Scan([]byte(src), textField(pgtype.IntervalOID))
		assert.Equalf(t, pgerr.ProtocolValueError, err, "%q", src)
	}
}

func TestIntervalScanBinary(t *testing.T) {
	src := []byte{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x01,
	}

	var v pgtype.Interval
	err := v.Scan(src, binaryField(pgtype.IntervalOID))
	require.NoError(t, err)
	assert.Equal(t, pgtype.Interval{Microseconds: 1, Days: 1, Months: 1}, v)

	err = v.Scan(src[:12], binaryField(pgtype.IntervalOID))
	assert.Equal(t, pgerr.ProtocolValueError, err)
}

func TestIntervalString(t *testing.T) {
	tests := []struct {
		v        pgtype.Interval
		expected string
	}{
		{v: pgtype.Interval{Months: 14, Days: 3, Microseconds: 4*3600e6 + 5*60e6 + 6e6 + 7}, expected: "1 year 2 mons 3 days 04:05:06.000007"},
		{v: pgtype.Interval{}, expected: "00:00:00"},
		{v: pgtype.Interval{Days: 1}, expected: "1 day"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.v.String())
	}
}
