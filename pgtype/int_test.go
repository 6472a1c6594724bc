package pgtype_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackc/pgreq/pgerr"
	"github.com/jackc/pgreq/pgtype"
)

func TestInt2Scan(t *testing.T) {
	var v int16

	require.NoError(t, pgtype.Int2{P: &v}.Scan([]byte("123"), textField(pgtype.Int2OID)))
	assert.Equal(t, int16(123), v)

	require.NoError(t, pgtype.Int2{P: &v}.Scan([]byte("-32768"), textField(pgtype.Int2OID)))
	assert.Equal(t, int16(-32768), v)

	require.NoError(t, pgtype.Int2{P: &v}.Scan([]byte{0x01, 0x02}, binaryField(pgtype.Int2OID)))
	assert.Equal(t, int16(0x0102), v)

	assert.Equal(t, pgerr.UnexpectedNull, pgtype.Int2{P: &v}.Scan(nil, textField(pgtype.Int2OID)))
	assert.Equal(t, pgerr.ExtraBytes, pgtype.Int2{P: &v}.Scan([]byte("12 "), textField(pgtype.Int2OID)))
	assert.Equal(t, pgerr.ProtocolValueError, pgtype.Int2{P: &v}.Scan([]byte("abc"), textField(pgtype.Int2OID)))
	assert.Equal(t, pgerr.ProtocolValueError, pgtype.Int2{P: &v}.Scan([]byte("40000"), textField(pgtype.Int2OID)))
	assert.Equal(t, pgerr.ProtocolValueError, pgtype.Int2{P: &v}.Scan([]byte{0x01}, binaryField(pgtype.Int2OID)))
	assert.Equal(t, pgerr.ProtocolValueError, pgtype.Int2{P: &v}.Scan([]byte{0x01, 0x02, 0x03}, binaryField(pgtype.Int2OID)))
}

func TestInt4Scan(t *testing.T) {
	var v int32

	require.NoError(t, pgtype.Int4{P: &v}.Scan([]byte("-7"), textField(pgtype.Int4OID)))
	assert.Equal(t, int32(-7), v)

	// int2 columns widen
	require.NoError(t, pgtype.Int4{P: &v}.Scan([]byte{0xff, 0xff}, binaryField(pgtype.Int2OID)))
	assert.Equal(t, int32(-1), v)

	require.NoError(t, pgtype.Int4{P: &v}.Scan([]byte{0x00, 0x00, 0x00, 0x2a}, binaryField(pgtype.Int4OID)))
	assert.Equal(t, int32(42), v)

	assert.Equal(t, pgerr.ProtocolValueError, pgtype.Int4{P: &v}.Scan([]byte{0x00, 0x00, 0x2a}, binaryField(pgtype.Int4OID)))
}

func TestInt8Scan(t *testing.T) {
	var v int64

	require.NoError(t, pgtype.Int8{P: &v}.Scan([]byte("+9223372036854775807"), textField(pgtype.Int8OID)))
	assert.Equal(t, int64(9223372036854775807), v)

	require.NoError(t, pgtype.Int8{P: &v}.Scan([]byte{0, 0, 0, 0, 0, 0, 0, 5}, binaryField(pgtype.Int8OID)))
	assert.Equal(t, int64(5), v)

	require.NoError(t, pgtype.Int8{P: &v}.Scan([]byte{0xff, 0xff, 0xff, 0xff}, binaryField(pgtype.Int4OID)))
	assert.Equal(t, int64(-1), v)
}

func TestIntCompatible(t *testing.T) {
	var v16 int16
	var v32 int32
	var v64 int64

	assert.NoError(t, pgtype.Int2{P: &v16}.Compatible(textField(pgtype.Int2OID)))
	assert.Equal(t, pgerr.IncompatibleFieldType, pgtype.Int2{P: &v16}.Compatible(textField(pgtype.Int4OID)))
	assert.Equal(t, pgerr.IncompatibleFieldType, pgtype.Int2{P: &v16}.Compatible(textField(pgtype.Int8OID)))

	assert.NoError(t, pgtype.Int4{P: &v32}.Compatible(textField(pgtype.Int2OID)))
	assert.NoError(t, pgtype.Int4{P: &v32}.Compatible(textField(pgtype.Int4OID)))
	assert.Equal(t, pgerr.IncompatibleFieldType, pgtype.Int4{P: &v32}.Compatible(textField(pgtype.Int8OID)))

	assert.NoError(t, pgtype.Int8{P: &v64}.Compatible(textField(pgtype.Int2OID)))
	assert.NoError(t, pgtype.Int8{P: &v64}.Compatible(textField(pgtype.Int4OID)))
	assert.NoError(t, pgtype.Int8{P: &v64}.Compatible(textField(pgtype.Int8OID)))
	assert.Equal(t, pgerr.IncompatibleFieldType, pgtype.Int8{P: &v64}.Compatible(textField(pgtype.TextOID)))
}

func TestTextScan(t *testing.T) {
	var v string

	require.NoError(t, pgtype.Text{P: &v}.Scan([]byte("hello"), textField(pgtype.TextOID)))
	assert.Equal(t, "hello", v)

	// strings accept any column type
	assert.NoError(t, pgtype.Text{P: &v}.Compatible(textField(pgtype.Int8OID)))
	require.NoError(t, pgtype.Text{P: &v}.Scan([]byte("42"), textField(pgtype.Int8OID)))
	assert.Equal(t, "42", v)

	require.NoError(t, pgtype.Text{P: &v}.Scan([]byte{}, textField(pgtype.TextOID)))
	assert.Equal(t, "", v)

	assert.Equal(t, pgerr.UnexpectedNull, pgtype.Text{P: &v}.Scan(nil, textField(pgtype.TextOID)))
}
