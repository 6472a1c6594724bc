package pgtype_test

import (
	"testing"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackc/pgreq/pgerr"
	"github.com/jackc/pgreq/pgtype"
)

func TestBoolScan(t *testing.T) {
	var v bool

	require.NoError(t, pgtype.Bool{P: &v}.Scan([]byte("t"), textField(pgtype.BoolOID)))
	assert.True(t, v)
	require.NoError(t, pgtype.Bool{P: &v}.Scan([]byte("f"), textField(pgtype.BoolOID)))
	assert.False(t, v)

	require.NoError(t, pgtype.Bool{P: &v}.Scan([]byte{1}, binaryField(pgtype.BoolOID)))
	assert.True(t, v)
	require.NoError(t, pgtype.Bool{P: &v}.Scan([]byte{0}, binaryField(pgtype.BoolOID)))
	assert.False(t, v)

	assert.Equal(t, pgerr.ProtocolValueError, pgtype.Bool{P: &v}.Scan([]byte("x"), textField(pgtype.BoolOID)))
	assert.Equal(t, pgerr.ProtocolValueError, pgtype.Bool{P: &v}.Scan([]byte{2}, binaryField(pgtype.BoolOID)))
	assert.Equal(t, pgerr.ProtocolValueError, pgtype.Bool{P: &v}.Scan([]byte("tt"), textField(pgtype.BoolOID)))
}

func TestByteaScan(t *testing.T) {
	var v []byte

	require.NoError(t, pgtype.Bytea{P: &v}.Scan([]byte(`\xdeadbeef`), textField(pgtype.ByteaOID)))
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, v)

	require.NoError(t, pgtype.Bytea{P: &v}.Scan([]byte{1, 2, 3}, binaryField(pgtype.ByteaOID)))
	assert.Equal(t, []byte{1, 2, 3}, v)

	assert.Equal(t, pgerr.ProtocolValueError, pgtype.Bytea{P: &v}.Scan([]byte("deadbeef"), textField(pgtype.ByteaOID)))
	assert.Equal(t, pgerr.ProtocolValueError, pgtype.Bytea{P: &v}.Scan([]byte(`\xzz`), textField(pgtype.ByteaOID)))
}

func TestAppendHexBytea(t *testing.T) {
	assert.Equal(t, []byte(`\xdeadbeef`), pgtype.AppendHexBytea(nil, []byte{0xde, 0xad, 0xbe, 0xef}))
}

func TestUUIDScan(t *testing.T) {
	want := uuid.Must(uuid.FromString("0e21dd74-2f86-4b95-a357-688f21f921fa"))

	var v uuid.UUID
	require.NoError(t, pgtype.UUID{P: &v}.Scan([]byte("0e21dd74-2f86-4b95-a357-688f21f921fa"), textField(pgtype.UUIDOID)))
	assert.Equal(t, want, v)

	require.NoError(t, pgtype.UUID{P: &v}.Scan(want.Bytes(), binaryField(pgtype.UUIDOID)))
	assert.Equal(t, want, v)

	assert.Equal(t, pgerr.ProtocolValueError, pgtype.UUID{P: &v}.Scan([]byte("not-a-uuid"), textField(pgtype.UUIDOID)))
	assert.Equal(t, pgerr.ProtocolValueError, pgtype.UUID{P: &v}.Scan([]byte{1, 2, 3}, binaryField(pgtype.UUIDOID)))
}

func TestNumericScanText(t *testing.T) {
	var v decimal.Decimal

	require.NoError(t, pgtype.Numeric{P: &v}.Scan([]byte("123.45"), textField(pgtype.NumericOID)))
	assert.True(t, v.Equal(decimal.RequireFromString("123.45")))

	assert.Equal(t, pgerr.ProtocolValueError, pgtype.Numeric{P: &v}.Scan([]byte("12x"), textField(pgtype.NumericOID)))
}

func TestNumericScanBinary(t *testing.T) {
	// 123.45 = digits [123, 4500], weight 0, dscale 2
	src := []byte{
		0x00, 0x02, // ndigits
		0x00, 0x00, // weight
		0x00, 0x00, // sign
		0x00, 0x02, // dscale
		0x00, 0x7b, // 123
		0x11, 0x94, // 4500
	}

	var v decimal.Decimal
	require.NoError(t, pgtype.Numeric{P: &v}.Scan(src, binaryField(pgtype.NumericOID)))
	assert.True(t, v.Equal(decimal.RequireFromString("123.45")), "got %s", v)

	// negative sign flag
	src[4], src[5] = 0x40, 0x00
	require.NoError(t, pgtype.Numeric{P: &v}.Scan(src, binaryField(pgtype.NumericOID)))
	assert.True(t, v.Equal(decimal.RequireFromString("-123.45")), "got %s", v)

	// truncated digit array
	assert.Equal(t, pgerr.ProtocolValueError, pgtype.Numeric{P: &v}.Scan(src[:10], binaryField(pgtype.NumericOID)))
}
