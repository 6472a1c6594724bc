package pgtype

import (
	"bytes"

	hex "github.com/tmthrgd/go-hex"

	"github.com/jackc/pgreq/pgerr"
	"github.com/jackc/pgreq/pgproto"
)

// Bytea scans a bytea column. Text format must be the \x hex form
// (bytea_output = 'hex', the server default since 9.0).
type Bytea struct {
	P *[]byte
}

func (Bytea) Compatible(fd pgproto.FieldDescription) error {
	return oneOf(fd.DataTypeOID, ByteaOID)
}

func (t Bytea) Scan(src []byte, fd pgproto.FieldDescription) error {
	if src == nil {
		return pgerr.UnexpectedNull
	}

	if fd.Format == pgproto.BinaryFormat {
		buf := make([]byte, len(src))
		copy(buf, src)
		*t.P = buf
		return nil
	}

	if !bytes.HasPrefix(src, []byte(`\x`)) {
		return pgerr.ProtocolValueError
	}
	buf := make([]byte, hex.DecodedLen(len(src)-2))
	_, err := hex.Decode(buf, src[2:])
	if err != nil {
		return pgerr.ProtocolValueError
	}
	*t.P = buf
	return nil
}

// AppendHexBytea appends the \x hex text rendering of src to dst, the
// form the parameter encoder submits bytea values in.
func AppendHexBytea(dst, src []byte) []byte {
	dst = append(dst, '\\', 'x')
	tmp := make([]byte, hex.EncodedLen(len(src)))
	hex.Encode(tmp, src)
	return append(dst, tmp...)
}
