package pgproto

import (
	"github.com/jackc/pgio"
)

// PasswordMessage answers a cleartext or MD5 password request.
type PasswordMessage struct {
	Password string
}

func (*PasswordMessage) Frontend() {}

func (dst *PasswordMessage) Decode(src []byte) error {
	password, rest, ok := readCString(src)
	if !ok || len(rest) != 0 {
		return errMalformed("PasswordMessage")
	}

	dst.Password = password
	return nil
}

func (src *PasswordMessage) Encode(dst []byte) []byte {
	dst = append(dst, 'p')
	sp := len(dst)
	dst = pgio.AppendInt32(dst, -1)

	dst = append(dst, src.Password...)
	dst = append(dst, 0)

	pgio.SetInt32(dst[sp:], int32(len(dst[sp:])))

	return dst
}
