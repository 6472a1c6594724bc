package pgproto

import (
	"bytes"
	"encoding/binary"

	"github.com/jackc/pgio"
)

// Authentication message type constants.
// See src/include/libpq/pqcomm.h for all constants.
const (
	AuthTypeOk                = 0
	AuthTypeCleartextPassword = 3
	AuthTypeMD5Password       = 5
	AuthTypeSASL              = 10
	AuthTypeSASLContinue      = 11
	AuthTypeSASLFinal         = 12
)

// AuthenticationOk reports successful authentication.
type AuthenticationOk struct{}

func (*AuthenticationOk) Backend() {}

func (dst *AuthenticationOk) Decode(src []byte) error {
	if len(src) != 4 {
		return errBadLength("AuthenticationOk", 4, len(src))
	}

	if authType := binary.BigEndian.Uint32(src); authType != AuthTypeOk {
		return errMalformed("AuthenticationOk")
	}

	return nil
}

func (src *AuthenticationOk) Encode(dst []byte) []byte {
	dst = append(dst, 'R')
	dst = pgio.AppendUint32(dst, 8)
	dst = pgio.AppendUint32(dst, AuthTypeOk)
	return dst
}

// AuthenticationCleartextPassword requests a cleartext password.
type AuthenticationCleartextPassword struct{}

func (*AuthenticationCleartextPassword) Backend() {}

func (dst *AuthenticationCleartextPassword) Decode(src []byte) error {
	if len(src) != 4 {
		return errBadLength("AuthenticationCleartextPassword", 4, len(src))
	}

	if authType := binary.BigEndian.Uint32(src); authType != AuthTypeCleartextPassword {
		return errMalformed("AuthenticationCleartextPassword")
	}

	return nil
}

func (src *AuthenticationCleartextPassword) Encode(dst []byte) []byte {
	dst = append(dst, 'R')
	dst = pgio.AppendUint32(dst, 8)
	dst = pgio.AppendUint32(dst, AuthTypeCleartextPassword)
	return dst
}

// AuthenticationMD5Password requests an MD5 hashed password using the
// given salt.
type AuthenticationMD5Password struct {
	Salt [4]byte
}

func (*AuthenticationMD5Password) Backend() {}

func (dst *AuthenticationMD5Password) Decode(src []byte) error {
	if len(src) != 8 {
		return errBadLength("AuthenticationMD5Password", 8, len(src))
	}

	if authType := binary.BigEndian.Uint32(src); authType != AuthTypeMD5Password {
		return errMalformed("AuthenticationMD5Password")
	}

	copy(dst.Salt[:], src[4:8])

	return nil
}

func (src *AuthenticationMD5Password) Encode(dst []byte) []byte {
	dst = append(dst, 'R')
	dst = pgio.AppendUint32(dst, 12)
	dst = pgio.AppendUint32(dst, AuthTypeMD5Password)
	dst = append(dst, src.Salt[:]...)
	return dst
}

// AuthenticationSASL begins SASL authentication, advertising the
// mechanisms the server accepts.
type AuthenticationSASL struct {
	AuthMechanisms []string
}

func (*AuthenticationSASL) Backend() {}

func (dst *AuthenticationSASL) Decode(src []byte) error {
	if len(src) < 4 {
		return errMalformed("AuthenticationSASL")
	}

	if authType := binary.BigEndian.Uint32(src); authType != AuthTypeSASL {
		return errMalformed("AuthenticationSASL")
	}

	authMechanisms := src[4:]
	dst.AuthMechanisms = nil
	for len(authMechanisms) > 1 {
		idx := bytes.IndexByte(authMechanisms, 0)
		if idx < 0 {
			return errMalformed("AuthenticationSASL")
		}
		dst.AuthMechanisms = append(dst.AuthMechanisms, string(authMechanisms[:idx]))
		authMechanisms = authMechanisms[idx+1:]
	}

	if len(authMechanisms) != 1 || authMechanisms[0] != 0 {
		return errMalformed("AuthenticationSASL")
	}

	return nil
}

func (src *AuthenticationSASL) Encode(dst []byte) []byte {
	dst = append(dst, 'R')
	sp := len(dst)
	dst = pgio.AppendInt32(dst, -1)
	dst = pgio.AppendUint32(dst, AuthTypeSASL)

	for _, s := range src.AuthMechanisms {
		dst = append(dst, s...)
		dst = append(dst, 0)
	}
	dst = append(dst, 0)

	pgio.SetInt32(dst[sp:], int32(len(dst[sp:])))

	return dst
}

// AuthenticationSASLContinue carries a SASL challenge.
type AuthenticationSASLContinue struct {
	Data []byte
}

func (*AuthenticationSASLContinue) Backend() {}

func (dst *AuthenticationSASLContinue) Decode(src []byte) error {
	if len(src) < 4 {
		return errMalformed("AuthenticationSASLContinue")
	}

	if authType := binary.BigEndian.Uint32(src); authType != AuthTypeSASLContinue {
		return errMalformed("AuthenticationSASLContinue")
	}

	dst.Data = src[4:]

	return nil
}

func (src *AuthenticationSASLContinue) Encode(dst []byte) []byte {
	dst = append(dst, 'R')
	sp := len(dst)
	dst = pgio.AppendInt32(dst, -1)
	dst = pgio.AppendUint32(dst, AuthTypeSASLContinue)
	dst = append(dst, src.Data...)
	pgio.SetInt32(dst[sp:], int32(len(dst[sp:])))
	return dst
}

// AuthenticationSASLFinal carries the server's final SASL message.
type AuthenticationSASLFinal struct {
	Data []byte
}

func (*AuthenticationSASLFinal) Backend() {}

func (dst *AuthenticationSASLFinal) Decode(src []byte) error {
	if len(src) < 4 {
		return errMalformed("AuthenticationSASLFinal")
	}

	if authType := binary.BigEndian.Uint32(src); authType != AuthTypeSASLFinal {
		return errMalformed("AuthenticationSASLFinal")
	}

	dst.Data = src[4:]

	return nil
}

func (src *AuthenticationSASLFinal) Encode(dst []byte) []byte {
	dst = append(dst, 'R')
	sp := len(dst)
	dst = pgio.AppendInt32(dst, -1)
	dst = pgio.AppendUint32(dst, AuthTypeSASLFinal)
	dst = append(dst, src.Data...)
	pgio.SetInt32(dst[sp:], int32(len(dst[sp:])))
	return dst
}
