package pgproto

import (
	"github.com/jackc/pgio"
)

// SASLInitialResponse selects a SASL mechanism and optionally carries
// the client-first message.
type SASLInitialResponse struct {
	AuthMechanism string
	Data          []byte
}

func (*SASLInitialResponse) Frontend() {}

func (dst *SASLInitialResponse) Decode(src []byte) error {
	*dst = SASLInitialResponse{}

	var ok bool
	dst.AuthMechanism, src, ok = readCString(src)
	if !ok {
		return errMalformed("SASLInitialResponse")
	}

	dst.Data, src, ok = readValue(src)
	if !ok || len(src) != 0 {
		return errMalformed("SASLInitialResponse")
	}

	return nil
}

func (src *SASLInitialResponse) Encode(dst []byte) []byte {
	dst = append(dst, 'p')
	sp := len(dst)
	dst = pgio.AppendInt32(dst, -1)

	dst = append(dst, src.AuthMechanism...)
	dst = append(dst, 0)

	if src.Data == nil {
		dst = pgio.AppendInt32(dst, -1)
	} else {
		dst = pgio.AppendInt32(dst, int32(len(src.Data)))
		dst = append(dst, src.Data...)
	}

	pgio.SetInt32(dst[sp:], int32(len(dst[sp:])))

	return dst
}
