package pgproto

import (
	"encoding/binary"

	"github.com/jackc/pgio"
)

// Execute runs a bound portal. MaxRows of 0 fetches all rows.
type Execute struct {
	Portal  string
	MaxRows uint32
}

func (*Execute) Frontend() {}

func (dst *Execute) Decode(src []byte) error {
	portal, rest, ok := readCString(src)
	if !ok || len(rest) != 4 {
		return errMalformed("Execute")
	}

	dst.Portal = portal
	dst.MaxRows = binary.BigEndian.Uint32(rest)
	return nil
}

func (src *Execute) Encode(dst []byte) []byte {
	dst = append(dst, 'E')
	sp := len(dst)
	dst = pgio.AppendInt32(dst, -1)

	dst = append(dst, src.Portal...)
	dst = append(dst, 0)
	dst = pgio.AppendUint32(dst, src.MaxRows)

	pgio.SetInt32(dst[sp:], int32(len(dst[sp:])))

	return dst
}
