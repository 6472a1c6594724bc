package pgproto

import (
	"encoding/binary"

	"github.com/jackc/pgio"
)

// Parse requests that a query string be parsed into a prepared statement.
type Parse struct {
	Name          string
	Query         string
	ParameterOIDs []uint32
}

func (*Parse) Frontend() {}

func (dst *Parse) Decode(src []byte) error {
	*dst = Parse{}

	var ok bool
	dst.Name, src, ok = readCString(src)
	if !ok {
		return errMalformed("Parse")
	}
	dst.Query, src, ok = readCString(src)
	if !ok {
		return errMalformed("Parse")
	}

	oidCount, src, ok := readUint16(src)
	if !ok || len(src) != 4*int(oidCount) {
		return errMalformed("Parse")
	}
	for i := 0; i < int(oidCount); i++ {
		dst.ParameterOIDs = append(dst.ParameterOIDs, binary.BigEndian.Uint32(src[4*i:]))
	}

	return nil
}

func (src *Parse) Encode(dst []byte) []byte {
	dst = append(dst, 'P')
	sp := len(dst)
	dst = pgio.AppendInt32(dst, -1)

	dst = append(dst, src.Name...)
	dst = append(dst, 0)
	dst = append(dst, src.Query...)
	dst = append(dst, 0)

	dst = pgio.AppendUint16(dst, uint16(len(src.ParameterOIDs)))
	for _, oid := range src.ParameterOIDs {
		dst = pgio.AppendUint32(dst, oid)
	}

	pgio.SetInt32(dst[sp:], int32(len(dst[sp:])))

	return dst
}
