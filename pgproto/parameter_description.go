package pgproto

import (
	"encoding/binary"

	"github.com/jackc/pgio"
)

// ParameterDescription reports the type OIDs of a prepared statement's
// parameters.
type ParameterDescription struct {
	ParameterOIDs []uint32
}

func (*ParameterDescription) Backend() {}

func (dst *ParameterDescription) Decode(src []byte) error {
	// The declared count wraps around for statements with more than 64k
	// parameters, so infer the real count from the remaining length.
	_, src, ok := readUint16(src)
	if !ok || len(src)%4 != 0 {
		return errMalformed("ParameterDescription")
	}

	oids := make([]uint32, len(src)/4)
	for i := range oids {
		oids[i] = binary.BigEndian.Uint32(src[4*i:])
	}

	*dst = ParameterDescription{ParameterOIDs: oids}
	return nil
}

func (src *ParameterDescription) Encode(dst []byte) []byte {
	dst = append(dst, 't')
	sp := len(dst)
	dst = pgio.AppendInt32(dst, -1)

	dst = pgio.AppendUint16(dst, uint16(len(src.ParameterOIDs)))
	for _, oid := range src.ParameterOIDs {
		dst = pgio.AppendUint32(dst, oid)
	}

	pgio.SetInt32(dst[sp:], int32(len(dst[sp:])))

	return dst
}
