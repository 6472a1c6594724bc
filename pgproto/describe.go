package pgproto

import (
	"github.com/jackc/pgio"
)

// Describe requests a description of a prepared statement ('S') or
// portal ('P').
type Describe struct {
	ObjectType byte // 'S' = prepared statement, 'P' = portal
	Name       string
}

func (*Describe) Frontend() {}

func (dst *Describe) Decode(src []byte) error {
	if len(src) < 1 {
		return errMalformed("Describe")
	}

	name, rest, ok := readCString(src[1:])
	if !ok || len(rest) != 0 {
		return errMalformed("Describe")
	}

	dst.ObjectType = src[0]
	dst.Name = name
	return nil
}

func (src *Describe) Encode(dst []byte) []byte {
	dst = append(dst, 'D')
	sp := len(dst)
	dst = pgio.AppendInt32(dst, -1)

	dst = append(dst, src.ObjectType)
	dst = append(dst, src.Name...)
	dst = append(dst, 0)

	pgio.SetInt32(dst[sp:], int32(len(dst[sp:])))

	return dst
}
