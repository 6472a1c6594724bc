package pgproto

import (
	"github.com/jackc/pgio"
)

// Close releases a prepared statement ('S') or portal ('P') on the server.
type Close struct {
	ObjectType byte // 'S' = prepared statement, 'P' = portal
	Name       string
}

func (*Close) Frontend() {}

func (dst *Close) Decode(src []byte) error {
	if len(src) < 1 {
		return errMalformed("Close")
	}

	name, rest, ok := readCString(src[1:])
	if !ok || len(rest) != 0 {
		return errMalformed("Close")
	}

	dst.ObjectType = src[0]
	dst.Name = name
	return nil
}

func (src *Close) Encode(dst []byte) []byte {
	dst = append(dst, 'C')
	sp := len(dst)
	dst = pgio.AppendInt32(dst, -1)

	dst = append(dst, src.ObjectType)
	dst = append(dst, src.Name...)
	dst = append(dst, 0)

	pgio.SetInt32(dst[sp:], int32(len(dst[sp:])))

	return dst
}
