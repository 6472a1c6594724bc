package pgproto

import (
	"github.com/jackc/pgio"
)

// Query is a simple-protocol query.
type Query struct {
	String string
}

func (*Query) Frontend() {}

func (dst *Query) Decode(src []byte) error {
	s, rest, ok := readCString(src)
	if !ok || len(rest) != 0 {
		return errMalformed("Query")
	}

	dst.String = s
	return nil
}

func (src *Query) Encode(dst []byte) []byte {
	dst = append(dst, 'Q')
	sp := len(dst)
	dst = pgio.AppendInt32(dst, -1)

	dst = append(dst, src.String...)
	dst = append(dst, 0)

	pgio.SetInt32(dst[sp:], int32(len(dst[sp:])))

	return dst
}
