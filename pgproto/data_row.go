package pgproto

import (
	"github.com/jackc/pgio"
)

// DataRow carries one result row. A nil value represents SQL NULL; an
// empty non-nil value is a zero-length datum.
type DataRow struct {
	Values [][]byte
}

func (*DataRow) Backend() {}

func (dst *DataRow) Decode(src []byte) error {
	fieldCount, src, ok := readUint16(src)
	if !ok {
		return errMalformed("DataRow")
	}

	// reuse the previous decode's backing array
	values := dst.Values[:0]
	for i := 0; i < int(fieldCount); i++ {
		var v []byte
		v, src, ok = readValue(src)
		if !ok {
			return errMalformed("DataRow")
		}
		values = append(values, v)
	}

	if len(src) != 0 {
		return errMalformed("DataRow")
	}

	dst.Values = values
	return nil
}

func (src *DataRow) Encode(dst []byte) []byte {
	dst = append(dst, 'D')
	sp := len(dst)
	dst = pgio.AppendInt32(dst, -1)

	dst = pgio.AppendUint16(dst, uint16(len(src.Values)))
	for _, v := range src.Values {
		if v == nil {
			dst = pgio.AppendInt32(dst, -1)
			continue
		}

		dst = pgio.AppendInt32(dst, int32(len(v)))
		dst = append(dst, v...)
	}

	pgio.SetInt32(dst[sp:], int32(len(dst[sp:])))

	return dst
}
