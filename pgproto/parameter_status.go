package pgproto

import (
	"github.com/jackc/pgio"
)

// ParameterStatus reports the current value of a server runtime
// parameter such as server_version or client_encoding.
type ParameterStatus struct {
	Name  string
	Value string
}

func (*ParameterStatus) Backend() {}

func (dst *ParameterStatus) Decode(src []byte) error {
	name, src, ok := readCString(src)
	if !ok {
		return errMalformed("ParameterStatus")
	}
	value, src, ok := readCString(src)
	if !ok || len(src) != 0 {
		return errMalformed("ParameterStatus")
	}

	*dst = ParameterStatus{Name: name, Value: value}
	return nil
}

func (src *ParameterStatus) Encode(dst []byte) []byte {
	dst = append(dst, 'S')
	sp := len(dst)
	dst = pgio.AppendInt32(dst, -1)

	dst = append(dst, src.Name...)
	dst = append(dst, 0)
	dst = append(dst, src.Value...)
	dst = append(dst, 0)

	pgio.SetInt32(dst[sp:], int32(len(dst[sp:])))

	return dst
}
