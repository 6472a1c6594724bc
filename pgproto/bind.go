package pgproto

import (
	"github.com/jackc/pgio"
)

// Bind binds a prepared statement to a portal, supplying parameter values.
type Bind struct {
	DestinationPortal    string
	PreparedStatement    string
	ParameterFormatCodes []int16
	Parameters           [][]byte
	ResultFormatCodes    []int16
}

func (*Bind) Frontend() {}

func (dst *Bind) Decode(src []byte) error {
	*dst = Bind{}

	var ok bool
	dst.DestinationPortal, src, ok = readCString(src)
	if !ok {
		return errMalformed("Bind")
	}
	dst.PreparedStatement, src, ok = readCString(src)
	if !ok {
		return errMalformed("Bind")
	}

	formatCount, src, ok := readUint16(src)
	if !ok {
		return errMalformed("Bind")
	}
	if formatCount > 0 {
		dst.ParameterFormatCodes = make([]int16, formatCount)
		for i := range dst.ParameterFormatCodes {
			var code uint16
			code, src, ok = readUint16(src)
			if !ok {
				return errMalformed("Bind")
			}
			dst.ParameterFormatCodes[i] = int16(code)
		}
	}

	paramCount, src, ok := readUint16(src)
	if !ok {
		return errMalformed("Bind")
	}
	if paramCount > 0 {
		dst.Parameters = make([][]byte, paramCount)
		for i := range dst.Parameters {
			dst.Parameters[i], src, ok = readValue(src)
			if !ok {
				return errMalformed("Bind")
			}
		}
	}

	resultCount, src, ok := readUint16(src)
	if !ok {
		return errMalformed("Bind")
	}
	dst.ResultFormatCodes = make([]int16, resultCount)
	for i := range dst.ResultFormatCodes {
		var code uint16
		code, src, ok = readUint16(src)
		if !ok {
			return errMalformed("Bind")
		}
		dst.ResultFormatCodes[i] = int16(code)
	}

	if len(src) != 0 {
		return errMalformed("Bind")
	}

	return nil
}

func (src *Bind) Encode(dst []byte) []byte {
	dst = append(dst, 'B')
	sp := len(dst)
	dst = pgio.AppendInt32(dst, -1)

	dst = append(dst, src.DestinationPortal...)
	dst = append(dst, 0)
	dst = append(dst, src.PreparedStatement...)
	dst = append(dst, 0)

	dst = pgio.AppendUint16(dst, uint16(len(src.ParameterFormatCodes)))
	for _, fc := range src.ParameterFormatCodes {
		dst = pgio.AppendInt16(dst, fc)
	}

	dst = pgio.AppendUint16(dst, uint16(len(src.Parameters)))
	for _, p := range src.Parameters {
		if p == nil {
			dst = pgio.AppendInt32(dst, -1)
			continue
		}

		dst = pgio.AppendInt32(dst, int32(len(p)))
		dst = append(dst, p...)
	}

	dst = pgio.AppendUint16(dst, uint16(len(src.ResultFormatCodes)))
	for _, fc := range src.ResultFormatCodes {
		dst = pgio.AppendInt16(dst, fc)
	}

	pgio.SetInt32(dst[sp:], int32(len(dst[sp:])))

	return dst
}
