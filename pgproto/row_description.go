package pgproto

import (
	"encoding/binary"

	"github.com/jackc/pgio"
)

// fieldDescrFixedLen is the size of the fixed trailer that follows each
// column name: table oid, attribute number, type oid, type size, type
// modifier and format code.
const fieldDescrFixedLen = 18

// FieldDescription is the metadata of one column of a result set.
type FieldDescription struct {
	Name                 string
	TableOID             uint32
	TableAttributeNumber uint16
	DataTypeOID          uint32
	DataTypeSize         int16
	TypeModifier         int32
	Format               int16
}

// RowDescription describes the columns of the rows that will follow.
type RowDescription struct {
	Fields []FieldDescription
}

func (*RowDescription) Backend() {}

func (dst *RowDescription) Decode(src []byte) error {
	fieldCount, src, ok := readUint16(src)
	if !ok {
		return errMalformed("RowDescription")
	}

	fields := make([]FieldDescription, fieldCount)
	for i := range fields {
		fd := &fields[i]

		fd.Name, src, ok = readCString(src)
		if !ok || len(src) < fieldDescrFixedLen {
			return errMalformed("RowDescription")
		}

		fd.TableOID = binary.BigEndian.Uint32(src)
		fd.TableAttributeNumber = binary.BigEndian.Uint16(src[4:])
		fd.DataTypeOID = binary.BigEndian.Uint32(src[6:])
		fd.DataTypeSize = int16(binary.BigEndian.Uint16(src[10:]))
		fd.TypeModifier = int32(binary.BigEndian.Uint32(src[12:]))
		fd.Format = int16(binary.BigEndian.Uint16(src[16:]))
		src = src[fieldDescrFixedLen:]
	}

	if len(src) != 0 {
		return errMalformed("RowDescription")
	}

	*dst = RowDescription{Fields: fields}
	return nil
}

func (src *RowDescription) Encode(dst []byte) []byte {
	dst = append(dst, 'T')
	sp := len(dst)
	dst = pgio.AppendInt32(dst, -1)

	dst = pgio.AppendUint16(dst, uint16(len(src.Fields)))
	for _, fd := range src.Fields {
		dst = append(dst, fd.Name...)
		dst = append(dst, 0)

		dst = pgio.AppendUint32(dst, fd.TableOID)
		dst = pgio.AppendUint16(dst, fd.TableAttributeNumber)
		dst = pgio.AppendUint32(dst, fd.DataTypeOID)
		dst = pgio.AppendInt16(dst, fd.DataTypeSize)
		dst = pgio.AppendInt32(dst, fd.TypeModifier)
		dst = pgio.AppendInt16(dst, fd.Format)
	}

	pgio.SetInt32(dst[sp:], int32(len(dst[sp:])))

	return dst
}
