package pgtype

import (
	"encoding/binary"
	"strconv"

	"github.com/jackc/pgreq/pgerr"
	"github.com/jackc/pgreq/pgproto"
)

// digitsEnd returns the length of the [sign]digits prefix of src, or 0
// if there is none.
func digitsEnd(src []byte) int {
	i := 0
	if i < len(src) && (src[i] == '-' || src[i] == '+') {
		i++
	}
	start := i
	for i < len(src) && src[i] >= '0' && src[i] <= '9' {
		i++
	}
	if i == start {
		return 0
	}
	return i
}

func parseTextInt(src []byte, bitSize int) (int64, error) {
	end := digitsEnd(src)
	if end == 0 {
		return 0, pgerr.ProtocolValueError
	}
	n, err := strconv.ParseInt(string(src[:end]), 10, bitSize)
	if err != nil {
		return 0, pgerr.ProtocolValueError
	}
	if end != len(src) {
		return 0, pgerr.ExtraBytes
	}
	return n, nil
}

func parseInt(src []byte, fd pgproto.FieldDescription) (int64, error) {
	switch fd.DataTypeOID {
	case Int2OID:
		if fd.Format == pgproto.BinaryFormat {
			if len(src) != 2 {
				return 0, pgerr.ProtocolValueError
			}
			return int64(int16(binary.BigEndian.Uint16(src))), nil
		}
		return parseTextInt(src, 16)
	case Int4OID:
		if fd.Format == pgproto.BinaryFormat {
			if len(src) != 4 {
				return 0, pgerr.ProtocolValueError
			}
			return int64(int32(binary.BigEndian.Uint32(src))), nil
		}
		return parseTextInt(src, 32)
	case Int8OID:
		if fd.Format == pgproto.BinaryFormat {
			if len(src) != 8 {
				return 0, pgerr.ProtocolValueError
			}
			return int64(binary.BigEndian.Uint64(src)), nil
		}
		return parseTextInt(src, 64)
	default:
		return 0, pgerr.IncompatibleFieldType
	}
}

// Int2 scans a smallint column into an int16.
type Int2 struct {
	P *int16
}

func (Int2) Compatible(fd pgproto.FieldDescription) error {
	return oneOf(fd.DataTypeOID, Int2OID)
}

func (t Int2) Scan(src []byte, fd pgproto.FieldDescription) error {
	if src == nil {
		return pgerr.UnexpectedNull
	}
	n, err := parseInt(src, fd)
	if err != nil {
		return err
	}
	*t.P = int16(n)
	return nil
}

// Int4 scans a smallint or integer column into an int32.
type Int4 struct {
	P *int32
}

func (Int4) Compatible(fd pgproto.FieldDescription) error {
	return oneOf(fd.DataTypeOID, Int2OID, Int4OID)
}

func (t Int4) Scan(src []byte, fd pgproto.FieldDescription) error {
	if src == nil {
		return pgerr.UnexpectedNull
	}
	n, err := parseInt(src, fd)
	if err != nil {
		return err
	}
	*t.P = int32(n)
	return nil
}

// Int8 scans a smallint, integer or bigint column into an int64.
type Int8 struct {
	P *int64
}

func (Int8) Compatible(fd pgproto.FieldDescription) error {
	return oneOf(fd.DataTypeOID, Int2OID, Int4OID, Int8OID)
}

func (t Int8) Scan(src []byte, fd pgproto.FieldDescription) error {
	if src == nil {
		return pgerr.UnexpectedNull
	}
	n, err := parseInt(src, fd)
	if err != nil {
		return err
	}
	*t.P = n
	return nil
}
