package pgtype

import (
	"github.com/jackc/pgreq/pgerr"
	"github.com/jackc/pgreq/pgproto"
)

// Bool scans a boolean column.
type Bool struct {
	P *bool
}

func (Bool) Compatible(fd pgproto.FieldDescription) error {
	return oneOf(fd.DataTypeOID, BoolOID)
}

func (t Bool) Scan(src []byte, fd pgproto.FieldDescription) error {
	if src == nil {
		return pgerr.UnexpectedNull
	}

	if len(src) != 1 {
		return pgerr.ProtocolValueError
	}

	if fd.Format == pgproto.BinaryFormat {
		switch src[0] {
		case 0:
			*t.P = false
		case 1:
			*t.P = true
		default:
			return pgerr.ProtocolValueError
		}
		return nil
	}

	switch src[0] {
	case 't':
		*t.P = true
	case 'f':
		*t.P = false
	default:
		return pgerr.ProtocolValueError
	}
	return nil
}
