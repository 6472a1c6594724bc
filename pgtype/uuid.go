package pgtype

import (
	"github.com/gofrs/uuid"

	"github.com/jackc/pgreq/pgerr"
	"github.com/jackc/pgreq/pgproto"
)

// UUID scans a uuid column.
type UUID struct {
	P *uuid.UUID
}

func (UUID) Compatible(fd pgproto.FieldDescription) error {
	return oneOf(fd.DataTypeOID, UUIDOID)
}

func (t UUID) Scan(src []byte, fd pgproto.FieldDescription) error {
	if src == nil {
		return pgerr.UnexpectedNull
	}

	if fd.Format == pgproto.BinaryFormat {
		if len(src) != 16 {
			return pgerr.ProtocolValueError
		}
		u, err := uuid.FromBytes(src)
		if err != nil {
			return pgerr.ProtocolValueError
		}
		*t.P = u
		return nil
	}

	if len(src) != 36 {
		return pgerr.ProtocolValueError
	}
	u, err := uuid.FromString(string(src))
	if err != nil {
		return pgerr.ProtocolValueError
	}
	*t.P = u
	return nil
}
