package pgtype

import (
	"github.com/jackc/pgreq/pgerr"
	"github.com/jackc/pgreq/pgproto"
)

// Text scans any column into a string. The raw datum bytes are copied
// verbatim, regardless of the column type or format.
type Text struct {
	P *string
}

func (Text) Compatible(fd pgproto.FieldDescription) error {
	return nil
}

func (t Text) Scan(src []byte, fd pgproto.FieldDescription) error {
	if src == nil {
		return pgerr.UnexpectedNull
	}
	*t.P = string(src)
	return nil
}
