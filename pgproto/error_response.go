package pgproto

import (
	"strconv"

	"github.com/jackc/pgio"
)

// ErrorResponse reports an error from the server. Fields are the
// structured diagnostic fields of the v3 protocol.
type ErrorResponse struct {
	Severity            string
	SeverityUnlocalized string
	Code                string
	Message             string
	Detail              string
	Hint                string
	Position            int32
	InternalPosition    int32
	InternalQuery       string
	Where               string
	SchemaName          string
	TableName           string
	ColumnName          string
	DataTypeName        string
	ConstraintName      string
	File                string
	Line                int32
	Routine             string

	UnknownFields map[byte]string
}

func (*ErrorResponse) Backend() {}

func (dst *ErrorResponse) Decode(src []byte) error {
	*dst = ErrorResponse{}
	return dst.unmarshalBody(src, "ErrorResponse")
}

func (dst *ErrorResponse) unmarshalBody(src []byte, messageType string) error {
	for {
		if len(src) == 0 {
			return errMalformed(messageType)
		}
		k := src[0]
		src = src[1:]
		if k == 0 {
			break
		}

		var v string
		var ok bool
		v, src, ok = readCString(src)
		if !ok {
			return errMalformed(messageType)
		}

		switch k {
		case 'S':
			dst.Severity = v
		case 'V':
			dst.SeverityUnlocalized = v
		case 'C':
			dst.Code = v
		case 'M':
			dst.Message = v
		case 'D':
			dst.Detail = v
		case 'H':
			dst.Hint = v
		case 'P':
			s := v
			n, _ := strconv.ParseInt(s, 10, 32)
			dst.Position = int32(n)
		case 'p':
			s := v
			n, _ := strconv.ParseInt(s, 10, 32)
			dst.InternalPosition = int32(n)
		case 'q':
			dst.InternalQuery = v
		case 'W':
			dst.Where = v
		case 's':
			dst.SchemaName = v
		case 't':
			dst.TableName = v
		case 'c':
			dst.ColumnName = v
		case 'd':
			dst.DataTypeName = v
		case 'n':
			dst.ConstraintName = v
		case 'F':
			dst.File = v
		case 'L':
			s := v
			n, _ := strconv.ParseInt(s, 10, 32)
			dst.Line = int32(n)
		case 'R':
			dst.Routine = v
		default:
			if dst.UnknownFields == nil {
				dst.UnknownFields = make(map[byte]string)
			}
			dst.UnknownFields[k] = v
		}
	}

	if len(src) != 0 {
		return errMalformed(messageType)
	}

	return nil
}

func (src *ErrorResponse) Encode(dst []byte) []byte {
	return src.marshalBody(dst, 'E')
}

func (src *ErrorResponse) marshalBody(dst []byte, typeByte byte) []byte {
	dst = append(dst, typeByte)
	sp := len(dst)
	dst = pgio.AppendInt32(dst, -1)

	appendField := func(k byte, v string) {
		if v != "" {
			dst = append(dst, k)
			dst = append(dst, v...)
			dst = append(dst, 0)
		}
	}

	appendField('S', src.Severity)
	appendField('V', src.SeverityUnlocalized)
	appendField('C', src.Code)
	appendField('M', src.Message)
	appendField('D', src.Detail)
	appendField('H', src.Hint)
	if src.Position != 0 {
		appendField('P', strconv.FormatInt(int64(src.Position), 10))
	}
	if src.InternalPosition != 0 {
		appendField('p', strconv.FormatInt(int64(src.InternalPosition), 10))
	}
	appendField('q', src.InternalQuery)
	appendField('W', src.Where)
	appendField('s', src.SchemaName)
	appendField('t', src.TableName)
	appendField('c', src.ColumnName)
	appendField('d', src.DataTypeName)
	appendField('n', src.ConstraintName)
	appendField('F', src.File)
	if src.Line != 0 {
		appendField('L', strconv.FormatInt(int64(src.Line), 10))
	}
	appendField('R', src.Routine)

	for k, v := range src.UnknownFields {
		appendField(k, v)
	}

	dst = append(dst, 0)

	pgio.SetInt32(dst[sp:], int32(len(dst[sp:])))

	return dst
}

// Diagnostic is an owned copy of the structured fields of an
// ErrorResponse, safe to retain after the next Receive.
type Diagnostic struct {
	Severity       string
	Code           string
	Message        string
	Detail         string
	Hint           string
	Position       int32
	Where          string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	File           string
	Line           int32
	Routine        string
}

// Diagnostic copies the retained fields of src.
func (src *ErrorResponse) Diagnostic() Diagnostic {
	return Diagnostic{
		Severity:       src.Severity,
		Code:           src.Code,
		Message:        src.Message,
		Detail:         src.Detail,
		Hint:           src.Hint,
		Position:       src.Position,
		Where:          src.Where,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		File:           src.File,
		Line:           src.Line,
		Routine:        src.Routine,
	}
}

func (d Diagnostic) String() string {
	if d.Severity == "" && d.Message == "" {
		return ""
	}
	return d.Severity + ": " + d.Message + " (SQLSTATE " + d.Code + ")"
}
