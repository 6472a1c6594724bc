package pgreq

import (
	"github.com/jackc/pgreq/pgerr"
	"github.com/jackc/pgreq/pgproto"
	"github.com/jackc/pgreq/pgtype"
)

// RowSchema is implemented by row types that can receive a decoded
// result row. FieldNames returns the database column names bound to the
// row's fields and FieldTargets the matching scan destinations, both in
// declaration order.
type RowSchema interface {
	FieldNames() []string
	FieldTargets() []pgtype.Target
}

const invalidPos = -1

type posMapEntry struct {
	// Index within the fields sent by the server
	dbIndex int

	// Metadata required to parse the field
	descr pgproto.FieldDescription
}

// computePosMap fills out, which must have len(names) entries, with the
// server column feeding each declared field. Server fields are matched
// by case-sensitive name; a later server column with a duplicate name
// overwrites an earlier match. Any unmatched declared field is an
// error.
func computePosMap(meta *pgproto.RowDescription, names []string, out []posMapEntry) error {
	for i := range out {
		out[i] = posMapEntry{dbIndex: invalidPos}
	}

	for dbIndex, field := range meta.Fields {
		for declIndex, name := range names {
			if name == field.Name {
				out[declIndex] = posMapEntry{dbIndex: dbIndex, descr: field}
				break
			}
		}
	}

	for _, ent := range out {
		if ent.dbIndex == invalidPos {
			return pgerr.FieldNotFound
		}
	}

	return nil
}

type resultSetState int8

const (
	parsingMeta resultSetState = iota
	parsingData
	done
)

// ResultSet handles one result set (RowDescription + DataRows +
// CommandComplete), decoding each row into a T and passing it to a
// callback. The first decode or server error is stored and subsequent
// rows are dropped, but the remaining traffic of the region is still
// consumed so the stream stays aligned.
type ResultSet[T any, P interface {
	*T
	RowSchema
}] struct {
	state  resultSetState
	posMap []posMapEntry
	err    ExtendedError
	onRow  func(T)
}

// NewResultSet creates a result set handler invoking onRow for every
// decoded row.
func NewResultSet[T any, P interface {
	*T
	RowSchema
}](onRow func(T)) *ResultSet[T, P] {
	return &ResultSet[T, P]{onRow: onRow}
}

// Into creates a result set handler that appends every decoded row to
// dst.
func Into[T any, P interface {
	*T
	RowSchema
}](dst *[]T) *ResultSet[T, P] {
	return NewResultSet[T, P](func(row T) {
		*dst = append(*dst, row)
	})
}

func (rs *ResultSet[T, P]) Setup(req *Request, offset int) (int, error) {
	return resultsetSetup(req, offset)
}

func (rs *ResultSet[T, P]) Result() *ExtendedError {
	return &rs.err
}

func (rs *ResultSet[T, P]) storeError(err error) {
	if !rs.err.Failed() {
		rs.err = ExtendedError{Err: err}
	}
}

func (rs *ResultSet[T, P]) OnMessage(msg pgproto.BackendMessage, offset int) {
	switch m := msg.(type) {
	case *pgproto.ParseComplete, *pgproto.BindComplete:
		// may or may not appear, nothing to do

	case *pgproto.ErrorResponse:
		// the server suppresses the rest of the region
		if !rs.err.Failed() {
			rs.err = ExtendedError{Err: pgerr.ExecServerError, Diag: m.Diagnostic()}
		}
		rs.state = done

	case *pgproto.MessageSkipped:
		rs.storeError(pgerr.StepSkipped)

	case *pgproto.RowDescription:
		if rs.state != parsingMeta {
			// a second result set, e.g. a multi-statement simple query
			rs.storeError(pgerr.IncompatibleResponseType)
			return
		}
		rs.state = parsingData

		var row T
		names := P(&row).FieldNames()
		targets := P(&row).FieldTargets()

		rs.posMap = make([]posMapEntry, len(names))
		if err := computePosMap(m, names, rs.posMap); err != nil {
			rs.storeError(err)
			return
		}

		for i, target := range targets {
			if err := target.Compatible(rs.posMap[i].descr); err != nil {
				rs.storeError(err)
				return
			}
		}

	case *pgproto.DataRow:
		if rs.state != parsingData {
			rs.storeError(pgerr.IncompatibleResponseType)
			return
		}
		// After a failure the field descriptions may be missing and
		// parsing is not safe. The region is still consumed up to its
		// terminating message.
		if rs.err.Failed() {
			return
		}

		var row T
		targets := P(&row).FieldTargets()
		for i, target := range targets {
			ent := rs.posMap[i]
			if ent.dbIndex >= len(m.Values) {
				rs.storeError(pgerr.ProtocolValueError)
				return
			}
			if err := target.Scan(m.Values[ent.dbIndex], ent.descr); err != nil {
				rs.storeError(err)
				return
			}
		}

		rs.onRow(row)

	case *pgproto.CommandComplete, *pgproto.PortalSuspended:
		if rs.state != parsingData {
			rs.storeError(pgerr.IncompatibleResponseType)
		}
		rs.state = done

	default:
		// EmptyQueryResponse, ParameterDescription, NoData and anything
		// else the region should not contain
		rs.storeError(pgerr.IncompatibleResponseType)
	}
}
