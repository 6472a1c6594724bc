package pgreq

import (
	"fmt"

	"github.com/jackc/pgreq/pgproto"
)

// MessageType is the logical tag of one frame in a serialized request.
type MessageType int8

const (
	MessageTypeBind MessageType = iota
	MessageTypeClose
	MessageTypeDescribe
	MessageTypeExecute
	MessageTypeFlush
	MessageTypeParse
	MessageTypeQuery
	MessageTypeSync
)

func (t MessageType) String() string {
	switch t {
	case MessageTypeBind:
		return "Bind"
	case MessageTypeClose:
		return "Close"
	case MessageTypeDescribe:
		return "Describe"
	case MessageTypeExecute:
		return "Execute"
	case MessageTypeFlush:
		return "Flush"
	case MessageTypeParse:
		return "Parse"
	case MessageTypeQuery:
		return "Query"
	case MessageTypeSync:
		return "Sync"
	default:
		return "invalid"
	}
}

// Request is an ordered batch of frontend messages: a contiguous byte
// buffer of serialized frames and a parallel vector of message tags.
// Both orderings coincide; the tag vector drives response routing.
//
// With autosync enabled (the default) the higher-level Add helpers
// append a Sync after each logical operation. Disable it to build
// pipelines with manual sync placement.
type Request struct {
	buf      []byte
	tags     []MessageType
	autosync bool
	err      error
}

// NewRequest creates an empty request with autosync enabled.
func NewRequest() *Request {
	return &Request{autosync: true}
}

// Autosync reports whether Sync messages are appended automatically.
func (r *Request) Autosync() bool {
	return r.autosync
}

// SetAutosync toggles automatic Sync emission.
func (r *Request) SetAutosync(v bool) {
	r.autosync = v
}

// Payload returns the serialized frames. The slice is owned by the
// request.
func (r *Request) Payload() []byte {
	return r.buf
}

// Messages returns the tag vector. The slice is owned by the request.
func (r *Request) Messages() []MessageType {
	return r.tags
}

// Err returns the first error encountered while assembling the request.
// A request with a non-nil Err must not be executed.
func (r *Request) Err() error {
	return r.err
}

func (r *Request) add(msg pgproto.FrontendMessage, tag MessageType) *Request {
	if r.err != nil {
		return r
	}
	r.buf = msg.Encode(r.buf)
	r.tags = append(r.tags, tag)
	return r
}

func (r *Request) maybeAddSync() {
	if r.autosync {
		r.AddSync()
	}
}

// AddSimpleQuery appends a simple-protocol Query message (PQsendQuery).
func (r *Request) AddSimpleQuery(sql string) *Request {
	return r.add(&pgproto.Query{String: sql}, MessageTypeQuery)
}

// AddQuery appends an unnamed-statement extended-protocol round:
// Parse + Bind + Describe portal + Execute, plus Sync under autosync
// (PQsendQueryParams). resultFormat applies to all result columns.
func (r *Request) AddQuery(sql string, params []Param, paramFmt ParamFormat, resultFormat int16, maxRows int32) *Request {
	if r.err != nil {
		return r
	}

	values, formatCodes := encodeParams(params, paramFmt)

	r.add(&pgproto.Parse{Query: sql, ParameterOIDs: paramOIDs(params)}, MessageTypeParse)
	r.add(&pgproto.Bind{
		ParameterFormatCodes: formatCodes,
		Parameters:           values,
		ResultFormatCodes:    []int16{resultFormat},
	}, MessageTypeBind)
	r.add(&pgproto.Describe{ObjectType: 'P'}, MessageTypeDescribe)
	r.add(&pgproto.Execute{MaxRows: uint32(maxRows)}, MessageTypeExecute)
	r.maybeAddSync()
	return r
}

// AddPrepare appends a Parse for a named statement, plus Sync under
// autosync (PQsendPrepare). A zero OID leaves that parameter type
// unspecified.
func (r *Request) AddPrepare(sql, statementName string, paramOIDs []uint32) *Request {
	r.add(&pgproto.Parse{Name: statementName, Query: sql, ParameterOIDs: paramOIDs}, MessageTypeParse)
	r.maybeAddSync()
	return r
}

// AddPrepareStatement is AddPrepare with the OIDs taken from the
// statement's declared parameter types.
func (r *Request) AddPrepareStatement(sql string, stmt Statement) *Request {
	return r.AddPrepare(sql, stmt.Name, stmt.ParamOIDs)
}

// AddExecute appends Bind + Describe portal + Execute for a named
// prepared statement, plus Sync under autosync (PQsendQueryPrepared).
//
// Parameter format should default to text unless the statement was
// prepared with explicit type OIDs: binary submission requires the
// server to know the parameter types.
func (r *Request) AddExecute(statementName string, params []Param, paramFmt ParamFormat, resultFormat int16, maxRows int32) *Request {
	if r.err != nil {
		return r
	}

	values, formatCodes := encodeParams(params, paramFmt)

	r.add(&pgproto.Bind{
		PreparedStatement:    statementName,
		ParameterFormatCodes: formatCodes,
		Parameters:           values,
		ResultFormatCodes:    []int16{resultFormat},
	}, MessageTypeBind)
	r.add(&pgproto.Describe{ObjectType: 'P'}, MessageTypeDescribe)
	r.add(&pgproto.Execute{MaxRows: uint32(maxRows)}, MessageTypeExecute)
	r.maybeAddSync()
	return r
}

// AddExecuteStatement executes a bound statement.
func (r *Request) AddExecuteStatement(stmt BoundStatement, paramFmt ParamFormat, resultFormat int16, maxRows int32) *Request {
	return r.AddExecute(stmt.Name, stmt.Params, paramFmt, resultFormat, maxRows)
}

// AddBind appends a single Bind from statementName to portalName, plus
// Sync under autosync.
func (r *Request) AddBind(statementName string, params []Param, paramFmt ParamFormat, portalName string, resultFormat int16) *Request {
	if r.err != nil {
		return r
	}

	values, formatCodes := encodeParams(params, paramFmt)

	r.add(&pgproto.Bind{
		DestinationPortal:    portalName,
		PreparedStatement:    statementName,
		ParameterFormatCodes: formatCodes,
		Parameters:           values,
		ResultFormatCodes:    []int16{resultFormat},
	}, MessageTypeBind)
	r.maybeAddSync()
	return r
}

// AddDescribeStatement appends a Describe for a named prepared
// statement, plus Sync under autosync (PQsendDescribePrepared).
func (r *Request) AddDescribeStatement(statementName string) *Request {
	r.add(&pgproto.Describe{ObjectType: 'S', Name: statementName}, MessageTypeDescribe)
	r.maybeAddSync()
	return r
}

// AddDescribePortal appends a Describe for a named portal, plus Sync
// under autosync (PQsendDescribePortal).
func (r *Request) AddDescribePortal(portalName string) *Request {
	r.add(&pgproto.Describe{ObjectType: 'P', Name: portalName}, MessageTypeDescribe)
	r.maybeAddSync()
	return r
}

// AddCloseStatement appends a Close for a named prepared statement,
// plus Sync under autosync (PQsendClosePrepared).
func (r *Request) AddCloseStatement(statementName string) *Request {
	r.add(&pgproto.Close{ObjectType: 'S', Name: statementName}, MessageTypeClose)
	r.maybeAddSync()
	return r
}

// AddClosePortal appends a Close for a named portal, plus Sync under
// autosync (PQsendClosePortal).
func (r *Request) AddClosePortal(portalName string) *Request {
	r.add(&pgproto.Close{ObjectType: 'P', Name: portalName}, MessageTypeClose)
	r.maybeAddSync()
	return r
}

// AddSync appends a bare Sync message.
func (r *Request) AddSync() *Request {
	return r.add(&pgproto.Sync{}, MessageTypeSync)
}

// AddFlush appends a bare Flush message.
func (r *Request) AddFlush() *Request {
	return r.add(&pgproto.Flush{}, MessageTypeFlush)
}

// Add appends one raw protocol message with no autosync. Only the eight
// request message types are accepted; anything else poisons the request
// and leaves buffer and tags untouched.
func (r *Request) Add(msg pgproto.FrontendMessage) *Request {
	if r.err != nil {
		return r
	}

	var tag MessageType
	switch msg.(type) {
	case *pgproto.Bind:
		tag = MessageTypeBind
	case *pgproto.Close:
		tag = MessageTypeClose
	case *pgproto.Describe:
		tag = MessageTypeDescribe
	case *pgproto.Execute:
		tag = MessageTypeExecute
	case *pgproto.Flush:
		tag = MessageTypeFlush
	case *pgproto.Parse:
		tag = MessageTypeParse
	case *pgproto.Query:
		tag = MessageTypeQuery
	case *pgproto.Sync:
		tag = MessageTypeSync
	default:
		r.err = fmt.Errorf("message type %T cannot be part of a request", msg)
		return r
	}

	return r.add(msg, tag)
}
