package pgreq

import (
	"github.com/jackc/pgreq/pgerr"
	"github.com/jackc/pgreq/pgproto"
)

// ResponseHandler consumes the server traffic produced by a contiguous
// run of request messages.
//
// Setup inspects the request's tag vector starting at offset and
// returns the exclusive end of the region this handler owns, in tag
// units. OnMessage receives each backend message of the region together
// with the tag offset it answers. Result reports the handler's outcome;
// rows decoded before the first error stay delivered.
type ResponseHandler interface {
	Setup(req *Request, offset int) (int, error)
	OnMessage(msg pgproto.BackendMessage, offset int)
	Result() *ExtendedError
}

// Response routes backend messages to an ordered list of handlers. It
// is itself a ResponseHandler, so responses can nest.
type Response struct {
	handlers []ResponseHandler
	offsets  []int
	current  int
}

// NewResponse creates a response over the given handlers. At least one
// handler is required.
func NewResponse(handlers ...ResponseHandler) *Response {
	return &Response{
		handlers: handlers,
		offsets:  make([]int, len(handlers)),
	}
}

// Setup folds the handlers' Setup calls, recording each region's
// exclusive end. The final offset must equal the request's tag count
// for the response to be usable; Exec verifies that.
func (r *Response) Setup(req *Request, offset int) (int, error) {
	for i, h := range r.handlers {
		end, err := h.Setup(req, offset)
		if err != nil {
			return 0, err
		}
		r.offsets[i] = end
		offset = end
	}
	return offset, nil
}

// OnMessage forwards msg to the handler owning the region that contains
// offset.
func (r *Response) OnMessage(msg pgproto.BackendMessage, offset int) {
	for r.current < len(r.handlers) && offset >= r.offsets[r.current] {
		r.current++
	}
	if r.current >= len(r.handlers) {
		return
	}
	r.handlers[r.current].OnMessage(msg, offset)
}

// Result returns the first handler error, or the first handler's result
// when none failed.
func (r *Response) Result() *ExtendedError {
	for _, h := range r.handlers {
		if res := h.Result(); res.Failed() {
			return res
		}
	}
	return r.handlers[0].Result()
}

// IgnoreHandler accepts any traffic segment and stores nothing except a
// server error, should one arrive.
type IgnoreHandler struct {
	err ExtendedError
}

// Ignore creates a handler that consumes the entire remaining request
// region and discards everything but server errors.
func Ignore() *IgnoreHandler {
	return &IgnoreHandler{}
}

func (h *IgnoreHandler) Setup(req *Request, offset int) (int, error) {
	return len(req.Messages()), nil
}

func (h *IgnoreHandler) OnMessage(msg pgproto.BackendMessage, offset int) {
	if err, ok := msg.(*pgproto.ErrorResponse); ok && !h.err.Failed() {
		h.err = ExtendedError{Err: pgerr.ExecServerError, Diag: err.Diagnostic()}
	}
}

func (h *IgnoreHandler) Result() *ExtendedError {
	return &h.err
}

// resultsetSetup implements the region scan for a single result set:
// leading Sync/Flush are skipped; a Query tag forms a region by itself;
// otherwise the region must be an extended-query sub-sequence with
// optional Parse and Bind, exactly one Describe and exactly one
// Execute. Flush, Parse and Bind may appear freely, but a Sync between
// Describe and Execute makes error handling ambiguous and is rejected.
// Trailing Sync/Flush are consumed into the region.
func resultsetSetup(req *Request, offset int) (int, error) {
	tags := req.Messages()
	i := offset

	for i < len(tags) && (tags[i] == MessageTypeSync || tags[i] == MessageTypeFlush) {
		i++
	}

	if i < len(tags) && tags[i] == MessageTypeQuery {
		return i + 1, nil
	}

	describeFound := false
	executeFound := false
	for ; i < len(tags) && !executeFound; i++ {
		switch tags[i] {
		case MessageTypeSync:
			if describeFound {
				return 0, pgerr.IncompatibleResponseType
			}
		case MessageTypeFlush, MessageTypeParse, MessageTypeBind:
			// ignored
		case MessageTypeDescribe:
			if describeFound {
				return 0, pgerr.IncompatibleResponseType
			}
			describeFound = true
		case MessageTypeExecute:
			if !describeFound {
				return 0, pgerr.IncompatibleResponseType
			}
			executeFound = true
		default:
			return 0, pgerr.IncompatibleResponseType
		}
	}

	if !executeFound {
		return 0, pgerr.IncompatibleResponseType
	}

	for i < len(tags) && (tags[i] == MessageTypeSync || tags[i] == MessageTypeFlush) {
		i++
	}

	return i, nil
}
