package pgreq

import (
	"encoding/binary"

	"github.com/jackc/pgreq/pgerr"
	"github.com/jackc/pgreq/pgproto"
)

// IntentKind classifies what I/O an FSM needs next.
type IntentKind int8

const (
	// IntentWrite asks the runtime to write all of Intent.Data.
	IntentWrite IntentKind = iota

	// IntentRead asks the runtime to read some bytes into Intent.Buf and
	// resume with the count.
	IntentRead

	// IntentDone reports the operation's outcome in Intent.Result.
	IntentDone
)

// Intent is the next step an FSM wants its driver to perform.
type Intent struct {
	Kind   IntentKind
	Data   []byte
	Buf    []byte
	Result ExtendedError
}

// ConnState is the per-connection state shared by the protocol state
// machines: the owned read buffer, the backend status summary and the
// server parameters captured during startup.
type ConnState struct {
	readBuf []byte
	rp, wp  int

	// TxStatus is the status byte of the last ReadyForQuery: 'I' idle,
	// 'T' in transaction, 'E' failed transaction.
	TxStatus byte

	// Parameters holds the server runtime parameters reported via
	// ParameterStatus.
	Parameters map[string]string

	// BackendKey is the cancellation key reported during startup.
	BackendKey pgproto.BackendKeyData
}

const minReadBufSize = 8192

// freeSpace returns writable buffer space, growing or compacting as
// needed. Bytes read into it are registered via the next Resume call.
func (st *ConnState) freeSpace() []byte {
	if st.readBuf == nil {
		st.readBuf = make([]byte, minReadBufSize)
	}
	if st.wp == len(st.readBuf) {
		if st.rp > 0 {
			st.wp = copy(st.readBuf, st.readBuf[st.rp:st.wp])
			st.rp = 0
		} else {
			bigger := make([]byte, len(st.readBuf)*2)
			copy(bigger, st.readBuf)
			st.readBuf = bigger
		}
	}
	return st.readBuf[st.wp:]
}

// frame extracts the next complete frame, if any. The returned body is
// only valid until the buffer is next written to.
func (st *ConnState) frame() (typeByte byte, body []byte, ok bool, err error) {
	if st.wp-st.rp < 5 {
		return 0, nil, false, nil
	}

	typeByte = st.readBuf[st.rp]
	msgLength := int(binary.BigEndian.Uint32(st.readBuf[st.rp+1:]))
	if msgLength < 4 {
		return 0, nil, false, pgerr.ProtocolValueError
	}

	total := 1 + msgLength
	if st.wp-st.rp < total {
		return 0, nil, false, nil
	}

	body = st.readBuf[st.rp+5 : st.rp+total]
	st.rp += total
	if st.rp == st.wp {
		st.rp, st.wp = 0, 0
	}
	return typeByte, body, true, nil
}

type execState int8

const (
	execInitial execState = iota
	execWriting
	execReading
	execDone
)

// ExecFSM drives one request/response exchange. The driver calls Resume
// with the outcome of the previous I/O step and performs the returned
// intent until IntentDone.
type ExecFSM struct {
	req  *Request
	resp ResponseHandler

	state  execState
	tagIdx int
	result ExtendedError
}

// NewExecFSM creates the state machine for executing req with resp
// consuming the reply stream.
func NewExecFSM(req *Request, resp ResponseHandler) *ExecFSM {
	return &ExecFSM{req: req, resp: resp}
}

func (fsm *ExecFSM) finish(result ExtendedError) Intent {
	fsm.state = execDone
	fsm.result = result
	return Intent{Kind: IntentDone, Result: result}
}

func (fsm *ExecFSM) finishWithHandlerResult() Intent {
	return fsm.finish(*fsm.resp.Result())
}

// Result returns the exec outcome once the FSM is done.
func (fsm *ExecFSM) Result() ExtendedError {
	return fsm.result
}

// Resume advances the machine. ioErr and n describe the outcome of the
// intent returned by the previous call: the transport error, and the
// bytes read for IntentRead. Any transport error aborts the exec and
// surfaces with an empty diagnostic.
func (fsm *ExecFSM) Resume(st *ConnState, ioErr error, n int) Intent {
	if fsm.state == execDone {
		return Intent{Kind: IntentDone, Result: fsm.result}
	}

	if ioErr != nil {
		return fsm.finish(ExtendedError{Err: ioErr})
	}

	switch fsm.state {
	case execInitial:
		if err := fsm.req.Err(); err != nil {
			return fsm.finish(ExtendedError{Err: err})
		}
		end, err := fsm.resp.Setup(fsm.req, 0)
		if err != nil {
			return fsm.finish(ExtendedError{Err: err})
		}
		if end != len(fsm.req.Messages()) {
			return fsm.finish(ExtendedError{Err: pgerr.IncompatibleResponseType})
		}
		if len(fsm.req.Messages()) == 0 {
			return fsm.finishWithHandlerResult()
		}
		fsm.state = execWriting
		return Intent{Kind: IntentWrite, Data: fsm.req.Payload()}

	case execWriting:
		fsm.state = execReading
		fsm.skipFlushTags()
		if fsm.tagIdx == len(fsm.req.Messages()) {
			return fsm.finishWithHandlerResult()
		}

	case execReading:
		st.wp += n
	}

	for {
		typeByte, body, ok, err := st.frame()
		if err != nil {
			return fsm.finish(ExtendedError{Err: err})
		}
		if !ok {
			return Intent{Kind: IntentRead, Buf: st.freeSpace()}
		}

		msg, err := pgproto.DecodeBackendMessage(typeByte, body)
		if err != nil {
			return fsm.finish(ExtendedError{Err: err})
		}

		if finished, intent := fsm.handleMessage(st, msg); finished {
			return intent
		}
	}
}

func (fsm *ExecFSM) skipFlushTags() {
	tags := fsm.req.Messages()
	for fsm.tagIdx < len(tags) && tags[fsm.tagIdx] == MessageTypeFlush {
		fsm.tagIdx++
	}
}

// expectedMessage reports whether msg may answer a request message
// tagged tag, and whether it completes that tag's response traffic.
func expectedMessage(tag MessageType, msg pgproto.BackendMessage) (completes, ok bool) {
	switch tag {
	case MessageTypeParse:
		_, ok = msg.(*pgproto.ParseComplete)
		return true, ok
	case MessageTypeBind:
		_, ok = msg.(*pgproto.BindComplete)
		return true, ok
	case MessageTypeClose:
		_, ok = msg.(*pgproto.CloseComplete)
		return true, ok
	case MessageTypeDescribe:
		switch msg.(type) {
		case *pgproto.ParameterDescription:
			return false, true
		case *pgproto.RowDescription, *pgproto.NoData:
			return true, true
		}
		return false, false
	case MessageTypeExecute:
		switch msg.(type) {
		case *pgproto.DataRow:
			return false, true
		case *pgproto.CommandComplete, *pgproto.EmptyQueryResponse, *pgproto.PortalSuspended:
			return true, true
		}
		return false, false
	case MessageTypeQuery:
		// the terminating ReadyForQuery is handled separately
		switch msg.(type) {
		case *pgproto.RowDescription, *pgproto.DataRow, *pgproto.CommandComplete, *pgproto.EmptyQueryResponse:
			return false, true
		}
		return false, false
	default:
		return false, false
	}
}

// handleMessage routes one backend message. It returns finished = true
// with the final intent once the whole tag vector is answered.
func (fsm *ExecFSM) handleMessage(st *ConnState, msg pgproto.BackendMessage) (bool, Intent) {
	tags := fsm.req.Messages()

	switch m := msg.(type) {
	case *pgproto.NoticeResponse:
		return false, Intent{}

	case *pgproto.ParameterStatus:
		if st.Parameters == nil {
			st.Parameters = make(map[string]string)
		}
		st.Parameters[m.Name] = m.Value
		return false, Intent{}

	case *pgproto.BackendKeyData:
		st.BackendKey = *m
		return false, Intent{}

	case *pgproto.ReadyForQuery:
		st.TxStatus = m.TxStatus
		for fsm.tagIdx < len(tags) {
			t := tags[fsm.tagIdx]
			fsm.tagIdx++
			if t == MessageTypeSync || t == MessageTypeQuery {
				break
			}
		}
		fsm.skipFlushTags()
		if fsm.tagIdx == len(tags) {
			return true, fsm.finishWithHandlerResult()
		}
		return false, Intent{}

	case *pgproto.ErrorResponse:
		fsm.skipFlushTags()
		if fsm.tagIdx >= len(tags) {
			return true, fsm.finish(ExtendedError{Err: pgerr.ProtocolValueError})
		}
		cur := tags[fsm.tagIdx]
		fsm.resp.OnMessage(m, fsm.tagIdx)

		if cur == MessageTypeQuery || cur == MessageTypeSync {
			// the pending ReadyForQuery advances past this tag
			return false, Intent{}
		}

		// Extended query: the server discards everything up to the next
		// Sync. Report the suppressed steps to their handlers.
		j := fsm.tagIdx + 1
		for ; j < len(tags) && tags[j] != MessageTypeSync; j++ {
			if tags[j] != MessageTypeFlush {
				fsm.resp.OnMessage(&pgproto.MessageSkipped{}, j)
			}
		}
		fsm.tagIdx = j
		if j == len(tags) {
			// no sync follows, so nothing more will arrive
			return true, fsm.finishWithHandlerResult()
		}
		return false, Intent{}

	default:
		fsm.skipFlushTags()
		if fsm.tagIdx >= len(tags) {
			return true, fsm.finish(ExtendedError{Err: pgerr.ProtocolValueError})
		}
		cur := tags[fsm.tagIdx]
		completes, ok := expectedMessage(cur, msg)
		if !ok {
			return true, fsm.finish(ExtendedError{Err: pgerr.ProtocolValueError})
		}
		fsm.resp.OnMessage(msg, fsm.tagIdx)
		if completes {
			fsm.tagIdx++
			fsm.skipFlushTags()
			if fsm.tagIdx == len(tags) {
				return true, fsm.finishWithHandlerResult()
			}
		}
		return false, Intent{}
	}
}
