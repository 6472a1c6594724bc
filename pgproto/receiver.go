package pgproto

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/jackc/chunkreader/v2"
)

// Receiver extracts backend messages from a byte stream. The returned
// message is only valid until the next call to Receive.
type Receiver struct {
	cr *chunkreader.ChunkReader

	// Backend message flyweights
	authenticationOk                AuthenticationOk
	authenticationCleartextPassword AuthenticationCleartextPassword
	authenticationMD5Password       AuthenticationMD5Password
	authenticationSASL              AuthenticationSASL
	authenticationSASLContinue      AuthenticationSASLContinue
	authenticationSASLFinal         AuthenticationSASLFinal
	backendKeyData                  BackendKeyData
	bindComplete                    BindComplete
	closeComplete                   CloseComplete
	commandComplete                 CommandComplete
	dataRow                         DataRow
	emptyQueryResponse              EmptyQueryResponse
	errorResponse                   ErrorResponse
	noData                          NoData
	noticeResponse                  NoticeResponse
	parameterDescription            ParameterDescription
	parameterStatus                 ParameterStatus
	parseComplete                   ParseComplete
	portalSuspended                 PortalSuspended
	readyForQuery                   ReadyForQuery
	rowDescription                  RowDescription

	bodyLen    int
	msgType    byte
	partialMsg bool
}

// NewReceiver creates a Receiver reading from r.
func NewReceiver(r io.Reader) *Receiver {
	return &Receiver{cr: chunkreader.New(r)}
}

// next reads exactly n bytes. A clean EOF mid-message is still
// unexpected from the caller's point of view.
func (r *Receiver) next(n int) ([]byte, error) {
	buf, err := r.cr.Next(n)
	if err == io.EOF {
		return nil, io.ErrUnexpectedEOF
	}
	return buf, err
}

// Receive reads the next backend message. The returned message is only
// valid until the next call to Receive.
func (r *Receiver) Receive() (BackendMessage, error) {
	if !r.partialMsg {
		header, err := r.next(5)
		if err != nil {
			return nil, err
		}

		r.msgType = header[0]

		msgLength := int(binary.BigEndian.Uint32(header[1:]))
		if msgLength < 4 {
			return nil, fmt.Errorf("invalid message length: %d", msgLength)
		}

		r.bodyLen = msgLength - 4
		r.partialMsg = true
	}

	msgBody, err := r.next(r.bodyLen)
	if err != nil {
		return nil, err
	}

	r.partialMsg = false

	var msg BackendMessage
	switch r.msgType {
	case '1':
		msg = &r.parseComplete
	case '2':
		msg = &r.bindComplete
	case '3':
		msg = &r.closeComplete
	case 'C':
		msg = &r.commandComplete
	case 'D':
		msg = &r.dataRow
	case 'E':
		msg = &r.errorResponse
	case 'I':
		msg = &r.emptyQueryResponse
	case 'K':
		msg = &r.backendKeyData
	case 'n':
		msg = &r.noData
	case 'N':
		msg = &r.noticeResponse
	case 'R':
		msg, err = r.findAuthenticationMessageType(msgBody)
		if err != nil {
			return nil, err
		}
	case 's':
		msg = &r.portalSuspended
	case 'S':
		msg = &r.parameterStatus
	case 't':
		msg = &r.parameterDescription
	case 'T':
		msg = &r.rowDescription
	case 'Z':
		msg = &r.readyForQuery
	default:
		return nil, fmt.Errorf("unknown message type: %c", r.msgType)
	}

	err = msg.Decode(msgBody)
	if err != nil {
		return nil, err
	}

	return msg, nil
}

func (r *Receiver) findAuthenticationMessageType(src []byte) (BackendMessage, error) {
	if len(src) < 4 {
		return nil, fmt.Errorf("authentication message too short")
	}
	authType := binary.BigEndian.Uint32(src[:4])

	switch authType {
	case AuthTypeOk:
		return &r.authenticationOk, nil
	case AuthTypeCleartextPassword:
		return &r.authenticationCleartextPassword, nil
	case AuthTypeMD5Password:
		return &r.authenticationMD5Password, nil
	case AuthTypeSASL:
		return &r.authenticationSASL, nil
	case AuthTypeSASLContinue:
		return &r.authenticationSASLContinue, nil
	case AuthTypeSASLFinal:
		return &r.authenticationSASLFinal, nil
	default:
		return nil, fmt.Errorf("unknown authentication type: %d", authType)
	}
}
