package pgproto

import (
	"encoding/binary"
	"fmt"
)

// DecodeBackendMessage decodes one backend message from its type byte
// and body. Unlike Receiver it allocates a fresh message per call, so
// the result may be retained.
func DecodeBackendMessage(typeByte byte, body []byte) (BackendMessage, error) {
	var msg BackendMessage
	switch typeByte {
	case '1':
		msg = &ParseComplete{}
	case '2':
		msg = &BindComplete{}
	case '3':
		msg = &CloseComplete{}
	case 'C':
		msg = &CommandComplete{}
	case 'D':
		msg = &DataRow{}
	case 'E':
		msg = &ErrorResponse{}
	case 'I':
		msg = &EmptyQueryResponse{}
	case 'K':
		msg = &BackendKeyData{}
	case 'n':
		msg = &NoData{}
	case 'N':
		msg = &NoticeResponse{}
	case 'R':
		if len(body) < 4 {
			return nil, fmt.Errorf("authentication message too short")
		}
		switch authType := binary.BigEndian.Uint32(body[:4]); authType {
		case AuthTypeOk:
			msg = &AuthenticationOk{}
		case AuthTypeCleartextPassword:
			msg = &AuthenticationCleartextPassword{}
		case AuthTypeMD5Password:
			msg = &AuthenticationMD5Password{}
		case AuthTypeSASL:
			msg = &AuthenticationSASL{}
		case AuthTypeSASLContinue:
			msg = &AuthenticationSASLContinue{}
		case AuthTypeSASLFinal:
			msg = &AuthenticationSASLFinal{}
		default:
			return nil, fmt.Errorf("unknown authentication type: %d", authType)
		}
	case 's':
		msg = &PortalSuspended{}
	case 'S':
		msg = &ParameterStatus{}
	case 't':
		msg = &ParameterDescription{}
	case 'T':
		msg = &RowDescription{}
	case 'Z':
		msg = &ReadyForQuery{}
	default:
		return nil, fmt.Errorf("unknown message type: %c", typeByte)
	}

	if err := msg.Decode(body); err != nil {
		return nil, err
	}
	return msg, nil
}
