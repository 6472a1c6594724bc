package pgproto

import (
	"encoding/binary"
	"errors"

	"github.com/jackc/pgio"
)

// ProtocolVersionNumber is the version of the frontend/backend protocol
// implemented by this package.
const ProtocolVersionNumber = 196608 // 3.0

// StartupMessage opens a session. It is the only frontend message
// without a type byte.
type StartupMessage struct {
	ProtocolVersion uint32
	Parameters      map[string]string
}

func (*StartupMessage) Frontend() {}

func (dst *StartupMessage) Decode(src []byte) error {
	if len(src) < 4 {
		return errors.New("startup message too short")
	}

	dst.ProtocolVersion = binary.BigEndian.Uint32(src)

	if dst.ProtocolVersion != ProtocolVersionNumber {
		return errors.New("bad startup message version number")
	}

	dst.Parameters = make(map[string]string)
	src = src[4:]
	for {
		key, rest, ok := readCString(src)
		if !ok {
			return errMalformed("StartupMessage")
		}
		src = rest

		if key == "" {
			break
		}

		var value string
		value, src, ok = readCString(src)
		if !ok {
			return errMalformed("StartupMessage")
		}
		dst.Parameters[key] = value
	}

	if len(src) != 0 {
		return errMalformed("StartupMessage")
	}

	return nil
}

func (src *StartupMessage) Encode(dst []byte) []byte {
	sp := len(dst)
	dst = pgio.AppendInt32(dst, -1)

	dst = pgio.AppendUint32(dst, src.ProtocolVersion)
	for k, v := range src.Parameters {
		dst = append(dst, k...)
		dst = append(dst, 0)
		dst = append(dst, v...)
		dst = append(dst, 0)
	}
	dst = append(dst, 0)

	pgio.SetInt32(dst[sp:], int32(len(dst[sp:])))

	return dst
}
