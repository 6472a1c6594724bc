// Package pgproto implements the serialization layer of the PostgreSQL
// frontend/backend protocol version 3: one codec per message, plus a
// Receiver that extracts frames from a byte stream.
package pgproto

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	// TextFormat is the format code for text encoded values.
	TextFormat = 0
	// BinaryFormat is the format code for binary encoded values.
	BinaryFormat = 1
)

// Message is one PostgreSQL protocol message. Decode parses a frame
// body (the bytes after the type byte and length field); an
// implementation may retain references into the input until its next
// Decode call. Encode appends the complete frame, type byte and length
// included, to dst and returns the extended buffer.
type Message interface {
	Decode(data []byte) error
	Encode(dst []byte) []byte
}

// FrontendMessage is a message the client may send.
type FrontendMessage interface {
	Message
	Frontend() // marker for the client-to-server direction
}

// BackendMessage is a message the server may send.
type BackendMessage interface {
	Message
	Backend() // marker for the server-to-client direction
}

type decodeErr struct {
	messageType string
	detail      string
}

func (e *decodeErr) Error() string {
	return fmt.Sprintf("cannot decode %s message: %s", e.messageType, e.detail)
}

func errMalformed(messageType string) error {
	return &decodeErr{messageType: messageType, detail: "malformed body"}
}

func errBadLength(messageType string, want, got int) error {
	return &decodeErr{messageType: messageType, detail: fmt.Sprintf("body must be %d bytes, not %d", want, got)}
}

// readCString splits a null-terminated string off the front of src.
func readCString(src []byte) (string, []byte, bool) {
	i := bytes.IndexByte(src, 0)
	if i < 0 {
		return "", src, false
	}
	return string(src[:i]), src[i+1:], true
}

// readUint16 splits a big-endian uint16 off the front of src.
func readUint16(src []byte) (uint16, []byte, bool) {
	if len(src) < 2 {
		return 0, src, false
	}
	return binary.BigEndian.Uint16(src), src[2:], true
}

// readValue splits an int32-length-prefixed value off the front of src.
// A length of -1 yields a nil value, zero a non-nil empty one.
func readValue(src []byte) ([]byte, []byte, bool) {
	if len(src) < 4 {
		return nil, src, false
	}
	n := int(int32(binary.BigEndian.Uint32(src)))
	src = src[4:]
	if n == -1 {
		return nil, src, true
	}
	if n < 0 || len(src) < n {
		return nil, src, false
	}
	return src[:n:n], src[n:], true
}
