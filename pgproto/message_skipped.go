package pgproto

// MessageSkipped is a synthetic backend message. It never appears on the
// wire: the exec machinery injects it when a previous error caused the
// server to suppress the response a protocol step would otherwise have
// produced.
type MessageSkipped struct{}

func (*MessageSkipped) Backend() {}

func (dst *MessageSkipped) Decode(src []byte) error {
	if len(src) != 0 {
		return errBadLength("MessageSkipped", 0, len(src))
	}

	return nil
}

// Encode panics. MessageSkipped has no wire representation.
func (src *MessageSkipped) Encode(dst []byte) []byte {
	panic("MessageSkipped has no wire representation")
}
