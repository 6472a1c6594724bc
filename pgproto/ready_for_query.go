package pgproto

// ReadyForQuery signals that the server finished processing up to a Sync
// boundary. TxStatus is 'I' (idle), 'T' (in transaction) or 'E' (failed
// transaction).
type ReadyForQuery struct {
	TxStatus byte
}

func (*ReadyForQuery) Backend() {}

func (dst *ReadyForQuery) Decode(src []byte) error {
	if len(src) != 1 {
		return errBadLength("ReadyForQuery", 1, len(src))
	}

	dst.TxStatus = src[0]

	return nil
}

func (src *ReadyForQuery) Encode(dst []byte) []byte {
	return append(dst, 'Z', 0, 0, 0, 5, src.TxStatus)
}
