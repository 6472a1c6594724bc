package pgproto

// EmptyQueryResponse is sent in place of CommandComplete when a query
// string was empty.
type EmptyQueryResponse struct{}

func (*EmptyQueryResponse) Backend() {}

func (dst *EmptyQueryResponse) Decode(src []byte) error {
	if len(src) != 0 {
		return errBadLength("EmptyQueryResponse", 0, len(src))
	}

	return nil
}

func (src *EmptyQueryResponse) Encode(dst []byte) []byte {
	return append(dst, 'I', 0, 0, 0, 4)
}
