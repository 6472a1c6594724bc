package pgproto

// NoData is sent in place of RowDescription when a described statement
// or portal returns no rows.
type NoData struct{}

func (*NoData) Backend() {}

func (dst *NoData) Decode(src []byte) error {
	if len(src) != 0 {
		return errBadLength("NoData", 0, len(src))
	}

	return nil
}

func (src *NoData) Encode(dst []byte) []byte {
	return append(dst, 'n', 0, 0, 0, 4)
}
