package pgproto

// PortalSuspended is sent instead of CommandComplete when an Execute's
// row limit was reached before the portal was exhausted.
type PortalSuspended struct{}

func (*PortalSuspended) Backend() {}

func (dst *PortalSuspended) Decode(src []byte) error {
	if len(src) != 0 {
		return errBadLength("PortalSuspended", 0, len(src))
	}

	return nil
}

func (src *PortalSuspended) Encode(dst []byte) []byte {
	return append(dst, 's', 0, 0, 0, 4)
}
