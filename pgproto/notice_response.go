package pgproto

// NoticeResponse is a non-fatal server notice. The body layout is shared
// with ErrorResponse.
type NoticeResponse ErrorResponse

func (*NoticeResponse) Backend() {}

func (dst *NoticeResponse) Decode(src []byte) error {
	*dst = NoticeResponse{}
	return (*ErrorResponse)(dst).unmarshalBody(src, "NoticeResponse")
}

func (src *NoticeResponse) Encode(dst []byte) []byte {
	return (*ErrorResponse)(src).marshalBody(dst, 'N')
}
