package pgreq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackc/pgreq"
	"github.com/jackc/pgreq/pgproto"
)

// decodeFrames splits a request payload back into messages for
// inspection.
func decodeFrames(t *testing.T, payload []byte) []pgproto.FrontendMessage {
	t.Helper()

	var msgs []pgproto.FrontendMessage
	for len(payload) > 0 {
		require.GreaterOrEqual(t, len(payload), 5)
		typeByte := payload[0]
		msgLen := int(uint32(payload[1])<<24 | uint32(payload[2])<<16 | uint32(payload[3])<<8 | uint32(payload[4]))
		body := payload[5 : 1+msgLen]
		payload = payload[1+msgLen:]

		var msg pgproto.FrontendMessage
		switch typeByte {
		case 'B':
			msg = &pgproto.Bind{}
		case 'C':
			msg = &pgproto.Close{}
		case 'D':
			msg = &pgproto.Describe{}
		case 'E':
			msg = &pgproto.Execute{}
		case 'H':
			msg = &pgproto.Flush{}
		case 'P':
			msg = &pgproto.Parse{}
		case 'Q':
			msg = &pgproto.Query{}
		case 'S':
			msg = &pgproto.Sync{}
		default:
			t.Fatalf("unexpected frame type %c", typeByte)
		}
		require.NoError(t, msg.Decode(body))
		msgs = append(msgs, msg)
	}
	return msgs
}

func TestRequestSimpleQuery(t *testing.T) {
	req := pgreq.NewRequest().AddSimpleQuery("select 1")
	require.NoError(t, req.Err())

	assert.Equal(t, []pgreq.MessageType{pgreq.MessageTypeQuery}, req.Messages())

	msgs := decodeFrames(t, req.Payload())
	require.Len(t, msgs, 1)
	assert.Equal(t, &pgproto.Query{String: "select 1"}, msgs[0])
}

func TestRequestAddQuery(t *testing.T) {
	req := pgreq.NewRequest().AddQuery(
		"select * from wines where id = $1",
		[]pgreq.Param{pgreq.Int4Param(7)},
		pgreq.ParamFormatSelectBest,
		pgproto.TextFormat,
		0,
	)
	require.NoError(t, req.Err())

	assert.Equal(t, []pgreq.MessageType{
		pgreq.MessageTypeParse,
		pgreq.MessageTypeBind,
		pgreq.MessageTypeDescribe,
		pgreq.MessageTypeExecute,
		pgreq.MessageTypeSync,
	}, req.Messages())

	msgs := decodeFrames(t, req.Payload())
	require.Len(t, msgs, 5)

	parse := msgs[0].(*pgproto.Parse)
	assert.Equal(t, "", parse.Name)
	assert.Equal(t, []uint32{23}, parse.ParameterOIDs)

	bind := msgs[1].(*pgproto.Bind)
	assert.Equal(t, []int16{pgproto.BinaryFormat}, bind.ParameterFormatCodes)
	assert.Equal(t, [][]byte{{0, 0, 0, 7}}, bind.Parameters)
	assert.Equal(t, []int16{pgproto.TextFormat}, bind.ResultFormatCodes)

	describe := msgs[2].(*pgproto.Describe)
	assert.Equal(t, byte('P'), describe.ObjectType)

	execute := msgs[3].(*pgproto.Execute)
	assert.Equal(t, uint32(0), execute.MaxRows)
}

func TestRequestAddQueryTextFormat(t *testing.T) {
	req := pgreq.NewRequest().AddQuery(
		"select $1, $2",
		[]pgreq.Param{pgreq.Int8Param(-12), pgreq.TextParam("hi")},
		pgreq.ParamFormatText,
		pgproto.TextFormat,
		0,
	)
	require.NoError(t, req.Err())

	msgs := decodeFrames(t, req.Payload())
	bind := msgs[1].(*pgproto.Bind)
	// text forces a single format entry covering every parameter
	assert.Equal(t, []int16{pgproto.TextFormat}, bind.ParameterFormatCodes)
	assert.Equal(t, [][]byte{[]byte("-12"), []byte("hi")}, bind.Parameters)
}

func TestRequestAutosync(t *testing.T) {
	req := pgreq.NewRequest()
	req.SetAutosync(false)
	req.AddPrepare("select 1", "stmt", nil)
	assert.Equal(t, []pgreq.MessageType{pgreq.MessageTypeParse}, req.Messages())

	req = pgreq.NewRequest()
	req.AddPrepare("select 1", "stmt", nil)
	assert.Equal(t, []pgreq.MessageType{pgreq.MessageTypeParse, pgreq.MessageTypeSync}, req.Messages())
}

func TestRequestAddExecuteStatement(t *testing.T) {
	stmt := pgreq.Statement{Name: "find_wine", ParamOIDs: []uint32{23}}

	req := pgreq.NewRequest().AddExecuteStatement(
		stmt.Bind(pgreq.Int4Param(3)),
		pgreq.ParamFormatSelectBest,
		pgproto.BinaryFormat,
		0,
	)
	require.NoError(t, req.Err())

	assert.Equal(t, []pgreq.MessageType{
		pgreq.MessageTypeBind,
		pgreq.MessageTypeDescribe,
		pgreq.MessageTypeExecute,
		pgreq.MessageTypeSync,
	}, req.Messages())

	msgs := decodeFrames(t, req.Payload())
	bind := msgs[0].(*pgproto.Bind)
	assert.Equal(t, "find_wine", bind.PreparedStatement)
	assert.Equal(t, []int16{pgproto.BinaryFormat}, bind.ResultFormatCodes)
}

func TestRequestCloseAndDescribe(t *testing.T) {
	req := pgreq.NewRequest()
	req.SetAutosync(false)
	req.AddDescribeStatement("s1").AddDescribePortal("p1").AddCloseStatement("s1").AddClosePortal("p1").AddSync()
	require.NoError(t, req.Err())

	assert.Equal(t, []pgreq.MessageType{
		pgreq.MessageTypeDescribe,
		pgreq.MessageTypeDescribe,
		pgreq.MessageTypeClose,
		pgreq.MessageTypeClose,
		pgreq.MessageTypeSync,
	}, req.Messages())

	msgs := decodeFrames(t, req.Payload())
	assert.Equal(t, byte('S'), msgs[0].(*pgproto.Describe).ObjectType)
	assert.Equal(t, byte('P'), msgs[1].(*pgproto.Describe).ObjectType)
	assert.Equal(t, byte('S'), msgs[2].(*pgproto.Close).ObjectType)
	assert.Equal(t, byte('P'), msgs[3].(*pgproto.Close).ObjectType)
}

func TestRequestAddRaw(t *testing.T) {
	req := pgreq.NewRequest()
	req.Add(&pgproto.Parse{Query: "select 1"}).Add(&pgproto.Sync{})
	require.NoError(t, req.Err())
	assert.Equal(t, []pgreq.MessageType{pgreq.MessageTypeParse, pgreq.MessageTypeSync}, req.Messages())
}

func TestRequestAddRejectsForeignMessage(t *testing.T) {
	req := pgreq.NewRequest().AddSimpleQuery("select 1")
	payloadLen := len(req.Payload())
	tagsLen := len(req.Messages())

	req.Add(&pgproto.Terminate{})
	require.Error(t, req.Err())

	// strong guarantee: buffer and tags are untouched on failure
	assert.Len(t, req.Payload(), payloadLen)
	assert.Len(t, req.Messages(), tagsLen)

	// the request stays poisoned
	req.AddSimpleQuery("select 2")
	assert.Len(t, req.Messages(), tagsLen)
	assert.Error(t, req.Err())
}

func TestRequestFramesMatchTags(t *testing.T) {
	req := pgreq.NewRequest()
	req.AddSimpleQuery("select 1").
		AddQuery("select $1", []pgreq.Param{pgreq.TextParam("x")}, pgreq.ParamFormatText, pgproto.TextFormat, 5).
		AddCloseStatement("s")
	require.NoError(t, req.Err())

	msgs := decodeFrames(t, req.Payload())
	require.Equal(t, len(req.Messages()), len(msgs))
}
