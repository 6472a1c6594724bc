package pgreq

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"mellium.im/sasl"

	"github.com/jackc/pgreq/pgerr"
	"github.com/jackc/pgreq/pgproto"
)

// ConnectParams is the minimal configuration the startup sequence
// needs. Resolution of host names, TLS and richer configuration sources
// belong to the caller, which supplies the established byte stream.
type ConnectParams struct {
	User     string
	Database string
	Password string

	// RuntimeParams are extra startup parameters, e.g. application_name.
	RuntimeParams map[string]string

	Logger   Logger
	LogLevel LogLevel
}

// Conn is a single PostgreSQL session over a caller-supplied byte
// stream. A Conn must be driven by one goroutine at a time.
type Conn struct {
	rw io.ReadWriter
	st ConnState

	logger   Logger
	logLevel LogLevel

	closed bool
}

func (c *Conn) shouldLog(lvl LogLevel) bool {
	return c.logger != nil && c.logLevel >= lvl
}

func (c *Conn) log(ctx context.Context, lvl LogLevel, msg string, data map[string]interface{}) {
	if c.shouldLog(lvl) {
		c.logger.Log(ctx, lvl, msg, data)
	}
}

// TxStatus returns the backend status byte of the last ReadyForQuery:
// 'I' idle, 'T' in transaction, 'E' failed transaction.
func (c *Conn) TxStatus() byte {
	return c.st.TxStatus
}

// ParameterStatus returns the reported value of a server runtime
// parameter such as server_version.
func (c *Conn) ParameterStatus(name string) string {
	return c.st.Parameters[name]
}

// Connect performs the startup and authentication sequence over rw and
// returns a ready connection. Supported authentication methods are
// trust, cleartext password, MD5 and SCRAM-SHA-256.
//
// ctx is consulted between protocol steps; it cannot interrupt an
// in-flight read on a transport without deadlines.
func Connect(ctx context.Context, rw io.ReadWriter, params ConnectParams) (*Conn, ExtendedError) {
	c := &Conn{
		rw:       rw,
		logger:   params.Logger,
		logLevel: params.LogLevel,
	}

	startup := &pgproto.StartupMessage{
		ProtocolVersion: pgproto.ProtocolVersionNumber,
		Parameters:      map[string]string{"user": params.User},
	}
	if params.Database != "" {
		startup.Parameters["database"] = params.Database
	}
	for k, v := range params.RuntimeParams {
		startup.Parameters[k] = v
	}

	if _, err := rw.Write(startup.Encode(nil)); err != nil {
		return nil, ExtendedError{Err: err}
	}

	// The receiver's buffer drains completely here: after ReadyForQuery
	// the server stays quiet until the next request, so handing the raw
	// stream to Exec afterwards is safe.
	receiver := pgproto.NewReceiver(rw)
	var scram *sasl.Negotiator

	for {
		if err := ctx.Err(); err != nil {
			return nil, ExtendedError{Err: err}
		}

		msg, err := receiver.Receive()
		if err != nil {
			return nil, ExtendedError{Err: err}
		}

		switch m := msg.(type) {
		case *pgproto.AuthenticationOk:

		case *pgproto.AuthenticationCleartextPassword:
			pm := &pgproto.PasswordMessage{Password: params.Password}
			if _, err := rw.Write(pm.Encode(nil)); err != nil {
				return nil, ExtendedError{Err: err}
			}

		case *pgproto.AuthenticationMD5Password:
			digested := "md5" + hexMD5(hexMD5(params.Password+params.User)+string(m.Salt[:]))
			pm := &pgproto.PasswordMessage{Password: digested}
			if _, err := rw.Write(pm.Encode(nil)); err != nil {
				return nil, ExtendedError{Err: err}
			}

		case *pgproto.AuthenticationSASL:
			supported := false
			for _, mech := range m.AuthMechanisms {
				if mech == sasl.ScramSha256.Name {
					supported = true
				}
			}
			if !supported {
				return nil, ExtendedError{Err: fmt.Errorf("server does not support SCRAM-SHA-256: %v", m.AuthMechanisms)}
			}

			creds := sasl.Credentials(func() (Username, Password, Identity []byte) {
				return []byte(params.User), []byte(params.Password), nil
			})
			scram = sasl.NewClient(sasl.ScramSha256, creds)

			_, resp, err := scram.Step(nil)
			if err != nil {
				return nil, ExtendedError{Err: err}
			}
			ir := &pgproto.SASLInitialResponse{AuthMechanism: sasl.ScramSha256.Name, Data: resp}
			if _, err := rw.Write(ir.Encode(nil)); err != nil {
				return nil, ExtendedError{Err: err}
			}

		case *pgproto.AuthenticationSASLContinue:
			if scram == nil {
				return nil, ExtendedError{Err: errors.New("server sent SASL challenge without SASL negotiation")}
			}
			_, resp, err := scram.Step(m.Data)
			if err != nil {
				return nil, ExtendedError{Err: err}
			}
			sr := &pgproto.SASLResponse{Data: resp}
			if _, err := rw.Write(sr.Encode(nil)); err != nil {
				return nil, ExtendedError{Err: err}
			}

		case *pgproto.AuthenticationSASLFinal:
			if scram == nil {
				return nil, ExtendedError{Err: errors.New("server sent SASL verifier without SASL negotiation")}
			}
			if _, _, err := scram.Step(m.Data); err != nil {
				return nil, ExtendedError{Err: err}
			}

		case *pgproto.ParameterStatus:
			if c.st.Parameters == nil {
				c.st.Parameters = make(map[string]string)
			}
			c.st.Parameters[m.Name] = m.Value

		case *pgproto.BackendKeyData:
			c.st.BackendKey = *m

		case *pgproto.NoticeResponse:
			c.log(ctx, LogLevelInfo, "notice during connect", map[string]interface{}{"message": m.Message})

		case *pgproto.ErrorResponse:
			return nil, ExtendedError{Err: pgerr.ExecServerError, Diag: m.Diagnostic()}

		case *pgproto.ReadyForQuery:
			c.st.TxStatus = m.TxStatus
			c.log(ctx, LogLevelInfo, "connection established", map[string]interface{}{"user": params.User, "database": params.Database})
			return c, ExtendedError{}

		default:
			return nil, ExtendedError{Err: fmt.Errorf("unexpected message during connect: %T", msg)}
		}
	}
}

func hexMD5(s string) string {
	hash := md5.Sum([]byte(s))
	return hex.EncodeToString(hash[:])
}

// Exec submits req and routes the reply stream into the handlers. With
// no handlers the whole response is consumed and discarded. With more
// than one, each handler consumes the region its Setup claims.
//
// A transport error makes the connection unusable; the error is
// returned with an empty diagnostic.
func (c *Conn) Exec(ctx context.Context, req *Request, handlers ...ResponseHandler) ExtendedError {
	if c.closed {
		return ExtendedError{Err: errors.New("connection is closed")}
	}

	var resp ResponseHandler
	switch len(handlers) {
	case 0:
		resp = Ignore()
	case 1:
		resp = handlers[0]
	default:
		resp = NewResponse(handlers...)
	}

	c.log(ctx, LogLevelDebug, "exec", map[string]interface{}{"messages": len(req.Messages())})

	fsm := NewExecFSM(req, resp)
	var ioErr error
	var n int

	for {
		if err := ctx.Err(); err != nil && ioErr == nil {
			ioErr = err
		}

		intent := fsm.Resume(&c.st, ioErr, n)
		ioErr, n = nil, 0

		switch intent.Kind {
		case IntentWrite:
			_, ioErr = c.rw.Write(intent.Data)
		case IntentRead:
			n, ioErr = c.rw.Read(intent.Buf)
		case IntentDone:
			if intent.Result.Failed() {
				c.log(ctx, LogLevelError, "exec failed", map[string]interface{}{"err": intent.Result.Error()})
			}
			return intent.Result
		}
	}
}

// Close sends Terminate and, when the transport is an io.Closer, closes
// it. The connection is unusable afterwards.
func (c *Conn) Close(ctx context.Context) error {
	if c.closed {
		return nil
	}
	c.closed = true

	_, writeErr := c.rw.Write((&pgproto.Terminate{}).Encode(nil))
	if closer, ok := c.rw.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return err
		}
	}
	return writeErr
}
