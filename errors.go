package pgreq

import (
	"github.com/jackc/pgreq/pgproto"
)

// ExtendedError is the outcome of an operation against the server. A
// nil Err means success. Diag carries the server's structured
// diagnostic when Err is pgerr.ExecServerError, and is zero otherwise.
type ExtendedError struct {
	Err  error
	Diag pgproto.Diagnostic
}

// Failed reports whether the operation failed.
func (e ExtendedError) Failed() bool {
	return e.Err != nil
}

func (e ExtendedError) Error() string {
	if e.Err == nil {
		return "<nil>"
	}
	if s := e.Diag.String(); s != "" {
		return e.Err.Error() + ": " + s
	}
	return e.Err.Error()
}

func (e ExtendedError) Unwrap() error {
	return e.Err
}
