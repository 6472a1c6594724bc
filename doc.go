// Package pgreq is a low-level native client for the PostgreSQL
// frontend/backend protocol version 3.
//
// A Request is an ordered batch of protocol messages assembled from
// high-level operations (simple query, parse / bind / describe /
// execute, close, sync, flush). A Response routes the server's reply
// stream into response handlers; the ResultSet handler materializes
// result sets into statically declared row types via the pgtype field
// codecs. Conn transports requests over any io.ReadWriter.
//
// pgreq does not pool connections, cache prepared statements, or
// implement COPY, replication or LISTEN/NOTIFY.
package pgreq
