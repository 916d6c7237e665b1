// Package wire implements the newline-delimited JSON-RPC 2.0 framing used
// by the Supex runtime socket protocol.
//
// One message occupies one line: a UTF-8 JSON document followed by a single
// '\n'. There is no length prefix; a message is complete exactly when a
// newline has been observed. JSON strings escape raw newlines, so delimiter
// scanning is unambiguous, and frames stay human-readable on the wire.
package wire
