// Package errors defines error types for the Supex driver.
//
// This package provides structured error types for the four failure kinds
// of the runtime bridge: transport failures (ConnectionError), request
// timeouts (TimeoutError), framing and decoding failures (ProtocolError),
// and application-level failures reported by the runtime (RemoteError).
// All error types support error unwrapping and can be checked using
// errors.Is and errors.As.
package errors
