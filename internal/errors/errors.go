package errors

import (
	"errors"
	"fmt"
	"time"
)

// SupexError is the base interface for all driver errors.
type SupexError interface {
	error
	IsSupexError() bool
}

// Compile-time verification that all error types implement SupexError.
var (
	_ SupexError = (*ConnectionError)(nil)
	_ SupexError = (*TimeoutError)(nil)
	_ SupexError = (*ProtocolError)(nil)
	_ SupexError = (*RemoteError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrNotConnected indicates no connection to the runtime could be established.
	ErrNotConnected = errors.New("not connected to runtime")

	// ErrHandshakeFailed indicates the hello handshake was rejected by the runtime.
	ErrHandshakeFailed = errors.New("hello handshake failed")

	// ErrPeerClosed indicates the runtime closed the connection before replying.
	ErrPeerClosed = errors.New("connection closed by runtime")
)

// ConnectionError indicates the socket could not be opened, the handshake
// failed, the peer closed unexpectedly, or all retries were exhausted.
type ConnectionError struct {
	// Msg describes the failure.
	Msg string

	// Attempts is the number of send attempts made before giving up.
	// Zero when the error did not come from the retry loop.
	Attempts int

	Err error
}

func (e *ConnectionError) Error() string {
	if e.Attempts > 0 {
		return fmt.Sprintf("%s after %d attempts: %v", e.Msg, e.Attempts, e.Err)
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}

	return e.Msg
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsSupexError implements SupexError.
func (e *ConnectionError) IsSupexError() bool { return true }

// TimeoutError indicates no response arrived within the configured timeout
// with zero bytes received. It counts toward the retry budget and is wrapped
// into ConnectionError once retries are exhausted.
type TimeoutError struct {
	// Timeout is the deadline that elapsed.
	Timeout time.Duration

	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("no response within %s", e.Timeout)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// IsSupexError implements SupexError.
func (e *TimeoutError) IsSupexError() bool { return true }

// ProtocolError indicates the response exceeded the size limit, was
// incomplete, or was not valid JSON.
//
// Malformed distinguishes the JSON-corruption case, which is never retried:
// retrying cannot fix the same corrupt bytes. Truncation and size overruns
// leave Malformed false and participate in the standard retry loop.
type ProtocolError struct {
	// Reason describes the framing or decoding failure.
	Reason string

	// RawData holds a prefix of the offending bytes, when available.
	RawData string

	// Malformed is true when the response was not valid JSON.
	Malformed bool

	Err error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}

	return e.Reason
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// IsSupexError implements SupexError.
func (e *ProtocolError) IsSupexError() bool { return true }

// RemoteError indicates the runtime executed the request and reported an
// application-level failure via the JSON-RPC error field. It is never
// retried: the command failed on its merits.
type RemoteError struct {
	// Code is the numeric JSON-RPC error code.
	Code int

	// Message is the error message reported by the runtime.
	Message string

	// Data carries optional structured diagnostics (file, line, hint),
	// passed through verbatim for the caller to render.
	Data map[string]any
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("runtime error %d: %s", e.Code, e.Message)
}

// IsSupexError implements SupexError.
func (e *RemoteError) IsSupexError() bool { return true }

// Hint returns the "hint" diagnostic from Data, if present.
func (e *RemoteError) Hint() string {
	return e.dataString("hint")
}

// File returns the "file" diagnostic from Data, if present.
func (e *RemoteError) File() string {
	return e.dataString("file")
}

// Line returns the "line" diagnostic from Data, or zero.
func (e *RemoteError) Line() int {
	if e.Data == nil {
		return 0
	}

	switch v := e.Data["line"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}

	return 0
}

func (e *RemoteError) dataString(key string) string {
	if e.Data == nil {
		return ""
	}

	if s, ok := e.Data[key].(string); ok {
		return s
	}

	return ""
}
