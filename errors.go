package supex

import "github.com/supexhq/supex-go/internal/errors"

// Re-export error types from internal package

// ConnectionError indicates the socket could not be opened, the handshake
// failed, the peer closed unexpectedly, or all retries were exhausted.
type ConnectionError = errors.ConnectionError

// TimeoutError indicates no response arrived within the configured timeout.
type TimeoutError = errors.TimeoutError

// ProtocolError indicates an oversized, truncated, or malformed response.
type ProtocolError = errors.ProtocolError

// RemoteError indicates an application-level failure reported by the runtime.
type RemoteError = errors.RemoteError

// SupexError is the base interface for all driver errors.
type SupexError = errors.SupexError

// Re-export sentinel errors from internal package.
var (
	// ErrNotConnected indicates no connection to the runtime could be established.
	ErrNotConnected = errors.ErrNotConnected

	// ErrHandshakeFailed indicates the hello handshake was rejected by the runtime.
	ErrHandshakeFailed = errors.ErrHandshakeFailed

	// ErrPeerClosed indicates the runtime closed the connection before replying.
	ErrPeerClosed = errors.ErrPeerClosed
)
