// Package supex is a Go driver for the Supex desktop runtime.
//
// The runtime exposes a scripting surface over a local TCP socket speaking
// newline-delimited JSON-RPC 2.0. This package maintains one persistent,
// identified connection to it: a versioned hello handshake runs on
// connect, broken or idle sockets are detected and replaced, and
// transient transport failures are retried with a reconnect between
// attempts.
//
// # Quick start
//
//	cfg, err := supex.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	c := supex.NewConnection(cfg.ConnOptions("user", nil))
//	result, err := c.SendCommand(ctx, "get_model_info", nil, nil)
//
// Commands other than the handshake and resources/list are wrapped into a
// generic tools/call envelope on the wire, so the command namespace is
// open: method names and params are opaque payloads interpreted by the
// runtime.
//
// # Shared connections
//
// A Registry shares one connection across callers keyed by agent
// identity. Handing the same Registry to the CLI and the MCP server gives
// them one socket as long as they present the same identity; changing the
// identity discards the cached connection and creates a fresh one lazily.
//
// # Errors
//
// Failures surface as four distinct, catchable kinds: ConnectionError
// (socket or handshake failure, retries exhausted), TimeoutError (no
// response in time), ProtocolError (oversized, truncated, or malformed
// frames), and RemoteError (the runtime executed the command and reported
// an application-level failure, with code, message, and diagnostic data
// passed through verbatim). Check them with errors.As, or errors.Is
// against the exported sentinels.
package supex
