// Package conn manages the persistent TCP connection to the Supex runtime.
//
// A Connection owns one outbound socket, performs the versioned hello
// handshake, tracks idle health, and retries transient transport failures
// with a reconnect between attempts. SendCommand is the single high-level
// operation; every caller in the repository goes through it.
//
// The Registry shares one Connection across concurrent callers keyed by
// agent identity, recreating it when the identity changes.
package conn
