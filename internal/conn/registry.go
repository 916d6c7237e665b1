package conn

import (
	"log/slog"
	"sync"
)

// Registry holds the single shared Connection, keyed by agent identity.
//
// Callers from different entry points (CLI, MCP server) share one runtime
// connection as long as they present the same agent identity. When the
// identity changes, the cached connection is discarded and a fresh one is
// created lazily; the first command on it pays for the connect and
// handshake.
//
// Registry replaces module-global connection state with an explicitly owned
// object passed to callers by reference.
type Registry struct {
	log *slog.Logger

	mu   sync.Mutex
	conn *Connection
}

// NewRegistry creates an empty registry.
func NewRegistry(log *slog.Logger) *Registry {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Registry{log: log.With("component", "registry")}
}

// Get returns the shared Connection for opts.Agent, creating it on first
// use. The registry lock covers only lookup and swap; network I/O happens
// later on the connection's own lock, so a long-running send does not block
// unrelated lookups.
func (r *Registry) Get(opts Options) *Connection {
	if opts.Agent == "" {
		opts.Agent = "unknown"
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conn != nil && r.conn.Agent() != opts.Agent {
		r.log.Debug("Agent changed, recreating connection",
			"old_agent", r.conn.Agent(), "new_agent", opts.Agent)
		r.conn.Disconnect()
		r.conn = nil
	}

	if r.conn == nil {
		// Connection is established on first use, so the registry stays
		// usable even while the runtime is not running.
		r.conn = New(opts)
		r.log.Debug("Created runtime connection", "agent", opts.Agent)
	}

	return r.conn
}

// Close disconnects and drops the cached connection, if any.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conn != nil {
		r.conn.Disconnect()
		r.conn = nil
	}
}
