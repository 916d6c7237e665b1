package supex

import (
	"log/slog"

	"github.com/supexhq/supex-go/internal/config"
	"github.com/supexhq/supex-go/internal/conn"
	"github.com/supexhq/supex-go/internal/version"
)

// ClientName identifies this driver in the hello handshake.
const ClientName = conn.ClientName

// Version returns the driver build version.
func Version() string {
	return version.Version
}

// Connection is a persistent client session with the Supex runtime.
type Connection = conn.Connection

// Options configures a Connection.
type Options = conn.Options

// Registry shares one Connection across callers keyed by agent identity.
type Registry = conn.Registry

// Config is the environment-driven configuration surface.
type Config = config.Config

// NewConnection creates a disconnected Connection; the socket is
// established lazily by the first SendCommand.
func NewConnection(opts Options) *Connection {
	return conn.New(opts)
}

// NewRegistry creates an empty connection registry.
func NewRegistry(log *slog.Logger) *Registry {
	return conn.NewRegistry(log)
}

// LoadConfig reads SUPEX_* environment configuration with defaults.
func LoadConfig() (*Config, error) {
	return config.Load()
}
