package conn

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/supexhq/supex-go/internal/errors"
	"github.com/supexhq/supex-go/internal/version"
	"github.com/supexhq/supex-go/internal/wire"
)

// ClientName identifies this driver in the hello handshake.
const ClientName = "supex-go"

// Defaults applied by New when the corresponding option is zero.
const (
	DefaultHost    = "localhost"
	DefaultPort    = 9876
	DefaultTimeout = 15 * time.Second
	DefaultMaxIdle = 5 * time.Minute
)

// Options configures a Connection.
type Options struct {
	Host    string
	Port    int
	Timeout time.Duration

	// Agent is the logical identity of the caller (e.g. "user", "mcp").
	Agent string

	// Token is the optional auth token sent in the hello handshake.
	Token string

	// MaxRetries is the number of extra send attempts after the first.
	MaxRetries int

	// MaxResponseBytes bounds a single framed response.
	MaxResponseBytes int

	// MaxIdle is how long a connection may sit unused before it is
	// discarded and re-established instead of reused.
	MaxIdle time.Duration

	Logger *slog.Logger
}

// Connection is a persistent client session with the Supex runtime.
//
// A Connection owns exactly one outbound TCP socket. It is safe for
// concurrent use: callers issuing commands on the same Connection are
// serialized on the socket.
type Connection struct {
	host       string
	port       int
	timeout    time.Duration
	agent      string
	token      string
	maxRetries int
	maxResp    int
	maxIdle    time.Duration
	log        *slog.Logger

	// ioMu serializes send/receive cycles on the socket. Held for the
	// duration of a SendCommand so two callers never interleave frames.
	ioMu sync.Mutex

	// mu guards the session state below for concurrent observers.
	mu           sync.Mutex
	sock         net.Conn
	identified   bool
	lastActivity time.Time

	dial func(ctx context.Context) (net.Conn, error)
}

// New creates a disconnected Connection. The socket is established lazily
// by the first SendCommand, or explicitly via Connect.
func New(opts Options) *Connection {
	if opts.Host == "" {
		opts.Host = DefaultHost
	}

	if opts.Port == 0 {
		opts.Port = DefaultPort
	}

	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	if opts.MaxResponseBytes <= 0 {
		opts.MaxResponseBytes = wire.DefaultMaxResponseBytes
	}

	if opts.MaxIdle <= 0 {
		opts.MaxIdle = DefaultMaxIdle
	}

	if opts.Agent == "" {
		opts.Agent = "unknown"
	}

	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	c := &Connection{
		host:       opts.Host,
		port:       opts.Port,
		timeout:    opts.Timeout,
		agent:      opts.Agent,
		token:      opts.Token,
		maxRetries: opts.MaxRetries,
		maxResp:    opts.MaxResponseBytes,
		maxIdle:    opts.MaxIdle,
		log:        log.With("component", "connection", "agent", opts.Agent),
	}

	c.dial = func(ctx context.Context) (net.Conn, error) {
		d := net.Dialer{Timeout: c.timeout}

		return d.DialContext(ctx, "tcp", net.JoinHostPort(c.host, strconv.Itoa(c.port)))
	}

	return c
}

// Agent returns the identity this connection was created for.
func (c *Connection) Agent() string {
	return c.agent
}

// Identified reports whether the hello handshake has completed on the
// current socket.
func (c *Connection) Identified() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.identified
}

// LastActivity returns the time of the last successful request/response
// cycle, or the zero time if none has completed.
func (c *Connection) LastActivity() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lastActivity
}

// Connect establishes a fresh socket to the runtime and performs the hello
// handshake. Any existing socket is discarded first; Connect never reuses a
// half-open socket.
//
// Returns false on any failure, leaving the Connection fully disconnected.
func (c *Connection) Connect(ctx context.Context) bool {
	c.Disconnect()

	sock, err := c.dial(ctx)
	if err != nil {
		c.log.Error("Failed to connect to runtime", "host", c.host, "port", c.port, "error", err)

		return false
	}

	// Small control messages must not sit in Nagle's buffer.
	if tcp, ok := sock.(*net.TCPConn); ok {
		if err := tcp.SetNoDelay(true); err != nil {
			c.log.Warn("Failed to disable Nagle's algorithm", "error", err)
		}
	}

	c.log.Debug("Connected to runtime", "host", c.host, "port", c.port)

	if err := c.sendHello(sock); err != nil {
		c.log.Error("Hello handshake failed", "error", err)
		sock.Close()

		return false
	}

	c.mu.Lock()
	c.sock = sock
	c.identified = true
	c.lastActivity = time.Now()
	c.mu.Unlock()

	return true
}

// sendHello identifies this client to the runtime before any functional
// command is accepted.
func (c *Connection) sendHello(sock net.Conn) error {
	params := wire.HelloParams{
		Name:    ClientName,
		Version: version.Version,
		Agent:   c.agent,
		PID:     os.Getpid(),
		Token:   c.token,
	}

	req := &wire.Request{
		JSONRPC: wire.Version,
		Method:  wire.MethodHello,
		Params:  params,
		ID:      "hello",
	}

	frame, err := wire.Encode(req)
	if err != nil {
		return err
	}

	if err := c.write(sock, frame); err != nil {
		return err
	}

	respFrame, err := wire.ReadFrame(sock, c.timeout, c.maxResp)
	if err != nil {
		return err
	}

	resp, err := wire.DecodeResponse(respFrame)
	if err != nil {
		return err
	}

	if resp.Error != nil {
		c.log.Error("Runtime rejected hello", "code", resp.Error.Code, "message", resp.Error.Message)

		return errors.ErrHandshakeFailed
	}

	c.log.Debug("Hello handshake successful", "result", resp.Result)

	return nil
}

// Disconnect closes the socket if present and clears the session state.
// It never fails; close errors are logged and swallowed.
func (c *Connection) Disconnect() {
	c.mu.Lock()
	sock := c.sock
	c.sock = nil
	c.identified = false
	c.mu.Unlock()

	if sock == nil {
		return
	}

	if err := sock.Close(); err != nil {
		c.log.Debug("Error closing runtime socket", "error", err)
	}
}

// healthy is a cheap non-destructive liveness probe deciding whether the
// existing connection can be reused instead of paying for a full
// reconnect and handshake.
func (c *Connection) healthy() bool {
	c.mu.Lock()
	sock := c.sock
	identified := c.identified
	idle := time.Since(c.lastActivity)
	c.mu.Unlock()

	if sock == nil || !identified {
		return false
	}

	// A long-idle socket may be half-closed on the far side without our
	// kernel knowing. Reconnect rather than risk sending into a dead peer.
	if idle > c.maxIdle {
		c.log.Debug("Connection idle too long, forcing reconnect", "idle", idle, "max_idle", c.maxIdle)

		return false
	}

	return peekAlive(sock, c.log)
}

// SendCommand sends a JSON-RPC request to the runtime and returns the
// result payload. It is the sole high-level operation of the driver.
//
// A healthy identified connection is reused; otherwise a fresh connect and
// handshake run first. Transport-level failures (timeout, reset, broken
// pipe, truncated frame) are retried with a reconnect between attempts, up
// to the configured cap. Malformed JSON and runtime-reported errors are
// surfaced immediately: retrying cannot fix corrupt bytes, and re-running
// a command that failed on its merits would only fail again.
func (c *Connection) SendCommand(ctx context.Context, method string, params map[string]any, requestID any) (map[string]any, error) {
	c.ioMu.Lock()
	defer c.ioMu.Unlock()

	if !c.healthy() {
		if !c.Connect(ctx) {
			return nil, &errors.ConnectionError{Msg: "not connected to runtime", Err: errors.ErrNotConnected}
		}
	}

	if requestID == nil {
		requestID = newRequestID()
	}

	req := wire.BuildRequest(method, params, requestID)

	var lastErr error

	attempts := c.maxRetries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := c.attempt(req)
		if err == nil {
			c.mu.Lock()
			c.lastActivity = time.Now()
			c.mu.Unlock()

			return result, nil
		}

		if !retryable(err) {
			var se errors.SupexError
			if !stderrors.As(err, &se) {
				// Unexpected failure: force a future reconnect and
				// surface the error unchanged.
				c.Disconnect()
			}

			return nil, err
		}

		lastErr = err
		c.log.Warn("Transport failure", "method", method, "attempt", attempt, "max_attempts", attempts, "error", err)

		if attempt == attempts {
			break
		}

		c.Disconnect()

		if !c.Connect(ctx) {
			c.log.Error("Failed to reconnect to runtime")

			return nil, &errors.ConnectionError{Msg: "failed to reconnect to runtime", Err: lastErr}
		}
	}

	c.Disconnect()

	return nil, &errors.ConnectionError{
		Msg:      "connection to runtime lost",
		Attempts: attempts,
		Err:      lastErr,
	}
}

// attempt performs one framed request/response cycle on the current socket.
func (c *Connection) attempt(req *wire.Request) (map[string]any, error) {
	c.mu.Lock()
	sock := c.sock
	c.mu.Unlock()

	if sock == nil {
		return nil, &errors.ConnectionError{Msg: "not connected to runtime", Err: errors.ErrNotConnected}
	}

	frame, err := wire.Encode(req)
	if err != nil {
		return nil, err
	}

	c.log.Debug("Sending request", "method", req.Method, "bytes", len(frame))

	if err := c.write(sock, frame); err != nil {
		return nil, err
	}

	respFrame, err := wire.ReadFrame(sock, c.timeout, c.maxResp)
	if err != nil {
		return nil, err
	}

	resp, err := wire.DecodeResponse(respFrame)
	if err != nil {
		return nil, err
	}

	if resp.Error != nil {
		return nil, &errors.RemoteError{
			Code:    resp.Error.Code,
			Message: resp.Error.Message,
			Data:    resp.Error.Data,
		}
	}

	result := resp.Result
	if result == nil {
		result = map[string]any{}
	}

	return result, nil
}

func (c *Connection) write(sock net.Conn, frame []byte) error {
	if err := sock.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		return &errors.ConnectionError{Msg: "set write deadline", Err: err}
	}

	if _, err := sock.Write(frame); err != nil {
		return &errors.ConnectionError{Msg: "send request", Err: err}
	}

	return nil
}

// retryable reports whether a failed attempt may be retried on a fresh
// connection. Timeouts, transport errors and truncated frames can stem
// from transient conditions; malformed JSON and runtime-reported errors
// cannot.
func retryable(err error) bool {
	var terr *errors.TimeoutError
	if stderrors.As(err, &terr) {
		return true
	}

	var cerr *errors.ConnectionError
	if stderrors.As(err, &cerr) {
		return true
	}

	var perr *errors.ProtocolError
	if stderrors.As(err, &perr) {
		return !perr.Malformed
	}

	return false
}

func newRequestID() string {
	return "req_" + ulid.Make().String()
}
