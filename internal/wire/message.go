package wire

// JSON-RPC methods with special handling on the wire.
const (
	// MethodHello is the handshake method identifying the client.
	MethodHello = "hello"

	// MethodToolsCall is the generic envelope method that multiplexes an
	// open set of logical commands.
	MethodToolsCall = "tools/call"

	// MethodResourcesList lists resources exposed by the runtime. It is
	// sent as a direct JSON-RPC call, never wrapped.
	MethodResourcesList = "resources/list"
)

// Version is the JSON-RPC protocol version placed on every message.
const Version = "2.0"

// Request is an outbound JSON-RPC request.
//
// Wire format:
//
//	{"jsonrpc":"2.0","method":"tools/call","params":{...},"id":"req_..."}\n
type Request struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
	ID      any    `json:"id,omitempty"`
}

// Response is an inbound JSON-RPC response. Exactly one of Result and
// Error is present.
//
// Wire format for success:
//
//	{"jsonrpc":"2.0","result":{...},"id":"req_..."}\n
//
// Wire format for error:
//
//	{"jsonrpc":"2.0","error":{"code":-32000,"message":"...","data":{...}},"id":"req_..."}\n
type Response struct {
	JSONRPC string         `json:"jsonrpc"`
	Result  map[string]any `json:"result"`
	Error   *RPCError      `json:"error"`
	ID      any            `json:"id"`
}

// RPCError is the JSON-RPC error object reported by the runtime.
type RPCError struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// HelloParams identifies the client during the handshake.
type HelloParams struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Agent   string `json:"agent"`
	PID     int    `json:"pid"`

	// Token is the optional auth token. Omitted from the wire when empty.
	Token string `json:"token,omitempty"`
}

// envelope wraps a logical command for transport under tools/call.
type envelope struct {
	Name      string `json:"name"`
	Arguments any    `json:"arguments"`
}

// BuildRequest converts a logical command into its wire-level request.
//
// tools/call requests already carrying name and arguments pass through
// unchanged, as does resources/list which the runtime accepts as a direct
// JSON-RPC method. Every other method is wrapped into the tools/call
// envelope {"name": method, "arguments": params}, letting a single
// wire-level method multiplex an open command set.
func BuildRequest(method string, params map[string]any, id any) *Request {
	if method == MethodToolsCall && params != nil {
		_, hasName := params["name"]
		_, hasArgs := params["arguments"]
		if hasName && hasArgs {
			return &Request{JSONRPC: Version, Method: method, Params: params, ID: id}
		}
	}

	if method == MethodHello || method == MethodResourcesList {
		if params == nil {
			params = map[string]any{}
		}

		return &Request{JSONRPC: Version, Method: method, Params: params, ID: id}
	}

	var args any = params
	if params == nil {
		args = map[string]any{}
	}

	return &Request{
		JSONRPC: Version,
		Method:  MethodToolsCall,
		Params:  envelope{Name: method, Arguments: args},
		ID:      id,
	}
}
