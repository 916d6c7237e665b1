package conn

import (
	"bufio"
	"encoding/json"
	"net"
	"strconv"
	"sync"
	"testing"
)

// mockRuntime is an in-process TCP peer speaking the runtime's
// newline-delimited JSON-RPC protocol. It accepts the hello handshake and
// delegates every subsequent request to a scripted respond function.
type mockRuntime struct {
	t  *testing.T
	ln net.Listener

	// respond receives the 1-based command sequence number and the decoded
	// request. Returning keepOpen=false closes the connection without
	// writing anything, simulating a reset mid-request.
	respond func(n int, req map[string]any) (reply string, keepOpen bool)

	// rejectHello makes the peer answer the handshake with a JSON-RPC error.
	rejectHello bool

	mu       sync.Mutex
	hellos   []map[string]any
	requests []map[string]any
	commands int

	wg    sync.WaitGroup
	conns []net.Conn
}

func newMockRuntime(t *testing.T, respond func(n int, req map[string]any) (string, bool)) *mockRuntime {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	rt := &mockRuntime{t: t, ln: ln, respond: respond}

	rt.wg.Add(1)
	go rt.acceptLoop()

	t.Cleanup(rt.close)

	return rt
}

func (rt *mockRuntime) acceptLoop() {
	defer rt.wg.Done()

	for {
		c, err := rt.ln.Accept()
		if err != nil {
			return
		}

		rt.mu.Lock()
		rt.conns = append(rt.conns, c)
		rt.mu.Unlock()

		rt.wg.Add(1)
		go rt.serve(c)
	}
}

func (rt *mockRuntime) serve(c net.Conn) {
	defer rt.wg.Done()
	defer c.Close()

	scanner := bufio.NewScanner(c)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		var req map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
			return
		}

		if req["method"] == "hello" {
			rt.mu.Lock()
			params, _ := req["params"].(map[string]any)
			rt.hellos = append(rt.hellos, params)
			reject := rt.rejectHello
			rt.mu.Unlock()

			if reject {
				c.Write([]byte(`{"jsonrpc":"2.0","error":{"code":-32001,"message":"unauthorized"},"id":"hello"}` + "\n"))

				return
			}

			c.Write([]byte(`{"jsonrpc":"2.0","result":{"name":"supex-runtime","version":"9.9.0"},"id":"hello"}` + "\n"))

			continue
		}

		rt.mu.Lock()
		rt.commands++
		n := rt.commands
		rt.requests = append(rt.requests, req)
		rt.mu.Unlock()

		reply, keepOpen := rt.respond(n, req)
		if !keepOpen {
			return
		}

		c.Write([]byte(reply))
	}
}

// closeConns drops every accepted connection while keeping the listener
// up, simulating a runtime restart.
func (rt *mockRuntime) closeConns() {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	for _, c := range rt.conns {
		c.Close()
	}

	rt.conns = rt.conns[:0]
}

func (rt *mockRuntime) close() {
	rt.ln.Close()

	rt.mu.Lock()
	for _, c := range rt.conns {
		c.Close()
	}
	rt.mu.Unlock()

	rt.wg.Wait()
}

func (rt *mockRuntime) port() int {
	_, portStr, _ := net.SplitHostPort(rt.ln.Addr().String())
	port, _ := strconv.Atoi(portStr)

	return port
}

func (rt *mockRuntime) helloCount() int {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	return len(rt.hellos)
}

func (rt *mockRuntime) commandCount() int {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	return rt.commands
}

func (rt *mockRuntime) lastHello() map[string]any {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if len(rt.hellos) == 0 {
		return nil
	}

	return rt.hellos[len(rt.hellos)-1]
}

func (rt *mockRuntime) lastRequest() map[string]any {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if len(rt.requests) == 0 {
		return nil
	}

	return rt.requests[len(rt.requests)-1]
}

// okReply is a minimal success response for scripted peers.
func okReply(result string) (string, bool) {
	return `{"jsonrpc":"2.0","result":` + result + `,"id":"x"}` + "\n", true
}
