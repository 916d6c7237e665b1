package conn

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRegistry_SharesConnection tests that repeated lookups for the same
// agent return the same instance.
func TestRegistry_SharesConnection(t *testing.T) {
	r := NewRegistry(nil)

	a := r.Get(Options{Agent: "user"})
	b := r.Get(Options{Agent: "user"})

	require.Same(t, a, b)
}

// TestRegistry_AgentChangeRecreates tests identity-based invalidation: a
// different agent discards the cached connection.
func TestRegistry_AgentChangeRecreates(t *testing.T) {
	rt := newMockRuntime(t, func(int, map[string]any) (string, bool) {
		return okReply(`{}`)
	})

	r := NewRegistry(nil)

	first := r.Get(Options{Agent: "user", Host: "127.0.0.1", Port: rt.port()})
	require.True(t, first.Connect(context.Background()))

	second := r.Get(Options{Agent: "mcp", Host: "127.0.0.1", Port: rt.port()})

	require.NotSame(t, first, second)
	require.False(t, first.Identified(), "old connection must be discarded")
	require.Equal(t, "mcp", second.Agent())
}

// TestRegistry_LazyConnect tests that Get never dials: the registry stays
// usable while the runtime is down.
func TestRegistry_LazyConnect(t *testing.T) {
	r := NewRegistry(nil)

	c := r.Get(Options{Agent: "user", Host: "127.0.0.1", Port: 1})

	require.NotNil(t, c)
	require.False(t, c.Identified())
}

// TestRegistry_ConcurrentGet tests that concurrent lookups race-free return
// one shared instance.
func TestRegistry_ConcurrentGet(t *testing.T) {
	r := NewRegistry(nil)

	var wg sync.WaitGroup

	conns := make([]*Connection, 16)
	for i := range conns {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conns[i] = r.Get(Options{Agent: "user"})
		}()
	}
	wg.Wait()

	for _, c := range conns {
		require.Same(t, conns[0], c)
	}
}

// TestRegistry_Close tests that Close drops the cached connection.
func TestRegistry_Close(t *testing.T) {
	r := NewRegistry(nil)

	first := r.Get(Options{Agent: "user"})
	r.Close()
	second := r.Get(Options{Agent: "user"})

	require.NotSame(t, first, second)
}
