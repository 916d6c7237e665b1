package supex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestErrorReExports tests that the four error kinds are usable through the
// public package surface.
func TestErrorReExports(t *testing.T) {
	kinds := []SupexError{
		&ConnectionError{Msg: "not connected to runtime"},
		&TimeoutError{Timeout: 15 * time.Second},
		&ProtocolError{Reason: "invalid response from runtime", Malformed: true},
		&RemoteError{Code: -32000, Message: "boom"},
	}

	for _, k := range kinds {
		require.Error(t, k)
		require.True(t, k.IsSupexError())
	}
}

// TestSentinelErrors tests that sentinel errors survive wrapping.
func TestSentinelErrors(t *testing.T) {
	err := &ConnectionError{
		Msg: "not connected to runtime",
		Err: ErrNotConnected,
	}

	require.ErrorIs(t, err, ErrNotConnected)
	require.Contains(t, err.Error(), "not connected to runtime")
}

// TestRemoteError_Diagnostics tests structured diagnostics through the
// re-exported type.
func TestRemoteError_Diagnostics(t *testing.T) {
	err := &RemoteError{
		Code:    -32000,
		Message: "undefined method",
		Data: map[string]any{
			"file": "model.rb",
			"line": float64(42),
			"hint": "check the method name",
		},
	}

	require.Equal(t, "model.rb", err.File())
	require.Equal(t, 42, err.Line())
	require.Contains(t, err.Hint(), "check the method name")
}
