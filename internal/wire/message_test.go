package wire

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestBuildRequest_WrapsGenericCommand tests the tools/call envelope rule.
func TestBuildRequest_WrapsGenericCommand(t *testing.T) {
	req := BuildRequest("get_layers", map[string]any{}, "req_1")

	require.Equal(t, MethodToolsCall, req.Method)

	env, ok := req.Params.(envelope)
	require.True(t, ok)
	require.Equal(t, "get_layers", env.Name)
	require.Equal(t, map[string]any{}, env.Arguments)
}

// TestBuildRequest_NilParamsBecomeEmptyArguments tests that a nil params
// map is sent as an empty arguments object, not null.
func TestBuildRequest_NilParamsBecomeEmptyArguments(t *testing.T) {
	req := BuildRequest("ping", nil, nil)

	data, err := json.Marshal(req)
	require.NoError(t, err)
	require.Contains(t, string(data), `"arguments":{}`)
	require.NotContains(t, string(data), `"id"`)
}

// TestBuildRequest_ToolsCallPassthrough tests that an already-wrapped
// tools/call request is not double-wrapped.
func TestBuildRequest_ToolsCallPassthrough(t *testing.T) {
	params := map[string]any{
		"name":      "eval_code",
		"arguments": map[string]any{"code": "puts 1"},
	}
	req := BuildRequest(MethodToolsCall, params, 7)

	require.Equal(t, MethodToolsCall, req.Method)
	require.Equal(t, params, req.Params)
}

// TestBuildRequest_ResourcesListDirect tests that resources/list is sent
// as a direct JSON-RPC call.
func TestBuildRequest_ResourcesListDirect(t *testing.T) {
	req := BuildRequest(MethodResourcesList, nil, "req_2")

	require.Equal(t, MethodResourcesList, req.Method)
	require.Equal(t, map[string]any{}, req.Params)
}

// TestHelloParams_TokenOmittedWhenEmpty tests conditional token serialization.
func TestHelloParams_TokenOmittedWhenEmpty(t *testing.T) {
	data, err := json.Marshal(HelloParams{
		Name:    "supex-go",
		Version: "0.4.0",
		Agent:   "user",
		PID:     1234,
	})

	require.NoError(t, err)
	require.NotContains(t, string(data), "token")
}

// TestHelloParams_TokenIncludedWhenSet tests token serialization.
func TestHelloParams_TokenIncludedWhenSet(t *testing.T) {
	data, err := json.Marshal(HelloParams{
		Name:    "supex-go",
		Version: "0.4.0",
		Agent:   "mcp",
		PID:     1234,
		Token:   "s3cret",
	})

	require.NoError(t, err)
	require.Contains(t, string(data), `"token":"s3cret"`)
}
