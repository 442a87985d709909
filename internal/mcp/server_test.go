package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixml/intervalgen/application/service"
	"github.com/helixml/intervalgen/domain/interval"
	"github.com/helixml/intervalgen/internal/config"
)

type toolResult struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	IsError bool `json:"isError"`
}

// sendMessage marshals a JSON-RPC request, sends it through HandleMessage,
// and returns the JSONRPCResponse.
func sendMessage(t *testing.T, srv *Server, method string, id int, params map[string]any) mcp.JSONRPCResponse {
	t.Helper()

	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
	}
	if params != nil {
		msg["params"] = params
	}

	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	result := srv.MCPServer().HandleMessage(context.Background(), raw)
	resp, ok := result.(mcp.JSONRPCResponse)
	require.Truef(t, ok, "expected JSONRPCResponse, got %T: %+v", result, result)
	return resp
}

// resultJSON re-marshals the Result field through JSON into dst.
func resultJSON(t *testing.T, resp mcp.JSONRPCResponse, dst any) {
	t.Helper()
	b, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, dst))
}

func testServer(t *testing.T) *Server {
	t.Helper()
	schedules, err := service.NewSchedule(
		config.NewGenerationConfig().WithMaxIntervals(100),
		config.NewCacheConfig(),
		nil, nil,
	)
	require.NoError(t, err)
	t.Cleanup(schedules.Close)
	return NewServer(schedules, "1.2.3", nil)
}

func initializeParams() map[string]any {
	return map[string]any{
		"protocolVersion": "2025-06-18",
		"capabilities":    map[string]any{},
		"clientInfo": map[string]any{
			"name":    "test-client",
			"version": "0.0.1",
		},
	}
}

func callTool(t *testing.T, srv *Server, args map[string]any) toolResult {
	t.Helper()
	sendMessage(t, srv, "initialize", 1, initializeParams())
	resp := sendMessage(t, srv, "tools/call", 2, map[string]any{
		"name":      "generate_intervals",
		"arguments": args,
	})
	var result toolResult
	resultJSON(t, resp, &result)
	require.NotEmpty(t, result.Content)
	return result
}

func TestServer_Initialize(t *testing.T) {
	srv := testServer(t)
	resp := sendMessage(t, srv, "initialize", 1, initializeParams())

	var result mcp.InitializeResult
	resultJSON(t, resp, &result)

	assert.Equal(t, "intervalgen", result.ServerInfo.Name)
	assert.Equal(t, "1.2.3", result.ServerInfo.Version)
	assert.NotNil(t, result.Capabilities.Tools)
}

func TestServer_ListTools(t *testing.T) {
	srv := testServer(t)
	sendMessage(t, srv, "initialize", 1, initializeParams())

	resp := sendMessage(t, srv, "tools/list", 2, nil)
	var result mcp.ListToolsResult
	resultJSON(t, resp, &result)

	tools := map[string]mcp.Tool{}
	for _, tool := range result.Tools {
		tools[tool.Name] = tool
	}
	require.Len(t, tools, 2)
	require.Contains(t, tools, "generate_intervals")
	require.Contains(t, tools, "get_version")

	schema := tools["generate_intervals"].InputSchema
	for _, param := range []string{"begin", "end", "granularity", "count", "fixed", "week_start"} {
		assert.Contains(t, schema.Properties, param)
	}
	assert.ElementsMatch(t, []string{"begin", "end", "granularity"}, schema.Required)
}

func TestServer_GenerateIntervals(t *testing.T) {
	srv := testServer(t)

	result := callTool(t, srv, map[string]any{
		"begin":       "2016-01-03",
		"end":         "2016-01-30",
		"granularity": "week",
		"fixed":       true,
	})
	require.False(t, result.IsError, result.Content[0].Text)

	var records []interval.Record
	require.NoError(t, json.Unmarshal([]byte(result.Content[0].Text), &records))
	require.Len(t, records, 5)
	assert.Equal(t, "2016-01-03", *records[0].BeginDate)
	assert.True(t, *records[0].IsPartial)
	assert.Equal(t, "2016-01-30", *records[4].EndDate)
	assert.True(t, *records[4].IsPartial)
	assert.False(t, *records[2].IsPartial)
}

func TestServer_GenerateIntervals_Count(t *testing.T) {
	srv := testServer(t)

	result := callTool(t, srv, map[string]any{
		"begin":       "2016-01-01",
		"end":         "2016-01-01",
		"granularity": "d",
		"count":       3,
	})
	require.False(t, result.IsError, result.Content[0].Text)
	assert.JSONEq(t, `[{"begin_date":"2016-01-01","end_date":"2016-01-01","is_partial":true}]`, result.Content[0].Text)
}

func TestServer_GenerateIntervals_Errors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"missing begin", map[string]any{"end": "2016-01-01", "granularity": "day"}, "begin is required"},
		{"reversed", map[string]any{"begin": "2016-02-01", "end": "2016-01-01", "granularity": "day"}, interval.ErrInvalidRange.Error()},
		{"unknown granularity", map[string]any{"begin": "2016-01-01", "end": "2016-01-02", "granularity": "hour"}, interval.ErrUnsupportedGranularity.Error()},
		{"too many", map[string]any{"begin": "2016-01-01", "end": "2016-12-31", "granularity": "day"}, interval.ErrTooManyIntervals.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := callTool(t, testServer(t), tt.args)
			assert.True(t, result.IsError)
			assert.Contains(t, result.Content[0].Text, tt.want)
		})
	}
}

func TestServer_GetVersion(t *testing.T) {
	srv := testServer(t)
	sendMessage(t, srv, "initialize", 1, initializeParams())

	resp := sendMessage(t, srv, "tools/call", 2, map[string]any{"name": "get_version"})
	var result toolResult
	resultJSON(t, resp, &result)
	require.Len(t, result.Content, 1)
	assert.Equal(t, "1.2.3", result.Content[0].Text)
}
