package server

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codescout/codescout/internal/app"
	"github.com/codescout/codescout/internal/ports"
)

func decodeErrorPayload(t *testing.T, res *mcp.CallToolResult) errorPayload {
	t.Helper()
	require.True(t, res.IsError)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)

	var payload errorPayload
	require.NoError(t, json.Unmarshal([]byte(text.Text), &payload))
	return payload
}

func TestErrorResult_UninitializedProject(t *testing.T) {
	res := errorResult(app.ErrProjectNotInitialized)
	payload := decodeErrorPayload(t, res)
	assert.Equal(t, "project_not_initialized", payload.Code)
	assert.NotEmpty(t, payload.Error)
}

func TestErrorResult_OperationError(t *testing.T) {
	opErr := &app.OperationError{Op: "read_file", Path: "x.py", Err: errors.New("no such file")}
	payload := decodeErrorPayload(t, errorResult(opErr))
	assert.Equal(t, "operation_failed", payload.Code)
	assert.Equal(t, "read_file", payload.Op)
	assert.Equal(t, "x.py", payload.Path)
}

func TestErrorResult_UnknownErrorStaysStructured(t *testing.T) {
	payload := decodeErrorPayload(t, errorResult(errors.New("weird")))
	assert.Equal(t, "internal", payload.Code)
	assert.Equal(t, "weird", payload.Error)
}

func TestParseKind(t *testing.T) {
	kind, err := parseKind("")
	require.NoError(t, err)
	assert.Equal(t, ports.SymbolKind(""), kind)

	kind, err = parseKind("class")
	require.NoError(t, err)
	assert.Equal(t, ports.KindClass, kind)

	kind, err = parseKind("function")
	require.NoError(t, err)
	assert.Equal(t, ports.KindFunction, kind)

	kind, err = parseKind("import")
	require.NoError(t, err)
	assert.Equal(t, ports.KindImport, kind)

	_, err = parseKind("variable")
	assert.Error(t, err)
}

func TestJSONResult(t *testing.T) {
	res := jsonResult(map[string]int{"total": 3})
	require.False(t, res.IsError)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, `"total": 3`)
}
