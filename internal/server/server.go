// Package server exposes the engine's operations as MCP tools over stdio.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/codescout/codescout/internal/app"
)

// Version is reported in the MCP handshake.
const Version = "0.3.0"

// Server wraps an Engine behind an MCP stdio server. Domain failures never
// become protocol errors; they come back as structured error payloads so
// the client always gets a well-formed tool result.
type Server struct {
	engine    *app.Engine
	mcpServer *mcp.Server
}

// New builds the server and registers every tool.
func New(engine *app.Engine) *Server {
	s := &Server{
		engine: engine,
		mcpServer: mcp.NewServer(&mcp.Implementation{
			Name:    "codescout",
			Version: Version,
		}, nil),
	}
	s.registerTools()
	return s
}

// Run serves MCP over stdin/stdout until the context is canceled or the
// client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// textResult wraps a plain message in a tool result.
func textResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}

// jsonResult renders v as indented JSON in a tool result.
func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}
	return textResult(string(data))
}

// errorPayload is the structured error shape returned for domain failures.
type errorPayload struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Op    string `json:"op,omitempty"`
	Path  string `json:"path,omitempty"`
}

// errorResult converts a domain error into a structured payload with
// IsError set. Protocol-level errors are reserved for transport faults.
func errorResult(err error) *mcp.CallToolResult {
	payload := errorPayload{Error: err.Error(), Code: "internal"}

	var opErr *app.OperationError
	switch {
	case errors.Is(err, app.ErrProjectNotInitialized):
		payload.Code = "project_not_initialized"
	case errors.As(err, &opErr):
		payload.Code = "operation_failed"
		payload.Op = opErr.Op
		payload.Path = opErr.Path
	}

	data, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		IsError: true,
	}
}
