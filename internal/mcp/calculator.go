// Package mcp holds the lab's Model Context Protocol pieces: a stdio
// calculator server, a raw initialize probe for checking a server binary,
// and a bridge that lets the chat model call MCP tools.
package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverVersion = "0.1.0"

// BinaryArgs is the input for all four calculator tools.
type BinaryArgs struct {
	A float64 `json:"a" jsonschema:"first operand"`
	B float64 `json:"b" jsonschema:"second operand"`
}

// BinaryResult is the structured output of the calculator tools.
type BinaryResult struct {
	Result float64 `json:"result"`
}

// NewCalculatorServer returns an MCP server exposing add, subtract,
// multiply and divide.
func NewCalculatorServer() *mcpsdk.Server {
	server := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    "calculator",
		Version: serverVersion,
	}, nil)

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "add",
		Description: "Add two numbers",
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, in BinaryArgs) (*mcpsdk.CallToolResult, BinaryResult, error) {
		return nil, BinaryResult{Result: in.A + in.B}, nil
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "subtract",
		Description: "Subtract the second number from the first",
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, in BinaryArgs) (*mcpsdk.CallToolResult, BinaryResult, error) {
		return nil, BinaryResult{Result: in.A - in.B}, nil
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "multiply",
		Description: "Multiply two numbers",
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, in BinaryArgs) (*mcpsdk.CallToolResult, BinaryResult, error) {
		return nil, BinaryResult{Result: in.A * in.B}, nil
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "divide",
		Description: "Divide the first number by the second",
	}, func(ctx context.Context, req *mcpsdk.CallToolRequest, in BinaryArgs) (*mcpsdk.CallToolResult, BinaryResult, error) {
		if in.B == 0 {
			return nil, BinaryResult{}, fmt.Errorf("cannot divide by zero")
		}
		return nil, BinaryResult{Result: in.A / in.B}, nil
	})

	return server
}

// ServeStdio runs the server over stdin/stdout until the client disconnects
// or the context is cancelled.
func ServeStdio(ctx context.Context, server *mcpsdk.Server) error {
	return server.Run(ctx, &mcpsdk.StdioTransport{})
}
