package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	openai "github.com/sashabaranov/go-openai"
)

// maxBridgeTurns bounds the tool-call loop so a confused model cannot spin
// forever.
const maxBridgeTurns = 8

// Connect launches an MCP server command and returns a connected client
// session. The caller owns the session and must Close it.
func Connect(ctx context.Context, command string, args ...string) (*mcpsdk.ClientSession, error) {
	client := mcpsdk.NewClient(&mcpsdk.Implementation{
		Name:    "agentlab",
		Version: serverVersion,
	}, nil)
	transport := &mcpsdk.CommandTransport{Command: exec.Command(command, args...)}
	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MCP server %s: %w", command, err)
	}
	return session, nil
}

// ToolSession is the slice of an MCP client session the bridge needs.
// *mcpsdk.ClientSession satisfies it.
type ToolSession interface {
	ListTools(ctx context.Context, params *mcpsdk.ListToolsParams) (*mcpsdk.ListToolsResult, error)
	CallTool(ctx context.Context, params *mcpsdk.CallToolParams) (*mcpsdk.CallToolResult, error)
}

// Completer is the slice of the chat client the bridge needs.
type Completer interface {
	Complete(ctx context.Context, messages []openai.ChatCompletionMessage, tools []openai.Tool) (openai.ChatCompletionMessage, openai.Usage, error)
}

// Bridge lets a chat model answer questions using tools served over MCP:
// the server's tool list is advertised to the model as function tools, and
// every tool call the model makes is executed against the session.
type Bridge struct {
	Model   Completer
	Session ToolSession
	Logger  *slog.Logger
}

func NewBridge(model Completer, session ToolSession) *Bridge {
	return &Bridge{Model: model, Session: session, Logger: slog.Default()}
}

// Run asks the model one question and loops until it answers in plain text
// instead of requesting more tool calls.
func (b *Bridge) Run(ctx context.Context, instructions, question string) (string, error) {
	tools, err := b.openAITools(ctx)
	if err != nil {
		return "", err
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: instructions},
		{Role: openai.ChatMessageRoleUser, Content: question},
	}

	for turn := 0; turn < maxBridgeTurns; turn++ {
		msg, _, err := b.Model.Complete(ctx, messages, tools)
		if err != nil {
			return "", err
		}
		if len(msg.ToolCalls) == 0 {
			if msg.Content == "" {
				return "", fmt.Errorf("model returned neither content nor tool calls")
			}
			return msg.Content, nil
		}

		messages = append(messages, msg)
		for _, call := range msg.ToolCalls {
			content := b.executeToolCall(ctx, call)
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    content,
				ToolCallID: call.ID,
			})
		}
	}
	return "", fmt.Errorf("model did not produce a final answer within %d turns", maxBridgeTurns)
}

// executeToolCall runs one model-requested tool call against the MCP session.
// Failures become the tool message content, so the model can recover or
// report them.
func (b *Bridge) executeToolCall(ctx context.Context, call openai.ToolCall) string {
	b.Logger.Debug("executing MCP tool call", "tool", call.Function.Name, "arguments", call.Function.Arguments)

	var args map[string]any
	if call.Function.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
			return fmt.Sprintf("invalid tool arguments: %v", err)
		}
	}

	result, err := b.Session.CallTool(ctx, &mcpsdk.CallToolParams{
		Name:      call.Function.Name,
		Arguments: args,
	})
	if err != nil {
		return fmt.Sprintf("tool call failed: %v", err)
	}

	text := textContent(result)
	if result.IsError {
		return fmt.Sprintf("tool error: %s", text)
	}
	return text
}

// openAITools converts the session's tool list into OpenAI function-tool
// definitions, passing each input schema through as-is.
func (b *Bridge) openAITools(ctx context.Context) ([]openai.Tool, error) {
	listed, err := b.Session.ListTools(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list MCP tools: %w", err)
	}

	tools := make([]openai.Tool, 0, len(listed.Tools))
	for _, t := range listed.Tools {
		schema, err := json.Marshal(t.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal schema for tool %s: %w", t.Name, err)
		}
		tools = append(tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  json.RawMessage(schema),
			},
		})
	}
	return tools, nil
}

func textContent(result *mcpsdk.CallToolResult) string {
	parts := make([]string, 0, len(result.Content))
	for _, c := range result.Content {
		if tc, ok := c.(*mcpsdk.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}
