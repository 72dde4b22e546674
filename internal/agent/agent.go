// Package agent ties the thread store, the tool registry and the chat model
// together into the run-with-thread loop the demos drive.
package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/foundrylabs/agentlab/internal/chat"
	"github.com/foundrylabs/agentlab/internal/intent"
	"github.com/foundrylabs/agentlab/internal/thread"
	"github.com/foundrylabs/agentlab/internal/tool"
)

// Completer is the chat abstraction the agent drives.
type Completer interface {
	ChatCompletion(ctx context.Context, messages []thread.Message) (chat.CompletionResponse, error)
}

// Agent answers user messages inside a conversation thread, optionally
// routing through a tool first.
type Agent struct {
	threads        *thread.Store
	tools          *tool.Registry
	model          Completer
	deployment     string
	captureContent bool
	tracer         oteltrace.Tracer
}

func New(threads *thread.Store, tools *tool.Registry, model Completer, deployment string, captureContent bool) *Agent {
	return &Agent{
		threads:        threads,
		tools:          tools,
		model:          model,
		deployment:     deployment,
		captureContent: captureContent,
		tracer:         otel.Tracer("agentlab/agent"),
	}
}

// CreateThread creates a conversation thread, generating an id when none is
// given.
func (a *Agent) CreateThread(id string) string { return a.threads.Create(id) }

// ThreadMessages returns the ordered messages of a thread.
func (a *Agent) ThreadMessages(id string) []thread.Message { return a.threads.Messages(id) }

// RunWithThread processes one user message in the given thread and returns
// the assistant reply. Failures are recorded on the span, converted to a
// plain string, appended to the thread as the assistant reply and returned
// alongside the error.
func (a *Agent) RunWithThread(ctx context.Context, threadID, message string) (string, error) {
	ctx, span := a.tracer.Start(ctx, "agent_run_with_thread")
	defer span.End()
	span.SetAttributes(
		attribute.String("thread_id", threadID),
		attribute.String("agent.model", a.deployment),
	)
	if a.captureContent {
		span.SetAttributes(attribute.String("user_message", message))
	}

	a.threads.Append(threadID, thread.RoleUser, message)

	toolsUsed := false
	if name, arg, ok := intent.Detect(message); ok {
		result, err := a.execTool(ctx, name, arg)
		if err != nil {
			return a.failTurn(span, threadID, err)
		}
		toolsUsed = true
		enhanced := fmt.Sprintf(
			"%s\n\nTool result: %s\n\nPlease provide a helpful response based on this information.",
			message, result,
		)
		a.threads.SetLastContent(threadID, enhanced)
	}

	aiCtx, aiSpan := a.tracer.Start(ctx, "ai_completion")
	messages := a.threads.Messages(threadID)
	aiSpan.SetAttributes(attribute.Int("messages_count", len(messages)))
	resp, err := a.model.ChatCompletion(aiCtx, messages)
	if err != nil {
		aiSpan.RecordError(err)
		aiSpan.SetStatus(codes.Error, err.Error())
		aiSpan.End()
		return a.failTurn(span, threadID, err)
	}
	aiSpan.End()

	a.threads.Append(threadID, thread.RoleAssistant, resp.Content)
	span.SetAttributes(
		attribute.Int("response_length", len(resp.Content)),
		attribute.Bool("tools_used", toolsUsed),
	)
	if a.captureContent {
		span.SetAttributes(attribute.String("assistant.response", resp.Content))
	}
	return resp.Content, nil
}

func (a *Agent) execTool(ctx context.Context, name, arg string) (string, error) {
	_, span := a.tracer.Start(ctx, "tool_execution")
	defer span.End()
	span.SetAttributes(
		attribute.String("tool.name", name),
		attribute.String("tool.parameter", arg),
	)

	t, ok := a.tools.Get(name)
	if !ok {
		err := fmt.Errorf("unknown tool: %s", name)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	raw, err := toolArgs(name, arg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	res, err := t.Execute(ctx, raw)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	if a.captureContent {
		span.SetAttributes(attribute.String("tool.result", res.Output))
	}
	return res.Output, nil
}

// failTurn converts an error into the assistant reply, so the thread records
// what went wrong. There is no retry and no error taxonomy here.
func (a *Agent) failTurn(span oteltrace.Span, threadID string, err error) (string, error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	reply := fmt.Sprintf("Error processing message: %v", err)
	a.threads.Append(threadID, thread.RoleAssistant, reply)
	return reply, err
}

func toolArgs(name, arg string) (json.RawMessage, error) {
	var in any
	switch name {
	case intent.ToolWeather:
		in = tool.WeatherInput{Location: arg}
	case intent.ToolCalculate:
		in = tool.CalculatorInput{Expression: arg}
	default:
		return nil, fmt.Errorf("no argument mapping for tool: %s", name)
	}
	raw, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s arguments: %w", name, err)
	}
	return raw, nil
}
