// Package chat wraps an Azure OpenAI chat deployment behind the small
// response model the rest of the lab consumes.
package chat

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/foundrylabs/agentlab/internal/config"
	"github.com/foundrylabs/agentlab/internal/thread"
)

// CompletionResponse is the common response model for chat calls.
type CompletionResponse struct {
	Content      string
	InputTokens  int
	OutputTokens int
}

// Client talks to one Azure OpenAI chat deployment.
type Client struct {
	api         *openai.Client
	deployment  string
	maxTokens   int
	temperature float32
}

// NewClient builds a client from the lab configuration. The endpoint may be
// any base URL speaking the Azure OpenAI surface, which keeps tests on
// httptest servers.
func NewClient(cfg config.Config) *Client {
	azure := openai.DefaultAzureConfig(cfg.APIKey, cfg.Endpoint)
	azure.APIVersion = cfg.APIVersion
	azure.HTTPClient = &http.Client{
		Timeout: time.Duration(cfg.HTTPTimeoutSeconds) * time.Second,
	}
	return &Client{
		api:         openai.NewClientWithConfig(azure),
		deployment:  cfg.Deployment,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}
}

// Deployment returns the configured deployment name.
func (c *Client) Deployment() string { return c.deployment }

// ChatCompletion sends a thread's messages and returns the assistant reply.
func (c *Client) ChatCompletion(ctx context.Context, messages []thread.Message) (CompletionResponse, error) {
	converted := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		converted = append(converted, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	msg, usage, err := c.Complete(ctx, converted, nil)
	if err != nil {
		return CompletionResponse{}, err
	}

	result := CompletionResponse{
		Content:      msg.Content,
		InputTokens:  usage.PromptTokens,
		OutputTokens: usage.CompletionTokens,
	}
	if result.Content == "" {
		result.Content = "(empty model response)"
	}
	return result, nil
}

// Complete sends raw chat messages, optionally advertising tool definitions,
// and returns the first choice plus token usage. Callers that drive tool
// calls need the full message back, tool_calls included.
func (c *Client) Complete(ctx context.Context, messages []openai.ChatCompletionMessage, tools []openai.Tool) (openai.ChatCompletionMessage, openai.Usage, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.deployment,
		Messages:    messages,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		Tools:       tools,
	}
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return openai.ChatCompletionMessage{}, openai.Usage{}, fmt.Errorf("chat completion failed: %s", truncate(err.Error(), 400))
	}
	if len(resp.Choices) == 0 {
		return openai.ChatCompletionMessage{}, resp.Usage, nil
	}
	return resp.Choices[0].Message, resp.Usage, nil
}

func truncate(s string, maxChars int) string {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars])
}
