package chat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/foundrylabs/agentlab/internal/config"
	"github.com/foundrylabs/agentlab/internal/thread"
)

func testConfig(endpoint string) config.Config {
	return config.Config{
		Endpoint:           endpoint,
		APIKey:             "test-key",
		Deployment:         "gpt-4o",
		APIVersion:         "2024-08-01-preview",
		MaxTokens:          500,
		Temperature:        0.7,
		HTTPTimeoutSeconds: 5,
	}
}

func TestChatCompletion_Success(t *testing.T) {
	var gotPath, gotAPIKey string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("Api-Key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content": "hello there"}}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 4}
		}`))
	}))
	defer ts.Close()

	c := NewClient(testConfig(ts.URL))
	res, err := c.ChatCompletion(context.Background(), []thread.Message{
		{Role: thread.RoleSystem, Content: "be brief"},
		{Role: thread.RoleUser, Content: "hi"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Content != "hello there" {
		t.Fatalf("unexpected content: %q", res.Content)
	}
	if res.InputTokens != 12 || res.OutputTokens != 4 {
		t.Fatalf("unexpected usage: %+v", res)
	}
	if !strings.Contains(gotPath, "/openai/deployments/gpt-4o/chat/completions") {
		t.Fatalf("unexpected request path: %s", gotPath)
	}
	if gotAPIKey != "test-key" {
		t.Fatalf("expected api-key header, got %q", gotAPIKey)
	}
}

func TestChatCompletion_EmptyContentPlaceholder(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": ""}}]}`))
	}))
	defer ts.Close()

	c := NewClient(testConfig(ts.URL))
	res, err := c.ChatCompletion(context.Background(), []thread.Message{{Role: thread.RoleUser, Content: "hi"}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Content != "(empty model response)" {
		t.Fatalf("unexpected content: %q", res.Content)
	}
}

func TestChatCompletion_NonSuccessStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "deployment not found"}}`, http.StatusNotFound)
	}))
	defer ts.Close()

	c := NewClient(testConfig(ts.URL))
	_, err := c.ChatCompletion(context.Background(), []thread.Message{{Role: thread.RoleUser, Content: "hi"}})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "chat completion failed") {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 4); got != "abcd" {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := truncate("abc", 4); got != "abc" {
		t.Fatalf("unexpected truncation: %q", got)
	}
}
