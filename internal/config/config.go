package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultSystemPrompt is the instruction block inserted at the head of every
// conversation thread.
const DefaultSystemPrompt = `You are a helpful AI assistant with access to weather information and calculation tools.

When a user asks about weather, use the get_weather tool.
When a user asks for calculations, use the calculate tool.
Always be helpful and provide clear responses.`

// Config holds settings shared by the demo binaries.
type Config struct {
	Endpoint           string
	APIKey             string
	Deployment         string
	APIVersion         string
	SystemPrompt       string
	MaxTokens          int
	Temperature        float32
	HTTPTimeoutSeconds int
	ServiceName        string
	OTLPEndpoint       string
	CaptureContent     bool
	MCPServerCommand   string
}

// Load reads configuration from the environment, after merging a local .env
// file when one exists. A missing .env is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	endpoint := os.Getenv("AZURE_OPENAI_ENDPOINT")
	if endpoint == "" {
		return Config{}, fmt.Errorf("AZURE_OPENAI_ENDPOINT is required in environment")
	}
	apiKey := os.Getenv("AZURE_OPENAI_API_KEY")
	if apiKey == "" {
		return Config{}, fmt.Errorf("AZURE_OPENAI_API_KEY is required in environment")
	}

	maxTokens := envIntOrDefault("AGENTLAB_MAX_TOKENS", 500)
	if maxTokens <= 0 {
		return Config{}, fmt.Errorf("AGENTLAB_MAX_TOKENS must be positive")
	}
	timeout := envIntOrDefault("AGENTLAB_HTTP_TIMEOUT_SECONDS", 30)
	if timeout <= 0 {
		return Config{}, fmt.Errorf("AGENTLAB_HTTP_TIMEOUT_SECONDS must be positive")
	}

	return Config{
		Endpoint:           strings.TrimRight(endpoint, "/"),
		APIKey:             apiKey,
		Deployment:         envOrDefault("AZURE_OPENAI_CHAT_DEPLOYMENT_NAME", "gpt-4o"),
		APIVersion:         envOrDefault("OPENAI_API_VERSION", "2024-08-01-preview"),
		SystemPrompt:       envOrDefault("AGENTLAB_SYSTEM_PROMPT", DefaultSystemPrompt),
		MaxTokens:          maxTokens,
		Temperature:        envFloatOrDefault("AGENTLAB_TEMPERATURE", 0.7),
		HTTPTimeoutSeconds: timeout,
		ServiceName:        envOrDefault("OTEL_SERVICE_NAME", "agentlab"),
		OTLPEndpoint:       os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		CaptureContent:     envBoolOrDefault("OTEL_INSTRUMENTATION_GENAI_CAPTURE_MESSAGE_CONTENT", true),
		MCPServerCommand:   envOrDefault("AGENTLAB_MCP_SERVER_COMMAND", "mcp-server"),
	}, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envFloatOrDefault(key string, fallback float32) float32 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return fallback
	}
	return float32(f)
}

func envBoolOrDefault(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v == "1" || strings.EqualFold(v, "true")
}
