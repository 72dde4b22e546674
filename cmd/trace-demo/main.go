// trace-demo sends a few chat completions to an Azure OpenAI deployment,
// wrapping each weather question in a custom span and printing the trace id.
package main

import (
	"context"
	"fmt"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/foundrylabs/agentlab/internal/chat"
	"github.com/foundrylabs/agentlab/internal/config"
	"github.com/foundrylabs/agentlab/internal/thread"
	"github.com/foundrylabs/agentlab/internal/trace"
)

const weatherSystemPrompt = "You are a helpful weather assistant. When asked about weather, provide a realistic weather forecast for the requested location."

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[trace-demo] %v", err)
	}

	ctx := context.Background()
	shutdown, err := trace.Setup(ctx, cfg)
	if err != nil {
		log.Fatalf("[trace-demo] %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("[trace-demo] trace shutdown: %v", err)
		}
	}()

	client := chat.NewClient(cfg)
	tracer := otel.Tracer("agentlab/trace-demo")

	// Untraced warm-up request, as in the documentation example.
	poem, err := client.ChatCompletion(ctx, []thread.Message{
		{Role: thread.RoleUser, Content: "Write a short poem on open telemetry."},
	})
	if err != nil {
		log.Fatalf("[trace-demo] %v", err)
	}
	fmt.Println("Response:")
	fmt.Println(poem.Content)
	fmt.Println()

	questions := []string{
		"What's the weather in Amsterdam?",
		"What's the weather in Tokyo?",
		"What's the weather in New York?",
	}

	for _, question := range questions {
		askWeather(ctx, tracer, client, cfg, question)
	}
}

func askWeather(ctx context.Context, tracer oteltrace.Tracer, client *chat.Client, cfg config.Config, question string) {
	ctx, span := tracer.Start(ctx, "weather_question")
	defer span.End()

	fmt.Printf("Trace ID: %s\n", span.SpanContext().TraceID())
	span.SetAttributes(attribute.String("operation.type", "weather_inquiry"))
	if cfg.CaptureContent {
		span.SetAttributes(attribute.String("user.question", question))
	}

	fmt.Printf("User: %s\n", question)
	resp, err := client.ChatCompletion(ctx, []thread.Message{
		{Role: thread.RoleSystem, Content: weatherSystemPrompt},
		{Role: thread.RoleUser, Content: question},
	})
	if err != nil {
		span.RecordError(err)
		fmt.Printf("Assistant: request failed: %v\n", err)
		return
	}

	span.SetAttributes(attribute.Int("response.length", len(resp.Content)))
	if cfg.CaptureContent {
		span.SetAttributes(attribute.String("assistant.response", resp.Content))
	}

	fmt.Printf("Assistant: %s\n", resp.Content)
	fmt.Println("--------------------------------------------------------------------------------")
}
