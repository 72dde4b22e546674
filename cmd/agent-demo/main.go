// agent-demo runs the tools-and-threads agent: a scripted conversation in a
// single thread by default, or an interactive chat with -interactive.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/foundrylabs/agentlab/internal/agent"
	"github.com/foundrylabs/agentlab/internal/chat"
	"github.com/foundrylabs/agentlab/internal/config"
	"github.com/foundrylabs/agentlab/internal/thread"
	"github.com/foundrylabs/agentlab/internal/tool"
	"github.com/foundrylabs/agentlab/internal/trace"
)

const weatherLatency = 250 * time.Millisecond

func main() {
	var (
		interactive bool
		threadID    string
	)
	flag.BoolVar(&interactive, "interactive", false, "chat interactively instead of running the scripted demo")
	flag.StringVar(&threadID, "thread", "weather_demo", "thread id for the scripted demo")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[agent-demo] %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := trace.Setup(ctx, cfg)
	if err != nil {
		log.Fatalf("[agent-demo] %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("[agent-demo] trace shutdown: %v", err)
		}
	}()

	registry := tool.NewRegistry()
	if err := registry.Register(tool.NewWeather(weatherLatency)); err != nil {
		log.Fatalf("[agent-demo] failed to register tool get_weather: %v", err)
	}
	if err := registry.Register(tool.NewCalculator()); err != nil {
		log.Fatalf("[agent-demo] failed to register tool calculate: %v", err)
	}

	threads := thread.NewStore(cfg.SystemPrompt)
	client := chat.NewClient(cfg)
	a := agent.New(threads, registry, client, cfg.Deployment, cfg.CaptureContent)

	if interactive {
		runInteractive(ctx, a)
		return
	}
	runScripted(ctx, a, threadID)
}

func runScripted(ctx context.Context, a *agent.Agent, threadID string) {
	id := a.CreateThread(threadID)
	fmt.Printf("Starting conversation in thread: %s\n", id)
	fmt.Println("----------------------------------------")

	messages := []string{
		"What's the weather in Amsterdam?",
		"Is it likely to rain in London?",
		"Can you calculate 15 * 8 + 12?",
		"What about the weather in Tokyo?",
		"Please compute (100 - 25) / 5",
	}

	for i, message := range messages {
		if ctx.Err() != nil {
			return
		}
		fmt.Printf("\nUser (%d): %s\n", i+1, message)
		reply, err := a.RunWithThread(ctx, id, message)
		if err != nil {
			log.Printf("[agent-demo] turn failed: %v", err)
		}
		fmt.Printf("Assistant: %s\n", reply)
		time.Sleep(time.Second)
	}

	printHistory(a, id)
}

func printHistory(a *agent.Agent, id string) {
	fmt.Printf("\nThread history for %s:\n", id)
	fmt.Println("----------------------------------------")
	messages := a.ThreadMessages(id)
	for _, m := range messages[1:] { // skip the system prompt
		content := m.Content
		if len(content) > 100 {
			content = content[:100] + "..."
		}
		fmt.Printf("%s: %s\n", titleRole(m.Role), content)
	}
	fmt.Printf("\nTotal messages in thread: %d\n", len(messages)-1)
}

func titleRole(role string) string {
	if role == "" {
		return role
	}
	return strings.ToUpper(role[:1]) + role[1:]
}

func runInteractive(ctx context.Context, a *agent.Agent) {
	fmt.Println("Interactive agent demo")
	fmt.Println("Type 'quit' to exit, 'new_thread' to start a new conversation")

	current := a.CreateThread("interactive")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("\nYou (thread: %s): ", current)
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		switch {
		case input == "":
			continue
		case strings.EqualFold(input, "quit"):
			fmt.Println("Goodbye!")
			return
		case strings.EqualFold(input, "new_thread"):
			current = a.CreateThread("")
			continue
		}

		reply, err := a.RunWithThread(ctx, current, input)
		if err != nil {
			log.Printf("[agent-demo] turn failed: %v", err)
		}
		fmt.Printf("Assistant: %s\n", reply)
	}
	if err := scanner.Err(); err != nil {
		log.Printf("[agent-demo] stdin read error: %v", err)
	}
}
