// mcp-agent answers a math question by letting the chat model drive the
// calculator tools of an MCP stdio server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/foundrylabs/agentlab/internal/chat"
	"github.com/foundrylabs/agentlab/internal/config"
	"github.com/foundrylabs/agentlab/internal/mcp"
)

const instructions = "You are a helpful math assistant that can solve calculations using the calculator tools."

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[mcp-agent] %v", err)
	}

	var (
		server   string
		question string
	)
	flag.StringVar(&server, "server", cfg.MCPServerCommand, "MCP server command providing the tools")
	flag.StringVar(&question, "question", "What is 100 + 200 - 50? Please use the calculator tools to compute this.", "question to ask")
	flag.Parse()

	ctx := context.Background()
	session, err := mcp.Connect(ctx, server, flag.Args()...)
	if err != nil {
		log.Fatalf("[mcp-agent] %v", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.Printf("[mcp-agent] session close: %v", err)
		}
	}()

	bridge := mcp.NewBridge(chat.NewClient(cfg), session)
	answer, err := bridge.Run(ctx, instructions, question)
	if err != nil {
		log.Fatalf("[mcp-agent] %v", err)
	}

	fmt.Printf("User: %s\n", question)
	fmt.Printf("Assistant: %s\n", answer)
}
