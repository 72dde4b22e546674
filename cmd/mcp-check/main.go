// mcp-check verifies that an MCP stdio server responds to an initialize
// request. It spawns the server command, writes one JSON-RPC line to its
// stdin and reads one line back, bounded by a 5-second timeout.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/foundrylabs/agentlab/internal/mcp"
)

func main() {
	var server string
	flag.StringVar(&server, "server", envOrDefault("AGENTLAB_MCP_SERVER_COMMAND", "mcp-server"), "MCP server command to probe")
	flag.Parse()

	fmt.Printf("Probing MCP server: %s\n", server)
	res, err := mcp.Probe(context.Background(), server, flag.Args()...)
	if err != nil {
		log.Fatalf("[mcp-check] probe failed: %v", err)
	}

	fmt.Printf("Response: %s\n", res.Raw)
	fmt.Printf("Server: %s %s (protocol %s)\n", res.ServerName, res.ServerVersion, res.ProtocolVersion)
	fmt.Println("Server is working correctly.")
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
