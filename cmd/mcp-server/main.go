// mcp-server serves the calculator tools over MCP stdio. Logging goes to
// stderr; stdout belongs to the transport.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/foundrylabs/agentlab/internal/mcp"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting calculator MCP server on stdio")
	if err := mcp.ServeStdio(ctx, mcp.NewCalculatorServer()); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
