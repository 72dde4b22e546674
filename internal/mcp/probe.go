package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"
)

// DefaultProbeTimeout bounds the whole probe: process start, one request,
// one response.
const DefaultProbeTimeout = 5 * time.Second

// protocolVersion is the MCP revision the probe announces.
const protocolVersion = "2024-11-05"

// ProbeResult reports what a server answered to a raw initialize request.
type ProbeResult struct {
	Raw             string
	ProtocolVersion string
	ServerName      string
	ServerVersion   string
}

type rpcEnvelope struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type initializeResult struct {
	ProtocolVersion string `json:"protocolVersion"`
	ServerInfo      struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	} `json:"serverInfo"`
}

// Probe starts a server command, writes a single JSON-RPC initialize request
// line to its stdin and reads one response line from its stdout. It checks
// nothing beyond this single exchange; the protocol proper lives in the MCP
// SDK. The whole exchange is bounded by DefaultProbeTimeout (or an earlier
// deadline on ctx).
func Probe(ctx context.Context, command string, args ...string) (*ProbeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultProbeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, command, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stdout pipe: %w", err)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", command, err)
	}
	defer func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	}()

	request, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "initialize",
		"params": map[string]any{
			"protocolVersion": protocolVersion,
			"capabilities":    map[string]any{"tools": map[string]any{}},
			"clientInfo": map[string]any{
				"name":    "agentlab-probe",
				"version": serverVersion,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal initialize request: %w", err)
	}
	if _, err := stdin.Write(append(request, '\n')); err != nil {
		return nil, fmt.Errorf("failed to write initialize request: %w", err)
	}
	_ = stdin.Close()

	type readResult struct {
		line string
		err  error
	}
	lines := make(chan readResult, 1)
	go func() {
		scanner := bufio.NewScanner(stdout)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		if scanner.Scan() {
			lines <- readResult{line: scanner.Text()}
			return
		}
		err := scanner.Err()
		if err == nil {
			err = fmt.Errorf("server closed stdout without responding")
		}
		lines <- readResult{err: err}
	}()

	var line string
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("timed out waiting for initialize response: %w", ctx.Err())
	case res := <-lines:
		if res.err != nil {
			if stderr.Len() > 0 {
				return nil, fmt.Errorf("no response from server: %v (stderr: %s)", res.err, stderr.String())
			}
			return nil, fmt.Errorf("no response from server: %w", res.err)
		}
		line = res.line
	}

	var envelope rpcEnvelope
	if err := json.Unmarshal([]byte(line), &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse response %q: %w", line, err)
	}
	if envelope.Error != nil {
		return nil, fmt.Errorf("server returned error code=%d message=%s", envelope.Error.Code, envelope.Error.Message)
	}

	var init initializeResult
	if err := json.Unmarshal(envelope.Result, &init); err != nil {
		return nil, fmt.Errorf("failed to parse initialize result: %w", err)
	}

	return &ProbeResult{
		Raw:             line,
		ProtocolVersion: init.ProtocolVersion,
		ServerName:      init.ServerInfo.Name,
		ServerVersion:   init.ServerInfo.Version,
	}, nil
}
