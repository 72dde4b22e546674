package mcp

import (
	"context"
	"strings"
	"testing"
	"time"
)

const stubResponse = `{"jsonrpc":"2.0","id":1,"result":{"protocolVersion":"2024-11-05","capabilities":{"tools":{}},"serverInfo":{"name":"stub-server","version":"9.9.9"}}}`

func TestProbe_Success(t *testing.T) {
	res, err := Probe(context.Background(), "sh", "-c", "read line; echo '"+stubResponse+"'")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.ServerName != "stub-server" || res.ServerVersion != "9.9.9" {
		t.Fatalf("unexpected server info: %+v", res)
	}
	if res.ProtocolVersion != "2024-11-05" {
		t.Fatalf("unexpected protocol version: %s", res.ProtocolVersion)
	}
	if !strings.Contains(res.Raw, "serverInfo") {
		t.Fatalf("raw response missing: %s", res.Raw)
	}
}

func TestProbe_ErrorEnvelope(t *testing.T) {
	stub := `{"jsonrpc":"2.0","id":1,"error":{"code":-32600,"message":"bad request"}}`
	_, err := Probe(context.Background(), "sh", "-c", "read line; echo '"+stub+"'")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "bad request") {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestProbe_GarbageResponse(t *testing.T) {
	_, err := Probe(context.Background(), "sh", "-c", "read line; echo 'not json'")
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "failed to parse response") {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestProbe_SilentServer(t *testing.T) {
	// Server exits without writing anything.
	_, err := Probe(context.Background(), "sh", "-c", "read line; exit 0")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "no response from server") {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestProbe_Timeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := Probe(ctx, "sh", "-c", "sleep 30")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("probe did not honor context deadline, took %v", elapsed)
	}
}

func TestProbe_MissingCommand(t *testing.T) {
	_, err := Probe(context.Background(), "/definitely/not/a/binary")
	if err == nil {
		t.Fatal("expected start error")
	}
}
