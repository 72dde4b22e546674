// Package tool holds the lab's callable capabilities and their registry.
package tool

import (
	"context"
	"encoding/json"
)

// Tool is the common abstraction for the demo capabilities.
type Tool interface {
	Name() string
	Validate(raw json.RawMessage) error
	Execute(ctx context.Context, raw json.RawMessage) (Result, error)
}

// Result is the output envelope for tool execution. Tools here produce prose
// for the model, not process output.
type Result struct {
	Output string `json:"output"`
}
