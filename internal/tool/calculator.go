package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type CalculatorInput struct {
	Expression string `json:"expression"`
}

// Calculator evaluates basic arithmetic expressions: + - * / with
// parentheses over decimal numbers. Anything outside that character set is
// rejected before evaluation.
type Calculator struct{}

func NewCalculator() *Calculator { return &Calculator{} }

func (t *Calculator) Name() string { return "calculate" }

func (t *Calculator) Validate(raw json.RawMessage) error {
	var in CalculatorInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return fmt.Errorf("invalid calculate input: %w", err)
	}
	expr := strings.TrimSpace(in.Expression)
	if expr == "" {
		return fmt.Errorf("calculate.expression is required")
	}
	for _, r := range in.Expression {
		if r >= '0' && r <= '9' {
			continue
		}
		if strings.ContainsRune("+-*/(). \t\r\n", r) {
			continue
		}
		return fmt.Errorf("calculate.expression contains invalid character %q", r)
	}
	return nil
}

func (t *Calculator) Execute(ctx context.Context, raw json.RawMessage) (Result, error) {
	if err := t.Validate(raw); err != nil {
		return Result{}, err
	}
	var in CalculatorInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return Result{}, fmt.Errorf("invalid calculate input: %w", err)
	}

	expr := strings.TrimSpace(in.Expression)
	value, err := Evaluate(expr)
	if err != nil {
		return Result{}, fmt.Errorf("calculate %q: %w", expr, err)
	}
	return Result{Output: fmt.Sprintf("%s = %s", expr, strconv.FormatFloat(value, 'f', -1, 64))}, nil
}
