package tool

import (
	"errors"
	"math"
	"testing"
)

func TestEvaluate(t *testing.T) {
	cases := []struct {
		expr string
		want float64
	}{
		{"1 + 2", 3},
		{"2 * 3 + 4", 10},
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"100 + 200 - 50", 250},
		{"10 / 4", 2.5},
		{"-5 + 3", -2},
		{"--5", 5},
		{"((1))", 1},
		{"3.14 * 2", 6.28},
		{"  7  ", 7},
	}
	for _, tc := range cases {
		t.Run(tc.expr, func(t *testing.T) {
			got, err := Evaluate(tc.expr)
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	cases := []string{
		"",
		"1 +",
		"(1 + 2",
		"1 2",
		"*3",
		"1..2 + 1..2",
	}
	for _, expr := range cases {
		t.Run(expr, func(t *testing.T) {
			if _, err := Evaluate(expr); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestEvaluate_DivisionByZero(t *testing.T) {
	_, err := Evaluate("1 / 0")
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
	_, err = Evaluate("1 / (2 - 2)")
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
}
