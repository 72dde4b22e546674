// Package intent decides whether a free-text message should trigger a tool.
// It is keyword matching, not a grammar: the first keyword list that matches
// wins, and the argument extraction is deliberately crude.
package intent

import (
	"regexp"
	"strings"
)

// Tool names reported by Detect.
const (
	ToolWeather   = "get_weather"
	ToolCalculate = "calculate"
)

var weatherKeywords = []string{"weather", "temperature", "rain", "sunny", "cloudy"}

var calcKeywords = []string{"calculate", "compute", "math", "+", "-", "*", "/", "="}

var exprPattern = regexp.MustCompile(`[0-9+\-*/().\s]+`)

// Detect inspects a message and reports the tool to invoke and its argument.
// Weather is checked before the calculator. ok is false when no capability
// matches or no usable argument can be extracted.
func Detect(message string) (tool, arg string, ok bool) {
	lower := strings.ToLower(message)

	if containsAny(lower, weatherKeywords) {
		if loc := extractLocation(message); loc != "" {
			return ToolWeather, loc, true
		}
	}

	if containsAny(lower, calcKeywords) {
		if expr := extractExpression(message); expr != "" {
			return ToolCalculate, expr, true
		}
	}

	return "", "", false
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// extractLocation returns the token following "in", "for" or "at", trimmed
// of trailing punctuation.
func extractLocation(message string) string {
	words := strings.Fields(message)
	for i, word := range words {
		switch strings.ToLower(word) {
		case "in", "for", "at":
			if i+1 < len(words) {
				if loc := strings.Trim(words[i+1], ".,!?"); loc != "" {
					return loc
				}
			}
		}
	}
	return ""
}

// extractExpression returns the longest run of digits, operators,
// parentheses, dots and whitespace found in the message.
func extractExpression(message string) string {
	matches := exprPattern.FindAllString(message, -1)
	longest := ""
	for _, m := range matches {
		if len(m) > len(longest) {
			longest = m
		}
	}
	return strings.TrimSpace(longest)
}
