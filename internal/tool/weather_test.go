package tool

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func weatherArgs(location string) json.RawMessage {
	raw, _ := json.Marshal(WeatherInput{Location: location})
	return raw
}

func TestWeather_KnownCity(t *testing.T) {
	w := NewWeather(0)
	res, err := w.Execute(context.Background(), weatherArgs("London"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(res.Output, "rainy") {
		t.Fatalf("unexpected output: %s", res.Output)
	}
	if !strings.HasPrefix(res.Output, "The weather in London is") {
		t.Fatalf("unexpected output: %s", res.Output)
	}
}

func TestWeather_UnknownCityFallback(t *testing.T) {
	w := NewWeather(0)
	res, err := w.Execute(context.Background(), weatherArgs("Reykjavik"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(res.Output, "partly cloudy with a high of 20") {
		t.Fatalf("expected fallback conditions, got: %s", res.Output)
	}
}

func TestWeather_RequiresLocation(t *testing.T) {
	w := NewWeather(0)
	if err := w.Validate(weatherArgs("  ")); err == nil {
		t.Fatal("expected validation error")
	}
	if _, err := w.Execute(context.Background(), weatherArgs("")); err == nil {
		t.Fatal("expected execute error")
	}
}

func TestWeather_HonorsContextDuringLatency(t *testing.T) {
	w := NewWeather(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := w.Execute(ctx, weatherArgs("Tokyo")); err == nil {
		t.Fatal("expected context cancellation error")
	}
}
