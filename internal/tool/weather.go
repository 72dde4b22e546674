package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type WeatherInput struct {
	Location string `json:"location"`
}

// Weather returns canned conditions for a handful of known cities. The
// latency pause simulates a network call to a weather API.
type Weather struct {
	Latency time.Duration
}

var weatherByCity = map[string]string{
	"Amsterdam": "cloudy with a high of 15°C",
	"New York":  "sunny with a high of 22°C",
	"London":    "rainy with a high of 12°C",
	"Tokyo":     "partly cloudy with a high of 18°C",
	"Sydney":    "sunny with a high of 25°C",
}

const weatherFallback = "partly cloudy with a high of 20°C"

func NewWeather(latency time.Duration) *Weather {
	return &Weather{Latency: latency}
}

func (t *Weather) Name() string { return "get_weather" }

func (t *Weather) Validate(raw json.RawMessage) error {
	var in WeatherInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return fmt.Errorf("invalid get_weather input: %w", err)
	}
	if strings.TrimSpace(in.Location) == "" {
		return fmt.Errorf("get_weather.location is required")
	}
	return nil
}

func (t *Weather) Execute(ctx context.Context, raw json.RawMessage) (Result, error) {
	if err := t.Validate(raw); err != nil {
		return Result{}, err
	}
	var in WeatherInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return Result{}, fmt.Errorf("invalid get_weather input: %w", err)
	}

	if t.Latency > 0 {
		select {
		case <-time.After(t.Latency):
		case <-ctx.Done():
			return Result{}, ctx.Err()
		}
	}

	location := strings.TrimSpace(in.Location)
	conditions, ok := weatherByCity[location]
	if !ok {
		conditions = weatherFallback
	}
	return Result{Output: fmt.Sprintf("The weather in %s is %s.", location, conditions)}, nil
}
