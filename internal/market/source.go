// Package market hosts the bar sources the scanner reads from.
package market

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ikickm2025/futures-alert-bot/internal/signal"
)

const (
	// ProviderAlpaca fetches a fresh bar window over REST on every scan.
	ProviderAlpaca = "alpaca"
	// ProviderStream maintains a rolling window fed by the market-data websocket.
	ProviderStream = "stream"
	// ProviderStub emits deterministic synthetic bars (useful for tests/offline work).
	ProviderStub = "stub"
)

// Source produces the lookback window of one-minute bars for a symbol,
// oldest first. An empty window and an error are equivalent to the caller:
// both mean "no data this scan". Implementations never retry.
type Source interface {
	Bars(ctx context.Context, symbol string, lookback time.Duration) (signal.Window, error)
}

// Runner is implemented by sources that need a background loop (the
// websocket stream); the composition root starts it when present.
type Runner interface {
	Run(ctx context.Context) error
}

// Settings carries provider selection plus credentials for the factory.
type Settings struct {
	Provider  string
	BaseURL   string
	APIKey    string
	APISecret string
	Symbol    string
	Capacity  int
}

// New constructs a bar source backed by the requested provider.
func New(s Settings, log zerolog.Logger) Source {
	switch strings.ToLower(strings.TrimSpace(s.Provider)) {
	case ProviderStream:
		return NewStreamSource(s.BaseURL, s.APIKey, s.APISecret, s.Symbol, s.Capacity, log)
	case ProviderStub:
		return NewStubSource()
	default:
		return NewAlpacaSource(s.APIKey, s.APISecret, s.BaseURL)
	}
}
