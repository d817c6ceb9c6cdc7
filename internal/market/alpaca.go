package market

import (
	"context"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"github.com/ikickm2025/futures-alert-bot/internal/signal"
)

// AlpacaSource pulls one-minute crypto bars from the Alpaca market-data API.
// The free crypto endpoint mirrors the futures contract closely enough for
// alerting; symbols follow Alpaca's "BASE/QUOTE" form.
type AlpacaSource struct {
	client *marketdata.Client
}

// NewAlpacaSource builds a REST-backed source. baseURL is only overridden in
// tests; an empty string selects the production data host.
func NewAlpacaSource(apiKey, apiSecret, baseURL string) *AlpacaSource {
	return &AlpacaSource{
		client: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
			BaseURL:   baseURL,
		}),
	}
}

// Bars fetches the trailing lookback of one-minute bars, oldest first. The
// SDK bounds the call with its own HTTP timeout; ctx is not threaded through
// because the v3 client does not accept one.
func (s *AlpacaSource) Bars(_ context.Context, symbol string, lookback time.Duration) (signal.Window, error) {
	limit := int(lookback / time.Minute)
	if limit <= 0 {
		limit = 1
	}
	raw, err := s.client.GetCryptoBars(symbol, marketdata.GetCryptoBarsRequest{
		TimeFrame:  marketdata.OneMin,
		Start:      time.Now().UTC().Add(-lookback),
		TotalLimit: limit,
	})
	if err != nil {
		return nil, err
	}

	window := make(signal.Window, 0, len(raw))
	for _, b := range raw {
		window = append(window, signal.Bar{
			Ts:     b.Timestamp,
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		})
	}
	return window, nil
}
