package market

import (
	"context"
	"time"

	"github.com/ikickm2025/futures-alert-bot/internal/signal"
)

// StubSource synthesizes a gently drifting bar window without touching the
// network. Prices are deterministic so tests can assert on them.
type StubSource struct {
	Base float64
	Step float64
}

// NewStubSource returns a stub anchored at a plausible index-future price.
func NewStubSource() *StubSource {
	return &StubSource{Base: 18000, Step: 0.25}
}

// Bars emits one bar per minute of lookback, ending at the current minute.
func (s *StubSource) Bars(_ context.Context, _ string, lookback time.Duration) (signal.Window, error) {
	n := int(lookback / time.Minute)
	if n <= 0 {
		n = 1
	}
	end := time.Now().UTC().Truncate(time.Minute)
	window := make(signal.Window, 0, n)
	px := s.Base
	for i := n - 1; i >= 0; i-- {
		open := px
		px += s.Step
		window = append(window, signal.Bar{
			Ts:     end.Add(-time.Duration(i) * time.Minute),
			Open:   open,
			High:   px + s.Step/2,
			Low:    open - s.Step/2,
			Close:  px,
			Volume: 1000,
		})
	}
	return window, nil
}
