// Package strategy contains the rule-based setup detectors that turn a bar
// window into directional signals.
package strategy

import (
	"time"

	"github.com/ikickm2025/futures-alert-bot/internal/signal"
)

// Evaluator detects one setup against the bar window. A nil result is the
// normal "no pattern" outcome, never an error; evaluators do not retry.
type Evaluator interface {
	Evaluate(w signal.Window, now time.Time) *signal.Signal
	Name() string
}

// Params expresses tunable knobs required by the evaluator constructors.
type Params struct {
	MinBars          int
	ORBOpenBars      int
	ORBWindowMinutes int
	BreakoutLookback int
	VolumeLookback   int
	VolumeMult       float64
}

// Chain runs evaluators in fixed priority order; the first non-nil signal
// wins and later evaluators never run.
type Chain struct {
	symbol     string
	minBars    int
	evaluators []Evaluator
}

// NewChain wires the default evaluator order: opening-range breakout, VWAP
// pullback, failed-auction reversal, then the generic volume breakout as the
// fallback.
func NewChain(symbol string, p Params, loc *time.Location) *Chain {
	if p.MinBars <= 0 {
		p.MinBars = 20
	}
	if p.ORBOpenBars <= 0 {
		p.ORBOpenBars = 5
	}
	if p.ORBWindowMinutes <= 0 {
		p.ORBWindowMinutes = 60
	}
	if p.BreakoutLookback <= 0 {
		p.BreakoutLookback = 15
	}
	if p.VolumeLookback <= 0 {
		p.VolumeLookback = 20
	}
	if p.VolumeMult <= 0 {
		p.VolumeMult = 1.5
	}
	return &Chain{
		symbol:  symbol,
		minBars: p.MinBars,
		evaluators: []Evaluator{
			NewOpeningRange(p, loc),
			NewVWAPPullback(p),
			NewFailedAuction(p),
			NewGenericBreakout(p),
		},
	}
}

// Evaluate returns the first signal produced by the chain, stamped with the
// configured symbol, or nil when no evaluator fires.
func (c *Chain) Evaluate(w signal.Window, now time.Time) *signal.Signal {
	if w.Len() < c.minBars {
		return nil
	}
	for _, e := range c.evaluators {
		if s := e.Evaluate(w, now); s != nil {
			s.Symbol = c.symbol
			if s.Ts.IsZero() {
				s.Ts = w.Last().Ts
			}
			return s
		}
	}
	return nil
}

// Evaluators exposes the chain order for logging and tests.
func (c *Chain) Evaluators() []Evaluator { return c.evaluators }
