package strategy

import (
	"fmt"
	"time"

	"github.com/ikickm2025/futures-alert-bot/internal/signal"
)

// GenericBreakout is the fallback detector: the latest close clearing the
// extreme of the bars preceding it, confirmed by a volume surge over the
// trailing average. The reference range deliberately excludes the current
// bar — a close can never strictly exceed its own high.
type GenericBreakout struct {
	minBars     int
	lookback    int
	volLookback int
	volMult     float64
}

// NewGenericBreakout builds the evaluator from the shared parameter bundle.
func NewGenericBreakout(p Params) *GenericBreakout {
	return &GenericBreakout{
		minBars:     p.MinBars,
		lookback:    p.BreakoutLookback,
		volLookback: p.VolumeLookback,
		volMult:     p.VolumeMult,
	}
}

// Name returns the strategy tag written into alerts.
func (g *GenericBreakout) Name() string { return "generic_breakout" }

// Evaluate compares the latest close against the prior lookback extremes.
// Stop is the opposite extreme of the reference range.
func (g *GenericBreakout) Evaluate(w signal.Window, _ time.Time) *signal.Signal {
	n := w.Len()
	if n < g.minBars || n < g.lookback+1 {
		return nil
	}
	cur := w[n-1]
	refFrom, refTo := n-1-g.lookback, n-1
	refHigh := w.HighestHigh(refFrom, refTo)
	refLow := w.LowestLow(refFrom, refTo)

	avgVol := w.AvgVolume(g.volLookback)
	if avgVol <= 0 || cur.Volume <= g.volMult*avgVol {
		return nil
	}

	switch {
	case cur.Close > refHigh:
		return &signal.Signal{
			Direction: signal.Long,
			Strategy:  g.Name(),
			Entry:     cur.Close,
			Stop:      refLow,
			Reason:    fmt.Sprintf("close %.2f above %d-bar high %.2f on %.1fx volume", cur.Close, g.lookback, refHigh, cur.Volume/avgVol),
			Ts:        cur.Ts,
		}
	case cur.Close < refLow:
		return &signal.Signal{
			Direction: signal.Short,
			Strategy:  g.Name(),
			Entry:     cur.Close,
			Stop:      refHigh,
			Reason:    fmt.Sprintf("close %.2f below %d-bar low %.2f on %.1fx volume", cur.Close, g.lookback, refLow, cur.Volume/avgVol),
			Ts:        cur.Ts,
		}
	}
	return nil
}
