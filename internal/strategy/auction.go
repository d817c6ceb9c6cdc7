package strategy

import (
	"fmt"
	"time"

	"github.com/ikickm2025/futures-alert-bot/internal/signal"
)

// FailedAuction looks for a three-bar reversal: a thrust bar that extends the
// move, followed by a close through the thrust bar's opposite extreme. The
// failure of the auction to hold the thrust is the signal.
type FailedAuction struct {
	minBars int
}

// NewFailedAuction builds the evaluator from the shared parameter bundle.
func NewFailedAuction(p Params) *FailedAuction {
	return &FailedAuction{minBars: p.MinBars}
}

// Name returns the strategy tag written into alerts.
func (f *FailedAuction) Name() string { return "failed_auction" }

// Evaluate inspects the last three bars for a failed thrust in either
// direction. Stop is the extreme of the three-bar pattern.
func (f *FailedAuction) Evaluate(w signal.Window, _ time.Time) *signal.Signal {
	n := w.Len()
	if n < f.minBars || n < 3 {
		return nil
	}
	a, b, c := w[n-3], w[n-2], w[n-1]

	// Up-thrust that fails: b extends above a, c closes below b's low.
	if b.High > a.High && b.Close > a.Close && c.Close < b.Low {
		return &signal.Signal{
			Direction: signal.Short,
			Strategy:  f.Name(),
			Entry:     c.Close,
			Stop:      w.HighestHigh(n-3, n),
			Reason:    fmt.Sprintf("up-thrust to %.2f failed, close %.2f below thrust low", b.High, c.Close),
			Ts:        c.Ts,
		}
	}
	// Down-thrust that fails: b extends below a, c closes above b's high.
	if b.Low < a.Low && b.Close < a.Close && c.Close > b.High {
		return &signal.Signal{
			Direction: signal.Long,
			Strategy:  f.Name(),
			Entry:     c.Close,
			Stop:      w.LowestLow(n-3, n),
			Reason:    fmt.Sprintf("down-thrust to %.2f failed, close %.2f above thrust high", b.Low, c.Close),
			Ts:        c.Ts,
		}
	}
	return nil
}
