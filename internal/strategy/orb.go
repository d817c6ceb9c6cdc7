package strategy

import (
	"fmt"
	"time"

	"github.com/ikickm2025/futures-alert-bot/internal/signal"
)

// OpeningRange signals breakouts of the range set by the first bars after the
// 09:30 cash open. It is only active once the range is complete and until the
// post-open window expires; outside that it always returns nil.
type OpeningRange struct {
	openBars    int
	window      time.Duration
	volLookback int
	volMult     float64
	minBars     int
	loc         *time.Location
}

// NewOpeningRange builds the evaluator bound to the exchange session clock.
func NewOpeningRange(p Params, loc *time.Location) *OpeningRange {
	return &OpeningRange{
		openBars:    p.ORBOpenBars,
		window:      time.Duration(p.ORBWindowMinutes) * time.Minute,
		volLookback: p.VolumeLookback,
		volMult:     p.VolumeMult,
		minBars:     p.MinBars,
		loc:         loc,
	}
}

// Name returns the strategy tag written into alerts.
func (o *OpeningRange) Name() string { return "opening_range" }

// Evaluate checks the latest close against the opening range with volume
// confirmation against the trailing average.
func (o *OpeningRange) Evaluate(w signal.Window, now time.Time) *signal.Signal {
	if w.Len() < o.minBars {
		return nil
	}

	local := now.In(o.loc)
	open := time.Date(local.Year(), local.Month(), local.Day(), 9, 30, 0, 0, o.loc)
	rangeDone := open.Add(time.Duration(o.openBars) * time.Minute)
	if local.Before(rangeDone) || !local.Before(open.Add(o.window)) {
		return nil
	}

	rangeHigh, rangeLow, found := o.openingRange(w, open, rangeDone)
	if !found {
		return nil
	}

	last := w.Last()
	avgVol := w.AvgVolume(o.volLookback)
	if avgVol <= 0 || last.Volume <= o.volMult*avgVol {
		return nil
	}

	switch {
	case last.Close > rangeHigh:
		return &signal.Signal{
			Direction: signal.Long,
			Strategy:  o.Name(),
			Entry:     last.Close,
			Stop:      rangeLow,
			Reason:    fmt.Sprintf("close %.2f above opening range high %.2f", last.Close, rangeHigh),
			Ts:        last.Ts,
		}
	case last.Close < rangeLow:
		return &signal.Signal{
			Direction: signal.Short,
			Strategy:  o.Name(),
			Entry:     last.Close,
			Stop:      rangeHigh,
			Reason:    fmt.Sprintf("close %.2f below opening range low %.2f", last.Close, rangeLow),
			Ts:        last.Ts,
		}
	}
	return nil
}

// openingRange extracts the high/low of the bars stamped inside
// [open, rangeDone). All openBars minutes must be present.
func (o *OpeningRange) openingRange(w signal.Window, open, rangeDone time.Time) (high, low float64, ok bool) {
	count := 0
	for _, b := range w {
		ts := b.Ts.In(o.loc)
		if ts.Before(open) || !ts.Before(rangeDone) {
			continue
		}
		if count == 0 {
			high, low = b.High, b.Low
		} else {
			if b.High > high {
				high = b.High
			}
			if b.Low < low {
				low = b.Low
			}
		}
		count++
	}
	return high, low, count >= o.openBars
}
