package strategy

import (
	"fmt"
	"time"

	"github.com/ikickm2025/futures-alert-bot/internal/signal"
)

// vwapStopLookback is the number of trailing bars whose opposite extreme
// becomes the protective stop.
const vwapStopLookback = 10

// VWAPPullback signals continuation entries when price that was trending on
// one side of VWAP tags the average and holds: above VWAP five bars ago,
// at/through VWAP on the prior bar, with volume coming back in now.
type VWAPPullback struct {
	minBars     int
	volLookback int
}

// NewVWAPPullback builds the evaluator from the shared parameter bundle.
func NewVWAPPullback(p Params) *VWAPPullback {
	return &VWAPPullback{minBars: p.MinBars, volLookback: p.VolumeLookback}
}

// Name returns the strategy tag written into alerts.
func (v *VWAPPullback) Name() string { return "vwap_pullback" }

// Evaluate computes a running VWAP over the window and checks the pullback
// shape against it.
func (v *VWAPPullback) Evaluate(w signal.Window, _ time.Time) *signal.Signal {
	n := w.Len()
	if n < v.minBars || n <= vwapStopLookback {
		return nil
	}

	vwap := runningVWAP(w)
	cur := w[n-1]
	prior := w[n-2]
	ref := w[n-6] // five bars before the current one

	avgVol := w.AvgVolume(v.volLookback)
	if avgVol <= 0 || cur.Volume <= avgVol {
		return nil
	}

	if ref.Close > vwap[n-6] && prior.Low <= vwap[n-2] {
		return &signal.Signal{
			Direction: signal.Long,
			Strategy:  v.Name(),
			Entry:     cur.Close,
			Stop:      w.LowestLow(n-vwapStopLookback, n),
			Reason:    fmt.Sprintf("pullback to vwap %.2f held from above", vwap[n-2]),
			Ts:        cur.Ts,
		}
	}
	if ref.Close < vwap[n-6] && prior.High >= vwap[n-2] {
		return &signal.Signal{
			Direction: signal.Short,
			Strategy:  v.Name(),
			Entry:     cur.Close,
			Stop:      w.HighestHigh(n-vwapStopLookback, n),
			Reason:    fmt.Sprintf("rally to vwap %.2f faded from below", vwap[n-2]),
			Ts:        cur.Ts,
		}
	}
	return nil
}

// runningVWAP returns the cumulative volume-weighted typical price at each
// bar index. Zero-volume prefixes fall back to the typical price itself.
func runningVWAP(w signal.Window) []float64 {
	out := make([]float64, w.Len())
	var cumPV, cumV float64
	for i, b := range w {
		typical := (b.High + b.Low + b.Close) / 3
		cumPV += typical * b.Volume
		cumV += b.Volume
		if cumV > 0 {
			out[i] = cumPV / cumV
		} else {
			out[i] = typical
		}
	}
	return out
}
