package signal

import (
	"testing"
	"time"
)

func TestWindowExtremes(t *testing.T) {
	now := time.Now()
	w := Window{
		{Ts: now, High: 10, Low: 5, Volume: 100},
		{Ts: now.Add(time.Minute), High: 12, Low: 7, Volume: 200},
		{Ts: now.Add(2 * time.Minute), High: 11, Low: 4, Volume: 300},
	}
	if hh := w.HighestHigh(0, 3); hh != 12 {
		t.Fatalf("expected highest high 12, got %.2f", hh)
	}
	if ll := w.LowestLow(0, 3); ll != 4 {
		t.Fatalf("expected lowest low 4, got %.2f", ll)
	}
	if hh := w.HighestHigh(0, 2); hh != 12 {
		t.Fatalf("expected highest high 12 over first two bars, got %.2f", hh)
	}
	if ll := w.LowestLow(2, 3); ll != 4 {
		t.Fatalf("expected lowest low 4 over last bar, got %.2f", ll)
	}
}

func TestWindowAvgVolume(t *testing.T) {
	w := Window{{Volume: 100}, {Volume: 200}, {Volume: 300}}
	if avg := w.AvgVolume(2); avg != 250 {
		t.Fatalf("expected trailing-2 avg 250, got %.2f", avg)
	}
	if avg := w.AvgVolume(10); avg != 200 {
		t.Fatalf("expected clamped avg 200, got %.2f", avg)
	}
	if avg := Window(nil).AvgVolume(5); avg != 0 {
		t.Fatalf("expected zero avg for empty window, got %.2f", avg)
	}
}

func TestTradeAlertStopPrice(t *testing.T) {
	long := TradeAlert{Direction: Long, Entry: 18000, StopDistance: 8}
	if got := long.StopPrice(); got != 17992 {
		t.Fatalf("expected long stop 17992, got %.2f", got)
	}
	short := TradeAlert{Direction: Short, Entry: 18000, StopDistance: 8}
	if got := short.StopPrice(); got != 18008 {
		t.Fatalf("expected short stop 18008, got %.2f", got)
	}
}
