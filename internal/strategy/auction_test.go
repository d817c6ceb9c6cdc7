package strategy

import (
	"testing"
	"time"

	"github.com/ikickm2025/futures-alert-bot/internal/signal"
)

func TestFailedAuctionShortReversal(t *testing.T) {
	end := time.Date(2026, 8, 26, 18, 0, 0, 0, time.UTC)
	w := flatWindow(20, 18000, 1000, end)
	// Thrust bar extends above, then the auction fails.
	w[18] = signal.Bar{Ts: w[18].Ts, Open: 18001, High: 18040, Low: 18000, Close: 18035, Volume: 1500}
	w[19] = signal.Bar{Ts: w[19].Ts, Open: 18030, High: 18032, Low: 17995, Close: 17996, Volume: 2000}

	sig := NewFailedAuction(defaultParams()).Evaluate(w, end)
	if sig == nil {
		t.Fatalf("expected failed-auction short signal")
	}
	if sig.Direction != signal.Short {
		t.Fatalf("expected short, got %s", sig.Direction)
	}
	if sig.Entry != 17996 {
		t.Fatalf("expected entry 17996, got %.2f", sig.Entry)
	}
	if sig.Stop != 18040 {
		t.Fatalf("expected stop at 3-bar high 18040, got %.2f", sig.Stop)
	}
}

func TestFailedAuctionLongReversal(t *testing.T) {
	end := time.Date(2026, 8, 26, 18, 0, 0, 0, time.UTC)
	w := flatWindow(20, 18000, 1000, end)
	w[18] = signal.Bar{Ts: w[18].Ts, Open: 17999, High: 18000, Low: 17960, Close: 17965, Volume: 1500}
	w[19] = signal.Bar{Ts: w[19].Ts, Open: 17970, High: 18005, Low: 17968, Close: 18004, Volume: 2000}

	sig := NewFailedAuction(defaultParams()).Evaluate(w, end)
	if sig == nil {
		t.Fatalf("expected failed-auction long signal")
	}
	if sig.Direction != signal.Long {
		t.Fatalf("expected long, got %s", sig.Direction)
	}
	if sig.Stop != 17960 {
		t.Fatalf("expected stop at 3-bar low 17960, got %.2f", sig.Stop)
	}
}

func TestFailedAuctionNilWithoutFailure(t *testing.T) {
	end := time.Date(2026, 8, 26, 18, 0, 0, 0, time.UTC)
	w := flatWindow(20, 18000, 1000, end)
	// Thrust that holds: close stays inside the thrust bar's range.
	w[18] = signal.Bar{Ts: w[18].Ts, Open: 18001, High: 18040, Low: 18000, Close: 18035, Volume: 1500}
	w[19] = signal.Bar{Ts: w[19].Ts, Open: 18034, High: 18038, Low: 18020, Close: 18030, Volume: 1200}

	if sig := NewFailedAuction(defaultParams()).Evaluate(w, end); sig != nil {
		t.Fatalf("expected nil when the thrust holds, got %+v", sig)
	}
}
