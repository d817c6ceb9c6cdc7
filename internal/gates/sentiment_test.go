package gates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ikickm2025/futures-alert-bot/internal/signal"
)

func sentimentGate(url string) *Sentiment {
	return NewSentiment(url, 20, 80, time.Second, zerolog.Nop())
}

func TestSentimentIndex(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"value":"27","value_classification":"Fear"}]}`))
	}))
	defer server.Close()

	if got := sentimentGate(server.URL).Index(context.Background()); got != 27 {
		t.Fatalf("expected index 27, got %d", got)
	}
}

func TestSentimentIndexNeutralOnFailure(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer down.Close()
	if got := sentimentGate(down.URL).Index(context.Background()); got != NeutralIndex {
		t.Fatalf("expected neutral on 502, got %d", got)
	}

	garbage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"value":"not-a-number"}]}`))
	}))
	defer garbage.Close()
	if got := sentimentGate(garbage.URL).Index(context.Background()); got != NeutralIndex {
		t.Fatalf("expected neutral on bad value, got %d", got)
	}

	if got := sentimentGate("http://127.0.0.1:0/never").Index(context.Background()); got != NeutralIndex {
		t.Fatalf("expected neutral on network error, got %d", got)
	}
}

func TestVetoBoundaries(t *testing.T) {
	gate := sentimentGate("")
	cases := []struct {
		direction signal.Direction
		index     int
		want      bool
	}{
		{signal.Long, 19, true},
		{signal.Long, 20, false},
		{signal.Short, 81, true},
		{signal.Short, 80, false},
		{signal.Long, 81, false},
		{signal.Short, 19, false},
	}
	for _, tc := range cases {
		if got := gate.Vetoed(tc.direction, tc.index); got != tc.want {
			t.Fatalf("Vetoed(%s, %d)=%v, want %v", tc.direction, tc.index, got, tc.want)
		}
	}
}
