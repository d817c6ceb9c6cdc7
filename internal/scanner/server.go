package scanner

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/ikickm2025/futures-alert-bot/internal/signal"
)

// webhookSignal is the inbound payload accepted on /webhook: an externally
// produced setup that only needs sizing and dispatch.
type webhookSignal struct {
	Symbol    string  `json:"symbol"`
	Direction string  `json:"direction"`
	Strategy  string  `json:"strategy"`
	Entry     float64 `json:"entry"`
	Stop      float64 `json:"stop"`
	Notes     string  `json:"notes"`
}

func (w webhookSignal) validate() error {
	if w.Symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	if d := signal.Direction(w.Direction); d != signal.Long && d != signal.Short {
		return fmt.Errorf("direction must be %q or %q", signal.Long, signal.Short)
	}
	if w.Entry <= 0 || w.Stop <= 0 {
		return fmt.Errorf("entry and stop must be positive")
	}
	if w.Entry == w.Stop {
		return fmt.Errorf("entry and stop must differ")
	}
	return nil
}

// Handler exposes the control surface: a liveness line on "/", a manual scan
// on POST /trigger, and external signal intake on POST /webhook.
func (s *Scanner) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/trigger", s.handleTrigger)
	mux.HandleFunc("/webhook", s.handleWebhook)
	return mux
}

// NewServer wraps the scanner handler in an http.Server bound to addr.
func NewServer(addr string, s *Scanner, log zerolog.Logger) *http.Server {
	log.Info().Str("addr", addr).Msg("control server listening")
	return &http.Server{Addr: addr, Handler: s.Handler()}
}

func (s *Scanner) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "futures alert bot scanning %s\n", s.opts.Symbol)
}

// handleTrigger runs a full scan immediately. Unlike the timer it is not
// bound to regular trading hours; the maintenance and news gates still apply.
func (s *Scanner) handleTrigger(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	result := s.Scan(r.Context(), TriggerManual)
	writeJSON(w, http.StatusOK, result)
}

func (s *Scanner) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var payload webhookSignal
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json: " + err.Error()})
		return
	}
	if err := payload.validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	strategyName := payload.Strategy
	if strategyName == "" {
		strategyName = "external"
	}
	alert := s.Dispatch(r.Context(), signal.Signal{
		Symbol:    payload.Symbol,
		Direction: signal.Direction(payload.Direction),
		Strategy:  strategyName,
		Entry:     payload.Entry,
		Stop:      payload.Stop,
		Reason:    payload.Notes,
	})
	writeJSON(w, http.StatusOK, Result{Status: StatusAlert, Alert: &alert})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
