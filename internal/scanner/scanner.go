// Package scanner runs the scan pipeline: gate checks, bar fetch, strategy
// evaluation, sentiment veto, sizing, and alert dispatch.
package scanner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ikickm2025/futures-alert-bot/internal/gates"
	"github.com/ikickm2025/futures-alert-bot/internal/market"
	"github.com/ikickm2025/futures-alert-bot/internal/metrics"
	"github.com/ikickm2025/futures-alert-bot/internal/notify"
	"github.com/ikickm2025/futures-alert-bot/internal/risk"
	"github.com/ikickm2025/futures-alert-bot/internal/signal"
	"github.com/ikickm2025/futures-alert-bot/internal/strategy"
)

// Scan outcomes, in pipeline order. Every scan resolves to exactly one.
const (
	StatusClosed       = "closed"
	StatusNewsBlackout = "news_blackout"
	StatusNoData       = "no_data"
	StatusNoSignal     = "no_signal"
	StatusVetoed       = "vetoed"
	StatusAlert        = "alert"
)

// Triggers label the scan origin in logs and metrics.
const (
	TriggerTimer   = "timer"
	TriggerManual  = "manual"
	TriggerWebhook = "webhook"
)

// Result is the outcome of one scan cycle. Alert is non-nil only for
// StatusAlert.
type Result struct {
	Status string             `json:"status"`
	Alert  *signal.TradeAlert `json:"alert,omitempty"`
}

// Options carries the scan-loop tunables.
type Options struct {
	Symbol        string // market-data symbol, e.g. "MNQ/USD"
	DisplaySymbol string // symbol as written into alerts, e.g. "MNQ"
	Lookback      time.Duration
	Interval      time.Duration
	Location      *time.Location
}

// Deps collects the pipeline collaborators.
type Deps struct {
	Log       zerolog.Logger
	Source    market.Source
	Calendar  *gates.Calendar
	Sentiment *gates.Sentiment
	Chain     *strategy.Chain
	Sizer     risk.Sizer
	Fanout    *notify.Fanout
}

// Scanner evaluates one instrument on a timer and on demand.
type Scanner struct {
	opts Options
	deps Deps
	now  func() time.Time
}

// New builds a scanner; zero-valued options fall back to usable defaults.
func New(opts Options, deps Deps) *Scanner {
	if opts.Lookback <= 0 {
		opts.Lookback = time.Hour
	}
	if opts.Interval <= 0 {
		opts.Interval = 2 * time.Minute
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.DisplaySymbol == "" {
		opts.DisplaySymbol = opts.Symbol
	}
	return &Scanner{opts: opts, deps: deps, now: time.Now}
}

// Scan runs one full pipeline pass and returns its outcome. It never returns
// an error: every failure mode maps to a status and is logged on the way out.
func (s *Scanner) Scan(ctx context.Context, trigger string) Result {
	metrics.ScansTotal.WithLabelValues(trigger).Inc()
	now := s.now()
	log := s.deps.Log.With().Str("trigger", trigger).Logger()

	if gates.Closed(now, s.opts.Location) {
		metrics.GateSkipsTotal.WithLabelValues("closed").Inc()
		log.Debug().Msg("market closed, scan skipped")
		return Result{Status: StatusClosed}
	}
	if s.deps.Calendar.HighImpactNews(ctx, now) {
		metrics.GateSkipsTotal.WithLabelValues("news_blackout").Inc()
		log.Info().Msg("scan skipped for news blackout")
		return Result{Status: StatusNewsBlackout}
	}

	window, err := s.deps.Source.Bars(ctx, s.opts.Symbol, s.opts.Lookback)
	if err != nil || window.Len() == 0 {
		metrics.GateSkipsTotal.WithLabelValues("no_data").Inc()
		log.Warn().Err(err).Int("bars", window.Len()).Msg("no bar data this scan")
		return Result{Status: StatusNoData}
	}

	sig := s.deps.Chain.Evaluate(window, now)
	if sig == nil {
		log.Debug().Int("bars", window.Len()).Msg("no setup detected")
		return Result{Status: StatusNoSignal}
	}
	metrics.SignalsTotal.WithLabelValues(sig.Strategy, string(sig.Direction)).Inc()

	index := s.deps.Sentiment.Index(ctx)
	if s.deps.Sentiment.Vetoed(sig.Direction, index) {
		metrics.GateSkipsTotal.WithLabelValues("sentiment_veto").Inc()
		log.Info().Str("strategy", sig.Strategy).Str("direction", string(sig.Direction)).
			Int("index", index).Msg("signal vetoed by sentiment")
		return Result{Status: StatusVetoed}
	}

	alert := s.buildAlert(*sig)
	log.Info().Str("alert", alert.ID).Str("strategy", alert.Strategy).
		Str("direction", string(alert.Direction)).Float64("entry", alert.Entry).
		Int("contracts", alert.Contracts).Msg("dispatching alert")
	s.deps.Fanout.Dispatch(ctx, alert)
	return Result{Status: StatusAlert, Alert: &alert}
}

// Dispatch sizes and fans out an externally supplied signal, bypassing the
// market-state gates. Used by the inbound webhook.
func (s *Scanner) Dispatch(ctx context.Context, sig signal.Signal) signal.TradeAlert {
	metrics.ScansTotal.WithLabelValues(TriggerWebhook).Inc()
	metrics.SignalsTotal.WithLabelValues(sig.Strategy, string(sig.Direction)).Inc()
	alert := s.buildAlert(sig)
	s.deps.Log.Info().Str("alert", alert.ID).Str("strategy", alert.Strategy).
		Msg("dispatching external alert")
	s.deps.Fanout.Dispatch(ctx, alert)
	return alert
}

func (s *Scanner) buildAlert(sig signal.Signal) signal.TradeAlert {
	sized := s.deps.Sizer.Size(sig.Entry, sig.Stop)
	notes := sig.Reason
	if notes == "" {
		notes = sig.Strategy
	}
	symbol := sig.Symbol
	if symbol == "" || symbol == s.opts.Symbol {
		symbol = s.opts.DisplaySymbol
	}
	ts := sig.Ts
	if ts.IsZero() {
		ts = s.now()
	}
	return signal.TradeAlert{
		ID:           uuid.NewString(),
		Symbol:       symbol,
		Direction:    sig.Direction,
		Strategy:     sig.Strategy,
		Entry:        sig.Entry,
		StopDistance: sized.StopDistance,
		Contracts:    sized.Contracts,
		RiskAmount:   sized.RiskAmount,
		Notes:        notes,
		Ts:           ts,
	}
}

// Run scans on a fixed interval until the context is canceled. Timer scans
// only fire during the 09:30-16:00 cash session; manual triggers are not
// bound by it.
func (s *Scanner) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()
	s.deps.Log.Info().Dur("interval", s.opts.Interval).Str("symbol", s.opts.Symbol).Msg("scan loop started")

	for {
		select {
		case <-ctx.Done():
			s.deps.Log.Info().Msg("scan loop stopped")
			return ctx.Err()
		case <-ticker.C:
			if !gates.InRegularHours(s.now(), s.opts.Location) {
				continue
			}
			s.Scan(ctx, TriggerTimer)
		}
	}
}
