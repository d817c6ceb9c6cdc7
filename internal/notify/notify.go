// Package notify hosts the fire-and-forget alert sinks. Delivery failures
// are logged and counted, never propagated: a dead webhook must not stop the
// scanner.
package notify

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ikickm2025/futures-alert-bot/internal/metrics"
	"github.com/ikickm2025/futures-alert-bot/internal/signal"
)

// Sink delivers one alert to one destination. Implementations are no-ops
// when their destination is unconfigured.
type Sink interface {
	Name() string
	Send(ctx context.Context, alert signal.TradeAlert) error
}

// Fanout dispatches an alert to every sink with a bounded per-call timeout.
type Fanout struct {
	sinks   []Sink
	timeout time.Duration
	log     zerolog.Logger
}

// NewFanout builds a dispatcher over the given sinks.
func NewFanout(log zerolog.Logger, timeout time.Duration, sinks ...Sink) *Fanout {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Fanout{sinks: sinks, timeout: timeout, log: log}
}

// Dispatch sends the alert to every sink in turn. Sinks are independent and
// order-insensitive; an error in one never skips another.
func (f *Fanout) Dispatch(ctx context.Context, alert signal.TradeAlert) {
	for _, sink := range f.sinks {
		sendCtx, cancel := context.WithTimeout(ctx, f.timeout)
		err := sink.Send(sendCtx, alert)
		cancel()
		if err != nil {
			metrics.AlertsTotal.WithLabelValues(sink.Name(), "error").Inc()
			f.log.Warn().Err(err).Str("sink", sink.Name()).Str("alert", alert.ID).Msg("alert delivery failed")
			continue
		}
		metrics.AlertsTotal.WithLabelValues(sink.Name(), "ok").Inc()
	}
}
