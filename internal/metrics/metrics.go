package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ScansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "scans_total", Help: "Count of scan cycles by trigger"},
		[]string{"trigger"},
	)
	GateSkipsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "gate_skips_total", Help: "Scans skipped by a market-state gate"},
		[]string{"reason"},
	)
	SignalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "signals_total", Help: "Signals produced by the evaluators"},
		[]string{"strategy", "direction"},
	)
	AlertsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "alerts_total", Help: "Alert deliveries by sink and outcome"},
		[]string{"sink", "status"},
	)
)

func init() {
	prometheus.MustRegister(ScansTotal, GateSkipsTotal, SignalsTotal, AlertsTotal)
}

func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
