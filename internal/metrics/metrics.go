// Package metrics registers the engine's Prometheus instrumentation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CandlesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "candles_total", Help: "Closed candles ingested"},
		[]string{"symbol", "interval"},
	)
	CandlesRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "candles_rejected_total", Help: "Candles rejected for invariant violations"},
		[]string{"symbol", "reason"},
	)
	SignalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "signals_total", Help: "Signals emitted per strategy and direction"},
		[]string{"strategy", "direction"},
	)
	EvaluationsSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "evaluations_skipped_total", Help: "Strategy evaluations skipped during warm-up"},
		[]string{"strategy"},
	)
)

func init() {
	prometheus.MustRegister(CandlesTotal, CandlesRejected, SignalsTotal, EvaluationsSkipped)
}

// Serve exposes /metrics on the given address in the background.
func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
