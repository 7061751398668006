// Package metrics exposes Prometheus instrumentation for the scan and
// learning loops.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the bot.
type Metrics struct {
	ScansTotal          prometheus.Counter
	ScanDuration        prometheus.Histogram
	TickersScanned      prometheus.Counter
	FetchErrors         prometheus.Counter
	PicksReturned       prometheus.Gauge
	ExperimentsStarted  prometheus.Counter
	ExperimentsResolved *prometheus.CounterVec // label: outcome

	registry *prometheus.Registry
}

// New creates and registers all metrics on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		ScansTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bullscout_scans_total",
			Help: "Number of universe scans executed.",
		}),
		ScanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bullscout_scan_duration_seconds",
			Help:    "Wall time of a full universe scan.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		}),
		TickersScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bullscout_tickers_scanned_total",
			Help: "Number of tickers evaluated across all scans.",
		}),
		FetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bullscout_fetch_errors_total",
			Help: "Number of per-ticker data fetch failures.",
		}),
		PicksReturned: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bullscout_picks_returned",
			Help: "Number of picks returned by the most recent scan.",
		}),
		ExperimentsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bullscout_experiments_started_total",
			Help: "Number of experiments recorded.",
		}),
		ExperimentsResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bullscout_experiments_resolved_total",
			Help: "Number of experiments resolved, by outcome.",
		}, []string{"outcome"}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.ScansTotal, m.ScanDuration, m.TickersScanned, m.FetchErrors,
		m.PicksReturned, m.ExperimentsStarted, m.ExperimentsResolved,
	)
	return m
}

// Handler returns the HTTP handler serving the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
