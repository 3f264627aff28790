package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swingscanner_scans_total",
			Help: "Total number of scan runs by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	ScanDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "swingscanner_scan_duration_seconds",
			Help:    "Wall time of a full scan run",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"mode"},
	)

	SymbolOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swingscanner_symbol_outcomes_total",
			Help: "Per-symbol terminal states",
		},
		[]string{"state"},
	)

	FetchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swingscanner_fetch_failures_total",
			Help: "Fetch failures by kind",
		},
		[]string{"kind"},
	)

	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "swingscanner_fetch_duration_seconds",
			Help: "Series fetch duration",
		},
		[]string{"provider"},
	)

	WorkersBusy = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "swingscanner_workers_busy",
			Help: "Workers currently processing a symbol",
		},
	)
)
