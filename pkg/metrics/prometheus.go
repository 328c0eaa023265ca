package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	cyclesTotal   prometheus.Counter
	cycleDuration prometheus.Histogram
	errorsTotal   *prometheus.CounterVec
	lastPrice     *prometheus.GaugeVec
	alertsTotal   *prometheus.CounterVec
	latency       *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		cyclesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "coinwatch_cycles_total",
				Help: "Total number of completed poll cycles",
			},
		),
		cycleDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "coinwatch_cycle_duration_seconds",
				Help:    "Duration of one full poll cycle in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coinwatch_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "coinwatch_last_price",
				Help: "Last observed price for a symbol",
			},
			[]string{"symbol"},
		),
		alertsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coinwatch_signal_alerts_total",
				Help: "Total signal-change alerts raised per symbol",
			},
			[]string{"symbol"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "coinwatch_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordCycle records a completed poll cycle and its duration.
func (r *Recorder) RecordCycle(seconds float64) {
	r.cyclesTotal.Inc()
	r.cycleDuration.Observe(seconds)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastPrice records the last price for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

// RecordAlert records a signal-change alert for a symbol.
func (r *Recorder) RecordAlert(symbol string) {
	r.alertsTotal.WithLabelValues(symbol).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
