package telemetry

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CommandMetrics tracks command dispatch outcomes. A nil *CommandMetrics is
// a no-op so the bot can run without a metrics endpoint.
type CommandMetrics struct {
	Dispatched *prometheus.CounterVec
	Errors     *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
}

// NewCommandMetrics creates and registers the command metrics on the given
// registerer (pass prometheus.DefaultRegisterer in production).
func NewCommandMetrics(reg prometheus.Registerer) *CommandMetrics {
	m := &CommandMetrics{
		Dispatched: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commands_dispatched_total",
				Help: "Total number of commands dispatched",
			},
			[]string{"command"},
		),
		Errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "command_errors_total",
				Help: "Total number of commands that produced an error result",
			},
			[]string{"command"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "command_duration_seconds",
				Help:    "Duration of command handling in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"command"},
		),
	}
	reg.MustRegister(m.Dispatched, m.Errors, m.Duration)
	return m
}

// Record counts one dispatched command.
func (m *CommandMetrics) Record(command string, failed bool, d time.Duration) {
	if m == nil {
		return
	}
	m.Dispatched.WithLabelValues(command).Inc()
	if failed {
		m.Errors.WithLabelValues(command).Inc()
	}
	m.Duration.WithLabelValues(command).Observe(d.Seconds())
}

// StartMetricsServer starts a HTTP server exposing Prometheus metrics.
func StartMetricsServer(addr string) error {
	http.Handle("/metrics", promhttp.Handler())

	fmt.Printf("Starting metrics server on %s\n", addr)
	return http.ListenAndServe(addr, nil)
}
