// Package observability provides Prometheus metrics for the simulation hosts.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultApplied  = "applied"
	ResultRejected = "rejected"
)

// Metrics holds every collector the hosts record into. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	ActionsTotal   *prometheus.CounterVec
	DaysAdvanced   prometheus.Counter
	SavesTotal     *prometheus.CounterVec
	SaveDuration   prometheus.Histogram
	ActiveSessions prometheus.Gauge
	StreamClients  prometheus.Gauge

	gatherer prometheus.Gatherer
}

// NewMetrics registers the collectors on reg. A nil reg gets a fresh
// registry, which keeps tests and multiple hosts in one process apart.
func NewMetrics(namespace string, reg *prometheus.Registry) *Metrics {
	if namespace == "" {
		namespace = "dtsim"
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	f := promauto.With(reg)

	return &Metrics{
		ActionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "actions_total",
			Help:      "Actions dispatched to the engine by type and result",
		}, []string{"type", "result"}),
		DaysAdvanced: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "days_advanced_total",
			Help:      "Simulated days completed",
		}),
		SavesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "saves_total",
			Help:      "Save attempts by result",
		}, []string{"result"}),
		SaveDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "save_duration_seconds",
			Help:      "Time spent writing a save",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
		ActiveSessions: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "active",
			Help:      "Sessions currently running",
		}),
		StreamClients: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "stream_clients",
			Help:      "Connected summary stream clients",
		}),
		gatherer: reg,
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveAction(actionType string, err error) {
	if m == nil {
		return
	}
	result := ResultApplied
	if err != nil {
		result = ResultRejected
	}
	m.ActionsTotal.WithLabelValues(actionType, result).Inc()
}

func (m *Metrics) AddDays(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.DaysAdvanced.Add(float64(n))
}

func (m *Metrics) ObserveSave(seconds float64, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.SavesTotal.WithLabelValues(result).Inc()
	m.SaveDuration.Observe(seconds)
}

func (m *Metrics) SessionStarted() {
	if m != nil {
		m.ActiveSessions.Inc()
	}
}

func (m *Metrics) SessionStopped() {
	if m != nil {
		m.ActiveSessions.Dec()
	}
}

func (m *Metrics) StreamOpened() {
	if m != nil {
		m.StreamClients.Inc()
	}
}

func (m *Metrics) StreamClosed() {
	if m != nil {
		m.StreamClients.Dec()
	}
}
