package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type renderMetrics struct {
	renders  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newRenderMetrics(registerer prometheus.Registerer) *renderMetrics {
	m := &renderMetrics{
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "topbars_renders_total",
			Help: "Total number of chart renders by output format and status",
		}, []string{"format", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "topbars_render_duration_seconds",
			Help:    "Chart render duration in seconds, including the data load",
			Buckets: prometheus.DefBuckets,
		}, []string{"format"}),
	}
	if registerer != nil {
		registerer.MustRegister(m.renders, m.duration)
	}
	return m
}

func (m *renderMetrics) observe(format, status string, started time.Time) {
	m.renders.WithLabelValues(format, status).Inc()
	m.duration.WithLabelValues(format).Observe(time.Since(started).Seconds())
}
