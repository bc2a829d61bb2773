// Package metrics exposes process and simulation metrics in the prometheus format.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"iyouconnect/internal/core/activity"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "iyouconnect"

// Metrics owns a registry and every collector registered on it.
type Metrics struct {
	registry *prometheus.Registry

	// PostsCreated counts accepted submissions.
	PostsCreated prometheus.Counter
	// PostsDeleted counts removed posts.
	PostsDeleted prometheus.Counter
	// Likes counts likes by source (manual or auto).
	Likes *prometheus.CounterVec
	// Requests counts HTTP requests by method, route and status.
	Requests *prometheus.CounterVec
	// RequestDuration records HTTP latency by method and route.
	RequestDuration *prometheus.HistogramVec
	// AutoLikeCounters is the number of running auto-like counters.
	AutoLikeCounters prometheus.Gauge
}

// New registers the collectors on a fresh registry, together with the Go and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		PostsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_created_total",
			Help:      "Total number of posts created",
		}),
		PostsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_deleted_total",
			Help:      "Total number of posts deleted",
		}),
		Likes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "likes_total",
			Help:      "Total number of likes by source",
		}, []string{"source"}),
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		AutoLikeCounters: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "autolike_counters_running",
			Help:      "Number of running auto-like counters",
		}),
	}
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) PostCreated() { m.PostsCreated.Inc() }
func (m *Metrics) PostDeleted() { m.PostsDeleted.Inc() }

func (m *Metrics) LikesAdded(source string, n int) {
	if n > 0 {
		m.Likes.WithLabelValues(source).Add(float64(n))
	}
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, start time.Time) {
	m.Requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}

// SetAutoLikeCounters publishes how many auto-like counters are running.
func (m *Metrics) SetAutoLikeCounters(n int) { m.AutoLikeCounters.Set(float64(n)) }

// WatchActivity exposes the simulated board as gauges read at scrape time.
func (m *Metrics) WatchActivity(snapshot func() activity.Snapshot) {
	factory := promauto.With(m.registry)
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "live_online",
		Help:      "Simulated live-online count",
	}, func() float64 { return float64(snapshot().Online) })
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "admin_active",
		Help:      "1 when the admin presence is active",
	}, func() float64 {
		if snapshot().Presence == activity.PresenceActive {
			return 1
		}
		return 0
	})
}
