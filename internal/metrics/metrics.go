// Package metrics holds the Prometheus collectors for the follow pacer,
// the engagement loop and the status API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ibeckermayer/xbot/internal/engage"
	"github.com/ibeckermayer/xbot/internal/pacer"
)

const namespace = "xbot"

// Metrics owns a registry and every collector registered on it.
type Metrics struct {
	Registry *prometheus.Registry

	FollowsTotal       prometheus.Counter
	FollowBatches      *prometheus.CounterVec
	FollowBatchSeconds prometheus.Histogram
	PacerRunning       prometheus.Gauge
	PacerRestSeconds   prometheus.Gauge
	PacerWindowDone    prometheus.Gauge
	PacerWindows       prometheus.Counter

	EngageVisits  *prometheus.CounterVec
	EngageLikes   prometheus.Counter
	EngageReplies prometheus.Counter

	APIRequestsTotal     *prometheus.CounterVec
	APIRequestDuration   *prometheus.HistogramVec
	APIActiveConnections prometheus.Gauge
}

// New registers all collectors, plus the Go runtime and process
// collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),

		FollowsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "follow",
			Name:      "accounts_total",
			Help:      "Accounts followed by the auto-follow pacer.",
		}),
		FollowBatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "follow",
			Name:      "batches_total",
			Help:      "Follow batches executed, by result.",
		}, []string{"result"}),
		FollowBatchSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "follow",
			Name:      "batch_duration_seconds",
			Help:      "Wall time of one follow batch.",
			Buckets:   []float64{5, 15, 30, 60, 120, 300, 600},
		}),
		PacerRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pacer",
			Name:      "running",
			Help:      "1 while a pacing session is active.",
		}),
		PacerRestSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pacer",
			Name:      "rest_interval_seconds",
			Help:      "Pause between batches of the current plan.",
		}),
		PacerWindowDone: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pacer",
			Name:      "window_done",
			Help:      "Items completed in the current window.",
		}),
		PacerWindows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pacer",
			Name:      "windows_total",
			Help:      "Windows finished or cancelled.",
		}),

		EngageVisits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engage",
			Name:      "visits_total",
			Help:      "Profile visits by the engagement loop, by outcome.",
		}, []string{"outcome"}),
		EngageLikes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engage",
			Name:      "likes_total",
			Help:      "Posts liked.",
		}),
		EngageReplies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engage",
			Name:      "replies_total",
			Help:      "Replies sent.",
		}),

		APIRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Status API requests.",
		}, []string{"method", "endpoint", "status"}),
		APIRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Status API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "endpoint", "status"}),
		APIActiveConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "active_connections",
			Help:      "Requests being served.",
		}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.FollowsTotal,
		m.FollowBatches,
		m.FollowBatchSeconds,
		m.PacerRunning,
		m.PacerRestSeconds,
		m.PacerWindowDone,
		m.PacerWindows,
		m.EngageVisits,
		m.EngageLikes,
		m.EngageReplies,
		m.APIRequestsTotal,
		m.APIRequestDuration,
		m.APIActiveConnections,
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// PacerObserver returns a pacer.Observer that feeds the follow and pacer
// collectors.
func (m *Metrics) PacerObserver() pacer.Observer {
	return pacerObserver{m}
}

type pacerObserver struct{ m *Metrics }

func (o pacerObserver) OnPlan(_ pacer.Plan, rest time.Duration) {
	o.m.PacerRunning.Set(1)
	o.m.PacerRestSeconds.Set(rest.Seconds())
	o.m.PacerWindowDone.Set(0)
}

func (o pacerObserver) OnBatch(r pacer.BatchResult) {
	result := "ok"
	if r.Err != nil {
		result = "error"
	}
	o.m.FollowBatches.WithLabelValues(result).Inc()
	o.m.FollowBatchSeconds.Observe(r.Duration.Seconds())
	o.m.FollowsTotal.Add(float64(r.Completed))
	o.m.PacerWindowDone.Set(float64(r.DoneCount))
}

func (o pacerObserver) OnWindow(pacer.WindowSummary) {
	o.m.PacerWindows.Inc()
	o.m.PacerWindowDone.Set(0)
}

func (o pacerObserver) OnStop(pacer.State) {
	o.m.PacerRunning.Set(0)
	o.m.PacerWindowDone.Set(0)
}

// EngageObserver returns an engage.Observer that feeds the engagement
// collectors.
func (m *Metrics) EngageObserver() engage.Observer {
	return engageObserver{m}
}

type engageObserver struct{ m *Metrics }

func (o engageObserver) OnResult(r engage.Result) {
	outcome := "engaged"
	switch {
	case r.Err != nil:
		outcome = "failed"
	case r.Skipped:
		outcome = "skipped"
	}
	o.m.EngageVisits.WithLabelValues(outcome).Inc()
	if r.Liked {
		o.m.EngageLikes.Inc()
	}
	if r.Replied {
		o.m.EngageReplies.Inc()
	}
}

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Middleware tracks status API request metrics by chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		m.APIActiveConnections.Inc()
		defer m.APIActiveConnections.Dec()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		endpoint := r.URL.Path
		if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
			if pattern := routeCtx.RoutePattern(); pattern != "" {
				endpoint = pattern
			}
		}
		status := strconv.Itoa(wrapped.statusCode)

		m.APIRequestDuration.WithLabelValues(r.Method, endpoint, status).Observe(time.Since(start).Seconds())
		m.APIRequestsTotal.WithLabelValues(r.Method, endpoint, status).Inc()
	})
}
