package monitoring

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "orrery"

// MetricsCollector exports render-loop timings to Prometheus. It owns its
// registry so several collectors can coexist in one process.
type MetricsCollector struct {
	registry *prometheus.Registry

	frameDuration prometheus.Histogram
	stageDuration *prometheus.HistogramVec
	framesTotal   prometheus.Counter
	triangles     *prometheus.GaugeVec
	speedDivisor  prometheus.Gauge
	paused        prometheus.Gauge
}

// NewMetricsCollector creates and registers all metrics.
func NewMetricsCollector() *MetricsCollector {
	buckets := prometheus.ExponentialBuckets(0.0005, 2, 12)
	m := &MetricsCollector{
		registry: prometheus.NewRegistry(),
		frameDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "frame_duration_seconds",
				Help:      "Time spent producing one frame",
				Buckets:   buckets,
			},
		),
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "stage_duration_seconds",
				Help:      "Time spent in each render-loop stage",
				Buckets:   buckets,
			},
			[]string{"stage"},
		),
		framesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "frames_total",
				Help:      "Total number of frames produced",
			},
		),
		triangles: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "triangles_drawn",
				Help:      "Triangles submitted in the last frame",
			},
			[]string{"body"},
		),
		speedDivisor: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "speed_divisor",
				Help:      "Current simulation speed divisor",
			},
		),
		paused: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "paused",
				Help:      "1 while the simulation is paused",
			},
		),
	}

	m.registry.MustRegister(
		m.frameDuration,
		m.stageDuration,
		m.framesTotal,
		m.triangles,
		m.speedDivisor,
		m.paused,
		collectors.NewGoCollector(),
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *MetricsCollector) Registry() *prometheus.Registry {
	return m.registry
}

func (m *MetricsCollector) ObserveFrame(d time.Duration) {
	m.frameDuration.Observe(d.Seconds())
	m.framesTotal.Inc()
}

func (m *MetricsCollector) ObserveStage(stage string, d time.Duration) {
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (m *MetricsCollector) SetTriangles(body string, n int) {
	m.triangles.WithLabelValues(body).Set(float64(n))
}

// SetSimulation records the user-controlled simulation state.
func (m *MetricsCollector) SetSimulation(speedDivisor float64, paused bool) {
	m.speedDivisor.Set(speedDivisor)
	m.paused.Set(boolGauge(paused))
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Handler returns the HTTP handler serving this collector's registry.
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ServeMetrics serves /metrics on addr until ctx is cancelled.
func (m *MetricsCollector) ServeMetrics(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
