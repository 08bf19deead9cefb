package threading

import (
	"orrery/internal/config"
	"orrery/internal/threading/core"
	"orrery/internal/threading/monitoring"
	"orrery/internal/threading/rendering"
)

// ThreadingComponents holds all threading-related components
type ThreadingComponents struct {
	WorkerPool         *core.WorkerPool
	Projector          *rendering.Projector
	PerformanceMonitor *monitoring.PerformanceMonitor
	Metrics            *monitoring.MetricsCollector
}

// NewThreadingComponents creates and initializes all threading components.
// Metrics are only created when an endpoint is configured.
func NewThreadingComponents(cfg *config.Config) *ThreadingComponents {
	pool := core.NewWorkerPool(cfg.Graphics.Workers)
	pool.Start()

	tc := &ThreadingComponents{
		WorkerPool:         pool,
		Projector:          rendering.NewProjector(pool, cfg.Graphics.ParallelProjection),
		PerformanceMonitor: monitoring.NewPerformanceMonitor(),
	}
	if cfg.Metrics.ListenAddr != "" {
		tc.Metrics = monitoring.NewMetricsCollector()
		tc.PerformanceMonitor.AttachMetrics(tc.Metrics)
	}
	return tc
}

// Shutdown gracefully shuts down all threading components
func (tc *ThreadingComponents) Shutdown() {
	if tc.WorkerPool != nil {
		tc.WorkerPool.Stop()
	}
	if tc.PerformanceMonitor != nil {
		tc.PerformanceMonitor.Reset()
	}
}

// GetPerformanceMetrics returns current performance metrics
func (tc *ThreadingComponents) GetPerformanceMetrics() monitoring.FrameMetrics {
	return tc.PerformanceMonitor.GetCurrentMetrics()
}

// GetDetailedPerformanceStats returns detailed performance statistics
func (tc *ThreadingComponents) GetDetailedPerformanceStats() map[string]interface{} {
	return tc.PerformanceMonitor.GetDetailedStats()
}

// CheckPerformanceAlerts returns any performance warnings
func (tc *ThreadingComponents) CheckPerformanceAlerts() []monitoring.PerformanceAlert {
	return tc.PerformanceMonitor.CheckPerformanceAlerts()
}
