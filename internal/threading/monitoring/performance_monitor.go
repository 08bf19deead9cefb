package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Stage names accepted by ProfiledFunction.
const (
	StageUpdate  = "update"
	StageProject = "project"
	StageDraw    = "draw"
)

// Frame rate below which CheckPerformanceAlerts reports low_fps.
const LowFPSThreshold = 30.0

// smoothing factor for the running averages
const avgWeight = 0.1

// PerformanceMonitor tracks frame and per-stage timings of the render loop.
type PerformanceMonitor struct {
	// Frame metrics
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds
	lastMark   atomic.Int64  // unix nanoseconds of the previous MarkFrame, 0 if none

	// Stage metrics, last sample in nanoseconds
	updateTime  atomic.Uint64
	projectTime atomic.Uint64
	drawTime    atomic.Uint64

	// Geometry metrics for the last frame
	trianglesDrawn atomic.Uint64
	verticesIn     atomic.Uint64

	// Statistics
	mutex          sync.RWMutex
	avgFrameTime   float64
	avgStageTime   map[string]float64
	startTime      time.Time
	enableDetailed bool

	// Optional Prometheus sink
	metrics *MetricsCollector
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{
		startTime:      time.Now(),
		enableDetailed: true,
		avgStageTime:   make(map[string]float64),
	}
}

// AttachMetrics forwards every sample to m as well.
func (pm *PerformanceMonitor) AttachMetrics(m *MetricsCollector) {
	pm.mutex.Lock()
	pm.metrics = m
	pm.mutex.Unlock()
}

func (pm *PerformanceMonitor) sink() *MetricsCollector {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()
	return pm.metrics
}

// MarkFrame is called once per presented frame. The interval since the
// previous mark, which spans update, projection and drawing, is recorded as
// the frame time. The first mark only starts the clock.
func (pm *PerformanceMonitor) MarkFrame(now time.Time) {
	prev := pm.lastMark.Swap(now.UnixNano())
	if prev == 0 {
		return
	}
	if d := time.Duration(now.UnixNano() - prev); d > 0 {
		pm.RecordFrame(d)
	}
}

// RecordFrame stores one frame duration.
func (pm *PerformanceMonitor) RecordFrame(d time.Duration) {
	pm.frameTime.Store(uint64(d.Nanoseconds()))
	count := pm.frameCount.Add(1)

	if pm.detailed() {
		pm.mutex.Lock()
		if count == 1 {
			pm.avgFrameTime = float64(d.Nanoseconds())
		} else {
			pm.avgFrameTime += avgWeight * (float64(d.Nanoseconds()) - pm.avgFrameTime)
		}
		pm.mutex.Unlock()
	}
	if m := pm.sink(); m != nil {
		m.ObserveFrame(d)
	}
}

func (pm *PerformanceMonitor) detailed() bool {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()
	return pm.enableDetailed
}

// ProfiledFunction runs fn and records its duration under name.
func (pm *PerformanceMonitor) ProfiledFunction(name string, fn func()) time.Duration {
	start := time.Now()
	fn()
	duration := time.Since(start)
	pm.RecordStage(name, duration)
	return duration
}

// RecordStage stores a duration for one of the Stage* names. Unknown names
// only feed the running averages and the metrics sink.
func (pm *PerformanceMonitor) RecordStage(name string, d time.Duration) {
	ns := uint64(d.Nanoseconds())
	switch name {
	case StageUpdate:
		pm.updateTime.Store(ns)
	case StageProject:
		pm.projectTime.Store(ns)
	case StageDraw:
		pm.drawTime.Store(ns)
	}

	pm.mutex.Lock()
	if pm.enableDetailed {
		prev, ok := pm.avgStageTime[name]
		if !ok {
			pm.avgStageTime[name] = float64(ns)
		} else {
			pm.avgStageTime[name] = prev + avgWeight*(float64(ns)-prev)
		}
	}
	m := pm.metrics
	pm.mutex.Unlock()

	if m != nil {
		m.ObserveStage(name, d)
	}
}

// RecordGeometry stores the triangle and vertex counts of a drawn body.
func (pm *PerformanceMonitor) RecordGeometry(body string, vertices, triangles int) {
	pm.verticesIn.Add(uint64(vertices))
	pm.trianglesDrawn.Add(uint64(triangles))
	if m := pm.sink(); m != nil {
		m.SetTriangles(body, triangles)
	}
}

// ResetGeometry clears the per-frame geometry counters.
func (pm *PerformanceMonitor) ResetGeometry() {
	pm.verticesIn.Store(0)
	pm.trianglesDrawn.Store(0)
}

// FrameMetrics is a snapshot of the most recent frame.
type FrameMetrics struct {
	FramesPerSecond float64
	FrameTime       time.Duration
	UpdateTime      time.Duration
	ProjectTime     time.Duration
	DrawTime        time.Duration
	TrianglesDrawn  uint64
	MemoryUsageMB   uint64
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() FrameMetrics {
	frameTime := pm.frameTime.Load()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return FrameMetrics{
		FramesPerSecond: fps(frameTime),
		FrameTime:       time.Duration(frameTime),
		UpdateTime:      time.Duration(pm.updateTime.Load()),
		ProjectTime:     time.Duration(pm.projectTime.Load()),
		DrawTime:        time.Duration(pm.drawTime.Load()),
		TrianglesDrawn:  pm.trianglesDrawn.Load(),
		MemoryUsageMB:   memStats.Alloc / 1024 / 1024,
	}
}

func fps(frameNanos uint64) float64 {
	if frameNanos == 0 {
		return 0
	}
	return float64(time.Second) / float64(frameNanos)
}

// GetDetailedStats returns detailed performance statistics
func (pm *PerformanceMonitor) GetDetailedStats() map[string]interface{} {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	stats := map[string]interface{}{
		"uptime_seconds":    time.Since(pm.startTime).Seconds(),
		"frame_count":       pm.frameCount.Load(),
		"avg_frame_time_ms": pm.avgFrameTime / 1e6,
		"current_fps":       fps(pm.frameTime.Load()),
		"triangles_drawn":   pm.trianglesDrawn.Load(),
		"vertices_in":       pm.verticesIn.Load(),
		"memory_alloc_mb":   memStats.Alloc / 1024 / 1024,
		"memory_sys_mb":     memStats.Sys / 1024 / 1024,
		"gc_cycles":         memStats.NumGC,
		"cpu_cores":         runtime.NumCPU(),
		"goroutines":        runtime.NumGoroutine(),
	}
	for name, avg := range pm.avgStageTime {
		stats["avg_"+name+"_time_ms"] = avg / 1e6
	}
	return stats
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// CheckPerformanceAlerts checks for performance issues and returns alerts
func (pm *PerformanceMonitor) CheckPerformanceAlerts() []PerformanceAlert {
	alerts := make([]PerformanceAlert, 0)
	currentTime := time.Now()

	if frameTime := pm.frameTime.Load(); frameTime > 0 {
		if f := fps(frameTime); f < LowFPSThreshold {
			alerts = append(alerts, PerformanceAlert{
				Type:      "low_fps",
				Message:   "Frame rate is below 30 FPS",
				Value:     f,
				Threshold: LowFPSThreshold,
				Timestamp: currentTime,
			})
		}
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	memoryMB := float64(memStats.Alloc) / 1024 / 1024
	if memoryMB > 500 {
		alerts = append(alerts, PerformanceAlert{
			Type:      "high_memory",
			Message:   "Memory usage is above 500MB",
			Value:     memoryMB,
			Threshold: 500,
			Timestamp: currentTime,
		})
	}

	// projection should fit comfortably inside a 60 TPS tick
	if pt := time.Duration(pm.projectTime.Load()); pt > 8*time.Millisecond {
		alerts = append(alerts, PerformanceAlert{
			Type:      "slow_projection",
			Message:   "Vertex projection took longer than 8ms",
			Value:     float64(pt) / 1e6,
			Threshold: 8,
			Timestamp: currentTime,
		})
	}

	return alerts
}

// EnableDetailedLogging enables/disables running averages
func (pm *PerformanceMonitor) EnableDetailedLogging(enabled bool) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	pm.enableDetailed = enabled
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	pm.lastMark.Store(0)
	pm.updateTime.Store(0)
	pm.projectTime.Store(0)
	pm.drawTime.Store(0)
	pm.ResetGeometry()

	pm.mutex.Lock()
	pm.avgFrameTime = 0
	pm.avgStageTime = make(map[string]float64)
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}

// FrameCount returns how many frames have been recorded.
func (pm *PerformanceMonitor) FrameCount() uint64 {
	return pm.frameCount.Load()
}
