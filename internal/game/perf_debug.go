package game

import (
	"log"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	perfLowFpsThreshold = 45.0
	perfLowFpsDuration  = 3 * time.Second
	perfLogInterval     = 3 * time.Second
)

func (gl *GameLoop) maybeLogPerfDrop() {
	if !gl.game.perfDebugEnabled {
		return
	}
	if gl.game.shouldLogPerf(ebiten.ActualFPS(), time.Now()) {
		gl.logPerfSnapshot(ebiten.ActualFPS())
	}
}

// shouldLogPerf reports whether the frame rate has stayed low long enough,
// rate-limited to one snapshot per interval.
func (g *OrreryGame) shouldLogPerf(fps float64, now time.Time) bool {
	if fps >= perfLowFpsThreshold {
		g.perfLowFpsSince = time.Time{}
		g.perfLastPerfLog = time.Time{}
		return false
	}
	if g.perfLowFpsSince.IsZero() {
		g.perfLowFpsSince = now
		return false
	}
	if now.Sub(g.perfLowFpsSince) < perfLowFpsDuration {
		return false
	}
	if !g.perfLastPerfLog.IsZero() && now.Sub(g.perfLastPerfLog) < perfLogInterval {
		return false
	}
	g.perfLastPerfLog = now
	return true
}

func (gl *GameLoop) logPerfSnapshot(fps float64) {
	tc := gl.game.threading
	m := tc.GetPerformanceMetrics()
	stats := tc.GetDetailedPerformanceStats()
	ctx := gl.game.ctx

	causes := make([]string, 0, 3)
	if m.ProjectTime > 8*time.Millisecond {
		causes = append(causes, "slow projection")
	}
	if !gl.game.config.Graphics.ParallelProjection {
		causes = append(causes, "parallel projection off")
	}
	if m.TrianglesDrawn > 60000 {
		causes = append(causes, "high triangle count")
	}
	causeText := "none obvious"
	if len(causes) > 0 {
		causeText = strings.Join(causes, ", ")
	}

	log.Printf("[PERF] FPS<%.0f for >=%s | fps=%.1f tps=%.1f causes=%s",
		perfLowFpsThreshold, perfLowFpsDuration, fps, ebiten.ActualTPS(), causeText)
	log.Printf("[PERF] update=%.2fms draw=%.2fms budget=%.2fms idle=%.2fms project=%.2fms submit=%.2fms",
		ms(gl.lastUpdateDuration), ms(gl.lastDrawDuration),
		frameBudgetMs(fps), idleBudgetMs(fps, gl.lastUpdateDuration, gl.lastDrawDuration),
		ms(m.ProjectTime), ms(m.DrawTime))
	log.Printf("[PERF] triangles=%d workers=%d jobs=%d goroutines=%v mem_alloc=%dMB gc_cycles=%v",
		m.TrianglesDrawn, tc.WorkerPool.GetNumWorkers(), tc.WorkerPool.Completed(),
		stats["goroutines"], m.MemoryUsageMB, stats["gc_cycles"])
	log.Printf("[PERF] focus=%s speed=%.0f paused=%v frames=%d",
		ctx.FocusedBody().Name, ctx.SpeedDivisor, ctx.Paused, ctx.Scene.Frames())

	for _, alert := range tc.CheckPerformanceAlerts() {
		log.Printf("[PERF] alert %s: %s (value %.1f, threshold %.1f)", alert.Type, alert.Message, alert.Value, alert.Threshold)
	}
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}

func frameBudgetMs(fps float64) float64 {
	if fps <= 0 {
		return 0
	}
	return 1000.0 / fps
}

func idleBudgetMs(fps float64, updateDur, drawDur time.Duration) float64 {
	budget := frameBudgetMs(fps)
	busy := float64(updateDur.Microseconds()+drawDur.Microseconds()) / 1000.0
	idle := budget - busy
	if idle < 0 {
		return 0
	}
	return idle
}
