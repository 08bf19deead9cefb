package threading

import (
	"testing"

	"orrery/internal/config"
)

func TestNewThreadingComponents(t *testing.T) {
	cfg := config.Default()
	cfg.Graphics.Workers = 2

	tc := NewThreadingComponents(cfg)
	defer tc.Shutdown()

	if tc.WorkerPool.GetNumWorkers() != 2 {
		t.Errorf("workers = %d, want 2", tc.WorkerPool.GetNumWorkers())
	}
	if tc.Projector == nil || tc.PerformanceMonitor == nil {
		t.Fatal("components missing")
	}
	if tc.Metrics != nil {
		t.Error("metrics created without a listen address")
	}
	for _, a := range tc.CheckPerformanceAlerts() {
		if a.Type == "low_fps" {
			t.Error("low_fps alert before any frame")
		}
	}
	if tc.GetPerformanceMetrics().FrameTime != 0 {
		t.Error("frame time recorded before any frame")
	}
	if _, ok := tc.GetDetailedPerformanceStats()["frame_count"]; !ok {
		t.Error("detailed stats missing frame_count")
	}
}

func TestMetricsEnabledByListenAddr(t *testing.T) {
	cfg := config.Default()
	cfg.Graphics.Workers = 1
	cfg.Metrics.ListenAddr = "127.0.0.1:0"

	tc := NewThreadingComponents(cfg)
	defer tc.Shutdown()

	if tc.Metrics == nil {
		t.Fatal("metrics collector not created")
	}
	tc.PerformanceMonitor.RecordFrame(1)
	families, err := tc.Metrics.Registry().Gather()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "orrery_frames_total" && f.GetMetric()[0].GetCounter().GetValue() == 1 {
			found = true
		}
	}
	if !found {
		t.Error("frame not forwarded to metrics")
	}
}
