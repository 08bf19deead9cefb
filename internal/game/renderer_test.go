package game

import (
	"strings"
	"testing"
	"time"

	"orrery/internal/scene"

	"github.com/go-gl/mathgl/mgl64"
)

func TestDrawOrder(t *testing.T) {
	ctx := newTestContext(t)
	bodies := ctx.Scene.Bodies()

	// camera near the moon, looking back at the sun
	order := drawOrder(bodies, mgl64.Vec3{30, 0, 0})
	want := []scene.BodyID{scene.Stars, scene.Sun, scene.Planet, scene.Moon}
	for i, b := range order {
		if b.ID != want[i] {
			t.Fatalf("order[%d] = %v, want %v", i, b.ID, want[i])
		}
	}

	// from the far side of the sun the moon is drawn first
	order = drawOrder(bodies, mgl64.Vec3{-40, 0, 0})
	want = []scene.BodyID{scene.Stars, scene.Moon, scene.Planet, scene.Sun}
	for i, b := range order {
		if b.ID != want[i] {
			t.Fatalf("order[%d] = %v, want %v", i, b.ID, want[i])
		}
	}

	if bodies[0].ID != scene.Sun {
		t.Error("drawOrder modified the scene's slice")
	}
}

func TestSurfaceFor(t *testing.T) {
	ctx := newTestContext(t)
	moon := ctx.Scene.Body(scene.Moon)
	light := ctx.Scene.Body(scene.Sun).Center

	s := surfaceFor(moon, light, 0.08, 512, 256)
	if !s.Diffuse || s.Inside {
		t.Errorf("moon surface flags: diffuse=%v inside=%v", s.Diffuse, s.Inside)
	}
	if len(s.Positions) != moon.Mesh.VertexCount() || len(s.Indices) != len(moon.Mesh.Indices) {
		t.Error("surface does not share the body mesh")
	}
	if s.TexWidth != 512 || s.TexHeight != 256 || s.Ambient != 0.08 {
		t.Errorf("surface = %+v", s)
	}

	stars := surfaceFor(ctx.Scene.Body(scene.Stars), light, 0.08, 1, 1)
	if !stars.Inside || stars.Diffuse {
		t.Error("starfield should be emissive and seen from inside")
	}
}

func TestHUDLines(t *testing.T) {
	ctx := newTestContext(t)
	join := func() string {
		var parts []string
		for _, l := range hudLines(ctx, 58.5, 60) {
			parts = append(parts, l.text)
		}
		return strings.Join(parts, "\n")
	}

	text := join()
	if !strings.Contains(text, "Focus: Sun") || !strings.Contains(text, "Speed divisor: 60") {
		t.Errorf("hud text:\n%s", text)
	}
	if strings.Contains(text, "PAUSED") || strings.Contains(text, "FPS") {
		t.Errorf("unexpected status in hud:\n%s", text)
	}

	ctx.Paused = true
	ctx.ShowFPS = true
	text = join()
	if !strings.Contains(text, "PAUSED") || !strings.Contains(text, "FPS: 58.5") {
		t.Errorf("hud text:\n%s", text)
	}
}

func TestShouldLogPerf(t *testing.T) {
	g := &OrreryGame{}
	t0 := time.Now()

	if g.shouldLogPerf(20, t0) {
		t.Error("first low sample should only start the window")
	}
	if g.shouldLogPerf(20, t0.Add(time.Second)) {
		t.Error("logged before the low-FPS duration elapsed")
	}
	if !g.shouldLogPerf(20, t0.Add(perfLowFpsDuration)) {
		t.Error("expected a snapshot once FPS stayed low")
	}
	if g.shouldLogPerf(20, t0.Add(perfLowFpsDuration+time.Second)) {
		t.Error("snapshots should be rate limited")
	}
	if !g.shouldLogPerf(20, t0.Add(perfLowFpsDuration+perfLogInterval)) {
		t.Error("expected a snapshot after the interval")
	}
	if g.shouldLogPerf(60, t0.Add(time.Hour)) || !g.perfLowFpsSince.IsZero() {
		t.Error("recovery should clear the low-FPS window")
	}
}

func TestBudgets(t *testing.T) {
	if frameBudgetMs(0) != 0 || frameBudgetMs(50) != 20 {
		t.Errorf("frameBudgetMs wrong: %v %v", frameBudgetMs(0), frameBudgetMs(50))
	}
	if got := idleBudgetMs(50, 5*time.Millisecond, 5*time.Millisecond); got != 10 {
		t.Errorf("idle = %v, want 10", got)
	}
	if got := idleBudgetMs(50, 30*time.Millisecond, 0); got != 0 {
		t.Errorf("idle = %v, want 0", got)
	}
}
