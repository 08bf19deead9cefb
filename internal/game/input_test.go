package game

import (
	"math"
	"testing"

	"orrery/internal/app"
	"orrery/internal/game/keytracker"
	"orrery/internal/scene"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestPointerNDC(t *testing.T) {
	tests := []struct {
		x, y, w, h int
		wantX      float64
		wantY      float64
	}{
		{0, 0, 800, 600, -1, -1},
		{400, 300, 800, 600, 0, -2},
		{800, 600, 800, 600, 1, -3},
		{10, 10, 0, 600, 0, 0},
	}
	for _, tt := range tests {
		got := PointerNDC(tt.x, tt.y, tt.w, tt.h)
		if math.Abs(got.X()-tt.wantX) > 1e-12 || math.Abs(got.Y()-tt.wantY) > 1e-12 {
			t.Errorf("PointerNDC(%d,%d,%d,%d) = %v, want (%v,%v)", tt.x, tt.y, tt.w, tt.h, got, tt.wantX, tt.wantY)
		}
	}
}

func TestPointerDrag(t *testing.T) {
	ih := &InputHandler{width: 100, height: 200}

	if _, ok := ih.pointerEvent(50, 50, true); ok {
		t.Error("first sample should only seed the pointer")
	}
	if _, ok := ih.pointerEvent(60, 50, false); ok {
		t.Error("no drag without the button held")
	}
	ev, ok := ih.pointerEvent(70, 70, true)
	if !ok {
		t.Fatal("expected drag event")
	}
	if ev.Kind != app.EventDrag {
		t.Fatalf("kind = %v", ev.Kind)
	}
	// x moved 10/100 of the width, y moved 20/200 of the height downwards
	if math.Abs(ev.DX-0.2) > 1e-12 || math.Abs(ev.DY+0.2) > 1e-12 {
		t.Errorf("drag = (%v, %v), want (0.2, -0.2)", ev.DX, ev.DY)
	}
	if _, ok := ih.pointerEvent(70, 70, true); ok {
		t.Error("no drag for a stationary pointer")
	}
}

func TestKeyEvents(t *testing.T) {
	state := map[ebiten.Key]bool{}
	k := keytracker.NewWithSource(func(key ebiten.Key) bool { return state[key] }, trackedKeys()...)

	press := func(keys ...ebiten.Key) []app.Event {
		for key := range state {
			state[key] = false
		}
		for _, key := range keys {
			state[key] = true
		}
		k.Update()
		return keyEvents(k)
	}

	evs := press(ebiten.Key2, ebiten.KeySpace)
	if len(evs) != 2 || evs[0] != app.FocusOn(scene.Planet) || evs[1].Kind != app.EventTogglePause {
		t.Errorf("events = %+v", evs)
	}
	// held keys do not repeat
	if evs := press(ebiten.Key2, ebiten.KeySpace); len(evs) != 0 {
		t.Errorf("repeat events = %+v", evs)
	}

	evs = press(ebiten.KeyR)
	if len(evs) != 1 || evs[0] != app.ResetKey(true) {
		t.Errorf("reset press = %+v", evs)
	}
	if evs := press(ebiten.KeyR); len(evs) != 0 {
		t.Errorf("reset hold = %+v", evs)
	}
	evs = press()
	if len(evs) != 1 || evs[0] != app.ResetKey(false) {
		t.Errorf("reset release = %+v", evs)
	}

	evs = press(ebiten.KeyEscape, ebiten.KeyArrowUp)
	kinds := map[app.EventKind]bool{}
	for _, ev := range evs {
		kinds[ev.Kind] = true
	}
	if !kinds[app.EventQuit] || !kinds[app.EventSpeedUp] {
		t.Errorf("events = %+v", evs)
	}
}

func TestKeyEventsDriveContext(t *testing.T) {
	ctx := newTestContext(t)
	state := map[ebiten.Key]bool{ebiten.Key3: true, ebiten.KeyArrowUp: true}
	k := keytracker.NewWithSource(func(key ebiten.Key) bool { return state[key] }, trackedKeys()...)
	k.Update()
	for _, ev := range keyEvents(k) {
		if err := ctx.Apply(ev); err != nil {
			t.Fatal(err)
		}
	}
	if ctx.Focus != scene.Moon {
		t.Errorf("focus = %v, want moon", ctx.Focus)
	}
	if ctx.SpeedDivisor != 50 {
		t.Errorf("speed divisor = %v, want 50", ctx.SpeedDivisor)
	}
}
