package game

import (
	"orrery/internal/app"
	"orrery/internal/game/keytracker"
	"orrery/internal/scene"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

type keyBinding struct {
	key   ebiten.Key
	event app.Event
}

// Keys that fire once per press.
var keyBindings = []keyBinding{
	{ebiten.Key1, app.FocusOn(scene.Sun)},
	{ebiten.Key2, app.FocusOn(scene.Planet)},
	{ebiten.Key3, app.FocusOn(scene.Moon)},
	{ebiten.KeySpace, app.Simple(app.EventTogglePause)},
	{ebiten.KeyArrowUp, app.Simple(app.EventSpeedUp)},
	{ebiten.KeyArrowDown, app.Simple(app.EventSpeedDown)},
	{ebiten.KeyH, app.Simple(app.EventToggleHUD)},
	{ebiten.KeySlash, app.Simple(app.EventToggleFPS)},
	{ebiten.KeyEscape, app.Simple(app.EventQuit)},
}

// resetKey is level-triggered: the scene resets every frame while held.
const resetKey = ebiten.KeyR

func trackedKeys() []ebiten.Key {
	keys := make([]ebiten.Key, 0, len(keyBindings)+1)
	for _, b := range keyBindings {
		keys = append(keys, b.key)
	}
	return append(keys, resetKey)
}

// InputHandler turns ebiten input state into application events
type InputHandler struct {
	game   *OrreryGame
	keys   *keytracker.KeyStateTracker
	width  int
	height int

	lastPointer mgl64.Vec2
	havePointer bool
}

// NewInputHandler creates a new input handler
func NewInputHandler(game *OrreryGame) *InputHandler {
	return &InputHandler{
		game:   game,
		keys:   keytracker.New(trackedKeys()...),
		width:  game.config.GetScreenWidth(),
		height: game.config.GetScreenHeight(),
	}
}

// SetScreenSize updates the size used to normalize pointer positions.
func (ih *InputHandler) SetScreenSize(w, h int) {
	ih.width, ih.height = w, h
}

// Poll samples keyboard, mouse and wheel state and returns this tick's events.
func (ih *InputHandler) Poll() []app.Event {
	ih.keys.Update()
	events := keyEvents(ih.keys)

	x, y := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if ev, ok := ih.pointerEvent(x, y, pressed); ok {
		events = append(events, ev)
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		events = append(events, app.Scroll(wy))
	}
	return events
}

// pointerEvent tracks the cursor every tick and reports a drag while the
// button is held.
func (ih *InputHandler) pointerEvent(x, y int, pressed bool) (app.Event, bool) {
	cur := PointerNDC(x, y, ih.width, ih.height)
	prev, had := ih.lastPointer, ih.havePointer
	ih.lastPointer, ih.havePointer = cur, true

	if !pressed || !had {
		return app.Event{}, false
	}
	d := cur.Sub(prev)
	if d.X() == 0 && d.Y() == 0 {
		return app.Event{}, false
	}
	return app.Drag(d.X(), d.Y()), true
}

func keyEvents(k *keytracker.KeyStateTracker) []app.Event {
	var events []app.Event
	for _, b := range keyBindings {
		if k.IsKeyJustPressed(b.key) {
			events = append(events, b.event)
		}
	}
	if k.IsKeyJustPressed(resetKey) {
		events = append(events, app.ResetKey(true))
	} else if k.IsKeyJustReleased(resetKey) {
		events = append(events, app.ResetKey(false))
	}
	return events
}

// PointerNDC maps a window position to (x/w, -y/h)*2 - 1. Only differences
// between two positions are used, so the vertical offset does not matter.
func PointerNDC(x, y, w, h int) mgl64.Vec2 {
	if w <= 0 || h <= 0 {
		return mgl64.Vec2{}
	}
	p := mgl64.Vec2{float64(x) / float64(w), -float64(y) / float64(h)}
	return p.Mul(2).Sub(mgl64.Vec2{1, 1})
}
