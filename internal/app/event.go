package app

import "orrery/internal/scene"

// EventKind identifies an input action.
type EventKind int

const (
	EventDrag EventKind = iota
	EventScroll
	EventFocus
	EventReset
	EventTogglePause
	EventSpeedUp
	EventSpeedDown
	EventToggleHUD
	EventToggleFPS
	EventQuit
)

// Event is a single input action. DX and DY carry pointer movement in
// normalized device coordinates for drags and wheel offsets for scrolls.
type Event struct {
	Kind    EventKind
	DX, DY  float64
	Body    scene.BodyID
	Pressed bool
}

// Drag is pointer movement with the button held, in NDC units.
func Drag(dx, dy float64) Event { return Event{Kind: EventDrag, DX: dx, DY: dy} }

// Scroll is a vertical wheel offset.
func Scroll(dy float64) Event { return Event{Kind: EventScroll, DY: dy} }

// FocusOn moves the camera to body id.
func FocusOn(id scene.BodyID) Event { return Event{Kind: EventFocus, Body: id} }

// ResetKey reports the reset key state; the scene resets every frame it is held.
func ResetKey(pressed bool) Event { return Event{Kind: EventReset, Pressed: pressed} }

// Simple builds an event that carries no payload, such as EventTogglePause.
func Simple(kind EventKind) Event { return Event{Kind: kind} }
