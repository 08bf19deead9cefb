// Package app owns the per-run state of the orrery and the rules that
// input events and frame updates apply to it.
package app

import (
	"fmt"

	"orrery/internal/camera"
	"orrery/internal/config"
	"orrery/internal/mathutil"
	"orrery/internal/scene"
)

// Context is the mutable application state. It replaces process-wide
// globals and is passed to the update and draw steps.
type Context struct {
	Config *config.Config
	Camera *camera.Orbital
	Scene  *scene.Scene

	Focus        scene.BodyID
	Paused       bool
	SpeedDivisor float64
	ResetHeld    bool
	ShowHUD      bool
	ShowFPS      bool

	quit bool
}

// NewContext builds the scene and camera described by cfg.
func NewContext(cfg *config.Config) *Context {
	ctx := &Context{
		Config:       cfg,
		Scene:        scene.New(cfg.Bodies),
		Paused:       cfg.Simulation.StartPaused,
		SpeedDivisor: cfg.Simulation.SpeedDivisor,
		ShowHUD:      cfg.UI.ShowHUD,
		ShowFPS:      cfg.UI.ShowFPS,
	}
	ctx.resetCamera()
	return ctx
}

func (c *Context) resetCamera() {
	cc := c.Config.Camera
	c.Focus = scene.Sun
	sun := c.Scene.Body(scene.Sun)
	c.Camera = camera.NewBounded(camera.Spherical{
		Azimuth: cc.Azimuth,
		Polar:   cc.Polar,
		Radius:  cc.Radius,
	}, sun.Center, sun.Radius, cc.MaxRadius)
}

// Reset regenerates every body and returns the camera to its starting state.
func (c *Context) Reset() {
	c.Scene.Reset()
	c.resetCamera()
}

// Update runs one frame: reset while the reset key is held, advance the
// bodies unless paused, then keep the camera on the focused body.
func (c *Context) Update() {
	if c.ResetHeld {
		c.Reset()
	}
	if !c.Paused {
		c.Scene.Step(c.SpeedDivisor)
	}
	b := c.FocusedBody()
	c.Camera.Focus(b.Center, b.Radius)
}

// FocusedBody returns the body the camera orbits.
func (c *Context) FocusedBody() *scene.Body {
	return c.Scene.Body(c.Focus)
}

// ShouldQuit reports whether a quit event was applied.
func (c *Context) ShouldQuit() bool { return c.quit }

// Apply mutates the context for a single input event.
func (c *Context) Apply(ev Event) error {
	sim := c.Config.Simulation
	switch ev.Kind {
	case EventDrag:
		s := c.Config.Camera.DragSensitivity
		c.Camera.Pan(-ev.DY*s, ev.DX*s, 0)
	case EventScroll:
		c.Camera.Pan(0, 0, -ev.DY*c.Config.Camera.ScrollStep)
	case EventFocus:
		return c.focus(ev.Body)
	case EventReset:
		c.ResetHeld = ev.Pressed
	case EventTogglePause:
		c.Paused = !c.Paused
	case EventSpeedUp:
		c.SpeedDivisor = mathutil.Clamp(c.SpeedDivisor-sim.SpeedStep, sim.MinSpeedDivisor, sim.MaxSpeedDivisor)
	case EventSpeedDown:
		c.SpeedDivisor = mathutil.Clamp(c.SpeedDivisor+sim.SpeedStep, sim.MinSpeedDivisor, sim.MaxSpeedDivisor)
	case EventToggleHUD:
		c.ShowHUD = !c.ShowHUD
	case EventToggleFPS:
		c.ShowFPS = !c.ShowFPS
	case EventQuit:
		c.quit = true
	default:
		return fmt.Errorf("app: unknown event kind %d", ev.Kind)
	}
	return nil
}

func (c *Context) focus(id scene.BodyID) error {
	if id != scene.Sun && id != scene.Planet && id != scene.Moon {
		return fmt.Errorf("app: cannot focus %v", id)
	}
	c.Focus = id
	b := c.Scene.Body(id)
	c.Camera.Focus(b.Center, b.Radius)
	if b.FocusDistance > 0 {
		c.Camera.SetRadius(b.FocusDistance)
	}
	return nil
}
