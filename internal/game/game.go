package game

import (
	"time"

	"orrery/internal/app"
	"orrery/internal/config"
	"orrery/internal/graphics"
	"orrery/internal/threading"

	"github.com/hajimehoshi/ebiten/v2"
)

// OrreryGame wires the application context to ebiten.
type OrreryGame struct {
	config    *config.Config
	ctx       *app.Context
	threading *threading.ThreadingComponents
	textures  *graphics.TextureManager
	loop      *GameLoop

	// Low-FPS logging state
	perfDebugEnabled bool
	perfLowFpsSince  time.Time
	perfLastPerfLog  time.Time
}

// NewOrreryGame builds the scene, camera and render components from cfg.
func NewOrreryGame(cfg *config.Config) *OrreryGame {
	g := &OrreryGame{
		config:           cfg,
		ctx:              app.NewContext(cfg),
		threading:        threading.NewThreadingComponents(cfg),
		textures:         graphics.NewTextureManager(cfg.Graphics.TextureDir),
		perfDebugEnabled: cfg.Debug.PerfLog,
	}
	g.loop = NewGameLoop(g)
	return g
}

// Context exposes the application state.
func (g *OrreryGame) Context() *app.Context { return g.ctx }

// Threading exposes the worker pool, projector and monitors.
func (g *OrreryGame) Threading() *threading.ThreadingComponents { return g.threading }

func (g *OrreryGame) Update() error {
	return g.loop.Update()
}

func (g *OrreryGame) Draw(screen *ebiten.Image) {
	g.loop.Draw(screen)
}

func (g *OrreryGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.loop.Layout(outsideWidth, outsideHeight)
}

// Shutdown stops background workers.
func (g *OrreryGame) Shutdown() {
	g.threading.Shutdown()
}
