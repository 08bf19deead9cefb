package game

import (
	"log"
	"time"

	"orrery/internal/threading/monitoring"

	"github.com/hajimehoshi/ebiten/v2"
)

// GameLoop manages the per-tick update and render cycle
type GameLoop struct {
	game         *OrreryGame
	inputHandler *InputHandler
	renderer     *Renderer
	hud          *HUD

	lastUpdateDuration time.Duration
	lastDrawDuration   time.Duration
}

// NewGameLoop creates a new game loop manager
func NewGameLoop(game *OrreryGame) *GameLoop {
	return &GameLoop{
		game:         game,
		inputHandler: NewInputHandler(game),
		renderer:     NewRenderer(game),
		hud:          NewHUD(game),
	}
}

// Update applies input and advances the simulation by one frame
func (gl *GameLoop) Update() error {
	start := time.Now()
	defer func() { gl.lastUpdateDuration = time.Since(start) }()

	pm := gl.game.threading.PerformanceMonitor
	ctx := gl.game.ctx
	for _, ev := range gl.inputHandler.Poll() {
		if err := ctx.Apply(ev); err != nil {
			log.Printf("input: %v", err)
		}
	}
	if ctx.ShouldQuit() {
		return ebiten.Termination
	}

	pm.ProfiledFunction(monitoring.StageUpdate, ctx.Update)

	if m := gl.game.threading.Metrics; m != nil {
		m.SetSimulation(ctx.SpeedDivisor, ctx.Paused)
	}
	gl.maybeLogPerfDrop()
	return nil
}

// Draw renders the bodies then the HUD. Frame time is measured from one Draw
// to the next so it covers the whole tick.
func (gl *GameLoop) Draw(screen *ebiten.Image) {
	start := time.Now()
	gl.game.threading.PerformanceMonitor.MarkFrame(start)
	gl.renderer.Draw(screen)
	if gl.game.ctx.ShowHUD {
		gl.hud.Draw(screen)
	}
	gl.lastDrawDuration = time.Since(start)
}

// Layout follows the window size so the projection aspect tracks resizes
func (gl *GameLoop) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return gl.game.config.GetScreenWidth(), gl.game.config.GetScreenHeight()
	}
	gl.inputHandler.SetScreenSize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
