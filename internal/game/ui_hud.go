package game

import (
	"fmt"
	"image/color"

	"orrery/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const (
	hudMargin      = 8
	hudPadding     = 6
	hudLineSpacing = 4
)

var (
	hudTextColor  = color.RGBA{230, 230, 230, 255}
	hudPauseColor = color.RGBA{255, 200, 80, 255}
	hudBgColor    = color.RGBA{0, 0, 0, 150}
)

const hudHelp = "1/2/3 focus  drag orbit  wheel zoom  space pause  up/down speed  R reset  / fps  H hud  Esc quit"

// HUD draws the status overlay
type HUD struct {
	game *OrreryGame
}

func NewHUD(game *OrreryGame) *HUD {
	return &HUD{game: game}
}

type hudLine struct {
	text  string
	color color.Color
}

// hudLines builds the overlay text for the current state.
func hudLines(ctx *app.Context, fps, tps float64) []hudLine {
	body := ctx.FocusedBody()
	lines := []hudLine{
		{fmt.Sprintf("Focus: %s  distance %.1f", body.Name, ctx.Camera.Coords.Radius), hudTextColor},
		{fmt.Sprintf("Speed divisor: %.0f", ctx.SpeedDivisor), hudTextColor},
	}
	if ctx.Paused {
		lines = append(lines, hudLine{"PAUSED", hudPauseColor})
	}
	if ctx.ShowFPS {
		lines = append(lines, hudLine{fmt.Sprintf("FPS: %.1f  TPS: %.1f", fps, tps), hudTextColor})
	}
	return append(lines, hudLine{hudHelp, hudTextColor})
}

// Draw renders the overlay in the top-left corner
func (h *HUD) Draw(screen *ebiten.Image) {
	face := basicfont.Face7x13
	lines := hudLines(h.game.ctx, ebiten.ActualFPS(), ebiten.ActualTPS())

	lineHeight := face.Metrics().Height.Ceil() + hudLineSpacing
	width := 0
	for _, l := range lines {
		width = max(width, font.MeasureString(face, l.text).Ceil())
	}
	vector.DrawFilledRect(screen,
		float32(hudMargin), float32(hudMargin),
		float32(width+2*hudPadding), float32(len(lines)*lineHeight+2*hudPadding),
		hudBgColor, false)

	y := hudMargin + hudPadding + face.Ascent
	for _, l := range lines {
		ebitext.Draw(screen, l.text, face, hudMargin+hudPadding, y, l.color)
		y += lineHeight
	}
}
