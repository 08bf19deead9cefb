package game

import (
	"image/color"
	"slices"
	"time"

	"orrery/internal/graphics"
	"orrery/internal/scene"
	"orrery/internal/threading/monitoring"
	"orrery/internal/threading/rendering"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// Renderer draws every body with the painter's algorithm
type Renderer struct {
	game      *OrreryGame
	projector *rendering.Projector
	bg        color.RGBA
}

// NewRenderer creates a new renderer
func NewRenderer(game *OrreryGame) *Renderer {
	r, g, b := game.config.GetBackgroundColor()
	return &Renderer{
		game:      game,
		projector: game.threading.Projector,
		bg:        color.RGBA{r, g, b, 255},
	}
}

// Draw projects and draws the bodies far to near.
func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Fill(r.bg)

	ctx := r.game.ctx
	cfg := r.game.config
	pm := r.game.threading.PerformanceMonitor
	pm.ResetGeometry()

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if w == 0 || h == 0 {
		return
	}
	proj := mgl64.Perspective(cfg.GetFOV(), float64(w)/float64(h), cfg.Camera.Near, cfg.Camera.Far)
	view := rendering.View{
		ViewProj: proj.Mul4(ctx.Camera.ViewMatrix()),
		Eye:      ctx.Camera.Eye,
		Width:    float64(w),
		Height:   float64(h),
	}
	light := ctx.Scene.Body(scene.Sun).Center

	var projectTime, drawTime time.Duration
	for _, body := range drawOrder(ctx.Scene.Bodies(), view.Eye) {
		tex := r.game.textures.GetTexture(body.Texture, graphics.RGBA(body.Color))
		surface := surfaceFor(body, light, cfg.Graphics.Ambient, tex.Bounds().Dx(), tex.Bounds().Dy())

		start := time.Now()
		vertices, indices := r.projector.Project(surface, view)
		projectTime += time.Since(start)
		if len(indices) == 0 {
			continue
		}

		start = time.Now()
		screen.DrawTriangles(vertices, indices, tex, &ebiten.DrawTrianglesOptions{
			Filter: ebiten.FilterLinear,
		})
		drawTime += time.Since(start)
		pm.RecordGeometry(body.ID.String(), len(vertices), len(indices)/3)
	}
	pm.RecordStage(monitoring.StageProject, projectTime)
	pm.RecordStage(monitoring.StageDraw, drawTime)
}

// drawOrder puts surfaces seen from inside first, then the remaining bodies
// from farthest to nearest center.
func drawOrder(bodies []*scene.Body, eye mgl64.Vec3) []*scene.Body {
	ordered := slices.Clone(bodies)
	slices.SortStableFunc(ordered, func(a, b *scene.Body) int {
		if a.Inside != b.Inside {
			if a.Inside {
				return -1
			}
			return 1
		}
		da, db := a.Center.Sub(eye).Len(), b.Center.Sub(eye).Len()
		switch {
		case da > db:
			return -1
		case da < db:
			return 1
		}
		return 0
	})
	return ordered
}

func surfaceFor(b *scene.Body, light mgl64.Vec3, ambient float64, texW, texH int) *rendering.Surface {
	return &rendering.Surface{
		Positions: b.Mesh.Positions,
		Normals:   b.Mesh.Normals,
		UVs:       b.Mesh.UVs,
		Indices:   b.Mesh.Indices,
		Inside:    b.Inside,
		Diffuse:   b.Diffuse,
		Light:     light,
		Ambient:   ambient,
		TexWidth:  float64(texW),
		TexHeight: float64(texH),
	}
}
