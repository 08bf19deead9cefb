package rendering

import (
	"context"
	"math"
	"slices"

	"orrery/internal/mathutil"
	"orrery/internal/threading/core"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// Work smaller than this is projected inline.
const (
	minVertexChunk   = 2048
	minTriangleChunk = 2048
)

// Surface is a triangle mesh plus the shading it should receive.
type Surface struct {
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3
	UVs       []mgl64.Vec2
	Indices   []uint32

	// Inside marks surfaces seen from within, such as a sky sphere.
	Inside bool
	// Diffuse surfaces are lit from Light; others are emissive.
	Diffuse bool
	Light   mgl64.Vec3
	Ambient float64

	// Texture size in pixels, used to scale UVs to source coordinates.
	TexWidth, TexHeight float64
}

// View is the per-frame camera state needed for projection.
type View struct {
	ViewProj      mgl64.Mat4
	Eye           mgl64.Vec3
	Width, Height float64
}

type projected struct {
	x, y, w float64
	inFront bool
}

type triangle struct {
	a, b, c uint32
	depth   float64
	visible bool
}

// Projector turns surfaces into screen-space vertices and depth-sorted
// indices for ebiten's DrawTriangles. Buffers are reused between calls, so
// the returned slices are only valid until the next Project.
type Projector struct {
	pool     *core.WorkerPool
	parallel bool

	points    []projected
	triangles []triangle
	vertices  []ebiten.Vertex
	indices   []uint16
}

// NewProjector creates a projector. With parallel set, work is split across
// pool; pool may be nil when parallel is false.
func NewProjector(pool *core.WorkerPool, parallel bool) *Projector {
	return &Projector{pool: pool, parallel: parallel && pool != nil}
}

// Project projects s through v. Triangles behind the camera, fully off
// screen or facing away are dropped; the rest are ordered far to near.
func (p *Projector) Project(s *Surface, v View) ([]ebiten.Vertex, []uint16) {
	n := len(s.Positions)
	if n == 0 || len(s.Indices) == 0 {
		return nil, nil
	}
	if n > math.MaxUint16+1 {
		panic("rendering: surface has more vertices than 16-bit indices can address")
	}

	p.points = resize(p.points, n)
	p.vertices = resize(p.vertices, n)
	p.run(n, minVertexChunk, func(lo, hi int) {
		p.projectVertices(s, v, lo, hi)
	})

	nt := len(s.Indices) / 3
	p.triangles = resize(p.triangles, nt)
	p.run(nt, minTriangleChunk, func(lo, hi int) {
		p.classifyTriangles(s, v, lo, hi)
	})

	visible := p.triangles[:0]
	for _, t := range p.triangles {
		if t.visible {
			visible = append(visible, t)
		}
	}
	slices.SortFunc(visible, func(a, b triangle) int {
		switch {
		case a.depth > b.depth:
			return -1
		case a.depth < b.depth:
			return 1
		}
		return 0
	})

	p.indices = p.indices[:0]
	for _, t := range visible {
		p.indices = append(p.indices, uint16(t.a), uint16(t.b), uint16(t.c))
	}
	return p.vertices, p.indices
}

func (p *Projector) run(total, minChunk int, fn func(lo, hi int)) {
	if !p.parallel {
		fn(0, total)
		return
	}
	p.pool.ParallelRange(context.Background(), 0, total, minChunk, fn)
}

func (p *Projector) projectVertices(s *Surface, v View, lo, hi int) {
	for i := lo; i < hi; i++ {
		pos := s.Positions[i]
		clip := v.ViewProj.Mul4x1(pos.Vec4(1))
		w := clip.W()
		pt := projected{w: w, inFront: w > 1e-9}
		if pt.inFront {
			pt.x = (clip.X()/w + 1) / 2 * v.Width
			pt.y = (1 - clip.Y()/w) / 2 * v.Height
		}
		p.points[i] = pt

		shade := float32(1)
		if s.Diffuse {
			shade = float32(Lambert(s.Normals[i], s.Light.Sub(pos), s.Ambient))
		}
		var uv mgl64.Vec2
		if i < len(s.UVs) {
			uv = s.UVs[i]
		}
		p.vertices[i] = ebiten.Vertex{
			DstX:   float32(pt.x),
			DstY:   float32(pt.y),
			SrcX:   float32(uv.X() * s.TexWidth),
			SrcY:   float32(uv.Y() * s.TexHeight),
			ColorR: shade,
			ColorG: shade,
			ColorB: shade,
			ColorA: 1,
		}
	}
}

func (p *Projector) classifyTriangles(s *Surface, v View, lo, hi int) {
	for t := lo; t < hi; t++ {
		a, b, c := s.Indices[3*t], s.Indices[3*t+1], s.Indices[3*t+2]
		tri := triangle{a: a, b: b, c: c}
		pa, pb, pc := p.points[a], p.points[b], p.points[c]

		if pa.inFront && pb.inFront && pc.inFront &&
			!offscreen(pa.x, pb.x, pc.x, v.Width) && !offscreen(pa.y, pb.y, pc.y, v.Height) {
			normal := s.Normals[a].Add(s.Normals[b]).Add(s.Normals[c])
			toEye := v.Eye.Sub(s.Positions[a])
			facing := normal.Dot(toEye)
			if s.Inside {
				facing = -facing
			}
			if facing > 0 {
				tri.visible = true
				tri.depth = pa.w + pb.w + pc.w
			}
		}
		p.triangles[t] = tri
	}
}

func offscreen(a, b, c, size float64) bool {
	return (a < 0 && b < 0 && c < 0) || (a > size && b > size && c > size)
}

// Lambert returns ambient plus the diffuse term for a surface with unit
// normal n lit from direction toLight, in [ambient, 1].
func Lambert(n, toLight mgl64.Vec3, ambient float64) float64 {
	l := toLight.Len()
	if l == 0 {
		return 1
	}
	d := max(0, n.Dot(toLight)/l)
	return mathutil.Clamp(ambient+(1-ambient)*d, 0, 1)
}

func resize[T any](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, n)
	}
	return s[:n]
}
