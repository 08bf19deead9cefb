// Package scene holds the four bodies of the orrery and advances them one
// frame at a time.
package scene

import (
	"fmt"
	"math"

	"orrery/internal/config"
	"orrery/internal/mesh"
	"orrery/internal/rigid"

	"github.com/go-gl/mathgl/mgl64"
)

// BodyID identifies one of the fixed bodies.
type BodyID int

const (
	Sun BodyID = iota
	Planet
	Moon
	Stars
	bodyCount
)

var bodyNames = [...]string{"sun", "planet", "moon", "stars"}

func (id BodyID) String() string {
	if id < 0 || id >= bodyCount {
		return fmt.Sprintf("BodyID(%d)", int(id))
	}
	return bodyNames[id]
}

// Body is a sphere mesh moved rigidly each frame.
type Body struct {
	ID     BodyID
	Name   string
	Radius float64
	Mesh   *mesh.Sphere
	Center mgl64.Vec3
	Axis   mgl64.Vec3

	// Parent is the body this one orbits, or nil.
	Parent *Body

	SpinPeriod  float64
	OrbitPeriod float64

	// Presentation hints carried through from configuration.
	Texture       string
	Color         [3]int
	Diffuse       bool
	Inside        bool
	FocusDistance float64

	offset mgl64.Vec3
}

// SpinRate returns radians per frame for the given speed divisor.
func (b *Body) SpinRate(speedDivisor float64) float64 {
	return rate(b.SpinPeriod, speedDivisor)
}

// OrbitRate returns radians per frame for the given speed divisor.
func (b *Body) OrbitRate(speedDivisor float64) float64 {
	return rate(b.OrbitPeriod, speedDivisor)
}

func rate(period, speedDivisor float64) float64 {
	if period == 0 {
		return 0
	}
	return 2 * math.Pi / period / speedDivisor
}

// Positions and Normals expose the mesh arrays the renderer reads.
func (b *Body) Positions() []mgl64.Vec3 { return b.Mesh.Positions }
func (b *Body) Normals() []mgl64.Vec3 { return b.Mesh.Normals }

func (b *Body) spin(speedDivisor float64) {
	if b.SpinPeriod == 0 {
		return
	}
	rigid.Rotate(b.Mesh.Positions, b.Mesh.Normals, b.Center, b.Axis, b.SpinRate(speedDivisor))
}

func (b *Body) orbit(speedDivisor float64) {
	if b.Parent == nil || b.OrbitPeriod == 0 {
		return
	}
	rigid.Orbit(b.Mesh.Positions, b.Mesh.Normals, b.Parent.Center, &b.Center, b.Axis, b.OrbitRate(speedDivisor))
}

// Scene owns all bodies. It is not safe for concurrent mutation; the update
// loop is the only writer.
type Scene struct {
	bodies [bodyCount]*Body
	cfg    config.BodiesConfig
	frames uint64
}

// New builds the scene from configuration and generates every mesh.
func New(cfg config.BodiesConfig) *Scene {
	s := &Scene{cfg: cfg}
	s.Reset()
	return s
}

// Reset regenerates all meshes at their starting positions.
func (s *Scene) Reset() {
	entries := [bodyCount]*config.BodyConfig{&s.cfg.Sun, &s.cfg.Planet, &s.cfg.Moon, &s.cfg.Stars}
	parents := [bodyCount]BodyID{Sun: -1, Planet: Sun, Moon: Planet, Stars: -1}

	for id := Sun; id < bodyCount; id++ {
		bc := entries[id]
		b := &Body{
			ID:            id,
			Name:          bc.Name,
			Radius:        bc.Radius,
			Axis:          vec3(bc.Axis),
			SpinPeriod:    bc.SpinPeriod,
			OrbitPeriod:   bc.OrbitPeriod,
			Texture:       bc.Texture,
			Color:         bc.Color,
			Diffuse:       bc.Diffuse,
			Inside:        bc.Inside,
			FocusDistance: bc.FocusDistance,
			offset:        vec3(bc.Offset),
		}
		b.Center = b.offset
		if p := parents[id]; p >= 0 {
			b.Parent = s.bodies[p]
			b.Center = b.Parent.Center.Add(b.offset)
		}
		b.Mesh = mesh.NewSphere(b.Radius, b.Center, bc.Divisions)
		s.bodies[id] = b
	}
	s.frames = 0
}

// Step advances one frame. The order matters: each orbit pivots about the
// parent's center as already updated this frame.
func (s *Scene) Step(speedDivisor float64) {
	if !(speedDivisor > 0) || math.IsInf(speedDivisor, 0) {
		panic(fmt.Sprintf("scene: invalid speed divisor %v", speedDivisor))
	}
	sun, planet, moon, stars := s.bodies[Sun], s.bodies[Planet], s.bodies[Moon], s.bodies[Stars]

	sun.spin(speedDivisor)
	planet.orbit(speedDivisor)
	planet.spin(speedDivisor)
	moon.orbit(speedDivisor)
	moon.spin(speedDivisor)
	stars.spin(speedDivisor)

	s.frames++
}

// Body returns the body with the given id.
func (s *Scene) Body(id BodyID) *Body {
	if id < 0 || id >= bodyCount {
		panic(fmt.Sprintf("scene: unknown body %v", id))
	}
	return s.bodies[id]
}

// Bodies returns all bodies in update order.
func (s *Scene) Bodies() []*Body {
	return s.bodies[:]
}

// Frames returns the number of steps since the last reset.
func (s *Scene) Frames() uint64 { return s.frames }

func vec3(a [3]float64) mgl64.Vec3 {
	return mgl64.Vec3{a[0], a[1], a[2]}
}
