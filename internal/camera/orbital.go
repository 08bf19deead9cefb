// Package camera implements a spherical-coordinate camera that orbits a target
// point in a z-up world.
//
// The basis is undefined when the camera looks straight along the world z
// axis (polar singularity); it is left degenerate rather than special-cased.
package camera

import (
	"fmt"
	"math"

	"orrery/internal/mathutil"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultMaxRadius is the farthest the camera may sit from its target.
const DefaultMaxRadius = 75.0

// WorldUp is the scene's fixed north axis.
var WorldUp = mgl64.Vec3{0, 0, 1}

// Spherical is a camera position relative to its target.
type Spherical struct {
	Azimuth float64 // φ
	Polar   float64 // θ
	Radius  float64
}

// Orbital is a look-at camera placed on a sphere around Target.
type Orbital struct {
	Coords    Spherical
	Target    mgl64.Vec3
	MinRadius float64
	MaxRadius float64

	// Derived state, refreshed after every mutation.
	Eye     mgl64.Vec3
	Forward mgl64.Vec3
	Right   mgl64.Vec3
	Up      mgl64.Vec3
}

// New builds a camera around target, never closer than bodyRadius and no
// farther than DefaultMaxRadius.
func New(coords Spherical, target mgl64.Vec3, bodyRadius float64) *Orbital {
	return NewBounded(coords, target, bodyRadius, DefaultMaxRadius)
}

// NewBounded is New with an explicit upper radius limit, applied before the
// starting radius is clamped.
func NewBounded(coords Spherical, target mgl64.Vec3, bodyRadius, maxRadius float64) *Orbital {
	mustFinite("coordinates", coords.Azimuth, coords.Polar, coords.Radius)
	mustFinite("target", target[0], target[1], target[2])
	mustFinite("body radius", bodyRadius)
	mustFinite("max radius", maxRadius)

	c := &Orbital{
		Coords:    coords,
		Target:    target,
		MinRadius: bodyRadius,
		MaxRadius: maxRadius,
	}
	c.deriveBasis()
	return c
}

// Pan adds the deltas to the spherical coordinates. Used for both drag
// (azimuth/polar) and zoom (radius); the radius is clamped afterwards.
func (c *Orbital) Pan(dAzimuth, dPolar, dRadius float64) {
	mustFinite("pan delta", dAzimuth, dPolar, dRadius)
	c.Coords.Azimuth += dAzimuth
	c.Coords.Polar += dPolar
	c.Coords.Radius += dRadius
	c.deriveBasis()
}

// Focus points the camera at another body, keeping azimuth and polar.
func (c *Orbital) Focus(target mgl64.Vec3, bodyRadius float64) {
	mustFinite("target", target[0], target[1], target[2])
	mustFinite("body radius", bodyRadius)
	c.Target = target
	c.MinRadius = bodyRadius
	c.deriveBasis()
}

// Retarget moves the look-at pivot without changing the radius limits.
func (c *Orbital) Retarget(target mgl64.Vec3) {
	mustFinite("target", target[0], target[1], target[2])
	c.Target = target
	c.deriveBasis()
}

// SetRadius places the camera at distance r, subject to the clamp.
func (c *Orbital) SetRadius(r float64) {
	mustFinite("radius", r)
	c.Coords.Radius = r
	c.deriveBasis()
}

// SetMaxRadius changes the upper clamp.
func (c *Orbital) SetMaxRadius(r float64) {
	mustFinite("max radius", r)
	c.MaxRadius = r
	c.deriveBasis()
}

// RadiusBounds returns the effective clamp range for the radius. When the
// upper limit is below the body surface the lower bound wins.
func (c *Orbital) RadiusBounds() (lo, hi float64) {
	return math.Ceil(c.MinRadius), c.MaxRadius
}

func (c *Orbital) deriveBasis() {
	lo, hi := c.RadiusBounds()
	c.Coords.Radius = max(min(c.Coords.Radius, hi), lo)

	theta := c.Coords.Polar
	phi := c.Coords.Azimuth
	sinPhi := math.Sin(phi)
	offset := mgl64.Vec3{
		math.Cos(theta) * sinPhi,
		math.Sin(theta) * sinPhi,
		math.Cos(phi),
	}
	c.Eye = c.Target.Add(offset.Mul(c.Coords.Radius))

	c.Forward = c.Target.Sub(c.Eye).Normalize()
	c.Right = c.Forward.Cross(WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Forward).Normalize()
}

// ViewMatrix maps world space to camera space: rows (Right, Up, -Forward)
// after a translation by -Eye.
func (c *Orbital) ViewMatrix() mgl64.Mat4 {
	r, u, f := c.Right, c.Up, c.Forward
	return mgl64.Mat4{
		r[0], u[0], -f[0], 0,
		r[1], u[1], -f[1], 0,
		r[2], u[2], -f[2], 0,
		-r.Dot(c.Eye), -u.Dot(c.Eye), f.Dot(c.Eye), 1,
	}
}

func mustFinite(what string, xs ...float64) {
	if !mathutil.AllFinite(xs...) {
		panic(fmt.Sprintf("camera: non-finite %s %v", what, xs))
	}
}
