// Package rigid rotates sphere meshes about a pivot and revolves them around a
// parent pivot. Normals are always rebuilt from positions, so a mesh's normal
// array stays consistent with its geometry after every call.
package rigid

import (
	"fmt"
	"math"

	"orrery/internal/mathutil"

	"github.com/go-gl/mathgl/mgl64"
)

// AxisAngle builds the 3x3 rotation of angle radians about axis using
// Rodrigues' formula. The axis is normalized first.
func AxisAngle(axis mgl64.Vec3, angle float64) mgl64.Mat3 {
	if !mathutil.IsFinite(angle) {
		panic(fmt.Sprintf("rigid: non-finite rotation angle %v", angle))
	}
	l := axis.Len()
	if l == 0 || !mathutil.IsFinite(l) {
		panic(fmt.Sprintf("rigid: invalid rotation axis %v", axis))
	}
	axis = axis.Mul(1 / l)

	x, y, z := axis[0], axis[1], axis[2]
	s, c := math.Sincos(angle)
	oc := 1 - c

	// mgl64 matrices are column-major.
	return mgl64.Mat3{
		c + x*x*oc, y*x*oc + z*s, z*x*oc - y*s,
		x*y*oc - z*s, c + y*y*oc, z*y*oc + x*s,
		x*z*oc + y*s, y*z*oc - x*s, c + z*z*oc,
	}
}

// Rotate spins every position about pivot by angle radians around axis and
// rewrites each normal as the unit vector from pivot to its position.
// Slices are mutated in place; they must have equal length.
func Rotate(positions, normals []mgl64.Vec3, pivot, axis mgl64.Vec3, angle float64) {
	checkParallel(positions, normals)
	rotateAbout(positions, normals, pivot, AxisAngle(axis, angle))
}

// Orbit revolves a body around parentPivot by angle radians without changing
// its own spin orientation. center is updated to the body's new center.
//
// The mesh is first un-spun about its current center by -angle, then the
// whole body (center included) is rotated about parentPivot by angle. The
// two rotations cancel in the body's local frame, leaving a pure revolution.
func Orbit(positions, normals []mgl64.Vec3, parentPivot mgl64.Vec3, center *mgl64.Vec3, axis mgl64.Vec3, angle float64) {
	checkParallel(positions, normals)
	if center == nil {
		panic("rigid: nil center")
	}

	Rotate(positions, normals, *center, axis, -angle)

	rot := AxisAngle(axis, angle)
	*center = rot.Mul3x1(center.Sub(parentPivot)).Add(parentPivot)

	for i := range positions {
		positions[i] = rot.Mul3x1(positions[i].Sub(parentPivot)).Add(parentPivot)
		normals[i] = positions[i].Sub(*center).Normalize()
	}
}

func rotateAbout(positions, normals []mgl64.Vec3, pivot mgl64.Vec3, rot mgl64.Mat3) {
	for i := range positions {
		positions[i] = rot.Mul3x1(positions[i].Sub(pivot)).Add(pivot)
		normals[i] = positions[i].Sub(pivot).Normalize()
	}
}

func checkParallel(positions, normals []mgl64.Vec3) {
	if len(positions) != len(normals) {
		panic(fmt.Sprintf("rigid: %d positions but %d normals", len(positions), len(normals)))
	}
}
