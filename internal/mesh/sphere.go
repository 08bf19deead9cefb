package mesh

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MaxDivisions keeps every vertex index addressable by a uint16 index buffer.
const MaxDivisions = 256

// Sphere is a latitude/longitude sphere mesh. Positions and Normals are
// parallel arrays; UVs run from (0,0) at the north pole seam to (1,1).
type Sphere struct {
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3
	UVs       []mgl64.Vec2
	Indices   []uint32
	Divisions int
}

// NewSphere generates a divisions x divisions grid of vertices on a sphere of
// the given radius around center, two triangles per grid cell.
func NewSphere(radius float64, center mgl64.Vec3, divisions int) *Sphere {
	if divisions < 2 || divisions > MaxDivisions {
		panic(fmt.Sprintf("mesh: divisions %d out of range [2, %d]", divisions, MaxDivisions))
	}

	n := divisions * divisions
	s := &Sphere{
		Positions: make([]mgl64.Vec3, 0, n),
		Normals:   make([]mgl64.Vec3, 0, n),
		UVs:       make([]mgl64.Vec2, 0, n),
		Indices:   make([]uint32, 0, 6*(divisions-1)*(divisions-1)),
		Divisions: divisions,
	}

	step := 1 / float64(divisions-1)
	for i := 0; i < divisions; i++ {
		v := float64(i) * step
		sinV, cosV := math.Sincos(math.Pi * v)
		for j := 0; j < divisions; j++ {
			u := float64(j) * step
			sinU, cosU := math.Sincos(2 * math.Pi * u)
			pos := mgl64.Vec3{cosU * sinV, sinU * sinV, cosV}.Mul(radius).Add(center)

			s.Positions = append(s.Positions, pos)
			s.Normals = append(s.Normals, pos.Sub(center).Normalize())
			s.UVs = append(s.UVs, mgl64.Vec2{u, v})
		}
	}

	for i := 0; i < divisions-1; i++ {
		for j := 0; j < divisions-1; j++ {
			p00 := uint32(i*divisions + j)
			p01 := uint32(i*divisions + j + 1)
			p10 := uint32((i+1)*divisions + j)
			p11 := uint32((i+1)*divisions + j + 1)
			s.Indices = append(s.Indices, p00, p10, p01, p01, p10, p11)
		}
	}
	return s
}

// VertexCount returns the number of vertices in the mesh.
func (s *Sphere) VertexCount() int { return len(s.Positions) }

// TriangleCount returns the number of triangles in the mesh.
func (s *Sphere) TriangleCount() int { return len(s.Indices) / 3 }
