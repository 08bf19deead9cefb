package rendering

import (
	"math"
	"testing"

	"orrery/internal/mesh"
	"orrery/internal/threading/core"

	"github.com/go-gl/mathgl/mgl64"
)

func testView(eye, target mgl64.Vec3) View {
	proj := mgl64.Perspective(mgl64.DegToRad(60), 1, 0.1, 10000)
	view := mgl64.LookAtV(eye, target, mgl64.Vec3{0, 0, 1})
	return View{ViewProj: proj.Mul4(view), Eye: eye, Width: 800, Height: 800}
}

func surfaceOf(s *mesh.Sphere) *Surface {
	return &Surface{
		Positions: s.Positions,
		Normals:   s.Normals,
		UVs:       s.UVs,
		Indices:   s.Indices,
		TexWidth:  256,
		TexHeight: 128,
	}
}

func TestProjectCullsBackFaces(t *testing.T) {
	sphere := mesh.NewSphere(1, mgl64.Vec3{}, 24)
	p := NewProjector(nil, false)
	verts, idx := p.Project(surfaceOf(sphere), testView(mgl64.Vec3{0, 5, 0}, mgl64.Vec3{}))

	if len(verts) != sphere.VertexCount() {
		t.Fatalf("vertices = %d, want %d", len(verts), sphere.VertexCount())
	}
	if len(idx)%3 != 0 {
		t.Fatalf("index count %d not a multiple of 3", len(idx))
	}
	drawn := len(idx) / 3
	if drawn == 0 || drawn >= sphere.TriangleCount()*3/4 {
		t.Errorf("drawn %d of %d triangles, expected roughly half", drawn, sphere.TriangleCount())
	}
	for _, i := range idx {
		if int(i) >= len(verts) {
			t.Fatalf("index %d out of range", i)
		}
	}
	// every drawn vertex lies on the hemisphere facing the camera, give or
	// take the triangles straddling the silhouette
	for _, i := range idx {
		if sphere.Positions[i].Y() < -0.3 {
			t.Fatalf("vertex %d at %v is on the far side", i, sphere.Positions[i])
		}
	}
}

func TestProjectSortsFarToNear(t *testing.T) {
	sphere := mesh.NewSphere(2, mgl64.Vec3{1, 0, 0}, 20)
	eye := mgl64.Vec3{3, -8, 2}
	p := NewProjector(nil, false)
	_, idx := p.Project(surfaceOf(sphere), testView(eye, mgl64.Vec3{1, 0, 0}))

	forward := mgl64.Vec3{1, 0, 0}.Sub(eye).Normalize()
	depth := func(k int) float64 {
		var d float64
		for _, i := range idx[3*k : 3*k+3] {
			d += sphere.Positions[i].Sub(eye).Dot(forward)
		}
		return d
	}
	for k := 1; k < len(idx)/3; k++ {
		if depth(k) > depth(k-1)+1e-9 {
			t.Fatalf("triangle %d (depth %v) drawn after nearer triangle (depth %v)", k, depth(k), depth(k-1))
		}
	}
}

func TestProjectInsideSurface(t *testing.T) {
	sky := mesh.NewSphere(100, mgl64.Vec3{}, 24)
	v := testView(mgl64.Vec3{0, 0.5, 0}, mgl64.Vec3{0, 10, 0})
	p := NewProjector(nil, false)

	s := surfaceOf(sky)
	_, idx := p.Project(s, v)
	if len(idx) != 0 {
		t.Errorf("outward-facing sky drew %d indices from inside", len(idx))
	}

	s.Inside = true
	_, idx = p.Project(s, v)
	if len(idx) == 0 {
		t.Error("inside surface drew nothing")
	}
}

func TestProjectDropsGeometryBehindCamera(t *testing.T) {
	sphere := mesh.NewSphere(1, mgl64.Vec3{0, -10, 0}, 12)
	p := NewProjector(nil, false)
	_, idx := p.Project(surfaceOf(sphere), testView(mgl64.Vec3{}, mgl64.Vec3{0, 10, 0}))
	if len(idx) != 0 {
		t.Errorf("drew %d indices for a sphere behind the camera", len(idx))
	}
}

func TestProjectParallelMatchesSequential(t *testing.T) {
	pool := core.NewWorkerPool(4)
	pool.Start()
	defer pool.Stop()

	sphere := mesh.NewSphere(3, mgl64.Vec3{}, 64)
	s := surfaceOf(sphere)
	s.Diffuse = true
	s.Light = mgl64.Vec3{-20, 0, 0}
	s.Ambient = 0.1
	v := testView(mgl64.Vec3{4, 12, 3}, mgl64.Vec3{})

	seqV, seqI := NewProjector(nil, false).Project(s, v)
	parV, parI := NewProjector(pool, true).Project(s, v)

	if len(seqV) != len(parV) || len(seqI) != len(parI) {
		t.Fatalf("sizes differ: %d/%d vs %d/%d", len(seqV), len(seqI), len(parV), len(parI))
	}
	for i := range seqV {
		if seqV[i] != parV[i] {
			t.Fatalf("vertex %d differs: %+v vs %+v", i, seqV[i], parV[i])
		}
	}
	for i := range seqI {
		if seqI[i] != parI[i] {
			t.Fatalf("index %d differs", i)
		}
	}
}

func TestProjectShadingAndUV(t *testing.T) {
	sphere := mesh.NewSphere(1, mgl64.Vec3{}, 8)
	s := surfaceOf(sphere)
	p := NewProjector(nil, false)

	verts, _ := p.Project(s, testView(mgl64.Vec3{0, 5, 0}, mgl64.Vec3{}))
	for i, vx := range verts {
		if vx.ColorR != 1 || vx.ColorA != 1 {
			t.Fatalf("emissive vertex %d color = %v", i, vx.ColorR)
		}
		uv := sphere.UVs[i]
		if math.Abs(float64(vx.SrcX)-uv.X()*256) > 1e-3 || math.Abs(float64(vx.SrcY)-uv.Y()*128) > 1e-3 {
			t.Fatalf("vertex %d src = (%v,%v), uv %v", i, vx.SrcX, vx.SrcY, uv)
		}
	}

	s.Diffuse = true
	s.Light = mgl64.Vec3{10, 0, 0}
	s.Ambient = 0.2
	verts, _ = p.Project(s, testView(mgl64.Vec3{0, 5, 0}, mgl64.Vec3{}))
	for i, vx := range verts {
		want := Lambert(sphere.Normals[i], s.Light.Sub(sphere.Positions[i]), 0.2)
		if math.Abs(float64(vx.ColorG)-want) > 1e-6 {
			t.Fatalf("vertex %d shade = %v, want %v", i, vx.ColorG, want)
		}
		if vx.ColorG < 0.2-1e-6 {
			t.Fatalf("vertex %d darker than ambient", i)
		}
	}
}

func TestLambert(t *testing.T) {
	up := mgl64.Vec3{0, 0, 1}
	tests := []struct {
		name    string
		toLight mgl64.Vec3
		want    float64
	}{
		{"facing", mgl64.Vec3{0, 0, 7}, 1},
		{"grazing", mgl64.Vec3{1, 0, 0}, 0.25},
		{"opposite", mgl64.Vec3{0, 0, -3}, 0.25},
		{"half angle", mgl64.Vec3{0, math.Sqrt(3), 1}, 0.25 + 0.75*0.5},
		{"light at surface", mgl64.Vec3{}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Lambert(up, tt.toLight, 0.25); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Lambert = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProjectEmptySurface(t *testing.T) {
	v, i := NewProjector(nil, false).Project(&Surface{}, View{})
	if v != nil || i != nil {
		t.Error("empty surface should project to nothing")
	}
}
