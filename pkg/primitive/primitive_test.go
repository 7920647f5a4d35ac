package primitive

import (
	"testing"

	"github.com/rkvale/tracecore/pkg/xmath"
)

func TestSphereHitMiss(t *testing.T) {
	s := Primitive{Kind: KindSphere, Center: xmath.Vec3{}, Radius: 1}
	ray := xmath.NewRay(xmath.Vec3{X: 2, Y: 0, Z: 0}, xmath.Vec3{X: 0, Y: 1, Z: 0})
	if hit := s.Intersect(ray); hit.Valid {
		t.Errorf("expected miss, got hit at t=%f", hit.T)
	}
}

func TestSphereFrontAndBackFace(t *testing.T) {
	s := Primitive{Kind: KindSphere, Center: xmath.Vec3{}, Radius: 1}

	tests := []struct {
		name          string
		origin, dir   xmath.Vec3
		expectedFront bool
		expectedN     xmath.Vec3
	}{
		{"front face", xmath.Vec3{X: 0, Y: 0, Z: 2}, xmath.Vec3{X: 0, Y: 0, Z: -1}, true, xmath.Vec3{X: 0, Y: 0, Z: 1}},
		{"back face", xmath.Vec3{X: 0, Y: 0, Z: 0}, xmath.Vec3{X: 0, Y: 0, Z: 1}, false, xmath.Vec3{X: 0, Y: 0, Z: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := xmath.NewRay(tt.origin, tt.dir)
			hit := s.Intersect(ray)
			if !hit.Valid {
				t.Fatal("expected hit")
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("expected FrontFace=%v, got %v", tt.expectedFront, hit.FrontFace)
			}
			if diff := hit.GeometricNormal.Sub(tt.expectedN).Length(); diff > 1e-4 {
				t.Errorf("expected normal %v, got %v", tt.expectedN, hit.GeometricNormal)
			}
		})
	}
}

func TestCubeHitsNearestFace(t *testing.T) {
	c := Primitive{Kind: KindCube, HalfExtent: xmath.Vec3{X: 1, Y: 1, Z: 1}}
	ray := xmath.NewRay(xmath.Vec3{X: -5, Y: 0, Z: 0}, xmath.Vec3{X: 1, Y: 0, Z: 0})
	hit := c.Intersect(ray)
	if !hit.Valid {
		t.Fatal("expected hit on cube -X face")
	}
	if diff := hit.GeometricNormal.Sub(xmath.Vec3{X: -1}).Length(); diff > 1e-4 {
		t.Errorf("expected -X face normal, got %v", hit.GeometricNormal)
	}
}

func TestDiskRejectsOutsideRadius(t *testing.T) {
	d := Primitive{Kind: KindDisk, Radius: 1}
	ray := xmath.NewRay(xmath.Vec3{X: 2, Y: 0, Z: -5}, xmath.Vec3{X: 0, Y: 0, Z: 1})
	if hit := d.Intersect(ray); hit.Valid {
		t.Errorf("expected miss outside disk radius, got hit at t=%f", hit.T)
	}
}

func TestCylinderOpenEndedMissesBeyondCaps(t *testing.T) {
	cyl := Primitive{Kind: KindCylinder, Radius: 1, Height: 2}
	// Ray parallel to the axis, outside [0,Height] along Z, should never hit the open tube.
	ray := xmath.NewRay(xmath.Vec3{X: 0.5, Y: 0, Z: -10}, xmath.Vec3{X: 0, Y: 0, Z: 1})
	hit := cyl.Intersect(ray)
	if hit.Valid {
		t.Errorf("expected the open-ended cylinder to miss an axis-parallel ray, got t=%f", hit.T)
	}
}

func TestMeshMollerTrumboreHit(t *testing.T) {
	mesh := &Mesh{
		Positions: []xmath.Vec3{{X: -1, Y: -1, Z: 0}, {X: 1, Y: -1, Z: 0}, {X: 0, Y: 1, Z: 0}},
		Indices:   []uint32{0, 1, 2},
	}
	p := Primitive{Kind: KindMesh, Mesh: mesh}
	ray := xmath.NewRay(xmath.Vec3{X: 0, Y: 0, Z: -5}, xmath.Vec3{X: 0, Y: 0, Z: 1})
	hit := p.Intersect(ray)
	if !hit.Valid {
		t.Fatal("expected ray through triangle centroid to hit")
	}
	if hit.T <= 0 {
		t.Errorf("expected positive t, got %f", hit.T)
	}
}

func TestMeshDropsDegenerateTriangle(t *testing.T) {
	mesh := &Mesh{
		Positions: []xmath.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}}, // colinear, zero area
		Indices:   []uint32{0, 1, 2},
	}
	p := Primitive{Kind: KindMesh, Mesh: mesh}
	ray := xmath.NewRay(xmath.Vec3{X: 0.5, Y: 1, Z: 0}, xmath.Vec3{X: 0, Y: -1, Z: 0})
	if hit := p.Intersect(ray); hit.Valid {
		t.Errorf("expected degenerate triangle to be silently dropped, got hit at t=%f", hit.T)
	}
}

func TestFlipNormalsInvertsFrontFace(t *testing.T) {
	s := Primitive{Kind: KindSphere, Radius: 1, FlipNormals: true}
	ray := xmath.NewRay(xmath.Vec3{X: 0, Y: 0, Z: 2}, xmath.Vec3{X: 0, Y: 0, Z: -1})
	hit := s.Intersect(ray)
	if !hit.Valid {
		t.Fatal("expected hit")
	}
	if hit.FrontFace {
		t.Error("expected flip_normals to report this as a back-face hit")
	}
}
