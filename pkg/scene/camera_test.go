package scene

import (
	"math"
	"testing"

	"github.com/rkvale/tracecore/pkg/xmath"
)

func TestCameraCenterRayPointsAtLookAt(t *testing.T) {
	eye := xmath.Vec3{X: 0, Y: 0, Z: -5}
	lookAt := xmath.Vec3{X: 0, Y: 0, Z: 0}
	up := xmath.Vec3{X: 0, Y: 1, Z: 0}
	cam := NewCamera(eye, lookAt, up, float32(math.Pi)/2, 101, 101, 1)

	ray := cam.Ray(50, 50, 0.5, 0.5)
	want := lookAt.Sub(eye).Normalize()
	if diff := ray.Direction.Sub(want).Length(); diff > 1e-3 {
		t.Errorf("center ray direction %v, want roughly %v (diff %f)", ray.Direction, want, diff)
	}
}

func TestCameraRayOriginIsEye(t *testing.T) {
	eye := xmath.Vec3{X: 1, Y: 2, Z: 3}
	cam := NewCamera(eye, xmath.Vec3{X: 1, Y: 2, Z: 10}, xmath.Vec3{X: 0, Y: 1, Z: 0}, 1.0, 64, 48, 1)
	ray := cam.Ray(0, 0, 0, 0)
	if ray.Origin != eye {
		t.Errorf("ray origin %v, want eye %v", ray.Origin, eye)
	}
}

func TestCameraWiderAspectSpreadsXMoreThanY(t *testing.T) {
	eye := xmath.Vec3{X: 0, Y: 0, Z: -5}
	cam := NewCamera(eye, xmath.Vec3{X: 0, Y: 0, Z: 0}, xmath.Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi)/2, 200, 100, 1)
	left := cam.Ray(0, 50, 0, 0.5).Direction
	right := cam.Ray(199, 50, 1, 0.5).Direction
	top := cam.Ray(100, 0, 0.5, 0).Direction
	bottom := cam.Ray(100, 99, 0.5, 1).Direction

	xSpread := right.X - left.X
	ySpread := top.Y - bottom.Y
	if xSpread <= ySpread {
		t.Errorf("expected wider horizontal spread for a 2:1 aspect ratio, got xSpread=%f ySpread=%f", xSpread, ySpread)
	}
}
