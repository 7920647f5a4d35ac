package scene

import (
	"math"

	"github.com/rkvale/tracecore/pkg/xmath"
)

// Camera is a pinhole perspective camera: eye, look_at, up, a horizontal
// field of view in radians, and an output resolution. There is no aperture
// or focus distance — depth of field is out of scope for this core.
type Camera struct {
	Eye    xmath.Vec3
	LookAt xmath.Vec3
	Up     xmath.Vec3
	FovX   float32 // radians
	Width  int
	Height int
	SPP    int // samples per pixel the renderer sums before dividing

	cameraToWorld xmath.Mat4
	halfWidth     float32
	halfHeight    float32
}

// NewCamera precomputes the camera-to-world basis and viewport half-extents
// once at scene build time, the way df07's NewCamera precomputes origin,
// horizontal, vertical, and lowerLeftCorner.
func NewCamera(eye, lookAt, up xmath.Vec3, fovX float32, width, height, spp int) Camera {
	c := Camera{Eye: eye, LookAt: lookAt, Up: up, FovX: fovX, Width: width, Height: height, SPP: spp}
	c.cameraToWorld = xmath.LookAtLH(eye, lookAt, up)
	c.halfWidth = tan32(fovX / 2)
	aspect := float32(width) / float32(height)
	c.halfHeight = c.halfWidth / aspect
	return c
}

// Ray returns the camera ray through pixel (px,py) jittered by (jx,jy) in
// [0,1) — the (u+rng(),v+rng()) pixel-sampling scheme the integrator drives
// per sample.
func (c Camera) Ray(px, py int, jx, jy float32) xmath.Ray {
	ndcX := (float32(px)+jx)/float32(c.Width)*2 - 1
	ndcY := 1 - (float32(py)+jy)/float32(c.Height)*2

	localDir := xmath.Vec3{X: ndcX * c.halfWidth, Y: ndcY * c.halfHeight, Z: 1}
	worldDir := c.cameraToWorld.TransformVector(localDir).Normalize()
	return xmath.NewRay(c.Eye, worldDir)
}

func tan32(x float32) float32 {
	return float32(math.Tan(float64(x)))
}
