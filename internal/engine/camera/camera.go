// Package camera provides a perspective camera positioned by a transform.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/scenegl/internal/engine/transform"
	"github.com/Faultbox/scenegl/pkg/math"
)

// Camera is a viewpoint in the scene. Its embedded Transform places it in
// the world; ViewMatrix is the inverse of that placement.
type Camera struct {
	transform.Transform

	// Projection
	FOVDegrees float32
	Aspect     float32
	Near       float32
	Far        float32

	// Constraints, in degrees
	MinPitch float32
	MaxPitch float32

	// Sensitivity
	DragSensitivity float32 // degrees per pixel
	ZoomSensitivity float32 // fraction of distance per wheel step
}

// New creates a camera at the origin looking down -Z.
func New() *Camera {
	return &Camera{
		Transform:       transform.New(),
		FOVDegrees:      60,
		Aspect:          16.0 / 9.0,
		Near:            0.1,
		Far:             1000,
		MinPitch:        -89,
		MaxPitch:        89,
		DragSensitivity: 0.3,
		ZoomSensitivity: 0.1,
	}
}

// SetViewport updates the aspect ratio from a framebuffer size.
func (c *Camera) SetViewport(width, height int) {
	if width > 0 && height > 0 {
		c.Aspect = float32(width) / float32(height)
	}
}

// ProjectionMatrix returns the perspective projection.
func (c *Camera) ProjectionMatrix() math.Mat4 {
	return math.Perspective(math.Radians(c.FOVDegrees), c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// Forward returns the world-space direction the camera looks along.
func (c *Camera) Forward() math.Vec3 {
	rot := c.Transform
	rot.Position = math.Vec3{}
	rot.Scale = 1
	return math.Vec3FromArray(rot.ModelMatrix().TransformDirection([3]float32{0, 0, -1})).Normalize()
}

// HandleDrag turns the camera by a mouse delta in pixels: horizontal
// motion yaws, vertical motion pitches within MinPitch..MaxPitch.
// Cameras holding a matrix rotation are left untouched.
func (c *Camera) HandleDrag(deltaX, deltaY float32) {
	e, ok := c.Rotation.(transform.Euler)
	if !ok {
		return
	}
	e.Y -= deltaX * c.DragSensitivity
	e.X -= deltaY * c.DragSensitivity
	e.X = min(max(e.X, c.MinPitch), c.MaxPitch)
	c.Rotation = e
}

// HandleZoom moves the camera along its forward axis. Positive delta moves closer.
func (c *Camera) HandleZoom(delta, distance float32) {
	step := delta * distance * c.ZoomSensitivity
	c.Position = c.Position.Add(c.Forward().Scale(step))
}

// FitToBounds places the camera on the +Z side of a bounding box, looking
// down -Z, far enough back for the whole box to fit in the vertical FOV.
func (c *Camera) FitToBounds(lo, hi [3]float32) {
	center := math.Vec3FromArray(lo).Add(math.Vec3FromArray(hi)).Scale(0.5)
	radius := math.Vec3FromArray(hi).Sub(math.Vec3FromArray(lo)).Length() / 2
	if radius == 0 {
		radius = 1
	}

	dist := radius / math32.Sin(math.Radians(c.FOVDegrees)/2)
	c.Rotation = transform.Euler{}
	c.Position = center.Add(math.Vec3{Z: dist})
	c.Far = max(c.Far, dist+radius*2)
}
