package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Garsondee/Spawn-Sense/internal/overlay"
)

const maxPitch = 89 * math.Pi / 180

// FlyCamera is a free-flying perspective camera. Yaw 0 looks down -Z; positive
// pitch looks up.
type FlyCamera struct {
	Pos   mgl64.Vec3
	Yaw   float64 // radians
	Pitch float64 // radians, clamped to ±89°
	FovY  float64 // degrees
	Near  float64
	Far   float64

	// Render resolution. Scale is the supersampling factor applied on output
	// (output width / render width).
	Width  float64
	Height float64
	Scale  float64
}

// NewFlyCamera returns a camera at pos with a 60° vertical field of view.
func NewFlyCamera(pos mgl64.Vec3, width, height float64) *FlyCamera {
	return &FlyCamera{
		Pos:    pos,
		FovY:   60,
		Near:   0.1,
		Far:    5000,
		Width:  width,
		Height: height,
		Scale:  1,
	}
}

// Forward returns the unit view direction.
func (c *FlyCamera) Forward() mgl64.Vec3 {
	cp := math.Cos(c.Pitch)
	return mgl64.Vec3{
		cp * math.Sin(c.Yaw),
		math.Sin(c.Pitch),
		-cp * math.Cos(c.Yaw),
	}
}

// Right returns the unit horizontal right vector.
func (c *FlyCamera) Right() mgl64.Vec3 {
	return mgl64.Vec3{math.Cos(c.Yaw), 0, math.Sin(c.Yaw)}
}

// Move translates the camera along its forward, right and world-up axes.
func (c *FlyCamera) Move(forward, right, up float64) {
	c.Pos = c.Pos.
		Add(c.Forward().Mul(forward)).
		Add(c.Right().Mul(right)).
		Add(mgl64.Vec3{0, up, 0})
}

// Turn rotates the camera, clamping pitch short of straight up or down.
func (c *FlyCamera) Turn(dyaw, dpitch float64) {
	c.Yaw = math.Mod(c.Yaw+dyaw, 2*math.Pi)
	c.Pitch = math.Max(-maxPitch, math.Min(maxPitch, c.Pitch+dpitch))
}

// LookAt points the camera at target.
func (c *FlyCamera) LookAt(target mgl64.Vec3) {
	d := target.Sub(c.Pos)
	if d.Len() == 0 {
		return
	}
	d = d.Normalize()
	c.Yaw = math.Atan2(d.X(), -d.Z())
	c.Pitch = math.Max(-maxPitch, math.Min(maxPitch, math.Asin(d.Y())))
}

func (c *FlyCamera) view() mgl64.Mat4 {
	return mgl64.LookAtV(c.Pos, c.Pos.Add(c.Forward()), mgl64.Vec3{0, 1, 0})
}

func (c *FlyCamera) projection() mgl64.Mat4 {
	aspect := 1.0
	if c.Height > 0 {
		aspect = c.Width / c.Height
	}
	return mgl64.Perspective(mgl64.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

// Position implements overlay.Camera.
func (c *FlyCamera) Position() mgl64.Vec3 {
	return c.Pos
}

// WorldToScreen implements overlay.Camera. X and Y are render-resolution
// pixels from the bottom-left corner; Z is the distance along the view axis,
// negative behind the camera.
func (c *FlyCamera) WorldToScreen(p mgl64.Vec3) mgl64.Vec3 {
	clip := c.projection().Mul4(c.view()).Mul4x1(p.Vec4(1))
	w := clip.W()
	if w <= 0 {
		return mgl64.Vec3{0, 0, w}
	}
	ndc := clip.Vec3().Mul(1 / w)
	return mgl64.Vec3{
		(ndc.X() + 1) / 2 * c.Width,
		(ndc.Y() + 1) / 2 * c.Height,
		w,
	}
}

// FocalPixels is the render-resolution pixel size of one world unit seen
// at depth 1.
func (c *FlyCamera) FocalPixels() float64 {
	return c.Height / 2 / math.Tan(mgl64.DegToRad(c.FovY)/2)
}

// Viewport implements overlay.Camera. Sizes are output pixels.
func (c *FlyCamera) Viewport() overlay.Viewport {
	scale := c.Scale
	if scale <= 0 {
		scale = 1
	}
	return overlay.Viewport{
		Width:  c.Width * scale,
		Height: c.Height * scale,
		Scale:  scale,
	}
}
