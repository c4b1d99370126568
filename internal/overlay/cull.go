package overlay

import "github.com/go-gl/mathgl/mgl64"

// Projection is the per-frame screen placement of a surviving instance.
type Projection struct {
	Screen   mgl64.Vec3 // bottom-left origin pixels, Z = depth
	Distance float64
	Height   float64 // height multiplier used for range and fade
}

// CullReason says why an instance was not drawn this frame.
type CullReason int

const (
	CullNone CullReason = iota
	CullBehind
	CullRange
)

func (r CullReason) String() string {
	switch r {
	case CullBehind:
		return "behind"
	case CullRange:
		return "range"
	default:
		return "visible"
	}
}

// Project places inst on screen and reports whether it survives culling.
// Instances behind the camera, or at or beyond RenderRange times the height
// multiplier, are culled.
func Project(cam Camera, inst *SpawnInstance, s Settings) (Projection, CullReason) {
	pos := inst.Spawn.Position
	screen := cam.WorldToScreen(pos.Add(mgl64.Vec3{0, EyeHeight, 0}))
	if screen.Z() <= 0 {
		return Projection{}, CullBehind
	}

	camPos := cam.Position()
	dist := pos.Sub(camPos).Len()
	h := HeightMultiplier(s, camPos.Y(), pos.Y())
	if dist >= s.RenderRange*h {
		return Projection{}, CullRange
	}
	return Projection{Screen: screen, Distance: dist, Height: h}, CullNone
}
