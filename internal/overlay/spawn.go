package overlay

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// EyeHeight lifts the projected anchor from ground level to a standing
// viewpoint so labels float above the spawn marker.
const EyeHeight = 1.5

// SpawnPoint is a fixed world-space location supplied once by the scene.
type SpawnPoint struct {
	Position mgl64.Vec3
	Zone     string // may be blank
}

// SpawnInstance wraps one SpawnPoint with render-only state.
// Label and Display are frame scratch, overwritten on every Render.
type SpawnInstance struct {
	Spawn   SpawnPoint
	Color   Color
	Label   []Line
	Display Rect
	Marker  Marker
}

// Color is a linear RGBA colour with channels in [0,1].
type Color struct {
	R, G, B, A float64
}

var (
	// LabelColor is the neutral colour for non-zone label segments.
	LabelColor = Color{R: 1, G: 1, B: 1, A: 1}
	// BoxColor is the label background before alpha is applied.
	BoxColor = Color{R: 0, G: 0, B: 0, A: 1}
	// FallbackColor is assigned to the Ungrouped zone.
	FallbackColor = Color{R: 1, G: 1, B: 1, A: 1}
)

// WithAlpha returns c with its alpha channel replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// NRGBA converts to a non-premultiplied 8-bit colour for drawing.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: channel8(c.R),
		G: channel8(c.G),
		B: channel8(c.B),
		A: channel8(c.A),
	}
}

func (c Color) String() string {
	return fmt.Sprintf("RGBA(%.3f, %.3f, %.3f, %.3f)", c.R, c.G, c.B, c.A)
}

func channel8(v float64) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

// Rect is a screen-space rectangle with a top-left origin.
type Rect struct {
	X, Y, W, H float64
}

// Viewport describes the output surface the camera projects onto.
type Viewport struct {
	Width  float64
	Height float64
	// Scale corrects for supersampled rendering: output width / input width.
	// Zero is treated as 1.
	Scale float64
}

func (v Viewport) scale() float64 {
	if v.Scale <= 0 {
		return 1
	}
	return v.Scale
}

// Camera is the view capability supplied by the host scene.
type Camera interface {
	Position() mgl64.Vec3
	// WorldToScreen maps a world point to pixels with a bottom-left origin.
	// Z is the eye-space depth; values <= 0 lie behind the camera.
	WorldToScreen(p mgl64.Vec3) mgl64.Vec3
	Viewport() Viewport
}

// Marker is a scene object created for one spawn point.
type Marker interface {
	Destroy()
}

// MarkerFactory instantiates scene markers during Initialize.
type MarkerFactory interface {
	CreateMarker(pos mgl64.Vec3) Marker
}
