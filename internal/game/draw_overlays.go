package game

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	gridExtent   = 200.0
	gridSpacing  = 10.0
	gridSegments = 40
)

// drawSpawnLabels executes the overlay's draw commands: one filled box per
// visible spawn, then each line's spans left to right.
func (g *Game) drawSpawnLabels(screen *ebiten.Image) {
	for _, c := range g.commands {
		vector.FillRect(screen,
			float32(c.Rect.X), float32(c.Rect.Y), float32(c.Rect.W), float32(c.Rect.H),
			c.Background.NRGBA(), false)

		y := c.Rect.Y + c.Padding
		for _, line := range c.Lines {
			x := c.Rect.X + c.Padding
			for _, span := range line {
				op := &text.DrawOptions{}
				op.GeoM.Translate(x, y)
				op.ColorScale.ScaleWithColor(span.Color.NRGBA())
				text.Draw(screen, span.Text, g.face, op)
				x += text.Advance(span.Text, g.face)
			}
			y += g.lineHeight
		}
	}
}

// drawMarkers renders each live spawn marker as a disc sized by depth.
func (g *Game) drawMarkers(screen *ebiten.Image) {
	focal := g.cam.FocalPixels()
	for _, m := range g.markers.Live() {
		p := g.cam.WorldToScreen(m.Pos)
		if p.Z() <= g.cam.Near {
			continue
		}
		x, y := g.toScreen(p)
		r := math.Max(1.5, focal*m.Radius/p.Z())
		vector.FillCircle(screen, x, y, float32(r), m.Color, true)
	}
}

// drawGround draws the y=0 reference grid. Lines are split into short
// segments so the parts in front of the camera survive when the rest is
// behind it.
func (g *Game) drawGround(screen *ebiten.Image) {
	col := color.RGBA{R: 40, G: 60, B: 44, A: 255}
	for v := -gridExtent; v <= gridExtent; v += gridSpacing {
		g.drawWorldLine(screen, mgl64.Vec3{-gridExtent, 0, v}, mgl64.Vec3{gridExtent, 0, v}, col)
		g.drawWorldLine(screen, mgl64.Vec3{v, 0, -gridExtent}, mgl64.Vec3{v, 0, gridExtent}, col)
	}
}

func (g *Game) drawWorldLine(screen *ebiten.Image, a, b mgl64.Vec3, col color.Color) {
	step := b.Sub(a).Mul(1.0 / gridSegments)
	prev := g.cam.WorldToScreen(a)
	for i := 1; i <= gridSegments; i++ {
		cur := g.cam.WorldToScreen(a.Add(step.Mul(float64(i))))
		if prev.Z() > g.cam.Near && cur.Z() > g.cam.Near {
			x0, y0 := g.toScreen(prev)
			x1, y1 := g.toScreen(cur)
			vector.StrokeLine(screen, x0, y0, x1, y1, 1.0, col, false)
		}
		prev = cur
	}
}

// toScreen converts a bottom-left camera projection to ebiten's top-left
// output pixels.
func (g *Game) toScreen(p mgl64.Vec3) (float32, float32) {
	vp := g.cam.Viewport()
	return float32(p.X() * vp.Scale), float32(vp.Height - p.Y()*vp.Scale)
}
