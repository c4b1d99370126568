package overlay

import (
	"fmt"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// LabelPadding is the box padding on every side, in pixels.
const LabelPadding = 5

// Span is a run of label text in a single colour.
type Span struct {
	Text  string
	Color Color
}

// Line is one row of label spans.
type Line []Span

// String joins the span texts.
func (l Line) String() string {
	var sb strings.Builder
	for _, s := range l {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// PlainText joins lines with newlines, dropping colour.
func PlainText(lines []Line) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.String()
	}
	return strings.Join(parts, "\n")
}

// DrawCommand is one retained overlay box for the host to draw.
type DrawCommand struct {
	Rect       Rect
	Background Color
	Lines      []Line
	Padding    float64
	Zone       string
	Alpha      float64
	Distance   float64
}

// TextMeasurer reports the pixel size of unpadded label text.
type TextMeasurer interface {
	Measure(lines []Line) (w, h float64)
}

// FontMeasurer measures text with an x/image font face.
type FontMeasurer struct {
	Face font.Face
}

// NewFontMeasurer returns a measurer for face, or for the 7x13 basic face
// when face is nil.
func NewFontMeasurer(face font.Face) *FontMeasurer {
	if face == nil {
		face = basicfont.Face7x13
	}
	return &FontMeasurer{Face: face}
}

// LineHeight returns the face's line advance in pixels.
func (m *FontMeasurer) LineHeight() float64 {
	return float64(m.Face.Metrics().Height.Ceil())
}

func (m *FontMeasurer) Measure(lines []Line) (w, h float64) {
	for _, l := range lines {
		lw := float64(font.MeasureString(m.Face, l.String()).Ceil())
		if lw > w {
			w = lw
		}
	}
	return w, float64(len(lines)) * m.LineHeight()
}

// Renderer composes label text and screen boxes.
type Renderer struct {
	Measurer TextMeasurer
	Padding  float64
}

// NewRenderer returns a renderer using measurer, or the basic font when nil.
func NewRenderer(measurer TextMeasurer) *Renderer {
	if measurer == nil {
		measurer = NewFontMeasurer(nil)
	}
	return &Renderer{Measurer: measurer, Padding: LabelPadding}
}

// BuildLabel returns the two-line label for inst in zone at alpha.
func BuildLabel(zone string, inst *SpawnInstance, alpha float64) []Line {
	label := LabelColor.WithAlpha(alpha)
	zoneCol := inst.Color.WithAlpha(alpha)
	p := inst.Spawn.Position
	return []Line{
		{
			{Text: "ZoneGroup: ", Color: label},
			{Text: zone, Color: zoneCol},
		},
		{
			{Text: "Position: ", Color: label},
			{Text: fmt.Sprintf("X:%.2f, ", p.X()), Color: label},
			{Text: fmt.Sprintf("Y:%.2f, ", p.Y()), Color: label},
			{Text: fmt.Sprintf("Z:%.2f", p.Z()), Color: label},
		},
	}
}

// Compose writes inst's label and display rect for this frame and returns
// the draw command. The box is centred horizontally on the projected point
// and sits above it; the Y axis is flipped from the projection's bottom-left
// origin to the screen's top-left origin.
func (r *Renderer) Compose(zone string, inst *SpawnInstance, proj Projection, alpha float64, vp Viewport) DrawCommand {
	inst.Label = BuildLabel(zone, inst, alpha)

	tw, th := r.Measurer.Measure(inst.Label)
	w := tw + 2*r.Padding
	h := th + 2*r.Padding
	scale := vp.scale()
	inst.Display = Rect{
		X: proj.Screen.X()*scale - w/2,
		Y: vp.Height - (proj.Screen.Y()*scale + h),
		W: w,
		H: h,
	}

	return DrawCommand{
		Rect:       inst.Display,
		Background: BoxColor.WithAlpha(alpha),
		Lines:      inst.Label,
		Padding:    r.Padding,
		Zone:       zone,
		Alpha:      alpha,
		Distance:   proj.Distance,
	}
}
