package overlay

import (
	"math/rand"
	"testing"
)

// seqRand returns a fixed sequence of values.
type seqRand struct {
	vals []float64
	i    int
}

func (s *seqRand) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func TestAssignColors_DrawOrderAndFallback(t *testing.T) {
	zs := GroupByZone(pointsWithZones("A", "", "B"), nil)
	AssignColors(zs, &seqRand{vals: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}})

	if got := zs.Group("A").Color; got != (Color{R: 0.1, G: 0.2, B: 0.3, A: 0}) {
		t.Fatalf("zone A colour: got %v", got)
	}
	if got := zs.Group("B").Color; got != (Color{R: 0.4, G: 0.5, B: 0.6, A: 0}) {
		t.Fatalf("zone B colour: got %v (fallback must not consume random values)", got)
	}
	if got := zs.Group(FallbackZone).Color; got != FallbackColor {
		t.Fatalf("fallback colour: got %v, want %v", got, FallbackColor)
	}
}

func TestAssignColors_SharedWithinZone(t *testing.T) {
	zs := GroupByZone(pointsWithZones("A", "A", "B", "A", "B", ""), nil)
	AssignColors(zs, rand.New(rand.NewSource(7)))
	for _, g := range zs.Groups {
		for _, inst := range g.Instances {
			if inst.Color != g.Color {
				t.Fatalf("zone %s: instance colour %v differs from zone colour %v", g.Name, inst.Color, g.Color)
			}
		}
	}
	if zs.Group("A").Color == zs.Group("B").Color {
		t.Fatal("distinct zones should draw distinct colours")
	}
}

func TestAssignColors_ChannelsInRange(t *testing.T) {
	zs := GroupByZone(pointsWithZones("A", "B", "C", "D", "E"), nil)
	AssignColors(zs, rand.New(rand.NewSource(99)))
	for _, g := range zs.Groups {
		c := g.Color
		for _, v := range []float64{c.R, c.G, c.B} {
			if v < 0 || v >= 1 {
				t.Fatalf("zone %s channel %f outside [0,1)", g.Name, v)
			}
		}
		if c.A != 0 {
			t.Fatalf("zone %s alpha should be fixed at 0, got %f", g.Name, c.A)
		}
	}
}

func TestAssignColors_SeedReproducible(t *testing.T) {
	a := GroupByZone(pointsWithZones("A", "B"), nil)
	b := GroupByZone(pointsWithZones("A", "B"), nil)
	AssignColors(a, rand.New(rand.NewSource(42)))
	AssignColors(b, rand.New(rand.NewSource(42)))
	for i := range a.Groups {
		if a.Groups[i].Color != b.Groups[i].Color {
			t.Fatalf("same seed gave different colours for %s", a.Groups[i].Name)
		}
	}
}

func TestColor_NRGBA(t *testing.T) {
	c := Color{R: 1, G: 0, B: 0.5, A: 2}.NRGBA()
	if c.R != 255 || c.G != 0 || c.B != 128 || c.A != 255 {
		t.Fatalf("unexpected conversion: %+v", c)
	}
}
