package overlay

// RandSource supplies uniform values in [0,1). *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

// AssignColors gives every zone one colour shared by all its instances.
// Regular zones draw R, G then B from rng with alpha fixed at zero, since
// alpha is recomputed each frame. The fallback zone is opaque white.
func AssignColors(zs *ZoneSet, rng RandSource) {
	if zs == nil {
		return
	}
	for _, g := range zs.Groups {
		c := FallbackColor
		if g.Name != FallbackZone {
			c = Color{R: rng.Float64(), G: rng.Float64(), B: rng.Float64(), A: 0}
		}
		g.Color = c
		for _, inst := range g.Instances {
			inst.Color = c
		}
	}
}
