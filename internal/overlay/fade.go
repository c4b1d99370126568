package overlay

import "math"

// Settings is the per-frame configuration snapshot. The host re-reads it
// from its settings owner every frame; the overlay never caches it.
// The owner keeps OpacityRange <= RenderRange.
type Settings struct {
	Enabled            bool
	RenderRange        float64
	Birdseye           bool
	BirdseyeMultiplier float64
	OpacityFade        bool
	OpacityRange       float64
}

// DefaultSettings mirrors the stock settings file with the overlay switched on.
func DefaultSettings() Settings {
	return Settings{
		Enabled:            true,
		RenderRange:        15,
		Birdseye:           true,
		BirdseyeMultiplier: 1,
		OpacityFade:        true,
		OpacityRange:       10,
	}
}

// HeightMultiplier widens the render range as the camera rises above or
// drops below a spawn point. It is exactly 1 with birdseye disabled and
// never below 1 with it enabled.
func HeightMultiplier(s Settings, cameraHeight, instanceHeight float64) float64 {
	if !s.Birdseye {
		return 1
	}
	dh := math.Abs(cameraHeight - instanceHeight)
	raw := 1.0
	// RenderRange == 1 collapses the slope; treat it as no height boost.
	if den := 1 - s.RenderRange; den != 0 {
		raw = 1 - (dh-s.RenderRange)/den + 1
	}
	h := math.Max(1, raw) * s.BirdseyeMultiplier * 4
	if math.IsNaN(h) || h < 1 {
		return 1
	}
	return h
}

// Alpha returns the label opacity for a spawn at distance with height
// multiplier h. Opacity is 1 up to OpacityRange*h and reaches 0 at
// RenderRange*h.
func Alpha(s Settings, distance, h float64) float64 {
	if !s.OpacityFade {
		return 1
	}
	far := s.RenderRange * h
	den := s.OpacityRange*h - far
	if den == 0 {
		if distance < far {
			return 1
		}
		return 0
	}
	return clamp01((distance - far) / den)
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
