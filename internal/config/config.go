package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Spawn-Sense/internal/overlay"
)

// ErrInvalidKey is returned when a key binding names no known key.
var ErrInvalidKey = errors.New("config: invalid key binding")

// Accepted ranges.
const (
	RenderRangeMin = 1.0
	RenderRangeMax = 2000.0

	BirdseyeMultiplierMin = 0.01
	BirdseyeMultiplierMax = 2.0

	OpacityRangeMin = 1.0
	OpacityRangeMax = 1999.0
)

// Keys names the mode-cycling key bindings using ebiten key names.
type Keys struct {
	PreviousMode    string `yaml:"previous_mode"`
	NextMode        string `yaml:"next_mode"`
	PreviousSubMode string `yaml:"previous_sub_mode"`
	NextSubMode     string `yaml:"next_sub_mode"`
}

// Settings holds every user-tunable overlay option.
type Settings struct {
	// General
	EnableOverlay bool `yaml:"enable_overlay"`
	Keys          Keys `yaml:"keys"`

	// Rendering
	RenderRange        float64 `yaml:"render_range"`
	EnableBirdseye     bool    `yaml:"enable_birdseye"`
	BirdseyeMultiplier float64 `yaml:"birdseye_multiplier"`
	EnableOpacity      bool    `yaml:"enable_opacity"`
	OpacityRange       float64 `yaml:"opacity_range"` // must not exceed RenderRange
}

// Default returns Settings with the stock values.
func Default() Settings {
	return Settings{
		EnableOverlay: false,
		Keys: Keys{
			PreviousMode:    "ArrowUp",
			NextMode:        "ArrowDown",
			PreviousSubMode: "ArrowLeft",
			NextSubMode:     "ArrowRight",
		},
		RenderRange:        15,
		EnableBirdseye:     true,
		BirdseyeMultiplier: 1,
		EnableOpacity:      true,
		OpacityRange:       10,
	}
}

// Normalize clamps every range into bounds and then pulls OpacityRange
// under RenderRange when it exceeds it.
func (s *Settings) Normalize() {
	s.RenderRange = clamp(s.RenderRange, RenderRangeMin, RenderRangeMax)
	s.BirdseyeMultiplier = clamp(s.BirdseyeMultiplier, BirdseyeMultiplierMin, BirdseyeMultiplierMax)
	s.OpacityRange = clamp(s.OpacityRange, OpacityRangeMin, OpacityRangeMax)
	if s.OpacityRange > s.RenderRange {
		s.OpacityRange = max(s.RenderRange-1, OpacityRangeMin)
	}

	def := Default().Keys
	if s.Keys.PreviousMode == "" {
		s.Keys.PreviousMode = def.PreviousMode
	}
	if s.Keys.NextMode == "" {
		s.Keys.NextMode = def.NextMode
	}
	if s.Keys.PreviousSubMode == "" {
		s.Keys.PreviousSubMode = def.PreviousSubMode
	}
	if s.Keys.NextSubMode == "" {
		s.Keys.NextSubMode = def.NextSubMode
	}
}

// Overlay converts to the per-frame value the overlay consumes.
func (s Settings) Overlay() overlay.Settings {
	return overlay.Settings{
		Enabled:            s.EnableOverlay,
		RenderRange:        s.RenderRange,
		Birdseye:           s.EnableBirdseye,
		BirdseyeMultiplier: s.BirdseyeMultiplier,
		OpacityFade:        s.EnableOpacity,
		OpacityRange:       s.OpacityRange,
	}
}

// Load reads settings from a YAML file. If the file doesn't exist, returns
// defaults. The result is always normalized.
func Load(path string) (Settings, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading settings %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing settings %s: %w", path, err)
	}

	cfg.Normalize()
	return cfg, nil
}

// Save writes settings as YAML.
func Save(path string, s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings %s: %w", path, err)
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
