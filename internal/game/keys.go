package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Spawn-Sense/internal/config"
	"github.com/Garsondee/Spawn-Sense/internal/overlay"
)

// modeBinding pairs a key with the direction event it emits.
type modeBinding struct {
	key ebiten.Key
	dir overlay.Direction
}

// parseKey resolves an ebiten key name such as "ArrowUp".
func parseKey(name string) (ebiten.Key, error) {
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("%w: %q", config.ErrInvalidKey, name)
	}
	return k, nil
}

// parseBindings maps the configured key names to direction events.
func parseBindings(keys config.Keys) ([]modeBinding, error) {
	names := []struct {
		name string
		dir  overlay.Direction
	}{
		{keys.PreviousMode, overlay.DirectionUp},
		{keys.NextMode, overlay.DirectionDown},
		{keys.PreviousSubMode, overlay.DirectionLeft},
		{keys.NextSubMode, overlay.DirectionRight},
	}
	out := make([]modeBinding, 0, len(names))
	for _, n := range names {
		k, err := parseKey(n.name)
		if err != nil {
			return nil, err
		}
		out = append(out, modeBinding{key: k, dir: n.dir})
	}
	return out, nil
}

// directions returns one event per binding whose key went down this tick,
// in binding order. pressed reports edge-triggered presses.
func directions(bindings []modeBinding, pressed func(ebiten.Key) bool) []overlay.Direction {
	var out []overlay.Direction
	for _, b := range bindings {
		if pressed(b.key) {
			out = append(out, b.dir)
		}
	}
	return out
}
