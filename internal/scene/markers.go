package scene

import (
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Garsondee/Spawn-Sense/internal/overlay"
)

// Marker is a small sphere placed at a spawn point.
type Marker struct {
	ID     int
	Pos    mgl64.Vec3
	Radius float64 // world units
	Color  color.NRGBA

	set *MarkerSet
}

// Destroy removes the marker from its set. Calling it twice is harmless.
func (m *Marker) Destroy() {
	if m.set == nil {
		return
	}
	delete(m.set.live, m.ID)
	m.set = nil
}

// MarkerSet owns the live spawn markers of a scene.
type MarkerSet struct {
	live   map[int]*Marker
	nextID int
}

// NewMarkerSet returns an empty set.
func NewMarkerSet() *MarkerSet {
	return &MarkerSet{live: make(map[int]*Marker)}
}

// CreateMarker implements overlay.MarkerFactory with a white sphere of
// diameter overlay.MarkerScale.
func (s *MarkerSet) CreateMarker(pos mgl64.Vec3) overlay.Marker {
	m := &Marker{
		ID:     s.nextID,
		Pos:    pos,
		Radius: overlay.MarkerScale / 2,
		Color:  color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		set:    s,
	}
	s.nextID++
	s.live[m.ID] = m
	return m
}

// Len returns the number of live markers.
func (s *MarkerSet) Len() int {
	return len(s.live)
}

// Live returns live markers in creation order.
func (s *MarkerSet) Live() []*Marker {
	out := make([]*Marker, 0, len(s.live))
	for _, m := range s.live {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
