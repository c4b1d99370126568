package overlay

import "strings"

// FallbackZone collects spawn points with no usable zone label.
const FallbackZone = "Ungrouped"

// Marker appearance for scene-side spheres.
const MarkerScale = 0.25

// ZoneGroup is a named, ordered bucket of spawn instances.
type ZoneGroup struct {
	Name      string
	Color     Color
	Instances []*SpawnInstance
}

// ZoneSet is the zone -> instances mapping built once at initialisation.
// Groups keep first-seen order.
type ZoneSet struct {
	Groups []*ZoneGroup
	index  map[string]*ZoneGroup
}

// Group returns the named group, or nil.
func (zs *ZoneSet) Group(name string) *ZoneGroup {
	if zs == nil {
		return nil
	}
	return zs.index[name]
}

// Names returns zone names in first-seen order, fallback included if used.
func (zs *ZoneSet) Names() []string {
	if zs == nil {
		return nil
	}
	names := make([]string, len(zs.Groups))
	for i, g := range zs.Groups {
		names[i] = g.Name
	}
	return names
}

// Len returns the number of distinct zones.
func (zs *ZoneSet) Len() int {
	if zs == nil {
		return 0
	}
	return len(zs.Groups)
}

// InstanceCount returns the total number of instances across all zones.
func (zs *ZoneSet) InstanceCount() int {
	n := 0
	if zs == nil {
		return n
	}
	for _, g := range zs.Groups {
		n += len(g.Instances)
	}
	return n
}

// zoneName maps a raw label to its group name.
func zoneName(label string) string {
	if strings.TrimSpace(label) == "" {
		return FallbackZone
	}
	return label
}

// GroupByZone partitions points into zone groups. Every point is kept.
// When markers is non-nil one marker is created per point.
func GroupByZone(points []SpawnPoint, markers MarkerFactory) *ZoneSet {
	zs := &ZoneSet{index: make(map[string]*ZoneGroup)}
	for _, p := range points {
		name := zoneName(p.Zone)
		g, ok := zs.index[name]
		if !ok {
			g = &ZoneGroup{Name: name}
			zs.index[name] = g
			zs.Groups = append(zs.Groups, g)
		}
		inst := &SpawnInstance{Spawn: p}
		if markers != nil {
			inst.Marker = markers.CreateMarker(p.Position)
		}
		g.Instances = append(g.Instances, inst)
	}
	return zs
}

// destroy releases every marker and empties the set.
func (zs *ZoneSet) destroy() {
	if zs == nil {
		return
	}
	for _, g := range zs.Groups {
		for _, inst := range g.Instances {
			if inst.Marker != nil {
				inst.Marker.Destroy()
				inst.Marker = nil
			}
		}
		g.Instances = nil
	}
	zs.Groups = nil
	zs.index = map[string]*ZoneGroup{}
}
