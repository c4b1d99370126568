package overlay

import (
	"fmt"
	"math/rand"
	"time"
)

// FrameStats counts what happened to instances during the last Render.
type FrameStats struct {
	Filtered   int // in zones rejected by the render mode
	Behind     int
	OutOfRange int
	Drawn      int
}

// Overlay is the spawn-point debug overlay. The host drives it with
// Initialize once, then Tick and Render every frame, then Teardown.
// All methods must be called from the frame loop goroutine.
type Overlay struct {
	zones    *ZoneSet
	cycler   *Cycler
	renderer *Renderer
	markers  MarkerFactory
	rng      RandSource
	report   Reporter
	modes    func() []RenderMode
	tick     int
	stats    FrameStats
}

// Option configures an Overlay.
type Option func(*Overlay)

// WithRand injects the colour source.
func WithRand(rng RandSource) Option {
	return func(o *Overlay) { o.rng = rng }
}

// WithMarkers sets the scene marker factory.
func WithMarkers(m MarkerFactory) Option {
	return func(o *Overlay) { o.markers = m }
}

// WithReporter sets the diagnostics sink.
func WithReporter(r Reporter) Option {
	return func(o *Overlay) { o.report = r }
}

// WithMeasurer sets the text measurer used to size label boxes.
func WithMeasurer(m TextMeasurer) Option {
	return func(o *Overlay) { o.renderer = NewRenderer(m) }
}

// WithModes replaces the default render modes. The factory is called on
// every Initialize so each session starts from a fresh list.
func WithModes(modes func() []RenderMode) Option {
	return func(o *Overlay) { o.modes = modes }
}

// New creates an overlay. Without WithRand a time-seeded source is used.
func New(opts ...Option) *Overlay {
	o := &Overlay{
		report: nopReporter{},
		modes:  DefaultModes,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- cosmetic colours
	}
	if o.renderer == nil {
		o.renderer = NewRenderer(nil)
	}
	o.cycler = NewCycler(o.modes(), o.report)
	return o
}

// Initialize groups points into zones, assigns colours, creates markers and
// resets the render mode to All.
func (o *Overlay) Initialize(points []SpawnPoint) {
	if o.zones != nil {
		o.Teardown()
	}
	o.zones = GroupByZone(points, o.markers)
	o.report.Report("init", "zones", fmt.Sprintf("Found %d total zones.", o.zones.Len()))

	AssignColors(o.zones, o.rng)
	for _, g := range o.zones.Groups {
		o.report.Report("zone", "color", fmt.Sprintf("Zonegroup: %s assigned color (%s)", g.Name, g.Color))
	}

	o.cycler = NewCycler(o.modes(), o.report)
	o.cycler.AppendValues(ModeZone, o.zones.Names()...)
}

// Tick consumes this frame's direction events. Each direction is applied at
// most once per tick, in first-seen order. An unknown direction aborts the
// tick with ErrInvalidDirection before any event is applied.
func (o *Overlay) Tick(events []Direction) error {
	o.tick++
	if ts, ok := o.report.(interface{ SetTick(int) }); ok {
		ts.SetTick(o.tick)
	}
	for _, d := range events {
		if !d.valid() {
			return fmt.Errorf("tick %d: %w: %d", o.tick, ErrInvalidDirection, int(d))
		}
	}
	var seen [directionCount]bool
	for _, d := range events {
		if seen[d] {
			continue
		}
		seen[d] = true
		if err := o.cycler.Apply(d); err != nil {
			return fmt.Errorf("tick %d: %w", o.tick, err)
		}
	}
	return nil
}

// Render culls, fades and composes every eligible instance for cam using
// the current settings. It returns nil when there is nothing to draw.
func (o *Overlay) Render(cam Camera, s Settings) []DrawCommand {
	o.stats = FrameStats{}
	if !s.Enabled || cam == nil || o.zones == nil {
		return nil
	}
	vp := cam.Viewport()

	var cmds []DrawCommand
	for _, g := range o.zones.Groups {
		if !o.cycler.Eligible(g.Name) {
			o.stats.Filtered += len(g.Instances)
			continue
		}
		for _, inst := range g.Instances {
			proj, reason := Project(cam, inst, s)
			switch reason {
			case CullBehind:
				o.stats.Behind++
				continue
			case CullRange:
				o.stats.OutOfRange++
				continue
			}
			alpha := Alpha(s, proj.Distance, proj.Height)
			cmds = append(cmds, o.renderer.Compose(g.Name, inst, proj, alpha, vp))
			o.stats.Drawn++
		}
	}
	return cmds
}

// Teardown destroys markers and drops all zone state.
func (o *Overlay) Teardown() {
	o.zones.destroy()
	o.zones = nil
}

// Zones returns the zone mapping, or nil before Initialize.
func (o *Overlay) Zones() *ZoneSet {
	return o.zones
}

// Cycler returns the render mode selector.
func (o *Overlay) Cycler() *Cycler {
	return o.cycler
}

// Stats returns counts from the last Render.
func (o *Overlay) Stats() FrameStats {
	return o.stats
}
