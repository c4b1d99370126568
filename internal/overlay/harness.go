package overlay

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// PinholeCamera looks down +Z from Pos with a fixed focal length in pixels.
// It has no rotation, which keeps expected screen positions easy to derive
// by hand.
type PinholeCamera struct {
	Pos   mgl64.Vec3
	Focal float64
	View  Viewport
}

func (c *PinholeCamera) Position() mgl64.Vec3 { return c.Pos }
func (c *PinholeCamera) Viewport() Viewport   { return c.View }

func (c *PinholeCamera) WorldToScreen(p mgl64.Vec3) mgl64.Vec3 {
	d := p.Sub(c.Pos)
	if d.Z() <= 0 {
		return mgl64.Vec3{0, 0, d.Z()}
	}
	return mgl64.Vec3{
		c.View.Width/2 + c.Focal*d.X()/d.Z(),
		c.View.Height/2 + c.Focal*d.Y()/d.Z(),
		d.Z(),
	}
}

// markerLedger counts markers so harness users can check teardown.
type markerLedger struct {
	created int
	live    int
}

type ledgerMarker struct {
	ledger *markerLedger
	done   bool
}

func (m *ledgerMarker) Destroy() {
	if m.done {
		return
	}
	m.done = true
	m.ledger.live--
}

func (l *markerLedger) CreateMarker(mgl64.Vec3) Marker {
	l.created++
	l.live++
	return &ledgerMarker{ledger: l}
}

// Harness is a headless overlay driver. It has no ebiten dependency and
// supports deterministic seeding and structured diagnostics.
type Harness struct {
	Overlay  *Overlay
	Diag     *DiagLog
	Camera   Camera
	Settings Settings

	points  []SpawnPoint
	rng     *rand.Rand
	markers *markerLedger
}

// HarnessOption is a builder function applied before initialisation.
type HarnessOption func(*Harness)

// WithSeed sets the colour RNG seed for deterministic runs.
func WithSeed(seed int64) HarnessOption {
	return func(h *Harness) {
		h.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- test harness
	}
}

// WithSpawn adds one spawn point.
func WithSpawn(x, y, z float64, zone string) HarnessOption {
	return func(h *Harness) {
		h.points = append(h.points, SpawnPoint{Position: mgl64.Vec3{x, y, z}, Zone: zone})
	}
}

// WithSpawns adds a batch of spawn points.
func WithSpawns(points []SpawnPoint) HarnessOption {
	return func(h *Harness) {
		h.points = append(h.points, points...)
	}
}

// WithSettings replaces the default settings.
func WithSettings(s Settings) HarnessOption {
	return func(h *Harness) { h.Settings = s }
}

// WithCamera replaces the default pinhole camera.
func WithCamera(c Camera) HarnessOption {
	return func(h *Harness) { h.Camera = c }
}

// NewHarness builds and initialises an overlay from opts. The default
// camera sits at the origin looking down +Z on a 1280x720 viewport.
func NewHarness(opts ...HarnessOption) *Harness {
	h := &Harness{
		Settings: DefaultSettings(),
		Camera: &PinholeCamera{
			Focal: 600,
			View:  Viewport{Width: 1280, Height: 720, Scale: 1},
		},
		rng:     rand.New(rand.NewSource(1)), // #nosec G404 -- test harness default
		markers: &markerLedger{},
	}
	for _, o := range opts {
		o(h)
	}
	h.Diag = NewDiagLog(nil)
	h.Overlay = New(
		WithRand(h.rng),
		WithMarkers(h.markers),
		WithReporter(h.Diag),
	)
	h.Overlay.Initialize(h.points)
	return h
}

// Step runs one frame: Tick with events, then Render.
func (h *Harness) Step(events ...Direction) ([]DrawCommand, error) {
	if err := h.Overlay.Tick(events); err != nil {
		return nil, err
	}
	return h.Overlay.Render(h.Camera, h.Settings), nil
}

// MarkersCreated returns how many scene markers were instantiated.
func (h *Harness) MarkersCreated() int { return h.markers.created }

// LiveMarkers returns how many markers have not been destroyed.
func (h *Harness) LiveMarkers() int { return h.markers.live }
