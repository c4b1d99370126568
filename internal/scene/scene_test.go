package scene

import (
	"math"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/Spawn-Sense/internal/overlay"
)

const delta = 1e-6

func TestFlyCamera_CentreAhead(t *testing.T) {
	c := NewFlyCamera(mgl64.Vec3{}, 800, 600)
	p := c.WorldToScreen(mgl64.Vec3{0, 0, -10})
	assert.InDelta(t, 400, p.X(), delta)
	assert.InDelta(t, 300, p.Y(), delta)
	assert.InDelta(t, 10, p.Z(), delta)
}

func TestFlyCamera_BehindHasNegativeDepth(t *testing.T) {
	c := NewFlyCamera(mgl64.Vec3{}, 800, 600)
	p := c.WorldToScreen(mgl64.Vec3{0, 0, 10})
	assert.Less(t, p.Z(), 0.0)
}

func TestFlyCamera_BottomLeftOrigin(t *testing.T) {
	c := NewFlyCamera(mgl64.Vec3{}, 800, 600)
	right := c.WorldToScreen(mgl64.Vec3{1, 0, -10})
	up := c.WorldToScreen(mgl64.Vec3{0, 1, -10})
	assert.Greater(t, right.X(), 400.0)
	assert.Greater(t, up.Y(), 300.0, "higher world points should have larger Y")
}

func TestFlyCamera_LookAt(t *testing.T) {
	c := NewFlyCamera(mgl64.Vec3{0, 10, 0}, 800, 600)
	target := mgl64.Vec3{5, 0, -10}
	c.LookAt(target)
	p := c.WorldToScreen(target)
	assert.InDelta(t, 400, p.X(), 1e-4)
	assert.InDelta(t, 300, p.Y(), 1e-4)
	assert.InDelta(t, target.Sub(c.Pos).Len(), p.Z(), 1e-4)
}

func TestFlyCamera_MoveAndTurn(t *testing.T) {
	c := NewFlyCamera(mgl64.Vec3{}, 800, 600)
	c.Move(5, 0, 0)
	assert.InDelta(t, -5, c.Pos.Z(), delta)

	c.Move(0, 2, 1)
	assert.InDelta(t, 2, c.Pos.X(), delta)
	assert.InDelta(t, 1, c.Pos.Y(), delta)

	c.Turn(0, math.Pi)
	assert.InDelta(t, maxPitch, c.Pitch, delta)
	c.Turn(0, -2*math.Pi)
	assert.InDelta(t, -maxPitch, c.Pitch, delta)
}

func TestFlyCamera_ViewportScale(t *testing.T) {
	c := NewFlyCamera(mgl64.Vec3{}, 800, 600)
	c.Scale = 2
	vp := c.Viewport()
	assert.Equal(t, overlay.Viewport{Width: 1600, Height: 1200, Scale: 2}, vp)

	c.Scale = 0
	assert.Equal(t, 1.0, c.Viewport().Scale)
}

func TestSpawns_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spawns.yaml")
	want := []overlay.SpawnPoint{
		{Position: mgl64.Vec3{1, 2, 3}, Zone: "North"},
		{Position: mgl64.Vec3{-4, 0, 8.5}},
	}
	require.NoError(t, SaveSpawns(path, want))
	got, err := LoadSpawns(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSpawns_LoadMissing(t *testing.T) {
	_, err := LoadSpawns(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "reading spawns"))
}

func TestGenerateSpawns(t *testing.T) {
	a := GenerateSpawns(rand.New(rand.NewSource(5)), 200, nil, 100)
	b := GenerateSpawns(rand.New(rand.NewSource(5)), 200, nil, 100)
	require.Len(t, a, 200)
	assert.Equal(t, a, b, "same seed should give the same layout")

	zs := overlay.GroupByZone(a, nil)
	assert.NotNil(t, zs.Group(overlay.FallbackZone), "some points should be unlabelled")
	assert.Greater(t, zs.Len(), 1)
}

func TestMarkerSet(t *testing.T) {
	ms := NewMarkerSet()
	m1 := ms.CreateMarker(mgl64.Vec3{1, 0, 0})
	m2 := ms.CreateMarker(mgl64.Vec3{2, 0, 0})
	require.Equal(t, 2, ms.Len())

	live := ms.Live()
	assert.Equal(t, 0.125, live[0].Radius)
	assert.Equal(t, mgl64.Vec3{2, 0, 0}, live[1].Pos)

	m1.Destroy()
	m1.Destroy()
	assert.Equal(t, 1, ms.Len())
	m2.Destroy()
	assert.Equal(t, 0, ms.Len())
}

func TestMarkerSet_OverlayTeardown(t *testing.T) {
	ms := NewMarkerSet()
	o := overlay.New(overlay.WithMarkers(ms), overlay.WithRand(rand.New(rand.NewSource(1))))
	o.Initialize([]overlay.SpawnPoint{{Zone: "A"}, {Zone: ""}, {Zone: "B"}})
	assert.Equal(t, 3, ms.Len())
	o.Teardown()
	assert.Equal(t, 0, ms.Len())
}

func TestFlyCamera_DrivesOverlay(t *testing.T) {
	cam := NewFlyCamera(mgl64.Vec3{0, 0, 0}, 800, 600)
	h := overlay.NewHarness(
		overlay.WithCamera(cam),
		overlay.WithSettings(overlay.Settings{
			Enabled:      true,
			RenderRange:  15,
			OpacityFade:  true,
			OpacityRange: 10,
		}),
		overlay.WithSpawn(0, 0, -12, "A"),
		overlay.WithSpawn(0, 0, 12, "A"),
	)
	cmds, err := h.Step()
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	assert.InDelta(t, 400, cmds[0].Rect.X+cmds[0].Rect.W/2, 1e-6)
	assert.Less(t, cmds[0].Rect.Y+cmds[0].Rect.H, 300.0, "box should sit above the screen centre")
	assert.InDelta(t, 0.6, cmds[0].Alpha, 1e-9)
	assert.Equal(t, 1, h.Overlay.Stats().Behind)
}
