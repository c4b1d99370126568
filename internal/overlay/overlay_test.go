package overlay

import (
	"errors"
	"math"
	"testing"
)

func scenarioSettings() Settings {
	s := DefaultSettings()
	s.Birdseye = false
	return s
}

// scenarioHarness places spawns in front of and behind the default camera.
func scenarioHarness(opts ...HarnessOption) *Harness {
	base := []HarnessOption{
		WithSettings(scenarioSettings()),
		WithSpawn(0, 0, 12, "North"),
		WithSpawn(0, 0, 20, "North"),
		WithSpawn(0, 0, -5, "South"),
		WithSpawn(1, 0, 5, ""),
	}
	return NewHarness(append(base, opts...)...)
}

func TestOverlay_InitReportsZoneCount(t *testing.T) {
	h := NewHarness(
		WithSpawn(0, 0, 1, "North"),
		WithSpawn(0, 0, 2, "North"),
		WithSpawn(0, 0, 3, ""),
	)
	if !h.Diag.HasEntry("init", "zones", "Found 2 total zones.") {
		t.Fatalf("expected zone count diagnostic\n%s", h.Diag.Format())
	}
	if n := len(h.Diag.Filter("zone", "color")); n != 2 {
		t.Fatalf("expected one colour line per zone, got %d", n)
	}
	if h.MarkersCreated() != 3 {
		t.Fatalf("expected 3 markers, got %d", h.MarkersCreated())
	}
}

func TestOverlay_CullAndFade(t *testing.T) {
	h := scenarioHarness()
	cmds, err := h.Step()
	if err != nil {
		t.Fatal(err)
	}
	if len(cmds) != 2 {
		t.Fatalf("expected 2 draw commands, got %d", len(cmds))
	}
	st := h.Overlay.Stats()
	if st.Behind != 1 || st.OutOfRange != 1 || st.Drawn != 2 {
		t.Fatalf("unexpected stats %+v", st)
	}
	north := cmds[0]
	if north.Zone != "North" || math.Abs(north.Alpha-0.6) > eps {
		t.Fatalf("expected North at alpha 0.6, got %s at %f", north.Zone, north.Alpha)
	}
	if north.Background.A != north.Alpha || north.Lines[0][0].Color.A != north.Alpha {
		t.Fatal("background and text should share the instance alpha")
	}
	if cmds[1].Zone != FallbackZone || cmds[1].Alpha != 1 {
		t.Fatalf("expected opaque Ungrouped label, got %s at %f", cmds[1].Zone, cmds[1].Alpha)
	}
}

func TestOverlay_RangeCullBeforeFade(t *testing.T) {
	h := NewHarness(WithSettings(scenarioSettings()), WithSpawn(0, 0, 20, "North"))
	cmds, _ := h.Step()
	if len(cmds) != 0 {
		t.Fatalf("spawn at distance 20 should be culled, got %d commands", len(cmds))
	}
	if h.Overlay.Stats().OutOfRange != 1 {
		t.Fatalf("expected a range cull, got %+v", h.Overlay.Stats())
	}
}

func TestOverlay_SettingsReadEachFrame(t *testing.T) {
	h := scenarioHarness()
	first, _ := h.Step()
	h.Settings.RenderRange = 25
	second, _ := h.Step()
	if len(second) != len(first)+1 {
		t.Fatalf("widening the range should reveal the far spawn: %d -> %d", len(first), len(second))
	}
	h.Settings.Enabled = false
	if cmds, _ := h.Step(); cmds != nil {
		t.Fatalf("disabled overlay should draw nothing, got %d", len(cmds))
	}
}

func TestOverlay_ModeFiltering(t *testing.T) {
	h := scenarioHarness()

	cmds, _ := h.Step(DirectionDown) // Zone [North]
	if len(cmds) != 1 || cmds[0].Zone != "North" {
		t.Fatalf("Zone[North] should draw one North label, got %d", len(cmds))
	}

	cmds, _ = h.Step(DirectionRight) // Zone [South], behind camera
	if len(cmds) != 0 {
		t.Fatalf("South is behind the camera, got %d labels", len(cmds))
	}
	if st := h.Overlay.Stats(); st.Filtered != 3 || st.Behind != 1 {
		t.Fatalf("unexpected stats %+v", st)
	}

	cmds, _ = h.Step(DirectionRight) // Zone [Ungrouped]
	if len(cmds) != 1 || cmds[0].Zone != FallbackZone {
		t.Fatalf("Zone[Ungrouped] should draw the fallback label, got %d", len(cmds))
	}

	cmds, _ = h.Step(DirectionDown) // None
	if len(cmds) != 0 || h.Overlay.Stats().Filtered != 4 {
		t.Fatalf("None should filter everything, got %d labels", len(cmds))
	}
}

func TestOverlay_InvalidDirectionFailsTick(t *testing.T) {
	h := scenarioHarness()
	_, err := h.Step(DirectionDown, Direction(42), DirectionDown)
	if !errors.Is(err, ErrInvalidDirection) {
		t.Fatalf("expected ErrInvalidDirection, got %v", err)
	}
}

func TestOverlay_NilCamera(t *testing.T) {
	h := scenarioHarness()
	h.Camera = nil
	cmds, err := h.Step()
	if err != nil || cmds != nil {
		t.Fatalf("missing camera should draw nothing without error, got %d, %v", len(cmds), err)
	}
}

func TestOverlay_NoSpawns(t *testing.T) {
	h := NewHarness()
	cmds, err := h.Step(DirectionDown, DirectionRight)
	if err != nil || len(cmds) != 0 {
		t.Fatalf("empty scene should draw nothing, got %d, %v", len(cmds), err)
	}
	if !h.Diag.HasEntry("mode", "empty_sub", "") {
		t.Fatalf("expected empty sub-mode diagnostic\n%s", h.Diag.Format())
	}
}

func TestOverlay_Teardown(t *testing.T) {
	h := scenarioHarness()
	h.Overlay.Teardown()
	if h.LiveMarkers() != 0 {
		t.Fatalf("expected all markers destroyed, %d live", h.LiveMarkers())
	}
	if cmds, _ := h.Step(); cmds != nil {
		t.Fatalf("torn-down overlay should draw nothing, got %d", len(cmds))
	}
}

func TestOverlay_ReinitializeReplacesMarkers(t *testing.T) {
	h := scenarioHarness()
	h.Overlay.Initialize([]SpawnPoint{{Zone: "Only"}})
	if h.LiveMarkers() != 1 {
		t.Fatalf("expected only the new marker live, got %d", h.LiveMarkers())
	}
	if mode, sub := h.Overlay.Cycler().State(); mode != 0 || sub != 0 {
		t.Fatalf("reinitialise should reset the mode, got (%d,%d)", mode, sub)
	}
	if vals := h.Overlay.Cycler().Modes()[1].Values; len(vals) != 1 || vals[0] != "Only" {
		t.Fatalf("zone sub-values should be rebuilt, got %v", vals)
	}
}

func TestOverlay_DiagTicksStamped(t *testing.T) {
	h := scenarioHarness()
	_, _ = h.Step()
	_, _ = h.Step(DirectionDown)
	changes := h.Diag.Filter("mode", "change")
	if len(changes) != 1 || changes[0].Tick != 2 {
		t.Fatalf("expected one mode change stamped at tick 2, got %+v", changes)
	}
}

func TestOverlay_DuplicateDirectionOncePerTick(t *testing.T) {
	h := scenarioHarness()
	if _, err := h.Step(DirectionDown, DirectionDown); err != nil {
		t.Fatal(err)
	}
	if mode, _ := h.Overlay.Cycler().State(); mode != 1 {
		t.Fatalf("expected mode index 1 (Zone), got %d (%s)", mode, h.Overlay.Cycler().Mode().Name)
	}
	if n := len(h.Diag.Filter("mode", "change")); n != 1 {
		t.Fatalf("expected one mode change, got %d", n)
	}

	// Distinct directions in one tick still all apply, in order.
	if _, err := h.Step(DirectionRight, DirectionUp, DirectionRight); err != nil {
		t.Fatal(err)
	}
	mode, sub := h.Overlay.Cycler().State()
	if mode != 0 || sub != 0 {
		t.Fatalf("expected (0,0) after Right then Up, got (%d,%d)", mode, sub)
	}
}

func TestOverlay_InvalidDirectionLeavesStateUnchanged(t *testing.T) {
	h := scenarioHarness()
	for _, bad := range []Direction{Direction(7), Direction(-1)} {
		_, err := h.Step(DirectionDown, bad)
		if !errors.Is(err, ErrInvalidDirection) {
			t.Fatalf("%v: expected ErrInvalidDirection, got %v", bad, err)
		}
		if mode, sub := h.Overlay.Cycler().State(); mode != 0 || sub != 0 {
			t.Fatalf("%v: failed tick should not move the cycler, got (%d,%d)", bad, mode, sub)
		}
	}
	if n := len(h.Diag.Filter("mode", "")); n != 0 {
		t.Fatalf("failed ticks should emit no mode diagnostics, got %d", n)
	}
}

func TestProject_CullReasons(t *testing.T) {
	h := scenarioHarness()
	s := scenarioSettings()
	want := map[float64]CullReason{12: CullNone, 20: CullRange, -5: CullBehind}
	for _, g := range h.Overlay.Zones().Groups {
		for _, inst := range g.Instances {
			z := inst.Spawn.Position.Z()
			exp, ok := want[z]
			if !ok {
				continue
			}
			p, reason := Project(h.Camera, inst, s)
			if reason != exp {
				t.Fatalf("spawn at z=%v: expected %s, got %s", z, exp, reason)
			}
			if reason == CullNone && (p.Distance != 12 || p.Height != 1) {
				t.Fatalf("unexpected projection %+v", p)
			}
		}
	}
}
