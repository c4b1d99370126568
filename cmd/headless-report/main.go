package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"

	"github.com/Garsondee/Spawn-Sense/internal/config"
	"github.com/Garsondee/Spawn-Sense/internal/overlay"
	"github.com/Garsondee/Spawn-Sense/internal/scene"
)

// modeSummary is what one camera station saw in one render mode.
type modeSummary struct {
	mode      string
	visible   int
	perZone   map[string]int
	alphaSum  float64
	meanAlpha float64
}

type stationReport struct {
	index int
	pos   mgl64.Vec3
	modes []modeSummary
}

// modeTotals aggregates one render mode across stations.
type modeTotals struct {
	mode        string
	visible     int
	stationsHit int
	meanAlpha   float64
	perZone     map[string]int
}

type options struct {
	seed     int64
	stations int
	radius   float64
	height   float64
	width    float64
	viewH    float64
}

func main() {
	var spawnsPath, settingsPath string
	var count int
	opts := options{width: 1280, viewH: 720}

	flag.StringVar(&spawnsPath, "spawns", "", "spawn list YAML; empty generates a demo layout")
	flag.StringVar(&settingsPath, "settings", "spawnsense.yaml", "settings file (defaults if missing)")
	flag.Int64Var(&opts.seed, "seed", 42, "seed for colours and the demo layout")
	flag.IntVar(&count, "count", 300, "spawn points in the generated layout")
	flag.IntVar(&opts.stations, "stations", 8, "camera stations on the survey ring")
	flag.Float64Var(&opts.radius, "radius", 60, "survey ring radius")
	flag.Float64Var(&opts.height, "height", 8, "camera height above the ground")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if opts.stations <= 0 {
		fmt.Println("error: -stations must be > 0")
		return
	}

	cfg, err := config.Load(settingsPath)
	if err != nil {
		logger.Error("loading settings", "err", err)
		os.Exit(1)
	}
	settings := cfg.Overlay()
	settings.Enabled = true

	var spawns []overlay.SpawnPoint
	if spawnsPath != "" {
		spawns, err = scene.LoadSpawns(spawnsPath)
		if err != nil {
			logger.Error("loading spawns", "err", err)
			os.Exit(1)
		}
	} else {
		rng := rand.New(rand.NewSource(opts.seed)) // #nosec G404 -- demo layout only
		spawns = scene.GenerateSpawns(rng, count, nil, 120)
	}

	fmt.Printf("=== Headless Overlay Report ===\n")
	fmt.Printf("spawns=%d stations=%d radius=%.1f height=%.1f seed=%d\n", len(spawns), opts.stations, opts.radius, opts.height, opts.seed)
	fmt.Printf("render_range=%.1f opacity=%v/%.1f birdseye=%v/x%.2f\n\n",
		settings.RenderRange, settings.OpacityFade, settings.OpacityRange, settings.Birdseye, settings.BirdseyeMultiplier)

	reports, err := surveyStations(context.Background(), spawns, settings, opts)
	if err != nil {
		logger.Error("survey failed", "err", err)
		os.Exit(1)
	}
	for _, r := range reports {
		printStation(r)
	}
	printAggregate(aggregate(reports))
}

// surveyStations renders every render mode from each station on the ring.
// Stations run concurrently; each owns its overlay.
func surveyStations(ctx context.Context, spawns []overlay.SpawnPoint, s overlay.Settings, opts options) ([]stationReport, error) {
	reports := make([]stationReport, opts.stations)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i := 0; i < opts.stations; i++ {
		g.Go(func() error {
			r, err := surveyStation(ctx, i, spawns, s, opts)
			if err != nil {
				return fmt.Errorf("station %d: %w", i, err)
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func stationPosition(i int, opts options) mgl64.Vec3 {
	ang := 2 * math.Pi * float64(i) / float64(opts.stations)
	return mgl64.Vec3{opts.radius * math.Cos(ang), opts.height, opts.radius * math.Sin(ang)}
}

func surveyStation(ctx context.Context, i int, spawns []overlay.SpawnPoint, s overlay.Settings, opts options) (stationReport, error) {
	cam := scene.NewFlyCamera(stationPosition(i, opts), opts.width, opts.viewH)
	cam.LookAt(mgl64.Vec3{0, 0, 0})

	h := overlay.NewHarness(
		overlay.WithSeed(opts.seed),
		overlay.WithSpawns(spawns),
		overlay.WithSettings(s),
		overlay.WithCamera(cam),
	)
	defer h.Overlay.Teardown()

	report := stationReport{index: i, pos: cam.Pos}
	cmds, err := h.Step()
	if err != nil {
		return report, err
	}

	modes := h.Overlay.Cycler().Modes()
	for mi := range modes {
		n := max(len(modes[mi].Values), 1)
		for si := 0; si < n; si++ {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			report.modes = append(report.modes, summarizeStation(modeLabel(h.Overlay.Cycler()), cmds))
			if si < n-1 {
				if cmds, err = h.Step(overlay.DirectionRight); err != nil {
					return report, err
				}
			}
		}
		if mi < len(modes)-1 {
			if cmds, err = h.Step(overlay.DirectionDown); err != nil {
				return report, err
			}
		}
	}
	return report, nil
}

// modeLabel names the active filter, e.g. "All" or "Zone:ZoneRoad".
func modeLabel(c *overlay.Cycler) string {
	m := c.Mode()
	if m.Policy == overlay.MatchSelected {
		return m.Name + ":" + c.Selected()
	}
	return m.Name
}

// summarizeStation counts the drawn labels of one frame per zone.
func summarizeStation(mode string, cmds []overlay.DrawCommand) modeSummary {
	ms := modeSummary{mode: mode, perZone: map[string]int{}}
	for _, c := range cmds {
		ms.visible++
		ms.perZone[c.Zone]++
		ms.alphaSum += c.Alpha
	}
	if ms.visible > 0 {
		ms.meanAlpha = ms.alphaSum / float64(ms.visible)
	}
	return ms
}

// aggregate folds station reports into per-mode totals, in the order modes
// were first seen.
func aggregate(reports []stationReport) []modeTotals {
	var out []modeTotals
	index := map[string]int{}
	alpha := map[string]float64{}
	for _, r := range reports {
		for _, m := range r.modes {
			i, ok := index[m.mode]
			if !ok {
				i = len(out)
				index[m.mode] = i
				out = append(out, modeTotals{mode: m.mode, perZone: map[string]int{}})
			}
			t := &out[i]
			t.visible += m.visible
			if m.visible > 0 {
				t.stationsHit++
			}
			for z, n := range m.perZone {
				t.perZone[z] += n
			}
			alpha[m.mode] += m.alphaSum
		}
	}
	for i := range out {
		if out[i].visible > 0 {
			out[i].meanAlpha = alpha[out[i].mode] / float64(out[i].visible)
		}
	}
	return out
}

func printStation(r stationReport) {
	fmt.Printf("--- Station %d at (%.1f, %.1f, %.1f) ---\n", r.index, r.pos.X(), r.pos.Y(), r.pos.Z())
	for _, m := range r.modes {
		fmt.Printf("  %-28s visible=%-4d mean_alpha=%.3f  %s\n", m.mode, m.visible, m.meanAlpha, formatZones(m.perZone))
	}
	fmt.Println()
}

func printAggregate(totals []modeTotals) {
	fmt.Println("=== Aggregate ===")
	for _, t := range totals {
		fmt.Printf("  %-28s visible=%-5d stations=%-3d mean_alpha=%.3f  %s\n",
			t.mode, t.visible, t.stationsHit, t.meanAlpha, formatZones(t.perZone))
	}
}

func formatZones(perZone map[string]int) string {
	if len(perZone) == 0 {
		return "none"
	}
	names := make([]string, 0, len(perZone))
	for z := range perZone {
		names = append(names, z)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, z := range names {
		parts[i] = fmt.Sprintf("%s=%d", z, perZone[z])
	}
	return strings.Join(parts, ",")
}
