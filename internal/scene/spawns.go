package scene

import (
	"fmt"
	"math"
	"math/rand"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Spawn-Sense/internal/overlay"
)

type spawnEntry struct {
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Z    float64 `yaml:"z"`
	Zone string  `yaml:"zone"`
}

type spawnFile struct {
	Spawns []spawnEntry `yaml:"spawns"`
}

// LoadSpawns reads a YAML spawn list:
//
//	spawns:
//	  - {x: 12.5, y: 0, z: -40, zone: ZoneDormitory}
//	  - {x: 3, y: 1.2, z: 8}
func LoadSpawns(path string) ([]overlay.SpawnPoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spawns %s: %w", path, err)
	}
	var f spawnFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing spawns %s: %w", path, err)
	}
	points := make([]overlay.SpawnPoint, len(f.Spawns))
	for i, e := range f.Spawns {
		points[i] = overlay.SpawnPoint{
			Position: mgl64.Vec3{e.X, e.Y, e.Z},
			Zone:     e.Zone,
		}
	}
	return points, nil
}

// SaveSpawns writes points in the LoadSpawns format.
func SaveSpawns(path string, points []overlay.SpawnPoint) error {
	f := spawnFile{Spawns: make([]spawnEntry, len(points))}
	for i, p := range points {
		f.Spawns[i] = spawnEntry{X: p.Position.X(), Y: p.Position.Y(), Z: p.Position.Z(), Zone: p.Zone}
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("encoding spawns: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing spawns %s: %w", path, err)
	}
	return nil
}

// DefaultZones names the zones of the generated demo layout.
var DefaultZones = []string{
	"ZoneDormitory",
	"ZoneGasStation",
	"ZoneWoodCutter",
	"ZoneRoad",
	"ZoneCustoms",
}

// GenerateSpawns scatters n points over a square of half-size extent. Each
// zone gets a cluster centre; roughly one point in eight is left unlabelled
// (blank or whitespace) so the fallback zone is exercised. Heights vary over
// a few storeys.
func GenerateSpawns(rng *rand.Rand, n int, zones []string, extent float64) []overlay.SpawnPoint {
	if len(zones) == 0 {
		zones = DefaultZones
	}
	centres := make([]mgl64.Vec3, len(zones))
	for i := range zones {
		ang := 2 * math.Pi * float64(i) / float64(len(zones))
		r := extent * (0.3 + 0.5*rng.Float64())
		centres[i] = mgl64.Vec3{r * math.Cos(ang), 0, r * math.Sin(ang)}
	}

	spread := extent / 6
	points := make([]overlay.SpawnPoint, 0, n)
	for i := 0; i < n; i++ {
		zi := rng.Intn(len(zones))
		c := centres[zi]
		pos := mgl64.Vec3{
			c.X() + (rng.Float64()*2-1)*spread,
			float64(rng.Intn(3)) * 3,
			c.Z() + (rng.Float64()*2-1)*spread,
		}
		zone := zones[zi]
		switch rng.Intn(16) {
		case 0:
			zone = ""
		case 1:
			zone = "  "
		}
		points = append(points, overlay.SpawnPoint{Position: pos, Zone: zone})
	}
	return points
}
