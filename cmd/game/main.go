package main

import (
	"flag"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Spawn-Sense/internal/config"
	"github.com/Garsondee/Spawn-Sense/internal/game"
	"github.com/Garsondee/Spawn-Sense/internal/overlay"
	"github.com/Garsondee/Spawn-Sense/internal/scene"
)

func main() {
	settingsPath := flag.String("settings", "spawnsense.yaml", "settings file (created on first change)")
	spawnsPath := flag.String("spawns", "", "spawn list YAML; empty generates a demo layout")
	seed := flag.Int64("seed", 0, "seed for colours and the demo layout (0 = time)")
	count := flag.Int("count", 300, "spawn points in the generated layout")
	supersample := flag.Float64("ssaa", 1, "supersampling factor")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	store, err := config.NewStore(*settingsPath, logger)
	if err != nil {
		log.Fatal(err)
	}
	watcher, err := config.NewWatcher(store)
	if err != nil {
		log.Fatal(err)
	}
	defer watcher.Close()

	var spawns []overlay.SpawnPoint
	if *spawnsPath != "" {
		spawns, err = scene.LoadSpawns(*spawnsPath)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		rng := rand.New(rand.NewSource(*seed)) // #nosec G404 -- demo layout only
		spawns = scene.GenerateSpawns(rng, *count, nil, 120)
	}
	logger.Info("starting", "spawns", len(spawns), "seed", *seed, "settings", store.Path())

	g, err := game.New(game.Options{
		Spawns:      spawns,
		Store:       store,
		Reloaded:    watcher.Reloaded,
		Seed:        *seed,
		Logger:      logger,
		Supersample: *supersample,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer g.Close()

	w, h := g.Size()
	ebiten.SetWindowTitle("Spawn Sense")
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(g); err != nil {
		g.Close()
		_ = watcher.Close()
		log.Fatal(err)
	}
}
