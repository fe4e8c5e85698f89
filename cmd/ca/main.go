//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"lifeboard/internal/app"
	"lifeboard/pkg/core"
	_ "lifeboard/pkg/sims/life"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q (have %v)", cfg.Sim, core.SimNames())
	}

	sim, err := factory(cfg.Params())
	if err != nil {
		log.Fatal(err)
	}
	defer sim.Stop()
	if cfg.Random {
		if err := sim.Randomize(core.NewRNG(cfg.Seed)); err != nil {
			log.Fatal(err)
		}
	}

	game := app.New(sim, cfg)
	w, h := game.ScreenSize()

	ebiten.SetWindowTitle(windowTitle(sim.Name()))
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
