// Package soup runs batches of random Life soups on a worker pool and
// reports how long each one takes to settle.
package soup

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"lifeboard/pkg/core"
	"lifeboard/pkg/sims/life"
)

// Config describes one sweep.
type Config struct {
	Width       int
	Height      int
	Generations int
	Boundary    life.Boundary
	Workers     int
}

// DefaultConfig returns a 64x64 torus run for 1000 generations on every CPU.
func DefaultConfig() Config {
	return Config{
		Width:       64,
		Height:      64,
		Generations: 1000,
		Boundary:    life.Wrap,
		Workers:     runtime.NumCPU(),
	}
}

// Result summarizes one soup.
type Result struct {
	Seed int64
	// Period is 1 for a still life, 2 for a period-2 oscillator and 0 when
	// the soup had not settled within the generation budget.
	Period int
	// SettledAt is the first generation equal to a later one, or the
	// budget when Period is 0.
	SettledAt         int
	InitialPopulation int
	FinalPopulation   int
	PeakPopulation    int
}

// Settled reports whether the soup reached a still life or period-2 cycle.
func (r Result) Settled() bool { return r.Period > 0 }

func (r Result) String() string {
	state := "unsettled"
	switch r.Period {
	case 1:
		state = "still"
	case 2:
		state = "p2"
	}
	return fmt.Sprintf("seed=%d %s at=%d pop=%d->%d peak=%d",
		r.Seed, state, r.SettledAt, r.InitialPopulation, r.FinalPopulation, r.PeakPopulation)
}

// Run evolves the soup for seed until it settles or the budget runs out.
func Run(cfg Config, seed int64) (Result, error) {
	g, err := core.NewGrid(cfg.Width, cfg.Height)
	if err != nil {
		return Result{}, err
	}
	g.Randomize(core.NewRNG(seed))
	res := Evolve(g, cfg.Generations, cfg.Boundary)
	res.Seed = seed
	return res, nil
}

// Evolve advances g for up to generations steps, stopping as soon as a
// generation repeats its predecessor or the one before. g is not modified.
func Evolve(g *core.Grid, generations int, b life.Boundary) Result {
	cur := g.Snapshot()
	res := Result{
		InitialPopulation: cur.Population(),
		PeakPopulation:    cur.Population(),
	}
	var prev core.Snapshot
	havePrev := false

	for gen := 0; gen < generations; gen++ {
		next := life.Advance(cur, b).Snapshot()
		if pop := next.Population(); pop > res.PeakPopulation {
			res.PeakPopulation = pop
		}
		switch {
		case next.Equal(cur):
			res.Period = 1
			res.SettledAt = gen
		case havePrev && next.Equal(prev):
			res.Period = 2
			res.SettledAt = gen - 1
		}
		prev, cur, havePrev = cur, next, true
		if res.Period > 0 {
			break
		}
	}
	if res.Period == 0 {
		res.SettledAt = generations
	}
	res.FinalPopulation = cur.Population()
	return res
}

// Sweep runs every seed on cfg.Workers goroutines. Results come back in
// seed order. The first error or ctx cancellation stops the sweep.
func Sweep(ctx context.Context, cfg Config, seeds []int64) ([]Result, error) {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if _, err := core.NewGrid(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}

	type job struct {
		idx  int
		seed int64
	}
	results := make([]Result, len(seeds))
	jobs := make(chan job)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for i, seed := range seeds {
			select {
			case jobs <- job{idx: i, seed: seed}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for j := range jobs {
				if err := ctx.Err(); err != nil {
					return err
				}
				res, err := Run(cfg, j.seed)
				if err != nil {
					return fmt.Errorf("seed %d: %w", j.seed, err)
				}
				results[j.idx] = res
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Rank orders results longest-lived first: unsettled soups, then by the
// generation they settled at, then by final population.
func Rank(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Settled() != b.Settled() {
			return !a.Settled()
		}
		if a.SettledAt != b.SettledAt {
			return a.SettledAt > b.SettledAt
		}
		return a.FinalPopulation > b.FinalPopulation
	})
}

// Seeds returns count consecutive seeds starting at first.
func Seeds(first int64, count int) []int64 {
	out := make([]int64, count)
	for i := range out {
		out[i] = first + int64(i)
	}
	return out
}
