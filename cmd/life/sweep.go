package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"lifeboard/internal/soup"
	"lifeboard/pkg/sims/life"
)

var (
	sweepFirstSeed int64
	sweepCount     int
	sweepGens      int
	sweepWorkers   int
	sweepTop       int

	sweepCmd = &cobra.Command{
		Use:   "sweep",
		Short: "Run many random soups and report the longest-lived",
		RunE:  runSweep,
	}
)

func init() {
	f := sweepCmd.Flags()
	f.Int64Var(&sweepFirstSeed, "first-seed", 1, "first soup seed")
	f.IntVar(&sweepCount, "count", 256, "number of soups")
	f.IntVar(&sweepGens, "generations", 1000, "generation budget per soup")
	f.IntVar(&sweepWorkers, "workers", runtime.NumCPU(), "number of worker goroutines")
	f.IntVar(&sweepTop, "top", 5, "results to print")
}

func runSweep(cmd *cobra.Command, _ []string) error {
	board, err := boardConfig(cmd)
	if err != nil {
		return err
	}
	b, err := life.ParseBoundary(board.Boundary)
	if err != nil {
		return err
	}
	cfg := soup.Config{
		Width:       board.Width,
		Height:      board.Height,
		Generations: sweepGens,
		Boundary:    b,
		Workers:     sweepWorkers,
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Sweeping %d soups on %dx%d %s (%d workers, %d generations)\n",
		sweepCount, cfg.Width, cfg.Height, b, cfg.Workers, cfg.Generations)

	start := time.Now()
	results, err := soup.Sweep(cmd.Context(), cfg, soup.Seeds(sweepFirstSeed, sweepCount))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	settled := 0
	for _, r := range results {
		if r.Settled() {
			settled++
		}
	}
	soup.Rank(results)

	fmt.Fprintf(out, "\n%d/%d settled. Top %d results (elapsed %s):\n",
		settled, len(results), min(sweepTop, len(results)), elapsed.Round(time.Millisecond))
	for i := 0; i < len(results) && i < sweepTop; i++ {
		fmt.Fprintf(out, "%2d) %s\n", i+1, results[i])
	}
	return nil
}
