// Command life drives a Game of Life engine headlessly, in the terminal, or
// behind an HTTP/websocket API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lifeboard/internal/logging"
	"lifeboard/pkg/core"
	"lifeboard/pkg/sims/life"
)

var (
	configPath string
	logLevel   string
	logJSON    bool
	logFile    string

	boardWidth  int
	boardHeight int
	tickMs      int
	boundary    string
	seed        int64
	randomStart bool

	rootCmd = &cobra.Command{
		Use:           "life",
		Short:         "Run Conway's Game of Life",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML board config file")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.BoolVar(&logJSON, "log-json", false, "log as JSON")
	pf.StringVar(&logFile, "log-file", "", "also append JSON logs to this file")

	pf.IntVar(&boardWidth, "width", 0, "board width in cells (overrides config)")
	pf.IntVar(&boardHeight, "height", 0, "board height in cells (overrides config)")
	pf.IntVar(&tickMs, "tick", 0, "tick interval in milliseconds (overrides config)")
	pf.StringVar(&boundary, "boundary", "", "neighbor boundary: wrap or clamp (overrides config)")
	pf.Int64Var(&seed, "seed", 0, "random start seed; 0 picks one from the clock")
	pf.BoolVar(&randomStart, "random", false, "start from a random board")

	rootCmd.AddCommand(serveCmd, tuiCmd, runCmd, sweepCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "life:", err)
		os.Exit(1)
	}
}

// boardConfig merges the config file with any board flags set on cmd.
func boardConfig(cmd *cobra.Command) (life.Config, error) {
	cfg := life.DefaultConfig()
	if configPath != "" {
		loaded, err := life.LoadFile(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = boardWidth
	}
	if flags.Changed("height") {
		cfg.Height = boardHeight
	}
	if flags.Changed("tick") {
		d, err := core.MillisToInterval(int64(tickMs))
		if err != nil {
			return cfg, fmt.Errorf("--tick: %w", err)
		}
		cfg.TickInterval = d
	}
	if flags.Changed("boundary") {
		cfg.Boundary = boundary
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
		cfg.RandomStart = true
	}
	if flags.Changed("random") {
		cfg.RandomStart = randomStart
	}
	return cfg, cfg.Validate()
}

func newLogger(quiet bool) (*logging.Logger, error) {
	return logging.New(logging.Config{
		Level:   logLevel,
		JSON:    logJSON,
		Service: "lifeboard",
		File:    logFile,
		Quiet:   quiet,
	})
}
