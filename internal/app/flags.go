package app

import (
	"flag"
	"strconv"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Sim      string
	Scale    int
	TPS      int
	Seed     int64
	Width    int
	Height   int
	TickMs   int
	Random   bool
	HUDWidth int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "life", Scale: 12, TPS: 60, Seed: 42, Width: 60, Height: 40, TickMs: 1000, HUDWidth: 260}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run (life or life-clamp)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "input and redraw rate per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed used by the R key")
	fs.IntVar(&c.Width, "w", c.Width, "board width in cells")
	fs.IntVar(&c.Height, "h", c.Height, "board height in cells")
	fs.IntVar(&c.TickMs, "tick", c.TickMs, "tick interval in milliseconds")
	fs.BoolVar(&c.Random, "random", c.Random, "start from a board randomized with -seed")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "control panel width in pixels (0 hides it)")
}

// Params returns the factory parameters for the configured board.
func (c *Config) Params() map[string]string {
	return map[string]string{
		"w":       strconv.Itoa(c.Width),
		"h":       strconv.Itoa(c.Height),
		"tick_ms": strconv.Itoa(c.TickMs),
	}
}
