package life

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"lifeboard/pkg/core"
)

// Config holds the board and timing settings for a Life engine.
type Config struct {
	Width        int           `yaml:"width" validate:"gte=0"`
	Height       int           `yaml:"height" validate:"gte=0"`
	TickInterval time.Duration `yaml:"tick_interval" validate:"gt=0"`
	Boundary     string        `yaml:"boundary" validate:"oneof=wrap clamp"`
	// RandomStart fills the board from Seed when the engine is built.
	RandomStart bool `yaml:"random_start"`
	// Seed feeds RandomStart; zero picks a wall-clock seed.
	Seed int64 `yaml:"seed"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:        60,
		Height:       40,
		TickInterval: DefaultTickInterval,
		Boundary:     Wrap.String(),
	}
}

var validate = validator.New()

// Validate checks the config against its field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid life config: %w", err)
	}
	return nil
}

// FromMap populates a Config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["tick_ms"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			if d, err := core.MillisToInterval(parsed); err == nil {
				c.TickInterval = d
			}
		}
	}
	if v, ok := cfg["boundary"]; ok {
		if b, err := ParseBoundary(v); err == nil {
			c.Boundary = b.String()
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
			c.RandomStart = true
		}
	}
	return c
}

// LoadFile reads a YAML config. Keys missing from the file keep their
// default values.
func LoadFile(path string) (Config, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read life config: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse life config %s: %w", path, err)
	}
	return c, c.Validate()
}

// NewEngineFromConfig validates cfg and builds a stopped engine for it.
// Clock and Logger are taken from opts; boundary and interval come from cfg.
func NewEngineFromConfig(cfg Config, opts Options) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b, err := ParseBoundary(cfg.Boundary)
	if err != nil {
		return nil, err
	}
	g, err := core.NewGrid(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	if cfg.RandomStart {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		g.Randomize(core.NewRNG(seed))
	}
	opts.Boundary = b
	opts.Interval = cfg.TickInterval
	return NewEngine(g, opts)
}
