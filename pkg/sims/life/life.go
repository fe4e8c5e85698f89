// Package life implements Conway's Game of Life: the B3/S23 transition rule
// over wrapped or clamped boards, and an Engine that advances generations on
// a self-rearming timer.
package life

import "lifeboard/pkg/core"

func newSim(c Config) (core.Sim, error) {
	e, err := NewEngineFromConfig(c, Options{})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func init() {
	core.Register("life", func(cfg map[string]string) (core.Sim, error) {
		c := FromMap(cfg)
		c.Boundary = Wrap.String()
		return newSim(c)
	})
	core.Register("life-clamp", func(cfg map[string]string) (core.Sim, error) {
		c := FromMap(cfg)
		c.Boundary = Clamp.String()
		return newSim(c)
	})
}
