package core

import (
	"sort"
	"time"
)

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim is the contract control surfaces drive: read the board and run state,
// edit while stopped, and start, stop or single-step the tick loop.
type Sim interface {
	Name() string
	Size() Size
	Snapshot() Snapshot
	Running() bool
	Generation() uint64

	Start()
	Stop()
	SingleStep() bool

	Toggle(x, y int) error
	Clear() error
	Randomize(c Coin) error
	Resize(w, h int) error

	TickInterval() time.Duration
	SetTickInterval(d time.Duration) error
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// SimNames lists registered factories in sorted order.
func SimNames() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
