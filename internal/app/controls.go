package app

import (
	"fmt"
	"time"

	"lifeboard/pkg/core"
	"lifeboard/pkg/sims/life"
)

// Action is a user command issued from the GUI.
type Action int

const (
	ActionNone Action = iota
	ActionStartStop
	ActionStep
	ActionClear
	ActionRandomize
	ActionRandomizeClock
	ActionSlower
	ActionFaster
)

// Controls applies GUI actions to a simulation and keeps the last message
// for the status line.
type Controls struct {
	sim     core.Sim
	seed    int64
	message string
}

// NewControls binds controls to sim. seed feeds ActionRandomize.
func NewControls(sim core.Sim, seed int64) *Controls {
	return &Controls{sim: sim, seed: seed}
}

// Message returns the outcome of the last action, empty on success.
func (c *Controls) Message() string { return c.message }

// Do applies a.
func (c *Controls) Do(a Action) {
	c.message = ""
	switch a {
	case ActionStartStop:
		if c.sim.Running() {
			c.sim.Stop()
		} else {
			c.sim.Start()
		}
	case ActionStep:
		if !c.sim.SingleStep() {
			c.message = "stop the simulation to step"
		}
	case ActionClear:
		c.report(c.sim.Clear())
	case ActionRandomize:
		c.report(c.sim.Randomize(core.NewRNG(c.seed)))
	case ActionRandomizeClock:
		c.report(c.sim.Randomize(core.NewRNG(time.Now().UnixNano())))
	case ActionSlower:
		c.nudgeInterval(1)
	case ActionFaster:
		c.nudgeInterval(-1)
	}
}

// ToggleAt flips the cell at (x, y).
func (c *Controls) ToggleAt(x, y int) {
	c.message = ""
	c.report(c.sim.Toggle(x, y))
}

func (c *Controls) nudgeInterval(dir int) {
	ms := int(c.sim.TickInterval().Milliseconds()) + dir*life.IntervalStepMs
	ms = min(max(ms, life.MinIntervalMs), life.MaxIntervalMs)
	if err := c.sim.SetTickInterval(time.Duration(ms) * time.Millisecond); err != nil {
		c.report(err)
		return
	}
	c.message = fmt.Sprintf("tick %dms", ms)
}

func (c *Controls) report(err error) {
	if err != nil {
		c.message = err.Error()
	}
}
