package life

import (
	"strconv"

	"lifeboard/pkg/core"
)

// Tick interval bounds offered to interactive controls, in milliseconds.
const (
	MinIntervalMs  = 10
	MaxIntervalMs  = 3000
	IntervalStepMs = 10
)

// TickIntervalKey is the parameter key for the tick interval in milliseconds.
const TickIntervalKey = "tick_interval_ms"

// Parameters reports the engine's current settings and run state.
func (e *Engine) Parameters() core.ParameterSnapshot {
	e.mu.Lock()
	size := e.grid.Size()
	interval := e.interval
	running := e.state == Running
	gen := e.gen
	pop := e.grid.Population()
	e.mu.Unlock()

	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", size.W),
				intParam("h", "Height", size.H),
				{Key: "boundary", Label: "Boundary", Type: core.ParamTypeString, Value: e.boundary.String()},
			},
		},
		{
			Name: "Timing",
			Params: []core.Parameter{
				intParam(TickIntervalKey, "Tick interval (ms)", int(interval.Milliseconds())),
			},
		},
		{
			Name: "State",
			Params: []core.Parameter{
				{Key: "running", Label: "Running", Type: core.ParamTypeBool, Value: strconv.FormatBool(running)},
				{Key: "generation", Label: "Generation", Type: core.ParamTypeInt, Value: strconv.FormatUint(gen, 10)},
				intParam("population", "Population", pop),
			},
		},
	}}
}

// ParameterControls lists the settings adjustable from a HUD.
func (e *Engine) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{{
		Key:    TickIntervalKey,
		Label:  "Tick interval (ms)",
		Type:   core.ParamTypeInt,
		Step:   IntervalStepMs,
		Min:    MinIntervalMs,
		Max:    MaxIntervalMs,
		HasMin: true,
		HasMax: true,
	}}
}

// SetIntParameter updates an integer parameter by key.
func (e *Engine) SetIntParameter(key string, value int) bool {
	switch key {
	case TickIntervalKey:
		d, err := core.MillisToInterval(int64(value))
		if err != nil {
			return false
		}
		return e.SetTickInterval(d) == nil
	default:
		return false
	}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

var (
	_ core.ParameterProvider         = (*Engine)(nil)
	_ core.ParameterControlsProvider = (*Engine)(nil)
	_ core.IntParameterSetter        = (*Engine)(nil)
)
