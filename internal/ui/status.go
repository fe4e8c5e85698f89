package ui

import (
	"fmt"

	"lifeboard/pkg/core"
)

// StatusLine summarizes run state, generation and population from a
// parameter snapshot. Missing values render as "--".
func StatusLine(p core.ParameterSnapshot) string {
	state := "--"
	if v, ok := p.Lookup("running"); ok {
		state = "stopped"
		if v.Value == "true" {
			state = "running"
		}
	}
	return fmt.Sprintf("%s  gen %s  pop %s", state, lookupValue(p, "generation"), lookupValue(p, "population"))
}

func lookupValue(p core.ParameterSnapshot, key string) string {
	if v, ok := p.Lookup(key); ok {
		return v.Value
	}
	return "--"
}

// PanelMinHeight is the shortest the HUD panel is drawn, so the key help
// fits under small boards.
const PanelMinHeight = 320

// HelpLines lists the GUI key bindings.
var HelpLines = []string{
	"space  start / stop",
	"n      single step",
	"click  toggle cell",
	"c      clear",
	"r / s  randomize (seed / clock)",
	"+ / -  tick interval",
	"g      grid lines",
	"q      quit",
}
