package server

import (
	"errors"
	"fmt"
	"net/http"

	"lifeboard/pkg/core"
	"lifeboard/pkg/sims/life"
)

// State is the JSON view of the board and run state.
type State struct {
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	Running    bool     `json:"running"`
	Generation uint64   `json:"generation"`
	Population int      `json:"population"`
	IntervalMs int64    `json:"interval_ms"`
	Boundary   string   `json:"boundary"`
	Cells      [][]bool `json:"cells"`
}

func stateOf(e *life.Engine) State {
	snap := e.Snapshot()
	return State{
		Width:      snap.W,
		Height:     snap.H,
		Running:    e.Running(),
		Generation: e.Generation(),
		Population: snap.Population(),
		IntervalMs: e.TickInterval().Milliseconds(),
		Boundary:   e.Boundary().String(),
		Cells:      snap.Rows(),
	}
}

// Frame is a server-to-client websocket message.
type Frame struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	ID    string `json:"id,omitempty"`
	State *State `json:"state,omitempty"`
	Error string `json:"error,omitempty"`
}

// Command is a control request, sent as a websocket frame or decoded from
// a REST body.
type Command struct {
	Action string `json:"action"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Seed   *int64 `json:"seed,omitempty"`
	Ms     int    `json:"ms"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

var errUnknownAction = errors.New("unknown action")

// apply runs cmd against e. Every failure leaves the engine unchanged.
func apply(e *life.Engine, cmd Command) error {
	switch cmd.Action {
	case "start":
		e.Start()
	case "stop":
		e.Stop()
	case "step":
		if !e.SingleStep() {
			return fmt.Errorf("step: %w: engine is running", core.ErrInvalidState)
		}
	case "toggle":
		return e.Toggle(cmd.X, cmd.Y)
	case "clear":
		return e.Clear()
	case "randomize":
		var coin core.Coin
		if cmd.Seed != nil {
			coin = core.NewRNG(*cmd.Seed)
		}
		return e.Randomize(coin)
	case "interval":
		d, err := core.MillisToInterval(int64(cmd.Ms))
		if err != nil {
			return err
		}
		return e.SetTickInterval(d)
	case "resize":
		return e.Resize(cmd.Width, cmd.Height)
	default:
		return fmt.Errorf("%w %q", errUnknownAction, cmd.Action)
	}
	return nil
}

// statusFor maps engine errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, core.ErrOutOfRange),
		errors.Is(err, core.ErrInvalidDimensions),
		errors.Is(err, core.ErrInvalidInterval),
		errors.Is(err, errUnknownAction):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
