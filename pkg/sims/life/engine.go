package life

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"lifeboard/pkg/core"
)

// DefaultTickInterval is the delay between generations when none is configured.
const DefaultTickInterval = time.Second

// State is the run state of the tick loop.
type State int

const (
	// Stopped means no tick is pending.
	Stopped State = iota
	// Running means exactly one tick is pending.
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// EventKind classifies engine notifications.
type EventKind string

const (
	EventTick     EventKind = "tick"
	EventStep     EventKind = "step"
	EventEdit     EventKind = "edit"
	EventResize   EventKind = "resize"
	EventStart    EventKind = "start"
	EventStop     EventKind = "stop"
	EventInterval EventKind = "interval"
)

// Event describes a change applied by the engine.
type Event struct {
	Kind       EventKind
	Generation uint64
	Population int
	Size       core.Size
	Running    bool
	Interval   time.Duration
	// Took is the time spent computing the generation for tick and step events.
	Took time.Duration
}

// Options configures an Engine.
type Options struct {
	Boundary Boundary
	Interval time.Duration
	Clock    core.Clock
	Logger   *slog.Logger
}

// Engine owns the tick loop over a caller-supplied grid. All grid access is
// serialized by one mutex, and timer callbacks carry the run epoch they were
// armed in so a Stop is never followed by a stale tick.
type Engine struct {
	mu       sync.Mutex
	grid     *core.Grid
	boundary Boundary
	interval time.Duration
	state    State
	timer    core.Timer
	epoch    uint64
	gen      uint64

	clock core.Clock
	log   *slog.Logger

	subMu  sync.RWMutex
	subs   []subscriber
	nextID int
}

type subscriber struct {
	id int
	fn func(Event)
}

// NewEngine returns a stopped engine driving g.
func NewEngine(g *core.Grid, opts Options) (*Engine, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil grid", core.ErrInvalidDimensions)
	}
	if opts.Interval < 0 {
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidInterval, opts.Interval)
	}
	if opts.Interval == 0 {
		opts.Interval = DefaultTickInterval
	}
	if opts.Clock == nil {
		opts.Clock = core.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		grid:     g,
		boundary: opts.Boundary,
		interval: opts.Interval,
		clock:    opts.Clock,
		log:      opts.Logger,
	}, nil
}

// Name returns the simulation identifier.
func (e *Engine) Name() string {
	if e.boundary == Clamp {
		return "life-clamp"
	}
	return "life"
}

// Size returns the grid dimensions.
func (e *Engine) Size() core.Size {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grid.Size()
}

// Snapshot returns a copy of the current board.
func (e *Engine) Snapshot() core.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grid.Snapshot()
}

// Running reports whether the tick loop is active. Surfaces consult it
// before offering edit controls.
func (e *Engine) Running() bool {
	return e.State() == Running
}

// State returns the run state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Generation returns the number of generations applied since the board was
// last cleared, randomized, resized or replaced.
func (e *Engine) Generation() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gen
}

// Boundary returns the neighbor boundary mode.
func (e *Engine) Boundary() Boundary { return e.boundary }

// TickInterval returns the delay used when arming the next tick.
func (e *Engine) TickInterval() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.interval
}

// SetTickInterval changes the delay before subsequent ticks. A tick already
// pending keeps its original deadline.
func (e *Engine) SetTickInterval(d time.Duration) error {
	if d <= 0 {
		e.log.Debug("rejected tick interval", "interval", d)
		return fmt.Errorf("%w: %s", core.ErrInvalidInterval, d)
	}
	e.mu.Lock()
	e.interval = d
	ev := e.eventLocked(EventInterval)
	e.mu.Unlock()
	e.emit(ev)
	return nil
}

// Start begins the tick loop. It is a no-op while already running.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.state == Running {
		e.mu.Unlock()
		return
	}
	e.state = Running
	e.epoch++
	e.armLocked()
	ev := e.eventLocked(EventStart)
	e.mu.Unlock()

	e.log.Info("simulation started", "interval", ev.Interval, "generation", ev.Generation)
	e.emit(ev)
}

// Stop halts the tick loop and cancels the pending tick. No generation is
// applied after Stop returns. Stopping a stopped engine does nothing.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.state == Stopped {
		e.mu.Unlock()
		return
	}
	e.state = Stopped
	e.epoch++
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	ev := e.eventLocked(EventStop)
	e.mu.Unlock()

	e.log.Info("simulation stopped", "generation", ev.Generation)
	e.emit(ev)
}

// SingleStep applies one generation immediately when stopped. It returns
// false and does nothing while the tick loop is running.
func (e *Engine) SingleStep() bool {
	ev, err := e.locked(func() (Event, error) {
		if e.state == Running {
			return Event{}, core.ErrInvalidState
		}
		took := e.advanceLocked()
		ev := e.eventLocked(EventStep)
		ev.Took = took
		return ev, nil
	})
	if err != nil {
		e.log.Debug("single step ignored while running")
		return false
	}
	e.emit(ev)
	return true
}

// Toggle flips a single cell. Edits are only accepted while stopped.
func (e *Engine) Toggle(x, y int) error {
	return e.edit("toggle", func(g *core.Grid) error { return g.Toggle(x, y) }, false)
}

// Clear kills every cell and resets the generation counter.
func (e *Engine) Clear() error {
	return e.edit("clear", func(g *core.Grid) error {
		g.Clear()
		return nil
	}, true)
}

// Randomize fills the board from c and resets the generation counter. A nil
// coin draws from a wall-clock seeded RNG.
func (e *Engine) Randomize(c core.Coin) error {
	if c == nil {
		c = core.NewRNG(time.Now().UnixNano())
	}
	return e.edit("randomize", func(g *core.Grid) error {
		g.Randomize(c)
		return nil
	}, true)
}

// Resize replaces the board with an empty one of the given dimensions.
func (e *Engine) Resize(w, h int) error {
	if e.Running() {
		e.log.Debug("rejected resize while running", "width", w, "height", h)
		return fmt.Errorf("resize: %w: engine is running", core.ErrInvalidState)
	}
	g, err := core.NewGrid(w, h)
	if err != nil {
		return fmt.Errorf("resize: %w", err)
	}
	if err := e.install("resize", g); err != nil {
		return err
	}
	e.log.Info("board resized", "width", w, "height", h)
	return nil
}

// Replace installs a caller-built grid. Only allowed while stopped.
func (e *Engine) Replace(g *core.Grid) error {
	if g == nil {
		return fmt.Errorf("replace: %w: nil grid", core.ErrInvalidDimensions)
	}
	return e.install("replace", g)
}

// Subscribe registers fn for every subsequent event and returns a function
// that removes it. Listeners run on the goroutine that caused the event,
// after the engine lock is released, and must not block.
func (e *Engine) Subscribe(fn func(Event)) (cancel func()) {
	e.subMu.Lock()
	e.nextID++
	id := e.nextID
	e.subs = append(e.subs, subscriber{id: id, fn: fn})
	e.subMu.Unlock()

	return func() {
		e.subMu.Lock()
		defer e.subMu.Unlock()
		for i, s := range e.subs {
			if s.id == id {
				e.subs = append(e.subs[:i], e.subs[i+1:]...)
				return
			}
		}
	}
}

func (e *Engine) edit(op string, apply func(*core.Grid) error, reset bool) error {
	ev, err := e.locked(func() (Event, error) {
		if e.state == Running {
			return Event{}, fmt.Errorf("%s: %w: engine is running", op, core.ErrInvalidState)
		}
		if err := apply(e.grid); err != nil {
			return Event{}, fmt.Errorf("%s: %w", op, err)
		}
		if reset {
			e.gen = 0
		}
		return e.eventLocked(EventEdit), nil
	})
	if err != nil {
		e.log.Debug("rejected edit", "op", op, "err", err)
		return err
	}
	e.emit(ev)
	return nil
}

// install swaps in g and resets the generation counter. The run state is
// rechecked under the lock since Start may have raced the caller.
func (e *Engine) install(op string, g *core.Grid) error {
	ev, err := e.locked(func() (Event, error) {
		if e.state == Running {
			return Event{}, fmt.Errorf("%s: %w: engine is running", op, core.ErrInvalidState)
		}
		e.grid = g
		e.gen = 0
		return e.eventLocked(EventResize), nil
	})
	if err != nil {
		return err
	}
	e.emit(ev)
	return nil
}

// locked runs fn with the engine mutex held.
func (e *Engine) locked(fn func() (Event, error)) (Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn()
}

func (e *Engine) armLocked() {
	epoch := e.epoch
	e.timer = e.clock.AfterFunc(e.interval, func() { e.tick(epoch) })
}

func (e *Engine) tick(epoch uint64) {
	e.mu.Lock()
	if e.state != Running || epoch != e.epoch {
		e.mu.Unlock()
		return
	}
	took := e.advanceLocked()
	e.armLocked()
	ev := e.eventLocked(EventTick)
	ev.Took = took
	e.mu.Unlock()

	e.log.Debug("generation advanced", "generation", ev.Generation, "population", ev.Population, "took", took)
	e.emit(ev)
}

func (e *Engine) advanceLocked() time.Duration {
	start := time.Now()
	e.grid = Step(e.grid, e.boundary)
	e.gen++
	return time.Since(start)
}

func (e *Engine) eventLocked(kind EventKind) Event {
	return Event{
		Kind:       kind,
		Generation: e.gen,
		Population: e.grid.Population(),
		Size:       e.grid.Size(),
		Running:    e.state == Running,
		Interval:   e.interval,
	}
}

func (e *Engine) emit(ev Event) {
	e.subMu.RLock()
	subs := make([]subscriber, len(e.subs))
	copy(subs, e.subs)
	e.subMu.RUnlock()
	for _, s := range subs {
		s.fn(ev)
	}
}

var _ core.Sim = (*Engine)(nil)
