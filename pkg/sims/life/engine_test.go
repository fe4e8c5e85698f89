package life

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifeboard/pkg/core"
)

func newTestEngine(t *testing.T, g *core.Grid, interval time.Duration) (*Engine, *manualClock) {
	t.Helper()
	clock := &manualClock{}
	e, err := NewEngine(g, Options{Boundary: Wrap, Interval: interval, Clock: clock})
	require.NoError(t, err)
	return e, clock
}

func verticalBlinker(t *testing.T) *core.Grid {
	return newGrid(t, 5, 5, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})
}

func TestEngineStartsStopped(t *testing.T) {
	e, clock := newTestEngine(t, verticalBlinker(t), 0)
	assert.False(t, e.Running())
	assert.Equal(t, Stopped, e.State())
	assert.Equal(t, DefaultTickInterval, e.TickInterval())
	assert.Equal(t, core.Size{W: 5, H: 5}, e.Size())
	assert.Empty(t, clock.Pending())
}

func TestNewEngineRejectsBadInput(t *testing.T) {
	_, err := NewEngine(nil, Options{})
	require.ErrorIs(t, err, core.ErrInvalidDimensions)

	g := newGrid(t, 2, 2)
	_, err = NewEngine(g, Options{Interval: -time.Second})
	require.ErrorIs(t, err, core.ErrInvalidInterval)
}

func TestStartStopBeforeIntervalAdvancesNothing(t *testing.T) {
	e, clock := newTestEngine(t, verticalBlinker(t), 100*time.Millisecond)
	before := e.Snapshot()

	e.Start()
	require.Len(t, clock.Pending(), 1)
	e.Stop()

	assert.Empty(t, clock.Pending())
	assert.False(t, clock.Fire())
	assert.Equal(t, uint64(0), e.Generation())
	assert.True(t, e.Snapshot().Equal(before))
}

func TestStartStopWithSystemClock(t *testing.T) {
	g := verticalBlinker(t)
	e, err := NewEngine(g, Options{Interval: 40 * time.Millisecond})
	require.NoError(t, err)

	e.Start()
	e.Stop()
	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, uint64(0), e.Generation())
}

func TestTickAdvancesAndRearms(t *testing.T) {
	e, clock := newTestEngine(t, verticalBlinker(t), 50*time.Millisecond)
	e.Start()

	require.True(t, clock.Fire())
	assert.Equal(t, uint64(1), e.Generation())
	snap := e.Snapshot()
	assert.True(t, snap.Alive(1, 2))
	assert.True(t, snap.Alive(2, 2))
	assert.True(t, snap.Alive(3, 2))
	assert.Equal(t, 3, snap.Population())
	assert.Equal(t, []time.Duration{50 * time.Millisecond}, clock.Pending(), "loop must re-arm exactly once")

	require.True(t, clock.Fire())
	require.True(t, clock.Fire())
	assert.Equal(t, uint64(3), e.Generation())
	assert.Len(t, clock.Pending(), 1)
	assert.True(t, e.Running())
}

func TestStartWhileRunningIsNoop(t *testing.T) {
	e, clock := newTestEngine(t, verticalBlinker(t), 10*time.Millisecond)
	e.Start()
	e.Start()
	e.Start()
	assert.Len(t, clock.Pending(), 1)
}

func TestStopIsIdempotent(t *testing.T) {
	e, clock := newTestEngine(t, verticalBlinker(t), 10*time.Millisecond)
	var stops int
	e.Subscribe(func(ev Event) {
		if ev.Kind == EventStop {
			stops++
		}
	})
	e.Stop()
	e.Start()
	e.Stop()
	e.Stop()
	assert.Equal(t, 1, stops)
	assert.Empty(t, clock.Pending())
	assert.False(t, e.Running())
}

func TestIntervalChangeAppliesToNextTick(t *testing.T) {
	e, clock := newTestEngine(t, verticalBlinker(t), 100*time.Millisecond)
	e.Start()

	require.NoError(t, e.SetTickInterval(250*time.Millisecond))
	assert.Equal(t, []time.Duration{100 * time.Millisecond}, clock.Pending(), "pending tick keeps its deadline")

	require.True(t, clock.Fire())
	assert.Equal(t, []time.Duration{250 * time.Millisecond}, clock.Pending())
	assert.Equal(t, uint64(1), e.Generation())
}

func TestStaleTickAfterStopIsDiscarded(t *testing.T) {
	e, clock := newTestEngine(t, verticalBlinker(t), 10*time.Millisecond)
	before := e.Snapshot()

	e.Start()
	inFlight := clock.take()
	require.NotNil(t, inFlight)
	e.Stop()
	inFlight()

	assert.Equal(t, uint64(0), e.Generation())
	assert.True(t, e.Snapshot().Equal(before))
	assert.Empty(t, clock.Pending())

	// A callback from an earlier run must not double-schedule a new run.
	e.Start()
	inFlight()
	assert.Equal(t, uint64(0), e.Generation())
	assert.Len(t, clock.Pending(), 1)
}

func TestSetTickIntervalRejectsNonPositive(t *testing.T) {
	e, _ := newTestEngine(t, verticalBlinker(t), 300*time.Millisecond)
	for _, d := range []time.Duration{0, -time.Millisecond} {
		err := e.SetTickInterval(d)
		require.ErrorIs(t, err, core.ErrInvalidInterval)
		assert.Equal(t, 300*time.Millisecond, e.TickInterval())
	}
	require.NoError(t, e.SetTickInterval(time.Millisecond))
	assert.Equal(t, time.Millisecond, e.TickInterval())
}

func TestSingleStep(t *testing.T) {
	e, clock := newTestEngine(t, verticalBlinker(t), 10*time.Millisecond)

	require.True(t, e.SingleStep())
	assert.Equal(t, uint64(1), e.Generation())
	assert.True(t, e.Snapshot().Alive(1, 2))
	assert.False(t, e.Running())
	assert.Empty(t, clock.Pending())

	e.Start()
	assert.False(t, e.SingleStep())
	assert.Equal(t, uint64(1), e.Generation())
	assert.True(t, e.Running())
}

func TestEditsRejectedWhileRunning(t *testing.T) {
	e, _ := newTestEngine(t, verticalBlinker(t), 10*time.Millisecond)
	e.Start()
	before := e.Snapshot()

	require.ErrorIs(t, e.Toggle(0, 0), core.ErrInvalidState)
	require.ErrorIs(t, e.Clear(), core.ErrInvalidState)
	require.ErrorIs(t, e.Randomize(core.NewRNG(1)), core.ErrInvalidState)
	require.ErrorIs(t, e.Resize(10, 10), core.ErrInvalidState)
	require.ErrorIs(t, e.Replace(newGrid(t, 2, 2)), core.ErrInvalidState)

	assert.True(t, e.Snapshot().Equal(before))
	assert.Equal(t, core.Size{W: 5, H: 5}, e.Size())
}

func TestEditsWhileStopped(t *testing.T) {
	e, _ := newTestEngine(t, verticalBlinker(t), 10*time.Millisecond)
	require.True(t, e.SingleStep())

	require.NoError(t, e.Toggle(0, 0))
	assert.True(t, e.Snapshot().Alive(0, 0))
	assert.Equal(t, uint64(1), e.Generation(), "toggle keeps the generation")
	require.ErrorIs(t, e.Toggle(5, 0), core.ErrOutOfRange)

	require.NoError(t, e.Clear())
	assert.Equal(t, 0, e.Snapshot().Population())
	assert.Equal(t, uint64(0), e.Generation())

	require.NoError(t, e.Randomize(core.NewRNG(42)))
	want := newGrid(t, 5, 5)
	want.Randomize(core.NewRNG(42))
	assert.True(t, e.Snapshot().Equal(want.Snapshot()))

	require.NoError(t, e.Randomize(nil))
	assert.Equal(t, core.Size{W: 5, H: 5}, e.Size())
}

func TestResize(t *testing.T) {
	e, _ := newTestEngine(t, verticalBlinker(t), 10*time.Millisecond)
	require.True(t, e.SingleStep())

	require.ErrorIs(t, e.Resize(-1, 3), core.ErrInvalidDimensions)
	assert.Equal(t, core.Size{W: 5, H: 5}, e.Size())
	assert.Equal(t, 3, e.Snapshot().Population())

	require.NoError(t, e.Resize(8, 2))
	assert.Equal(t, core.Size{W: 8, H: 2}, e.Size())
	assert.Equal(t, 0, e.Snapshot().Population())
	assert.Equal(t, uint64(0), e.Generation())

	require.NoError(t, e.Resize(0, 0))
	assert.True(t, e.SingleStep(), "empty boards step without error")
	assert.Equal(t, core.Size{}, e.Size())

	require.ErrorIs(t, e.Replace(nil), core.ErrInvalidDimensions)
	require.NoError(t, e.Replace(verticalBlinker(t)))
	assert.Equal(t, 3, e.Snapshot().Population())
}

func TestResizeRejectsOversizedBoards(t *testing.T) {
	e, clock := newTestEngine(t, verticalBlinker(t), 10*time.Millisecond)

	for _, dims := range [][2]int{{1 << 32, 1 << 32}, {3037000500, 3037000500}, {core.MaxCells, 2}} {
		require.ErrorIs(t, e.Resize(dims[0], dims[1]), core.ErrInvalidDimensions)
	}
	assert.Equal(t, core.Size{W: 5, H: 5}, e.Size())
	assert.Equal(t, 3, e.Snapshot().Population())

	// The engine must still accept work after a rejected resize.
	e.Start()
	require.True(t, clock.Fire())
	assert.Equal(t, uint64(1), e.Generation())
	e.Stop()
	require.NoError(t, e.Toggle(0, 0))
}

func TestSnapshotIsolatedFromTicks(t *testing.T) {
	e, clock := newTestEngine(t, verticalBlinker(t), 10*time.Millisecond)
	snap := e.Snapshot()
	e.Start()
	require.True(t, clock.Fire())
	assert.True(t, snap.Alive(2, 1), "old snapshot must keep the vertical phase")
	assert.False(t, e.Snapshot().Alive(2, 1))
}

func TestSubscribeReceivesEvents(t *testing.T) {
	e, clock := newTestEngine(t, verticalBlinker(t), 10*time.Millisecond)

	var mu sync.Mutex
	var kinds []EventKind
	var last Event
	cancel := e.Subscribe(func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		kinds = append(kinds, ev.Kind)
		last = ev
	})

	require.NoError(t, e.Toggle(0, 0))
	require.True(t, e.SingleStep())
	require.NoError(t, e.SetTickInterval(20*time.Millisecond))
	e.Start()
	require.True(t, clock.Fire())
	e.Stop()
	require.NoError(t, e.Resize(3, 3))

	mu.Lock()
	assert.Equal(t, []EventKind{EventEdit, EventStep, EventInterval, EventStart, EventTick, EventStop, EventResize}, kinds)
	assert.Equal(t, core.Size{W: 3, H: 3}, last.Size)
	mu.Unlock()

	cancel()
	require.NoError(t, e.Clear())
	mu.Lock()
	assert.Len(t, kinds, 7)
	mu.Unlock()
}

func TestSubscriberMayReadEngine(t *testing.T) {
	e, clock := newTestEngine(t, verticalBlinker(t), 10*time.Millisecond)
	var pops []int
	e.Subscribe(func(ev Event) {
		if ev.Kind == EventTick {
			pops = append(pops, e.Snapshot().Population())
		}
	})
	e.Start()
	require.True(t, clock.Fire())
	require.True(t, clock.Fire())
	assert.Equal(t, []int{3, 3}, pops)
}

func TestEngineRunsOnSystemClock(t *testing.T) {
	e, err := NewEngine(verticalBlinker(t), Options{Interval: 5 * time.Millisecond})
	require.NoError(t, err)

	e.Start()
	require.Eventually(t, func() bool { return e.Generation() >= 3 }, 2*time.Second, 5*time.Millisecond)
	e.Stop()

	gen := e.Generation()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, gen, e.Generation(), "no ticks after Stop returns")
}
