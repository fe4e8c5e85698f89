package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifeboard/pkg/core"
	"lifeboard/pkg/sims/life"
)

func newEngine(t *testing.T) *life.Engine {
	t.Helper()
	g, err := core.NewGrid(5, 5)
	require.NoError(t, err)
	for _, y := range []int{1, 2, 3} {
		require.NoError(t, g.Set(2, y, true))
	}
	e, err := life.NewEngine(g, life.Options{Interval: 250 * time.Millisecond})
	require.NoError(t, err)
	return e
}

func TestAttachTracksEngine(t *testing.T) {
	e := newEngine(t)
	c := New()
	cancel := c.Attach(e)
	defer cancel()

	assert.Equal(t, 3.0, testutil.ToFloat64(c.population))
	assert.Equal(t, 0.25, testutil.ToFloat64(c.interval))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.running))

	require.True(t, e.SingleStep())
	require.True(t, e.SingleStep())
	require.NoError(t, e.Toggle(0, 0))

	assert.Equal(t, 2.0, testutil.ToFloat64(c.generations.WithLabelValues("step")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.generations.WithLabelValues("tick")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.edits))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.population))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.generation))

	e.Start()
	assert.Equal(t, 1.0, testutil.ToFloat64(c.running))
	e.Stop()
	assert.Equal(t, 0.0, testutil.ToFloat64(c.running))
}

func TestObserveTick(t *testing.T) {
	c := New()
	c.Observe(life.Event{Kind: life.EventTick, Population: 7, Generation: 12, Running: true, Interval: time.Second, Took: time.Millisecond})
	assert.Equal(t, 1.0, testutil.ToFloat64(c.generations.WithLabelValues("tick")))
	assert.Equal(t, 7.0, testutil.ToFloat64(c.population))
	assert.Equal(t, 1, testutil.CollectAndCount(c.stepDuration))
}

func TestHandler(t *testing.T) {
	c := New()
	c.Observe(life.Event{Kind: life.EventStep, Population: 2})

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "lifeboard_generations_total")
	assert.Contains(t, string(body), "lifeboard_population 2")
}
