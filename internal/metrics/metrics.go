// Package metrics exports engine activity as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lifeboard/pkg/sims/life"
)

// Collector tracks generations, step latency and board state on a private
// registry.
type Collector struct {
	registry *prometheus.Registry

	generations  *prometheus.CounterVec
	stepDuration prometheus.Histogram
	edits        prometheus.Counter
	population   prometheus.Gauge
	generation   prometheus.Gauge
	running      prometheus.Gauge
	interval     prometheus.Gauge
}

// New registers the lifeboard metrics on a fresh registry.
func New() *Collector {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Collector{
		registry: reg,
		generations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lifeboard_generations_total",
			Help: "Generations applied, by source (tick or step).",
		}, []string{"source"}),
		stepDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "lifeboard_step_duration_seconds",
			Help:    "Time spent computing one generation.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10us to ~2.6s
		}),
		edits: f.NewCounter(prometheus.CounterOpts{
			Name: "lifeboard_edits_total",
			Help: "Board edits (toggle, clear, randomize).",
		}),
		population: f.NewGauge(prometheus.GaugeOpts{
			Name: "lifeboard_population",
			Help: "Live cells on the board.",
		}),
		generation: f.NewGauge(prometheus.GaugeOpts{
			Name: "lifeboard_generation",
			Help: "Current generation number.",
		}),
		running: f.NewGauge(prometheus.GaugeOpts{
			Name: "lifeboard_running",
			Help: "1 while the tick loop is running.",
		}),
		interval: f.NewGauge(prometheus.GaugeOpts{
			Name: "lifeboard_tick_interval_seconds",
			Help: "Delay between scheduled generations.",
		}),
	}
}

// Attach subscribes the collector to e and seeds the gauges from its
// current state. The returned function detaches it.
func (c *Collector) Attach(e *life.Engine) (cancel func()) {
	snap := e.Snapshot()
	c.Observe(life.Event{
		Generation: e.Generation(),
		Population: snap.Population(),
		Size:       snap.Size(),
		Running:    e.Running(),
		Interval:   e.TickInterval(),
	})
	return e.Subscribe(c.Observe)
}

// Observe records a single engine event.
func (c *Collector) Observe(ev life.Event) {
	switch ev.Kind {
	case life.EventTick, life.EventStep:
		c.generations.WithLabelValues(string(ev.Kind)).Inc()
		c.stepDuration.Observe(ev.Took.Seconds())
	case life.EventEdit:
		c.edits.Inc()
	}
	c.population.Set(float64(ev.Population))
	c.generation.Set(float64(ev.Generation))
	c.interval.Set(ev.Interval.Seconds())
	if ev.Running {
		c.running.Set(1)
	} else {
		c.running.Set(0)
	}
}

// Handler serves the collector's metrics in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
