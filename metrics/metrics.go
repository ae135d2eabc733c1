// Package metrics exports the lifecycle of components as Prometheus metrics.
//
// A Collector observes components and maintains, per component name:
//
//	component_state{component, state}                  1 for the current state
//	component_transitions_total{component, from, to}   state changes
//	component_failures_total{component, state}        transitions caused by an error
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"go.tickamp.dev/component"
)

var states = []component.State{
	component.Idle,
	component.Starting,
	component.Started,
	component.Stopping,
	component.Stopped,
	component.Failed,
}

// Collector tracks the lifecycle events of observable components.
type Collector struct {
	state       *prometheus.GaugeVec
	transitions *prometheus.CounterVec
	failures    *prometheus.CounterVec
	wg          sync.WaitGroup
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		state: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "component_state",
			Help: "Current lifecycle state of the component (1 for the current state).",
		}, []string{"component", "state"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "component_transitions_total",
			Help: "Total number of lifecycle state transitions.",
		}, []string{"component", "from", "to"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "component_failures_total",
			Help: "Total number of transitions caused by an error.",
		}, []string{"component", "state"}),
	}
	for _, collector := range []prometheus.Collector{
		c.state, c.transitions, c.failures,
	} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Track starts recording the events of o. Events are consumed from a
// goroutine until o is stopped.
func (c *Collector) Track(o component.Observable) {
	ch := make(chan component.Event)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for event := range ch {
			c.record(event)
		}
	}()
	o.Observe(ch)
}

// Wait blocks until every tracked component is stopped and its events are
// recorded.
func (c *Collector) Wait() {
	c.wg.Wait()
}

func (c *Collector) record(event component.Event) {
	for _, s := range states {
		value := 0.0
		if s == event.To {
			value = 1
		}
		c.state.WithLabelValues(event.Name, s.String()).Set(value)
	}
	c.transitions.WithLabelValues(event.Name, event.From.String(),
		event.To.String()).Inc()
	if event.Error != nil {
		c.failures.WithLabelValues(event.Name, event.To.String()).Inc()
	}
}
