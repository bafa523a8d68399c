// Package metrics instruments the radar.Event stream with the ambient
// observability layer the core carries regardless of brand (the teacher's
// prometheus.go convention of wiring
// client_golang metrics to a registry the host owns). Metrics never feeds
// back into controller or locator state — it is pure fan-out off whatever
// a host collects from Controller.Poll / Locator.Poll.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mayara-radar/mayara/radar"
)

// Metrics holds the counter/gauge set registered against one
// *prometheus.Registry, never the global default (the host supplies and
// owns the registry; the core only instruments it — see cmd/mayarad for
// the promhttp.Handler wiring).
type Metrics struct {
	eventsTotal     *prometheus.CounterVec
	stateTotal      *prometheus.CounterVec
	controlChanges  *prometheus.CounterVec
	controlErrors   *prometheus.CounterVec
	radarsFound     *prometheus.CounterVec
	controllerState *prometheus.GaugeVec
}

// New registers the metric set against reg and returns the collector.
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		eventsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mayara",
			Name:      "events_total",
			Help:      "Total events emitted by radar controllers and the locator, by event type.",
		}, []string{"event_type"}),
		stateTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mayara",
			Name:      "controller_state_transitions_total",
			Help:      "Total controller state transitions, by radar and the state entered.",
		}, []string{"radar", "state"}),
		controlChanges: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mayara",
			Name:      "control_changes_total",
			Help:      "Total control value changes observed in report traffic, by radar and control id.",
		}, []string{"radar", "control_id"}),
		controlErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mayara",
			Name:      "control_errors_total",
			Help:      "Total protocol-level control errors surfaced by a controller, by radar and control id.",
		}, []string{"radar", "control_id"}),
		radarsFound: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mayara",
			Name:      "radars_found_total",
			Help:      "Total RadarFound events emitted by the locator, by brand.",
		}, []string{"brand"}),
		controllerState: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "mayara",
			Name:      "controller_state",
			Help:      "Current ControllerState as an integer (Disconnected=0 ... Failed=4), by radar.",
		}, []string{"radar"}),
	}
}

// Observe feeds one event into the metric set.
func (m *Metrics) Observe(ev radar.Event) {
	switch e := ev.(type) {
	case radar.StateChangedEvent:
		m.eventsTotal.WithLabelValues("state_changed").Inc()
		m.stateTotal.WithLabelValues(e.Identity.Key(), e.State.String()).Inc()
		m.controllerState.WithLabelValues(e.Identity.Key()).Set(float64(e.State))
	case radar.ControlChangedEvent:
		m.eventsTotal.WithLabelValues("control_changed").Inc()
		m.controlChanges.WithLabelValues(e.Identity.Key(), e.Value.ID).Inc()
	case radar.ControlErrorEvent:
		m.eventsTotal.WithLabelValues("control_error").Inc()
		m.controlErrors.WithLabelValues(e.Identity.Key(), e.ControlID).Inc()
	case radar.RadarFoundEvent:
		m.eventsTotal.WithLabelValues("radar_found").Inc()
		m.radarsFound.WithLabelValues(string(e.Identity.Brand)).Inc()
	}
}

// ObserveAll feeds an entire Poll() batch at once, the common call shape.
func (m *Metrics) ObserveAll(events []radar.Event) {
	for _, ev := range events {
		m.Observe(ev)
	}
}
