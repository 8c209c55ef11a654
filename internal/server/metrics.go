package server

import (
	"github.com/berfenger/sen6xgen/internal/core/domain"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/prometheus/client_golang/prometheus"
)

// metrics to expose to Prometheus
var (
	counterBuilds       = newCounter("sen6xgen_builds_total", "Generation runs by result", "result")
	counterViolations   = newCounter("sen6xgen_violations_total", "Configuration violations by code", "code")
	counterInstructions = newCounter("sen6xgen_instructions_total", "Wiring instructions emitted by model", "model")
)

func newCounter(name string, help string, label string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: name,
			Help: help,
		},
		[]string{label},
	)
}

func init() {
	prometheus.MustRegister(counterBuilds)
	prometheus.MustRegister(counterViolations)
	prometheus.MustRegister(counterInstructions)
}

// SubscribeMetrics updates the build counters from the actor system event stream.
func SubscribeMetrics(as *actor.ActorSystem) *eventstream.Subscription {
	return as.EventStream.Subscribe(func(evt interface{}) {
		switch e := evt.(type) {
		case domain.BuildCompletedEvent:
			counterBuilds.WithLabelValues("ok").Inc()
			model := e.Model
			if !e.ModelKnown {
				model = "auto"
			}
			counterInstructions.WithLabelValues(model).Add(float64(e.Instructions))
		case domain.BuildRejectedEvent:
			counterBuilds.WithLabelValues("invalid").Inc()
			for _, v := range e.Violations {
				counterViolations.WithLabelValues(string(v.Code)).Inc()
			}
		case domain.BuildFailedEvent:
			counterBuilds.WithLabelValues("error").Inc()
		}
	})
}
