// Package observability exposes prometheus collectors of the activity service.
package observability

import (
	"github.com/boredclicker/bored"
	"github.com/prometheus/client_golang/prometheus"
)

var resolverOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "bored",
	Subsystem: "resolver",
	Name:      "outcomes_total",
	Help:      "Resolved activity requests partitioned by outcome.",
}, []string{"outcome"})

func init() {
	prometheus.MustRegister(resolverOutcomes)
	for _, kind := range []bored.OutcomeKind{bored.OutcomeFound, bored.OutcomeNotFound, bored.OutcomeInvalidArguments} {
		resolverOutcomes.WithLabelValues(kind.String())
	}
}

// RecordOutcome counts a single resolved request.
func RecordOutcome(kind bored.OutcomeKind) {
	resolverOutcomes.WithLabelValues(kind.String()).Inc()
}
