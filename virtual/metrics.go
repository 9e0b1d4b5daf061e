package virtual

import "github.com/prometheus/client_golang/prometheus"

const (
	resultRecorded        = "recorded"
	resultUnchanged       = "unchanged"
	resultMissingIdentity = "dropped_missing_identity"
	resultInvalid         = "dropped_invalid"
	resultClosed          = "dropped_closed"
)

var Recomputations = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "vlist",
	Name:      "recomputations_total",
	Help:      "Window recomputations by trigger",
}, []string{"trigger"})

var Measurements = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "vlist",
	Name:      "measurements_total",
	Help:      "Reported item measurements by outcome",
}, []string{"result"})

var RecomputeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
	Namespace: "vlist",
	Name:      "recompute_seconds",
	Help:      "Time spent computing one window",
	Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
})

// Collectors returns the engine metrics for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{Recomputations, Measurements, RecomputeDuration}
}
