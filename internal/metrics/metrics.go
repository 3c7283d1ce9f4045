// Package metrics wires the engines' advisory run counters into
// Prometheus: package-level collectors registered once, mutated
// through small typed helper functions rather than exposed directly.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	iterationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mhsgen_search_iterations_total",
		Help: "Total number of extend frames entered, by algorithm.",
	}, []string{"algorithm"})

	violatorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mhsgen_search_violators_total",
		Help: "Total number of vertices rejected by the minimality check, by algorithm.",
	}, []string{"algorithm"})

	updateLoopsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mhsgen_search_update_loops_total",
		Help: "Total number of candidate vertices visited by the branching loop, by algorithm.",
	}, []string{"algorithm"})

	criticalFailsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mhsgen_search_critical_fails_total",
		Help: "Total number of RS critical-edge-rule rejections.",
	}, []string{"algorithm"})

	hittingSetsFound = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mhsgen_hitting_sets_found_total",
		Help: "Total number of minimal hitting sets emitted, by algorithm.",
	}, []string{"algorithm"})
)

// MustRegister registers every collector with reg. Call once per
// process.
func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(iterationsTotal, violatorsTotal, updateLoopsTotal, criticalFailsTotal, hittingSetsFound)
}

// RecordRun folds one completed transversal() call's counters into
// the registered collectors.
func RecordRun(algorithm string, iterations, violators, updateLoops, criticalFails int64, hittingSets int) {
	iterationsTotal.WithLabelValues(algorithm).Add(float64(iterations))
	violatorsTotal.WithLabelValues(algorithm).Add(float64(violators))
	updateLoopsTotal.WithLabelValues(algorithm).Add(float64(updateLoops))
	if criticalFails > 0 {
		criticalFailsTotal.WithLabelValues(algorithm).Add(float64(criticalFails))
	}
	hittingSetsFound.WithLabelValues(algorithm).Add(float64(hittingSets))
}
