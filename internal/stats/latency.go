// Package stats summarizes latency samples from provider probes.
package stats

import (
	"math"
	"slices"
	"time"
)

// TailLatency holds the percentiles reported by the status command.
type TailLatency struct {
	Min, Mean, P50, P95, P99, Max time.Duration
}

// CalculateTailLatency summarizes latencies using the nearest-rank method.
// With few samples P95 and P99 equal Max. An empty slice yields zeros.
func CalculateTailLatency(latencies []time.Duration) TailLatency {
	if len(latencies) == 0 {
		return TailLatency{}
	}

	sorted := slices.Clone(latencies)
	slices.Sort(sorted)

	var total time.Duration
	for _, d := range sorted {
		total += d
	}

	return TailLatency{
		Min:  sorted[0],
		Mean: total / time.Duration(len(sorted)),
		P50:  Percentile(sorted, 0.50),
		P95:  Percentile(sorted, 0.95),
		P99:  Percentile(sorted, 0.99),
		Max:  sorted[len(sorted)-1],
	}
}

// Percentile returns the nearest-rank percentile p (0..1) of sorted, which
// must be in ascending order: index = ceil(n*p) - 1, clamped to [0, n-1].
func Percentile(sorted []time.Duration, p float64) time.Duration {
	n := len(sorted)
	if n == 0 {
		return 0
	}

	index := int(math.Ceil(float64(n)*p)) - 1
	index = max(0, min(index, n-1))
	return sorted[index]
}
