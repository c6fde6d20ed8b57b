// Package analytics computes learning velocity, maturity, and per-action
// learning curves over an agent's episode stream. Everything here is pure
// computation over snapshots the caller already fetched: no I/O, no shared
// state, safe for concurrent use.
package analytics

import "math"

// round3 is the storage resolution for analytics values.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// percentile interpolates linearly over an ascending-sorted sample:
// index = pct/100 * (n-1).
func percentile(sorted []float64, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := pct / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(idx-float64(lo))
}

// slope is the ordinary-least-squares regression slope of values against
// their indices: how fast the series moves per step. A constant series has
// slope exactly 0.
func slope(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	xMean := float64(n-1) / 2
	yMean := mean(values)
	num, den := 0.0, 0.0
	for i, v := range values {
		dx := float64(i) - xMean
		num += dx * (v - yMean)
		den += dx * dx
	}
	if den == 0 {
		return 0
	}
	return num / den
}
