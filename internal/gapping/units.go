// Package gapping computes club distance gaps, chart scales, shot orderings
// and distance lookups over in-memory snapshots of clubs and shots.
//
// Every function is pure: inputs are never mutated or retained, and bad
// numeric data degrades to zero, nil or empty results instead of errors.
// Distances are never rounded here; callers round with RoundDistance at
// display time.
package gapping

import (
	"math"

	"github.com/pbaille/clubgap/internal/domain"
)

const (
	metersPerYard = 0.9144
	yardsPerMeter = 1.09361
)

// Convert converts a distance between units. Non-finite input is treated as 0.
func Convert(distance float64, from, to domain.Unit) float64 {
	distance = finite(distance)
	if from == to {
		return distance
	}
	switch {
	case from == domain.Yards && to == domain.Meters:
		return distance * metersPerYard
	case from == domain.Meters && to == domain.Yards:
		return distance * yardsPerMeter
	}
	return distance
}

// RoundDistance rounds a distance for display
func RoundDistance(d float64) float64 {
	return math.Round(finite(d))
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// interval is one shot's distance band for a metric, in the display unit
type interval struct {
	median, low, high float64
}

func shotInterval(s domain.Shot, m domain.Metric, unit domain.Unit) interval {
	median, variance := s.Distance(m)
	median = Convert(median, s.Unit, unit)
	variance = Convert(variance, s.Unit, unit)
	return interval{median: median, low: median - variance, high: median + variance}
}

func (iv interval) contains(d float64) bool {
	return d >= iv.low && d <= iv.high
}
