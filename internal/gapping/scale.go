package gapping

import (
	"math"

	"github.com/pbaille/clubgap/internal/domain"
)

const (
	defaultScaleMin = 0
	defaultScaleMax = 300
	minPadding      = 10
	paddingRatio    = 0.10
)

// Scale is a chart domain in the display unit
type Scale struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultScale is used when there is nothing to plot
var DefaultScale = Scale{Min: defaultScaleMin, Max: defaultScaleMax}

// ChartRange derives a padded domain spanning the carry and total intervals of all shots
func ChartRange(shots []domain.Shot, unit domain.Unit) Scale {
	distances := make([]float64, 0, len(shots)*4)
	for _, s := range shots {
		carry := shotInterval(s, domain.Carry, unit)
		total := shotInterval(s, domain.Total, unit)
		distances = append(distances, carry.low, carry.high, total.low, total.high)
	}
	return ScaleFor(distances)
}

// ScaleFor pads the span of the given distances. Non-finite values are ignored.
// The lower end never goes below zero.
func ScaleFor(distances []float64) Scale {
	lo, hi := math.Inf(1), math.Inf(-1)
	n := 0
	for _, d := range distances {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			continue
		}
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
		n++
	}
	if n == 0 {
		return DefaultScale
	}

	padding := math.Max(minPadding, (hi-lo)*paddingRatio)
	return Scale{
		Min: math.Max(0, lo-padding),
		Max: hi + padding,
	}
}
