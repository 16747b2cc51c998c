package gapping

import (
	"errors"
	"math"

	"github.com/pbaille/clubgap/internal/domain"
)

const (
	LabelNearestShorter = "Nearest Shorter"
	LabelNearestLonger  = "Nearest Longer"
)

// ErrAmbiguousQuery is returned when both carry and total are given
var ErrAmbiguousQuery = errors.New("only one of carry or total may be set")

// Query is a target distance on exactly one metric
type Query struct {
	Distance float64
	Metric   domain.Metric
}

// NewQuery picks the active metric from a carry/total pair, where zero means unset
func NewQuery(carry, total float64) (Query, error) {
	switch {
	case carry != 0 && total != 0:
		return Query{}, ErrAmbiguousQuery
	case total != 0:
		return Query{Distance: total, Metric: domain.Total}, nil
	}
	return Query{Distance: carry, Metric: domain.Carry}, nil
}

// Match is a shot suggested for a target distance.
// Exact matches carry no label; nearest neighbours carry no IsExact flag.
type Match struct {
	ClubID   string      `json:"club_id"`
	ClubName string      `json:"club_name"`
	Shot     domain.Shot `json:"shot"`
	Median   float64     `json:"median"`
	Low      float64     `json:"low"`
	High     float64     `json:"high"`
	Diff     float64     `json:"diff"`
	IsExact  bool        `json:"is_exact"`
	Label    string      `json:"label,omitempty"`
}

// Lookup finds the shots whose interval contains the query distance. When none
// does, it falls back to the closest shorter and closest longer shot by median.
// A query that is not a positive finite number returns nothing.
//
// Bounds are compared unrounded. A 140 m ± 8 m shot viewed in yards spans
// 144.36 to 161.85 and displays as 144-162, yet a query of 162 is not exact.
func Lookup(q Query, clubs []domain.Club, unit domain.Unit) []Match {
	if math.IsNaN(q.Distance) || math.IsInf(q.Distance, 0) || q.Distance <= 0 {
		return nil
	}

	var candidates, exact []Match
	for _, club := range clubs {
		for _, s := range club.Shots {
			iv := shotInterval(s, q.Metric, unit)
			m := Match{
				ClubID:   club.ID,
				ClubName: club.Name,
				Shot:     s,
				Median:   iv.median,
				Low:      iv.low,
				High:     iv.high,
				Diff:     math.Abs(q.Distance - iv.median),
			}
			if iv.contains(q.Distance) {
				m.IsExact = true
				exact = append(exact, m)
				continue
			}
			candidates = append(candidates, m)
		}
	}
	if len(exact) > 0 {
		return exact
	}

	var below, above *Match
	for i := range candidates {
		m := &candidates[i]
		switch {
		case m.Median < q.Distance:
			if below == nil || m.Diff < below.Diff {
				below = m
			}
		case m.Median > q.Distance:
			if above == nil || m.Diff < above.Diff {
				above = m
			}
		}
	}

	var out []Match
	if below != nil {
		b := *below
		b.Label = LabelNearestShorter
		out = append(out, b)
	}
	if above != nil {
		a := *above
		a.Label = LabelNearestLonger
		out = append(out, a)
	}
	return out
}
