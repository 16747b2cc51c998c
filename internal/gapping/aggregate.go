package gapping

import (
	"math"
	"sort"

	"github.com/pbaille/clubgap/internal/domain"
)

// Range summarizes a set of shots for one metric.
// Central is the mean of the shots' medians, not a statistical median.
type Range struct {
	LowerBound float64 `json:"lower_bound"`
	Central    float64 `json:"central"`
	UpperBound float64 `json:"upper_bound"`
}

// Aggregate folds shots into a single range in the display unit.
// It returns nil when there are no shots.
func Aggregate(shots []domain.Shot, metric domain.Metric, unit domain.Unit) *Range {
	if len(shots) == 0 {
		return nil
	}

	lower, upper := math.Inf(1), math.Inf(-1)
	var sum float64
	for _, s := range shots {
		iv := shotInterval(s, metric, unit)
		lower = math.Min(lower, iv.low)
		upper = math.Max(upper, iv.high)
		sum += iv.median
	}

	return &Range{
		LowerBound: lower,
		Central:    sum / float64(len(shots)),
		UpperBound: upper,
	}
}

// CategoryRange is the aggregate of one club's shots within one category
type CategoryRange struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	Shots      int    `json:"shots"`
	Range      Range  `json:"range"`
}

// CategoryRanges aggregates a club's shots per category, ordered by category name.
// A shot mapped to several categories counts in each; unmapped shots are skipped.
func CategoryRanges(club domain.Club, catalog *Catalog, metric domain.Metric, unit domain.Unit) []CategoryRange {
	grouped := make(map[string][]domain.Shot)
	var order []string
	for _, s := range club.Shots {
		for _, id := range catalog.CategoryIDs(s.ShotType) {
			if _, seen := grouped[id]; !seen {
				order = append(order, id)
			}
			grouped[id] = append(grouped[id], s)
		}
	}

	out := make([]CategoryRange, 0, len(order))
	for _, id := range order {
		r := Aggregate(grouped[id], metric, unit)
		out = append(out, CategoryRange{
			CategoryID: id,
			Name:       catalog.CategoryName(id),
			Shots:      len(grouped[id]),
			Range:      *r,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}
