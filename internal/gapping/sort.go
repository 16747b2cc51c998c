package gapping

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pbaille/clubgap/internal/domain"
)

// SortKey selects how shots are ordered
type SortKey string

const (
	ByDistance         SortKey = "distance"
	ByCategory         SortKey = "category"
	ByCategoryDistance SortKey = "category_distance"
	ByDistanceCategory SortKey = "distance_category"
)

// Direction applies to the single-key sorts only
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

var (
	ErrUnknownSortKey   = errors.New("unknown sort key")
	ErrUnknownDirection = errors.New("unknown sort direction")
)

func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case ByDistance, ByCategory, ByCategoryDistance, ByDistanceCategory:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
}

func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case Asc, Desc:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// SortShots returns a new, stably sorted copy of shots.
//
// distance and category honour dir. The compound keys are fixed:
// category_distance is category ascending then total descending,
// distance_category is total descending then category ascending.
// Unknown keys leave the input order unchanged.
func SortShots(shots []domain.Shot, catalog *Catalog, unit domain.Unit, key SortKey, dir Direction) []domain.Shot {
	type keyed struct {
		shot     domain.Shot
		total    float64
		category string
	}
	items := make([]keyed, len(shots))
	for i, s := range shots {
		items[i] = keyed{
			shot:     s,
			total:    Convert(s.TotalMedian, s.Unit, unit),
			category: catalog.FirstCategoryName(s.ShotType),
		}
	}

	var less func(a, b keyed) bool
	switch key {
	case ByDistance:
		less = func(a, b keyed) bool { return a.total < b.total }
		if dir == Desc {
			less = func(a, b keyed) bool { return a.total > b.total }
		}
	case ByCategory:
		less = func(a, b keyed) bool { return a.category < b.category }
		if dir == Desc {
			less = func(a, b keyed) bool { return a.category > b.category }
		}
	case ByCategoryDistance:
		less = func(a, b keyed) bool {
			if a.category != b.category {
				return a.category < b.category
			}
			return a.total > b.total
		}
	case ByDistanceCategory:
		less = func(a, b keyed) bool {
			if a.total != b.total {
				return a.total > b.total
			}
			return a.category < b.category
		}
	}

	if less != nil {
		sort.SliceStable(items, func(i, j int) bool {
			return less(items[i], items[j])
		})
	}

	out := make([]domain.Shot, len(items))
	for i, it := range items {
		out[i] = it.shot
	}
	return out
}
