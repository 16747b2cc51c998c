package gapping

import "github.com/pbaille/clubgap/internal/domain"

// DefaultCategoryNames are selected for gap charts when the caller names none
var DefaultCategoryNames = []string{"Long Game", "Approach", "Short Game"}

// Options carries the per-call configuration of a computation
type Options struct {
	Unit              domain.Unit
	DefaultCategories []string
}

// DefaultOptions displays yards and selects DefaultCategoryNames
func DefaultOptions() Options {
	return Options{
		Unit:              domain.Yards,
		DefaultCategories: append([]string(nil), DefaultCategoryNames...),
	}
}

// SelectCategories resolves category names against the catalog, falling back to
// the configured defaults when names is empty. Unknown names are returned.
func (o Options) SelectCategories(catalog *Catalog, names []string) (domain.StringSet, []string) {
	if len(names) == 0 {
		names = o.DefaultCategories
	}
	return catalog.ResolveNames(names)
}
