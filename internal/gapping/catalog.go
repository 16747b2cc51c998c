package gapping

import (
	"strings"

	"github.com/pbaille/clubgap/internal/domain"
)

// uncategorized sorts after any real category name
const uncategorized = "ZZZ"

// Catalog indexes shot type definitions and category names for one computation
type Catalog struct {
	shotTypes  map[string][]string
	categories map[string]string
	byName     map[string]string
}

// NewCatalog builds a catalog. Later definitions of the same shot type replace earlier ones.
func NewCatalog(shotTypes []domain.ShotTypeDefinition, categories []domain.Category) *Catalog {
	c := &Catalog{
		shotTypes:  make(map[string][]string, len(shotTypes)),
		categories: make(map[string]string, len(categories)),
		byName:     make(map[string]string, len(categories)),
	}
	for _, st := range shotTypes {
		c.shotTypes[st.ShotType] = append([]string(nil), st.CategoryIDs...)
	}
	for _, cat := range categories {
		c.categories[cat.ID] = cat.Name
		key := strings.ToLower(strings.TrimSpace(cat.Name))
		if _, dup := c.byName[key]; !dup {
			c.byName[key] = cat.ID
		}
	}
	return c
}

// CatalogFor builds a catalog from a snapshot
func CatalogFor(s *domain.Snapshot) *Catalog {
	return NewCatalog(s.ShotTypes, s.Categories)
}

// CategoryIDs returns the categories of a shot type, in definition order
func (c *Catalog) CategoryIDs(shotType string) []string {
	return c.shotTypes[shotType]
}

// CategoryName returns the display name of a category, or its id when unknown
func (c *Catalog) CategoryName(id string) string {
	if name, ok := c.categories[id]; ok {
		return name
	}
	return id
}

// FirstCategoryName is the sort key of a shot type: the name of its first category
func (c *Catalog) FirstCategoryName(shotType string) string {
	ids := c.shotTypes[shotType]
	if len(ids) == 0 {
		return uncategorized
	}
	if name, ok := c.categories[ids[0]]; ok {
		return name
	}
	return uncategorized
}

// Matches reports whether a shot type maps to at least one selected category
func (c *Catalog) Matches(shotType string, selected domain.StringSet) bool {
	for _, id := range c.shotTypes[shotType] {
		if selected.Has(id) {
			return true
		}
	}
	return false
}

// ResolveNames maps category ids or names (case-insensitive) to category ids.
// Unknown names are returned separately.
func (c *Catalog) ResolveNames(names []string) (domain.StringSet, []string) {
	ids := domain.NewStringSet()
	var unknown []string
	for _, n := range names {
		if _, ok := c.categories[n]; ok {
			ids.Add(n)
			continue
		}
		if id, ok := c.byName[strings.ToLower(strings.TrimSpace(n))]; ok {
			ids.Add(id)
			continue
		}
		unknown = append(unknown, n)
	}
	return ids, unknown
}
