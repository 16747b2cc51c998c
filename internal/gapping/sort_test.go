package gapping

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pbaille/clubgap/internal/domain"
)

func sortFixture() ([]domain.Shot, *Catalog) {
	catalog := NewCatalog(
		[]domain.ShotTypeDefinition{
			{ShotType: "full", CategoryIDs: []string{"long"}},
			{ShotType: "knockdown", CategoryIDs: []string{"approach", "long"}},
			{ShotType: "chip", CategoryIDs: []string{"short"}},
			{ShotType: "orphan", CategoryIDs: []string{"missing"}},
		},
		[]domain.Category{
			{ID: "long", Name: "Long Game"},
			{ID: "approach", Name: "Approach"},
			{ID: "short", Name: "Short Game"},
		},
	)
	shots := []domain.Shot{
		{ID: "a", ShotType: "full", TotalMedian: 150, Unit: domain.Yards},
		{ID: "b", ShotType: "chip", TotalMedian: 20, Unit: domain.Yards},
		{ID: "c", ShotType: "untracked", TotalMedian: 100, Unit: domain.Yards},
		{ID: "d", ShotType: "knockdown", TotalMedian: 130, Unit: domain.Yards},
		{ID: "e", ShotType: "full", TotalMedian: 150, Unit: domain.Meters},
		{ID: "f", ShotType: "orphan", TotalMedian: 10, Unit: domain.Yards},
	}
	return shots, catalog
}

func ids(shots []domain.Shot) []string {
	out := make([]string, len(shots))
	for i, s := range shots {
		out[i] = s.ID
	}
	return out
}

func TestSortShots(t *testing.T) {
	shots, catalog := sortFixture()

	tests := []struct {
		name string
		key  SortKey
		dir  Direction
		want []string
	}{
		// e is 150m, about 164 yards
		{name: "distance asc", key: ByDistance, dir: Asc, want: []string{"f", "b", "c", "d", "a", "e"}},
		{name: "distance desc", key: ByDistance, dir: Desc, want: []string{"e", "a", "d", "c", "b", "f"}},
		// Approach < Long Game < Short Game < ZZZ, ties keep input order
		{name: "category asc", key: ByCategory, dir: Asc, want: []string{"d", "a", "e", "b", "c", "f"}},
		{name: "category desc", key: ByCategory, dir: Desc, want: []string{"c", "f", "b", "a", "e", "d"}},
		{name: "category then distance", key: ByCategoryDistance, dir: Asc, want: []string{"d", "e", "a", "b", "c", "f"}},
		{name: "category then distance ignores direction", key: ByCategoryDistance, dir: Desc, want: []string{"d", "e", "a", "b", "c", "f"}},
		{name: "distance then category", key: ByDistanceCategory, dir: Asc, want: []string{"e", "a", "d", "c", "b", "f"}},
		{name: "unknown key keeps order", key: "weight", dir: Asc, want: []string{"a", "b", "c", "d", "e", "f"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortShots(shots, catalog, domain.Yards, tt.key, tt.dir)
			require.Equal(t, tt.want, ids(got))
		})
	}
}

func TestSortShots_DoesNotMutateInput(t *testing.T) {
	shots, catalog := sortFixture()
	before := ids(shots)

	SortShots(shots, catalog, domain.Yards, ByDistance, Desc)
	require.Equal(t, before, ids(shots))
}

func TestSortShots_Deterministic(t *testing.T) {
	g := newGenerator(t)
	snap := g.Snapshot(8)
	catalog := CatalogFor(snap)

	for _, key := range []SortKey{ByDistance, ByCategory, ByCategoryDistance, ByDistanceCategory} {
		for _, club := range snap.Clubs {
			first := SortShots(club.Shots, catalog, domain.Meters, key, Asc)
			second := SortShots(club.Shots, catalog, domain.Meters, key, Asc)
			require.Equal(t, ids(first), ids(second))
			require.Len(t, first, len(club.Shots))
		}
	}
}

func TestSortShots_Empty(t *testing.T) {
	got := SortShots(nil, NewCatalog(nil, nil), domain.Yards, ByDistance, Asc)
	require.Empty(t, got)
}

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey(" Category_Distance ")
	require.NoError(t, err)
	require.Equal(t, ByCategoryDistance, k)

	_, err = ParseSortKey("loft")
	require.True(t, errors.Is(err, ErrUnknownSortKey))

	d, err := ParseDirection("DESC")
	require.NoError(t, err)
	require.Equal(t, Desc, d)

	_, err = ParseDirection("sideways")
	require.ErrorIs(t, err, ErrUnknownDirection)
}
