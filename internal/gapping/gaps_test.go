package gapping

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/pbaille/clubgap/internal/domain"
)

func gapFixture() ([]domain.Club, *Catalog) {
	catalog := NewCatalog(
		[]domain.ShotTypeDefinition{
			{ShotType: "full", CategoryIDs: []string{"long"}},
			{ShotType: "punch", CategoryIDs: []string{"trouble"}},
			{ShotType: "chip", CategoryIDs: []string{"short"}},
		},
		[]domain.Category{
			{ID: "long", Name: "Long Game"},
			{ID: "trouble", Name: "Trouble"},
			{ID: "short", Name: "Short Game"},
		},
	)
	clubs := []domain.Club{
		{ID: "7i", Name: "7 Iron", Shots: []domain.Shot{
			shot("full", 150, 6, 160, 6, domain.Yards),
			shot("punch", 120, 4, 140, 6, domain.Yards),
		}},
		{ID: "d", Name: "Driver", Shots: []domain.Shot{
			shot("full", 240, 15, 265, 15, domain.Yards),
		}},
		{ID: "sw", Name: "Sand Wedge", Shots: []domain.Shot{
			shot("chip", 15, 3, 25, 5, domain.Yards),
		}},
		{ID: "empty", Name: "Putter"},
		{ID: "zero", Name: "Broken", Shots: []domain.Shot{
			shot("full", 0, 0, 0, 0, domain.Yards),
		}},
	}
	return clubs, catalog
}

func TestGaps(t *testing.T) {
	clubs, catalog := gapFixture()

	tests := []struct {
		name     string
		selected domain.StringSet
		metric   domain.Metric
		want     []Gap
	}{
		{
			name:     "long game carry",
			selected: domain.NewStringSet("long"),
			metric:   domain.Carry,
			want: []Gap{
				{ClubID: "d", Name: "Driver", Min: 225, Max: 255, Central: 240},
				{ClubID: "7i", Name: "7 Iron", Min: 144, Max: 156, Central: 150},
			},
		},
		{
			name:     "several categories total",
			selected: domain.NewStringSet("long", "trouble", "short"),
			metric:   domain.Total,
			want: []Gap{
				{ClubID: "d", Name: "Driver", Min: 250, Max: 280, Central: 265},
				{ClubID: "7i", Name: "7 Iron", Min: 134, Max: 166, Central: 150},
				{ClubID: "sw", Name: "Sand Wedge", Min: 20, Max: 30, Central: 25},
			},
		},
		{
			name:     "no selection",
			selected: domain.NewStringSet(),
			metric:   domain.Carry,
			want:     []Gap{},
		},
		{
			name:     "nil selection",
			selected: nil,
			metric:   domain.Carry,
			want:     []Gap{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Gaps(clubs, tt.selected, tt.metric, domain.Yards, catalog)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Gaps() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGaps_NeverNonPositive(t *testing.T) {
	g := newGenerator(t)
	for i := 0; i < 25; i++ {
		snap := g.Snapshot(12)
		catalog := CatalogFor(snap)
		all := domain.NewStringSet("cat-long", "cat-approach", "cat-short", "cat-trouble")

		gaps := Gaps(snap.Clubs, all, domain.Carry, domain.Meters, catalog)
		for j, gap := range gaps {
			require.Greater(t, gap.Min, 0.0)
			require.Greater(t, gap.Max, 0.0)
			if j > 0 {
				require.GreaterOrEqual(t, gaps[j-1].Max, gap.Max)
			}
		}
	}
}

func TestGapSpacing(t *testing.T) {
	gaps := []Gap{
		{ClubID: "d", Central: 240},
		{ClubID: "5w", Central: 215},
		{ClubID: "7i", Central: 150},
	}
	want := []Spacing{
		{LongerClubID: "d", ShorterClubID: "5w", Distance: 25},
		{LongerClubID: "5w", ShorterClubID: "7i", Distance: 65},
	}
	require.Equal(t, want, GapSpacing(gaps))
	require.Nil(t, GapSpacing(gaps[:1]))
}

func TestClubsInBag(t *testing.T) {
	clubs, _ := gapFixture()
	bag := &domain.Bag{ID: "b1", ClubIDs: domain.NewStringSet("sw", "d", "unknown")}

	got := ClubsInBag(clubs, bag)
	require.Equal(t, []string{"d", "sw"}, []string{got[0].ID, got[1].ID})
	require.Len(t, got, 2)
	require.Len(t, ClubsInBag(clubs, nil), len(clubs))
}

func TestDefaultBagAndFindBag(t *testing.T) {
	bags := []domain.Bag{
		{ID: "b1", Name: "Summer"},
		{ID: "b2", Name: "Winter", IsDefault: true},
	}
	require.Equal(t, "b2", DefaultBag(bags).ID)
	require.Nil(t, DefaultBag(bags[:1]))

	require.Equal(t, "b1", FindBag(bags, "Summer").ID)
	require.Equal(t, "b2", FindBag(bags, "b2").ID)
	require.Nil(t, FindBag(bags, "Links"))
}

func TestOptions_SelectCategories(t *testing.T) {
	catalog := NewCatalog(nil, []domain.Category{
		{ID: "c1", Name: "Long Game"},
		{ID: "c2", Name: "Approach"},
		{ID: "c3", Name: "Trouble"},
	})

	ids, unknown := DefaultOptions().SelectCategories(catalog, nil)
	require.ElementsMatch(t, []string{"c1", "c2"}, ids.Values())
	require.Equal(t, []string{"Short Game"}, unknown)

	ids, unknown = DefaultOptions().SelectCategories(catalog, []string{"trouble", "c2"})
	require.ElementsMatch(t, []string{"c2", "c3"}, ids.Values())
	require.Empty(t, unknown)
}

func TestFindClub(t *testing.T) {
	clubs := []domain.Club{
		{ID: "3f2a9c1e-0000", Name: "7 Iron"},
		{ID: "3f2b7d40-0000", Name: "8 Iron"},
		{ID: "b81c0e55-0000", Name: "Driver"},
	}

	tests := []struct {
		ref  string
		want string
	}{
		{"b81c0e55-0000", "Driver"},
		{"8 Iron", "8 Iron"},
		{"b81c0e55", "Driver"},
		{"3f2a", "7 Iron"},
		{"3f2", ""},
		{"zzz", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got := FindClub(clubs, tt.ref)
			if tt.want == "" {
				require.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			require.Equal(t, tt.want, got.Name)
		})
	}
}
