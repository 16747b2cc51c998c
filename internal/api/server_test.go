package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pbaille/clubgap/internal/domain"
	"github.com/pbaille/clubgap/internal/gapping"
	"github.com/pbaille/clubgap/internal/logging"
	"github.com/pbaille/clubgap/internal/store"
)

type staticSource struct {
	snap *domain.Snapshot
	err  error
}

func (s staticSource) Snapshot() (*domain.Snapshot, error) {
	return s.snap, s.err
}

func fixture() *domain.Snapshot {
	return &domain.Snapshot{
		Clubs: []domain.Club{
			{ID: "7i", Name: "7 Iron", Shots: []domain.Shot{
				{ID: "full", ShotType: "7i-full", CarryMedian: 140, CarryVariance: 8, TotalMedian: 150, TotalVariance: 8, Unit: domain.Meters},
				{ID: "punch", ShotType: "7i-punch", CarryMedian: 120, CarryVariance: 5, TotalMedian: 135, TotalVariance: 5, Unit: domain.Meters},
			}},
			{ID: "d", Name: "Driver", Shots: []domain.Shot{
				{ID: "drive", ShotType: "driver-full", CarryMedian: 220, CarryVariance: 12, TotalMedian: 245, TotalVariance: 15, Unit: domain.Meters},
			}},
		},
		Bags: []domain.Bag{
			{ID: "b1", Name: "Irons only", ClubIDs: domain.NewStringSet("7i"), IsDefault: true},
		},
		Categories: []domain.Category{
			{ID: "long", Name: "Long Game"},
			{ID: "trouble", Name: "Trouble"},
		},
		ShotTypes: []domain.ShotTypeDefinition{
			{ShotType: "7i-full", CategoryIDs: []string{"long"}},
			{ShotType: "7i-punch", CategoryIDs: []string{"trouble"}},
			{ShotType: "driver-full", CategoryIDs: []string{"long"}},
		},
	}
}

func newServer(src Source) http.Handler {
	opts := gapping.Options{Unit: domain.Meters, DefaultCategories: []string{"Long Game"}}
	return New(src, opts, logging.Discard()).Handler()
}

func get(t *testing.T, h http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), v), rr.Body.String())
}

func TestHealth(t *testing.T) {
	rr := get(t, newServer(staticSource{snap: fixture()}), "/health")
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestLookup(t *testing.T) {
	h := newServer(staticSource{snap: fixture()})

	tests := []struct {
		name       string
		url        string
		wantStatus int
		wantExact  bool
		wantShots  []string
		wantLabels []string
	}{
		{
			name:       "exact carry",
			url:        "/lookup?carry=145",
			wantStatus: http.StatusOK,
			wantExact:  true,
			wantShots:  []string{"full"},
			wantLabels: []string{""},
		},
		{
			name:       "nearest both sides",
			url:        "/lookup?carry=130",
			wantStatus: http.StatusOK,
			wantShots:  []string{"punch", "full"},
			wantLabels: []string{gapping.LabelNearestShorter, gapping.LabelNearestLonger},
		},
		{
			name:       "default bag excludes driver",
			url:        "/lookup?total=240",
			wantStatus: http.StatusOK,
			wantShots:  []string{"full"},
			wantLabels: []string{gapping.LabelNearestShorter},
		},
		{
			name:       "all clubs",
			url:        "/lookup?total=240&bag=all",
			wantStatus: http.StatusOK,
			wantExact:  true,
			wantShots:  []string{"drive"},
			wantLabels: []string{""},
		},
		{name: "both metrics", url: "/lookup?carry=100&total=120", wantStatus: http.StatusBadRequest},
		{name: "not a number", url: "/lookup?carry=far", wantStatus: http.StatusBadRequest},
		{name: "nan carry", url: "/lookup?carry=NaN", wantStatus: http.StatusBadRequest},
		{name: "infinite carry", url: "/lookup?carry=Inf", wantStatus: http.StatusBadRequest},
		{name: "negative infinite total", url: "/lookup?total=-Inf", wantStatus: http.StatusBadRequest},
		{name: "unknown bag", url: "/lookup?carry=100&bag=travel", wantStatus: http.StatusBadRequest},
		{name: "no query", url: "/lookup", wantStatus: http.StatusOK, wantShots: []string{}, wantLabels: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := get(t, h, tt.url)
			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp struct {
				Exact   bool        `json:"exact"`
				Matches []MatchView `json:"matches"`
			}
			decode(t, rr, &resp)
			require.Equal(t, tt.wantExact, resp.Exact)

			shots, labels := []string{}, []string{}
			for _, m := range resp.Matches {
				shots = append(shots, m.Shot.ID)
				labels = append(labels, m.Label)
			}
			require.Equal(t, tt.wantShots, shots)
			require.Equal(t, tt.wantLabels, labels)
		})
	}
}

func TestLookup_RoundsForDisplay(t *testing.T) {
	rr := get(t, newServer(staticSource{snap: fixture()}), "/lookup?carry=155&unit=yards")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Matches []MatchView `json:"matches"`
	}
	decode(t, rr, &resp)
	require.Len(t, resp.Matches, 1)
	require.Equal(t, 153.0, resp.Matches[0].Median)
	require.Equal(t, 153.0, resp.Matches[0].Shot.Carry)
}

func TestGaps(t *testing.T) {
	h := newServer(staticSource{snap: fixture()})

	rr := get(t, h, "/gaps?bag=all")
	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Categories []string          `json:"categories"`
		Gaps       []gapping.Gap     `json:"gaps"`
		Spacing    []gapping.Spacing `json:"spacing"`
	}
	decode(t, rr, &resp)
	require.Equal(t, []string{"long"}, resp.Categories)
	require.Equal(t, []gapping.Gap{
		{ClubID: "d", Name: "Driver", Min: 208, Max: 232, Central: 220},
		{ClubID: "7i", Name: "7 Iron", Min: 132, Max: 148, Central: 140},
	}, resp.Gaps)
	require.Len(t, resp.Spacing, 1)
	require.Equal(t, 80.0, resp.Spacing[0].Distance)

	rr = get(t, h, "/gaps?category=Trouble&category=long&metric=total")
	require.Equal(t, http.StatusOK, rr.Code)
	decode(t, rr, &resp)
	require.ElementsMatch(t, []string{"long", "trouble"}, resp.Categories)
	require.Len(t, resp.Gaps, 1)
	require.Equal(t, gapping.Gap{ClubID: "7i", Name: "7 Iron", Min: 130, Max: 158, Central: 142.5}, resp.Gaps[0])

	rr = get(t, h, "/gaps?category=nothing")
	require.Equal(t, http.StatusOK, rr.Code)
	decode(t, rr, &resp)
	require.Empty(t, resp.Gaps)

	require.Equal(t, http.StatusBadRequest, get(t, h, "/gaps?metric=apex").Code)
}

func TestGaps_EmptyListsAreArrays(t *testing.T) {
	h := newServer(staticSource{snap: fixture()})

	// one club in the default bag: no spacing, every category known
	rr := get(t, h, "/gaps")
	require.Equal(t, http.StatusOK, rr.Code)

	var raw map[string]json.RawMessage
	decode(t, rr, &raw)
	require.JSONEq(t, `[]`, string(raw["spacing"]))
	require.JSONEq(t, `[]`, string(raw["unknown_categories"]))

	rr = get(t, h, "/gaps?category=nothing")
	require.Equal(t, http.StatusOK, rr.Code)
	decode(t, rr, &raw)
	require.JSONEq(t, `[]`, string(raw["gaps"]))
	require.JSONEq(t, `[]`, string(raw["spacing"]))
	require.JSONEq(t, `["nothing"]`, string(raw["unknown_categories"]))
}

func TestClubEndpoints(t *testing.T) {
	h := newServer(staticSource{snap: fixture()})

	rr := get(t, h, "/clubs")
	require.Equal(t, http.StatusOK, rr.Code)
	var clubs struct {
		Clubs []ClubSummary `json:"clubs"`
	}
	decode(t, rr, &clubs)
	require.Len(t, clubs.Clubs, 2)
	require.Equal(t, 2, clubs.Clubs[0].Shots)

	rr = get(t, h, "/clubs/7i/shots?sort=distance&dir=asc")
	require.Equal(t, http.StatusOK, rr.Code)
	var shots struct {
		Shots []ShotView `json:"shots"`
	}
	decode(t, rr, &shots)
	require.Equal(t, "punch", shots.Shots[0].ID)
	require.Equal(t, "Trouble", shots.Shots[0].Category)

	require.Equal(t, http.StatusBadRequest, get(t, h, "/clubs/7i/shots?sort=loft").Code)
	require.Equal(t, http.StatusNotFound, get(t, h, "/clubs/ghost/shots").Code)
	// unique id prefix
	require.Equal(t, http.StatusOK, get(t, h, "/clubs/7/shots").Code)

	rr = get(t, h, "/clubs/7%20Iron/range?metric=carry")
	require.Equal(t, http.StatusOK, rr.Code)
	var rng struct {
		Range *gapping.Range `json:"range"`
		Scale gapping.Scale  `json:"scale"`
	}
	decode(t, rr, &rng)
	require.Equal(t, &gapping.Range{LowerBound: 115, Central: 130, UpperBound: 148}, rng.Range)
	// distances 115..158, padding 10
	require.Equal(t, gapping.Scale{Min: 105, Max: 168}, rng.Scale)

	rr = get(t, h, "/clubs/7i/categories")
	require.Equal(t, http.StatusOK, rr.Code)
	var cats struct {
		Categories []gapping.CategoryRange `json:"categories"`
	}
	decode(t, rr, &cats)
	require.Len(t, cats.Categories, 2)
	require.Equal(t, "Long Game", cats.Categories[0].Name)
}

func TestBinaryEndpoints(t *testing.T) {
	h := newServer(staticSource{snap: fixture()})

	for _, url := range []string{"/gaps/chart.png", "/clubs/7i/chart.png"} {
		rr := get(t, h, url)
		require.Equal(t, http.StatusOK, rr.Code, url)
		require.Equal(t, "image/png", rr.Header().Get("Content-Type"))
		require.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("\x89PNG")))
	}

	rr := get(t, h, "/gaps/export.xlsx?bag=all")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Header().Get("Content-Disposition"), "gaps.xlsx")
	require.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("PK")))
}

func TestSnapshotFailure(t *testing.T) {
	h := newServer(staticSource{err: errors.New("disk on fire")})
	rr := get(t, h, "/gaps")
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.NotContains(t, rr.Body.String(), "disk on fire")
}

func TestWithStore(t *testing.T) {
	s, err := store.New(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	defer s.Close()

	_, err = s.ImportSnapshot(fixture())
	require.NoError(t, err)

	h := newServer(s)
	rr := get(t, h, "/lookup?carry=145")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Exact   bool        `json:"exact"`
		Matches []MatchView `json:"matches"`
	}
	decode(t, rr, &resp)
	require.True(t, resp.Exact)
	require.Equal(t, "full", resp.Matches[0].Shot.ID)
}
