package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pbaille/clubgap/internal/chart"
	"github.com/pbaille/clubgap/internal/domain"
	"github.com/pbaille/clubgap/internal/gapping"
	"github.com/pbaille/clubgap/internal/sheet"
)

// ClubSummary is a club without its shots
type ClubSummary struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Type  string   `json:"type,omitempty"`
	Loft  *float64 `json:"loft,omitempty"`
	Shots int      `json:"shots"`
}

func (s *Server) listClubs(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}

	clubs := make([]ClubSummary, len(snap.Clubs))
	for i, c := range snap.Clubs {
		clubs[i] = ClubSummary{ID: c.ID, Name: c.Name, Type: c.Type, Loft: c.Loft, Shots: len(c.Shots)}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"clubs": clubs})
}

func (s *Server) listBags(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"bags": snap.Bags})
}

// ShotView is a shot with distances in the display unit
type ShotView struct {
	ID            string           `json:"id"`
	ShotType      string           `json:"shot_type"`
	Category      string           `json:"category"`
	Carry         float64          `json:"carry"`
	CarryVariance float64          `json:"carry_variance"`
	Total         float64          `json:"total"`
	TotalVariance float64          `json:"total_variance"`
	Unit          domain.Unit      `json:"unit"`
	Tendencies    domain.StringSet `json:"tendencies,omitempty"`
	SwingKeys     domain.StringSet `json:"swing_keys,omitempty"`
	Launch        domain.Launch    `json:"launch,omitempty"`
	Roll          domain.Roll      `json:"roll,omitempty"`
}

func shotView(sh domain.Shot, catalog *gapping.Catalog, p params) ShotView {
	carry, carryVar := sh.Distance(domain.Carry)
	total, totalVar := sh.Distance(domain.Total)
	conv := func(d float64) float64 { return p.display(gapping.Convert(d, sh.Unit, p.unit)) }
	return ShotView{
		ID:            sh.ID,
		ShotType:      sh.ShotType,
		Category:      catalog.FirstCategoryName(sh.ShotType),
		Carry:         conv(carry),
		CarryVariance: conv(carryVar),
		Total:         conv(total),
		TotalVariance: conv(totalVar),
		Unit:          p.unit,
		Tendencies:    sh.Tendencies,
		SwingKeys:     sh.SwingKeys,
		Launch:        sh.Launch,
		Roll:          sh.Roll,
	}
}

func (s *Server) clubShots(w http.ResponseWriter, r *http.Request) {
	p, err := s.parseParams(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	key, dir := gapping.ByDistance, gapping.Desc
	if v := r.URL.Query().Get("sort"); v != "" {
		if key, err = gapping.ParseSortKey(v); err != nil {
			s.fail(w, err)
			return
		}
	}
	if v := r.URL.Query().Get("dir"); v != "" {
		if dir, err = gapping.ParseDirection(v); err != nil {
			s.fail(w, err)
			return
		}
	}

	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	club, err := findClub(snap, chi.URLParam(r, "clubID"))
	if err != nil {
		s.fail(w, err)
		return
	}

	catalog := gapping.CatalogFor(snap)
	sorted := gapping.SortShots(club.Shots, catalog, p.unit, key, dir)
	views := make([]ShotView, len(sorted))
	for i, sh := range sorted {
		views[i] = shotView(sh, catalog, p)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"club_id":   club.ID,
		"name":      club.Name,
		"unit":      p.unit,
		"sort":      key,
		"direction": dir,
		"shots":     views,
	})
}

func (s *Server) clubRange(w http.ResponseWriter, r *http.Request) {
	p, err := s.parseParams(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	club, err := findClub(snap, chi.URLParam(r, "clubID"))
	if err != nil {
		s.fail(w, err)
		return
	}

	var rng *gapping.Range
	if agg := gapping.Aggregate(club.Shots, p.metric, p.unit); agg != nil {
		rng = &gapping.Range{
			LowerBound: p.display(agg.LowerBound),
			Central:    p.display(agg.Central),
			UpperBound: p.display(agg.UpperBound),
		}
	}
	scale := gapping.ChartRange(club.Shots, p.unit)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"club_id": club.ID,
		"metric":  p.metric,
		"unit":    p.unit,
		"range":   rng,
		"scale":   gapping.Scale{Min: p.display(scale.Min), Max: p.display(scale.Max)},
	})
}

func (s *Server) clubCategories(w http.ResponseWriter, r *http.Request) {
	p, err := s.parseParams(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	club, err := findClub(snap, chi.URLParam(r, "clubID"))
	if err != nil {
		s.fail(w, err)
		return
	}

	ranges := gapping.CategoryRanges(*club, gapping.CatalogFor(snap), p.metric, p.unit)
	for i := range ranges {
		rg := &ranges[i].Range
		rg.LowerBound, rg.Central, rg.UpperBound = p.display(rg.LowerBound), p.display(rg.Central), p.display(rg.UpperBound)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"club_id":    club.ID,
		"metric":     p.metric,
		"unit":       p.unit,
		"categories": ranges,
	})
}

func (s *Server) clubChart(w http.ResponseWriter, r *http.Request) {
	p, err := s.parseParams(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	club, err := findClub(snap, chi.URLParam(r, "clubID"))
	if err != nil {
		s.fail(w, err)
		return
	}

	sorted := gapping.SortShots(club.Shots, gapping.CatalogFor(snap), p.unit, gapping.ByDistance, gapping.Desc)
	png, err := chart.RenderClubShots(*club, sorted, p.unit, chart.DefaultPalette)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeBinary(w, "image/png", "", png)
}

// gapResult is a computed gap chart and the selection that produced it
type gapResult struct {
	params   params
	catalog  *gapping.Catalog
	bag      *domain.Bag
	selected domain.StringSet
	unknown  []string
	gaps     []gapping.Gap
}

func (s *Server) computeGaps(r *http.Request, snap *domain.Snapshot) (*gapResult, error) {
	p, err := s.parseParams(r)
	if err != nil {
		return nil, err
	}
	bag, err := selectBag(r, snap)
	if err != nil {
		return nil, err
	}

	catalog := gapping.CatalogFor(snap)
	selected, unknown := s.opts.SelectCategories(catalog, categoryNames(r))
	clubs := gapping.ClubsInBag(snap.Clubs, bag)

	return &gapResult{
		params:   p,
		catalog:  catalog,
		bag:      bag,
		selected: selected,
		unknown:  unknown,
		gaps:     gapping.Gaps(clubs, selected, p.metric, p.unit, catalog),
	}, nil
}

func (s *Server) gaps(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	res, err := s.computeGaps(r, snap)
	if err != nil {
		s.fail(w, err)
		return
	}

	p := res.params
	spacing := gapping.GapSpacing(res.gaps)
	if spacing == nil {
		spacing = []gapping.Spacing{}
	}
	unknown := res.unknown
	if unknown == nil {
		unknown = []string{}
	}
	gaps := make([]gapping.Gap, len(res.gaps))
	for i, g := range res.gaps {
		gaps[i] = gapping.Gap{ClubID: g.ClubID, Name: g.Name, Min: p.display(g.Min), Max: p.display(g.Max), Central: p.display(g.Central)}
	}
	for i := range spacing {
		spacing[i].Distance = p.display(spacing[i].Distance)
	}

	var bagID string
	if res.bag != nil {
		bagID = res.bag.ID
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"unit":               p.unit,
		"metric":             p.metric,
		"bag_id":             bagID,
		"categories":         res.selected.Values(),
		"unknown_categories": unknown,
		"gaps":               gaps,
		"spacing":            spacing,
	})
}

func (s *Server) gapsChart(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	res, err := s.computeGaps(r, snap)
	if err != nil {
		s.fail(w, err)
		return
	}

	png, err := chart.RenderGaps(res.gaps, res.params.unit, chart.DefaultPalette)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeBinary(w, "image/png", "", png)
}

func (s *Server) gapsExport(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	res, err := s.computeGaps(r, snap)
	if err != nil {
		s.fail(w, err)
		return
	}

	clubs := gapping.ClubsInBag(snap.Clubs, res.bag)
	report := sheet.Report{
		Unit:    res.params.unit,
		Metric:  res.params.metric,
		Gaps:    res.gaps,
		Catalog: res.catalog,
	}
	for _, c := range clubs {
		report.Clubs = append(report.Clubs, sheet.ClubShots{
			Club:  c,
			Shots: gapping.SortShots(c.Shots, res.catalog, res.params.unit, gapping.ByCategoryDistance, gapping.Asc),
		})
	}

	data, err := sheet.Export(report)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeBinary(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "gaps.xlsx", data)
}

// MatchView is a lookup result in the display unit
type MatchView struct {
	ClubID   string   `json:"club_id"`
	ClubName string   `json:"club_name"`
	Shot     ShotView `json:"shot"`
	Median   float64  `json:"median"`
	Low      float64  `json:"low"`
	High     float64  `json:"high"`
	Diff     float64  `json:"diff"`
	IsExact  bool     `json:"is_exact"`
	Label    string   `json:"label,omitempty"`
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) {
	p, err := s.parseParams(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	carry, err := parseDistance(r, "carry")
	if err != nil {
		s.fail(w, err)
		return
	}
	total, err := parseDistance(r, "total")
	if err != nil {
		s.fail(w, err)
		return
	}
	q, err := gapping.NewQuery(carry, total)
	if err != nil {
		s.fail(w, err)
		return
	}

	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	bag, err := selectBag(r, snap)
	if err != nil {
		s.fail(w, err)
		return
	}

	catalog := gapping.CatalogFor(snap)
	matches := gapping.Lookup(q, gapping.ClubsInBag(snap.Clubs, bag), p.unit)
	views := make([]MatchView, len(matches))
	exact := false
	for i, m := range matches {
		exact = exact || m.IsExact
		views[i] = MatchView{
			ClubID:   m.ClubID,
			ClubName: m.ClubName,
			Shot:     shotView(m.Shot, catalog, p),
			Median:   p.display(m.Median),
			Low:      p.display(m.Low),
			High:     p.display(m.High),
			Diff:     p.display(m.Diff),
			IsExact:  m.IsExact,
			Label:    m.Label,
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"query":   q.Distance,
		"metric":  q.Metric,
		"unit":    p.unit,
		"exact":   exact,
		"matches": views,
	})
}
