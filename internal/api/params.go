package api

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/pbaille/clubgap/internal/domain"
	"github.com/pbaille/clubgap/internal/gapping"
)

var errBadParam = errors.New("bad parameter")

// params are the query parameters shared by most endpoints
type params struct {
	unit   domain.Unit
	metric domain.Metric
	round  bool
}

func (s *Server) parseParams(r *http.Request) (params, error) {
	q := r.URL.Query()
	p := params{unit: s.opts.Unit, metric: domain.Carry, round: true}

	if v := q.Get("unit"); v != "" {
		u, err := domain.ParseUnit(v)
		if err != nil {
			return p, err
		}
		p.unit = u
	}
	if v := q.Get("metric"); v != "" {
		m, err := domain.ParseMetric(v)
		if err != nil {
			return p, err
		}
		p.metric = m
	}
	if v := q.Get("round"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return p, fmt.Errorf("%w: round=%q", errBadParam, v)
		}
		p.round = b
	}
	return p, nil
}

func (p params) display(d float64) float64 {
	if p.round {
		return gapping.RoundDistance(d)
	}
	return d
}

// parseDistance reads an optional finite distance; absent means zero
func parseDistance(r *http.Request, name string) (float64, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return 0, nil
	}
	d, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(d) || math.IsInf(d, 0) {
		return 0, fmt.Errorf("%w: %s=%q is not a number", errBadParam, name, v)
	}
	return d, nil
}

// selectBag resolves the bag query parameter: absent means the default bag,
// "all" means every club.
func selectBag(r *http.Request, snap *domain.Snapshot) (*domain.Bag, error) {
	ref := r.URL.Query().Get("bag")
	switch ref {
	case "":
		return gapping.DefaultBag(snap.Bags), nil
	case "all":
		return nil, nil
	}
	if b := gapping.FindBag(snap.Bags, ref); b != nil {
		return b, nil
	}
	return nil, fmt.Errorf("%w: unknown bag %q", errBadParam, ref)
}

// categoryNames collects repeated and comma separated category parameters
func categoryNames(r *http.Request) []string {
	var names []string
	for _, v := range r.URL.Query()["category"] {
		for _, n := range strings.Split(v, ",") {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
	}
	return names
}
