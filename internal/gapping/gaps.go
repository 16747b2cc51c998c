package gapping

import (
	"sort"
	"strings"

	"github.com/pbaille/clubgap/internal/domain"
)

// Gap is one club's bar on a gapping chart
type Gap struct {
	ClubID  string  `json:"club_id"`
	Name    string  `json:"name"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Central float64 `json:"central"`
}

// Gaps builds one range per club from the shots whose type falls in a selected category.
// Clubs without a positive range are dropped. The result is ordered longest club first.
func Gaps(clubs []domain.Club, selected domain.StringSet, metric domain.Metric, unit domain.Unit, catalog *Catalog) []Gap {
	out := make([]Gap, 0, len(clubs))
	for _, club := range clubs {
		var shots []domain.Shot
		for _, s := range club.Shots {
			if catalog.Matches(s.ShotType, selected) {
				shots = append(shots, s)
			}
		}

		g := Gap{ClubID: club.ID, Name: club.Name}
		if r := Aggregate(shots, metric, unit); r != nil {
			g.Min, g.Max, g.Central = r.LowerBound, r.UpperBound, r.Central
		}
		if g.Min <= 0 || g.Max <= 0 {
			continue
		}
		out = append(out, g)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Max > out[j].Max
	})
	return out
}

// Spacing is the distance between the central estimates of two neighbouring clubs
type Spacing struct {
	LongerClubID  string  `json:"longer_club_id"`
	ShorterClubID string  `json:"shorter_club_id"`
	Distance      float64 `json:"distance"`
}

// GapSpacing walks a sorted gap list and reports the spacing of each consecutive pair
func GapSpacing(gaps []Gap) []Spacing {
	if len(gaps) < 2 {
		return nil
	}
	out := make([]Spacing, 0, len(gaps)-1)
	for i := 1; i < len(gaps); i++ {
		longer, shorter := gaps[i-1], gaps[i]
		out = append(out, Spacing{
			LongerClubID:  longer.ClubID,
			ShorterClubID: shorter.ClubID,
			Distance:      longer.Central - shorter.Central,
		})
	}
	return out
}

// ClubsInBag returns the clubs a bag names, in input order. A nil bag keeps every club.
func ClubsInBag(clubs []domain.Club, bag *domain.Bag) []domain.Club {
	if bag == nil {
		return clubs
	}
	out := make([]domain.Club, 0, len(bag.ClubIDs))
	for _, c := range clubs {
		if bag.ClubIDs.Has(c.ID) {
			out = append(out, c)
		}
	}
	return out
}

// DefaultBag returns the first bag marked default, or nil
func DefaultBag(bags []domain.Bag) *domain.Bag {
	for i := range bags {
		if bags[i].IsDefault {
			return &bags[i]
		}
	}
	return nil
}

// FindBag looks a bag up by id or, failing that, by name
func FindBag(bags []domain.Bag, ref string) *domain.Bag {
	for i := range bags {
		if bags[i].ID == ref {
			return &bags[i]
		}
	}
	for i := range bags {
		if bags[i].Name == ref {
			return &bags[i]
		}
	}
	return nil
}

// FindClub looks a club up by id, then by name, then by a unique id prefix
// such as the short ids printed by the CLI
func FindClub(clubs []domain.Club, ref string) *domain.Club {
	for i := range clubs {
		if clubs[i].ID == ref {
			return &clubs[i]
		}
	}
	for i := range clubs {
		if clubs[i].Name == ref {
			return &clubs[i]
		}
	}
	if ref == "" {
		return nil
	}
	var found *domain.Club
	for i := range clubs {
		if strings.HasPrefix(clubs[i].ID, ref) {
			if found != nil {
				return nil
			}
			found = &clubs[i]
		}
	}
	return found
}
