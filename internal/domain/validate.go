package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks a shot once at the boundary, before it is stored or handed to the engine.
// A total shorter than the carry is accepted as given.
func (s Shot) Validate() error {
	if strings.TrimSpace(s.ShotType) == "" {
		return invalidf("shot type is required")
	}
	if !s.Unit.Valid() {
		return invalidf("unknown unit %q", s.Unit)
	}
	fields := []struct {
		name  string
		value float64
	}{
		{"carry median", s.CarryMedian},
		{"carry variance", s.CarryVariance},
		{"total median", s.TotalMedian},
		{"total variance", s.TotalVariance},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return invalidf("%s must be finite", f.name)
		}
		if f.value < 0 {
			return invalidf("%s must not be negative", f.name)
		}
	}
	switch s.Launch {
	case "", LaunchLow, LaunchMid, LaunchHigh:
	default:
		return invalidf("unknown launch %q", s.Launch)
	}
	switch s.Roll {
	case "", RollMinimal, RollModerate, RollLots:
	default:
		return invalidf("unknown roll %q", s.Roll)
	}
	return nil
}

// Validate checks a snapshot's cross references and the single default bag rule
func (s *Snapshot) Validate() error {
	clubs := make(map[string]bool, len(s.Clubs))
	for _, c := range s.Clubs {
		if c.ID == "" {
			return invalidf("club %q has no id", c.Name)
		}
		if clubs[c.ID] {
			return invalidf("duplicate club id %s", c.ID)
		}
		clubs[c.ID] = true
		for i, shot := range c.Shots {
			if err := shot.Validate(); err != nil {
				return fmt.Errorf("club %s shot %d: %w", c.Name, i, err)
			}
		}
	}

	defaults := 0
	for _, b := range s.Bags {
		if b.IsDefault {
			defaults++
		}
		for id := range b.ClubIDs {
			if !clubs[id] {
				return invalidf("bag %q references unknown club %s", b.Name, id)
			}
		}
	}
	if defaults > 1 {
		return invalidf("%d bags are marked default", defaults)
	}

	categories := make(map[string]bool, len(s.Categories))
	for _, c := range s.Categories {
		categories[c.ID] = true
	}
	for _, st := range s.ShotTypes {
		if len(st.CategoryIDs) == 0 {
			return invalidf("shot type %q has no categories", st.ShotType)
		}
		for _, id := range st.CategoryIDs {
			if !categories[id] {
				return invalidf("shot type %q references unknown category %s", st.ShotType, id)
			}
		}
	}
	return nil
}

// ParseUnit accepts the unit names and their common abbreviations
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yards", "yard", "yds", "yd", "y":
		return Yards, nil
	case "meters", "meter", "metres", "metre", "m":
		return Meters, nil
	}
	return "", invalidf("unknown unit %q", s)
}

// ParseMetric accepts "carry" or "total"
func ParseMetric(s string) (Metric, error) {
	switch Metric(strings.ToLower(strings.TrimSpace(s))) {
	case Carry:
		return Carry, nil
	case Total:
		return Total, nil
	}
	return "", invalidf("unknown metric %q", s)
}
