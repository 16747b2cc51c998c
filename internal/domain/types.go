package domain

import (
	"encoding/json"
	"sort"
	"time"
)

// Unit is a linear distance unit
type Unit string

const (
	Yards  Unit = "yards"
	Meters Unit = "meters"
)

// Valid reports whether u is a known unit
func (u Unit) Valid() bool {
	return u == Yards || u == Meters
}

// Metric selects which distance of a shot is used
type Metric string

const (
	Carry Metric = "carry"
	Total Metric = "total"
)

// Launch describes the launch height of a shot
type Launch string

const (
	LaunchLow  Launch = "low"
	LaunchMid  Launch = "mid"
	LaunchHigh Launch = "high"
)

// Roll describes how much a shot runs out after landing
type Roll string

const (
	RollMinimal  Roll = "minimal"
	RollModerate Roll = "moderate"
	RollLots     Roll = "lots"
)

// Shot is a logged observation of one shot type hit with a club
type Shot struct {
	ID            string    `json:"id"`
	ClubID        string    `json:"club_id"`
	ShotType      string    `json:"shot_type"`
	CarryMedian   float64   `json:"carry_median"`
	CarryVariance float64   `json:"carry_variance"`
	TotalMedian   float64   `json:"total_median"`
	TotalVariance float64   `json:"total_variance"`
	Unit          Unit      `json:"unit"`
	Tendencies    StringSet `json:"tendencies,omitempty"`
	SwingKeys     StringSet `json:"swing_keys,omitempty"`
	Launch        Launch    `json:"launch,omitempty"`
	Roll          Roll      `json:"roll,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Distance returns the median and variance of the given metric, in the shot's own unit
func (s Shot) Distance(m Metric) (median, variance float64) {
	if m == Total {
		return s.TotalMedian, s.TotalVariance
	}
	return s.CarryMedian, s.CarryVariance
}

// Club owns an ordered collection of shots
type Club struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type,omitempty"`
	Loft      *float64  `json:"loft,omitempty"`
	Shots     []Shot    `json:"shots,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Bag names a subset of a player's clubs
type Bag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ClubIDs   StringSet `json:"club_ids"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

// Category is a grouping label for shot types
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ShotTypeDefinition maps a shot type name to its categories, in order
type ShotTypeDefinition struct {
	ShotType    string   `json:"shot_type"`
	CategoryIDs []string `json:"category_ids"`
}

// Snapshot is the full set of records handed to the engine for one computation
type Snapshot struct {
	Clubs      []Club               `json:"clubs"`
	Bags       []Bag                `json:"bags,omitempty"`
	ShotTypes  []ShotTypeDefinition `json:"shot_types,omitempty"`
	Categories []Category           `json:"categories,omitempty"`
}

// StringSet is an unordered set of free-form tags
type StringSet map[string]struct{}

// NewStringSet builds a set from the given values, ignoring empty strings
func NewStringSet(values ...string) StringSet {
	s := make(StringSet, len(values))
	for _, v := range values {
		s.Add(v)
	}
	return s
}

func (s StringSet) Add(v string) {
	if v == "" {
		return
	}
	s[v] = struct{}{}
}

func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Values returns the members sorted
func (s StringSet) Values() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (s StringSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

func (s *StringSet) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = NewStringSet(values...)
	return nil
}
