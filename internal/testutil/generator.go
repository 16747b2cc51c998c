package testutil

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"github.com/pbaille/clubgap/internal/domain"
)

// SnapshotGenerator builds random but plausible club snapshots
type SnapshotGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewSnapshotGenerator creates a generator with an optional seed
func NewSnapshotGenerator(seed ...int64) *SnapshotGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}
	return &SnapshotGenerator{faker: gofakeit.New(uint64(s)), seed: s}
}

// Seed returns the seed, for reproducing a failing run
func (g *SnapshotGenerator) Seed() int64 {
	return g.seed
}

var (
	clubNames = []string{"Driver", "3 Wood", "5 Wood", "4 Hybrid", "5 Iron", "6 Iron", "7 Iron", "8 Iron", "9 Iron", "PW", "GW", "SW", "LW"}
	swingKeys = []string{"tempo", "wide takeaway", "hold finish", "weight forward", "quiet hands"}
	tendency  = []string{"fade", "draw", "thin", "heavy", "high", "low"}
)

// Categories returns the three default categories and one extra with no shot types
func (g *SnapshotGenerator) Categories() []domain.Category {
	return []domain.Category{
		{ID: "cat-long", Name: "Long Game"},
		{ID: "cat-approach", Name: "Approach"},
		{ID: "cat-short", Name: "Short Game"},
		{ID: "cat-trouble", Name: "Trouble"},
	}
}

// ShotTypes maps a fixed set of shot types onto Categories
func (g *SnapshotGenerator) ShotTypes() []domain.ShotTypeDefinition {
	return []domain.ShotTypeDefinition{
		{ShotType: "full", CategoryIDs: []string{"cat-long", "cat-approach"}},
		{ShotType: "three-quarter", CategoryIDs: []string{"cat-approach"}},
		{ShotType: "punch", CategoryIDs: []string{"cat-trouble"}},
		{ShotType: "chip", CategoryIDs: []string{"cat-short"}},
	}
}

// Shot builds a shot of the given type around a base carry
func (g *SnapshotGenerator) Shot(clubID, shotType string, baseCarry float64) domain.Shot {
	unit := domain.Yards
	if g.faker.Bool() {
		unit = domain.Meters
	}
	carry := baseCarry * g.faker.Float64Range(0.85, 1.0)
	return domain.Shot{
		ID:            uuid.NewString(),
		ClubID:        clubID,
		ShotType:      shotType,
		CarryMedian:   carry,
		CarryVariance: g.faker.Float64Range(0, 12),
		TotalMedian:   carry + g.faker.Float64Range(0, 25),
		TotalVariance: g.faker.Float64Range(0, 15),
		Unit:          unit,
		Tendencies:    domain.NewStringSet(g.faker.RandomString(tendency)),
		SwingKeys:     domain.NewStringSet(g.faker.RandomString(swingKeys)),
		Launch:        domain.LaunchMid,
		Roll:          domain.RollModerate,
	}
}

// Clubs generates count clubs, each with one to five shots. Some shot types
// ("untracked") have no category mapping.
func (g *SnapshotGenerator) Clubs(count int) []domain.Club {
	types := []string{"full", "three-quarter", "punch", "chip", "untracked"}
	clubs := make([]domain.Club, count)
	for i := range clubs {
		id := uuid.NewString()
		name := clubNames[i%len(clubNames)]
		if i >= len(clubNames) {
			name = fmt.Sprintf("%s #%d", name, i/len(clubNames)+1)
		}
		base := g.faker.Float64Range(30, 280)
		n := g.faker.IntRange(1, 5)
		shots := make([]domain.Shot, n)
		for j := range shots {
			shots[j] = g.Shot(id, types[g.faker.IntRange(0, len(types)-1)], base)
		}
		clubs[i] = domain.Club{ID: id, Name: name, Shots: shots}
	}
	return clubs
}

// Snapshot generates a full snapshot with one default bag holding roughly half the clubs
func (g *SnapshotGenerator) Snapshot(clubCount int) *domain.Snapshot {
	clubs := g.Clubs(clubCount)
	bag := domain.Bag{ID: uuid.NewString(), Name: g.faker.Word(), ClubIDs: domain.NewStringSet(), IsDefault: true}
	for i, c := range clubs {
		if i%2 == 0 {
			bag.ClubIDs.Add(c.ID)
		}
	}
	return &domain.Snapshot{
		Clubs:      clubs,
		Bags:       []domain.Bag{bag},
		ShotTypes:  g.ShotTypes(),
		Categories: g.Categories(),
	}
}
