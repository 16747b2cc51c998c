package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func validShot() Shot {
	return Shot{
		ShotType:      "full",
		CarryMedian:   140,
		CarryVariance: 8,
		TotalMedian:   150,
		TotalVariance: 10,
		Unit:          Yards,
	}
}

func TestShot_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Shot)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Shot) {}},
		{name: "total shorter than carry is accepted", mutate: func(s *Shot) { s.TotalMedian = 100 }},
		{name: "missing shot type", mutate: func(s *Shot) { s.ShotType = " " }, wantErr: true},
		{name: "unknown unit", mutate: func(s *Shot) { s.Unit = "feet" }, wantErr: true},
		{name: "negative variance", mutate: func(s *Shot) { s.CarryVariance = -1 }, wantErr: true},
		{name: "NaN median", mutate: func(s *Shot) { s.TotalMedian = math.NaN() }, wantErr: true},
		{name: "unknown launch", mutate: func(s *Shot) { s.Launch = "towering" }, wantErr: true},
		{name: "known roll", mutate: func(s *Shot) { s.Roll = RollLots }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validShot()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalid)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSnapshot_Validate(t *testing.T) {
	base := func() *Snapshot {
		return &Snapshot{
			Clubs:      []Club{{ID: "c1", Name: "7 Iron", Shots: []Shot{validShot()}}},
			Bags:       []Bag{{ID: "b1", Name: "Main", ClubIDs: NewStringSet("c1"), IsDefault: true}},
			Categories: []Category{{ID: "long", Name: "Long Game"}},
			ShotTypes:  []ShotTypeDefinition{{ShotType: "full", CategoryIDs: []string{"long"}}},
		}
	}
	require.NoError(t, base().Validate())

	s := base()
	s.Bags = append(s.Bags, Bag{ID: "b2", Name: "Other", IsDefault: true})
	require.ErrorIs(t, s.Validate(), ErrInvalid)

	s = base()
	s.Bags[0].ClubIDs.Add("ghost")
	require.ErrorIs(t, s.Validate(), ErrInvalid)

	s = base()
	s.ShotTypes[0].CategoryIDs = nil
	require.ErrorIs(t, s.Validate(), ErrInvalid)

	s = base()
	s.Clubs = append(s.Clubs, Club{ID: "c1", Name: "dup"})
	require.ErrorIs(t, s.Validate(), ErrInvalid)

	s = base()
	s.Clubs[0].Shots[0].Unit = ""
	require.ErrorIs(t, s.Validate(), ErrInvalid)
}

func TestParseUnitAndMetric(t *testing.T) {
	u, err := ParseUnit("Metres")
	require.NoError(t, err)
	require.Equal(t, Meters, u)

	u, err = ParseUnit("yd")
	require.NoError(t, err)
	require.Equal(t, Yards, u)

	_, err = ParseUnit("furlongs")
	require.ErrorIs(t, err, ErrInvalid)

	m, err := ParseMetric("TOTAL")
	require.NoError(t, err)
	require.Equal(t, Total, m)

	_, err = ParseMetric("apex")
	require.ErrorIs(t, err, ErrInvalid)
}

func TestStringSet_JSON(t *testing.T) {
	s := NewStringSet("fade", "thin", "fade", "")
	require.Len(t, s, 2)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	require.JSONEq(t, `["fade","thin"]`, string(data))

	var back StringSet
	require.NoError(t, json.Unmarshal([]byte(`["draw","draw","low"]`), &back))
	require.True(t, back.Has("draw"))
	require.True(t, back.Has("low"))
	require.Len(t, back, 2)
}
