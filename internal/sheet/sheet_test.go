package sheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pbaille/clubgap/internal/domain"
	"github.com/pbaille/clubgap/internal/gapping"
)

func workbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestParseShots(t *testing.T) {
	data := workbook(t, [][]interface{}{
		{"Launch monitor export"},
		{"Shot Type", "Club", "Carry", "Carry +/-", "Total", "Total +/-", "Unit"},
		{"full", "7 Iron", 150, 6, 160, 8, "yds"},
		{"punch", "7 Iron", 120.5, 4, "", "", "m"},
		{"", "", "", "", "", "", ""},
		{"full", "Driver", 240, 15, 265, 15},
	})

	rows, err := ParseShots(data, domain.Meters)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	require.Equal(t, "7 Iron", rows[0].Club)
	require.Equal(t, 3, rows[0].Row)
	require.Equal(t, "full", rows[0].Shot.ShotType)
	require.Equal(t, 150.0, rows[0].Shot.CarryMedian)
	require.Equal(t, 8.0, rows[0].Shot.TotalVariance)
	require.Equal(t, domain.Yards, rows[0].Shot.Unit)

	require.Equal(t, 120.5, rows[1].Shot.CarryMedian)
	require.Equal(t, 0.0, rows[1].Shot.TotalMedian)
	require.Equal(t, domain.Meters, rows[1].Shot.Unit)

	require.Equal(t, "Driver", rows[2].Club)
	require.Equal(t, domain.Meters, rows[2].Shot.Unit)
}

func TestParseShots_Errors(t *testing.T) {
	tests := []struct {
		name string
		rows [][]interface{}
		want string
	}{
		{
			name: "no header",
			rows: [][]interface{}{{"Club", "Carry"}, {"7 Iron", 150}},
			want: "no header row",
		},
		{
			name: "bad number",
			rows: [][]interface{}{
				{"Club", "Shot Type", "Carry", "Carry +/-", "Total", "Total +/-"},
				{"7 Iron", "full", "far", 6, 160, 8},
			},
			want: "row 2",
		},
		{
			name: "negative variance",
			rows: [][]interface{}{
				{"Club", "Shot Type", "Carry", "Carry +/-", "Total", "Total +/-"},
				{"7 Iron", "full", 150, -6, 160, 8},
			},
			want: "must not be negative",
		},
		{
			name: "unknown unit",
			rows: [][]interface{}{
				{"Club", "Shot Type", "Carry", "Carry +/-", "Total", "Total +/-", "Unit"},
				{"7 Iron", "full", 150, 6, 160, 8, "feet"},
			},
			want: "unknown unit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseShots(workbook(t, tt.rows), domain.Yards)
			require.ErrorContains(t, err, tt.want)
		})
	}

	_, err := ParseShots([]byte("not a workbook"), domain.Yards)
	require.Error(t, err)
}

func TestExport(t *testing.T) {
	catalog := gapping.NewCatalog(
		[]domain.ShotTypeDefinition{{ShotType: "full", CategoryIDs: []string{"long"}}},
		[]domain.Category{{ID: "long", Name: "Long Game"}},
	)
	club := domain.Club{ID: "7i", Name: "7 Iron", Shots: []domain.Shot{
		{ShotType: "full", CarryMedian: 140, CarryVariance: 8, TotalMedian: 150, TotalVariance: 9, Unit: domain.Meters},
	}}
	report := Report{
		Unit:   domain.Yards,
		Metric: domain.Carry,
		Gaps: []gapping.Gap{
			{ClubID: "d", Name: "Driver", Min: 225.4, Max: 255.6, Central: 240.2},
			{ClubID: "7i", Name: "7 Iron", Min: 144, Max: 162, Central: 153.1},
		},
		Clubs:   []ClubShots{{Club: club, Shots: club.Shots}},
		Catalog: catalog,
	}

	data, err := Export(report)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	require.Equal(t, []string{"Gaps", "Shots"}, f.GetSheetList())

	gaps, err := f.GetRows("Gaps")
	require.NoError(t, err)
	require.Len(t, gaps, 3)
	require.Equal(t, []string{"Driver", "225", "240", "256", "87"}, gaps[1])
	require.Equal(t, []string{"7 Iron", "144", "153", "162"}, gaps[2])

	shots, err := f.GetRows("Shots")
	require.NoError(t, err)
	require.Len(t, shots, 2)
	require.Equal(t, []string{"7 Iron", "full", "Long Game", "153", "9", "164", "10", "yards"}, shots[1])

	// the exported shots sheet reads back in
	rows, err := ParseShots(data, domain.Meters)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, domain.Yards, rows[0].Shot.Unit)
	require.Equal(t, 153.0, rows[0].Shot.CarryMedian)
}
