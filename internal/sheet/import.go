package sheet

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pbaille/clubgap/internal/domain"
)

// ShotRow is one parsed spreadsheet line: a shot and the name of its club
type ShotRow struct {
	Row  int
	Club string
	Shot domain.Shot
}

const (
	colClub          = "club"
	colShotType      = "shot type"
	colCarry         = "carry"
	colCarryVariance = "carry +/-"
	colTotal         = "total"
	colTotalVariance = "total +/-"
	colUnit          = "unit"
)

var requiredColumns = []string{colClub, colShotType, colCarry, colCarryVariance, colTotal, colTotalVariance}

// ParseShots reads shots from the first sheet of an XLSX workbook that has a
// shot header row. The header may appear anywhere above the data and its
// columns in any order. Rows without a club name are skipped; shots without
// a unit get defaultUnit.
func ParseShots(data []byte, defaultUnit domain.Unit) ([]ShotRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("XLSX file has no sheets")
	}

	var (
		rows      [][]string
		headerIdx int
		cols      map[string]int
	)
	for _, sheetName := range sheets {
		rows, err = f.GetRows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
		}
		if headerIdx, cols, err = findHeader(rows); err == nil {
			break
		}
	}
	if cols == nil {
		return nil, err
	}

	var out []ShotRow
	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		club := cell(row, cols[colClub])
		if club == "" {
			continue
		}

		sr, err := parseRow(row, cols, defaultUnit)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		sr.Row = i + 1
		sr.Club = club
		out = append(out, sr)
	}
	return out, nil
}

func findHeader(rows [][]string) (int, map[string]int, error) {
	for i, row := range rows {
		cols := make(map[string]int)
		for j, v := range row {
			cols[strings.ToLower(strings.TrimSpace(v))] = j
		}
		complete := true
		for _, name := range requiredColumns {
			if _, ok := cols[name]; !ok {
				complete = false
				break
			}
		}
		if complete {
			return i, cols, nil
		}
	}
	return 0, nil, fmt.Errorf("no header row with columns %s", strings.Join(requiredColumns, ", "))
}

func parseRow(row []string, cols map[string]int, defaultUnit domain.Unit) (ShotRow, error) {
	var sr ShotRow
	sr.Shot.ShotType = cell(row, cols[colShotType])
	sr.Shot.Unit = defaultUnit

	if idx, ok := cols[colUnit]; ok {
		if v := cell(row, idx); v != "" {
			u, err := domain.ParseUnit(v)
			if err != nil {
				return sr, err
			}
			sr.Shot.Unit = u
		}
	}

	numbers := []struct {
		col string
		dst *float64
	}{
		{colCarry, &sr.Shot.CarryMedian},
		{colCarryVariance, &sr.Shot.CarryVariance},
		{colTotal, &sr.Shot.TotalMedian},
		{colTotalVariance, &sr.Shot.TotalVariance},
	}
	for _, n := range numbers {
		v := cell(row, cols[n.col])
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return sr, fmt.Errorf("%s %q is not a number", n.col, v)
		}
		*n.dst = f
	}

	return sr, sr.Shot.Validate()
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
