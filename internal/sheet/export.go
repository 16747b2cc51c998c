package sheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/pbaille/clubgap/internal/domain"
	"github.com/pbaille/clubgap/internal/gapping"
)

const (
	gapsSheet  = "Gaps"
	shotsSheet = "Shots"
)

// ClubShots is a club with its shots already in display order
type ClubShots struct {
	Club  domain.Club
	Shots []domain.Shot
}

// Report is everything written to an exported workbook
type Report struct {
	Unit    domain.Unit
	Metric  domain.Metric
	Gaps    []gapping.Gap
	Clubs   []ClubShots
	Catalog *gapping.Catalog
}

// Export writes a workbook with a Gaps sheet and a Shots sheet. Distances are rounded.
func Export(r Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", gapsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(shotsSheet); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}

	if err := writeGaps(f, r, bold); err != nil {
		return nil, err
	}
	if err := writeShots(f, r, bold); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeGaps(f *excelize.File, r Report, header int) error {
	unit := string(r.Unit)
	rows := [][]interface{}{
		{"Club", "Min (" + unit + ")", string(r.Metric) + " (" + unit + ")", "Max (" + unit + ")", "Gap to next"},
	}

	spacing := gapping.GapSpacing(r.Gaps)
	for i, g := range r.Gaps {
		row := []interface{}{
			g.Name,
			gapping.RoundDistance(g.Min),
			gapping.RoundDistance(g.Central),
			gapping.RoundDistance(g.Max),
		}
		if i < len(spacing) {
			row = append(row, gapping.RoundDistance(spacing[i].Distance))
		}
		rows = append(rows, row)
	}

	if err := writeRows(f, gapsSheet, rows); err != nil {
		return err
	}
	if err := f.SetRowStyle(gapsSheet, 1, 1, header); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	return f.SetColWidth(gapsSheet, "A", "A", 20)
}

func writeShots(f *excelize.File, r Report, header int) error {
	rows := [][]interface{}{
		{"Club", "Shot Type", "Category", "Carry", "Carry +/-", "Total", "Total +/-", "Unit"},
	}

	for _, cs := range r.Clubs {
		for _, s := range cs.Shots {
			carry, carryVar := s.Distance(domain.Carry)
			total, totalVar := s.Distance(domain.Total)
			category := ""
			if r.Catalog != nil {
				if ids := r.Catalog.CategoryIDs(s.ShotType); len(ids) > 0 {
					category = r.Catalog.CategoryName(ids[0])
				}
			}
			rows = append(rows, []interface{}{
				cs.Club.Name,
				s.ShotType,
				category,
				gapping.RoundDistance(gapping.Convert(carry, s.Unit, r.Unit)),
				gapping.RoundDistance(gapping.Convert(carryVar, s.Unit, r.Unit)),
				gapping.RoundDistance(gapping.Convert(total, s.Unit, r.Unit)),
				gapping.RoundDistance(gapping.Convert(totalVar, s.Unit, r.Unit)),
				string(r.Unit),
			})
		}
	}

	if err := writeRows(f, shotsSheet, rows); err != nil {
		return err
	}
	if err := f.SetRowStyle(shotsSheet, 1, 1, header); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	return f.SetColWidth(shotsSheet, "A", "C", 18)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
