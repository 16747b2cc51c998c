package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pbaille/clubgap/internal/domain"
	"github.com/pbaille/clubgap/internal/fetcher"
	"github.com/pbaille/clubgap/internal/gapping"
	"github.com/pbaille/clubgap/internal/sheet"
	"github.com/pbaille/clubgap/internal/store"
)

func importCmd() *cobra.Command {
	var unit string

	cmd := &cobra.Command{
		Use:   "import [file.json|file.xlsx|url]",
		Short: "Import a JSON snapshot or an XLSX shot sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]

			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if fetcher.IsURL(src) {
				if !strings.Contains(src, "://") {
					src = "https://" + src
				}
				fmt.Print("Fetching... ")
				snap, err := fetcher.FetchSnapshot(context.Background(), src)
				if err != nil {
					fmt.Println("failed")
					return err
				}
				fmt.Println("done")
				return importSnapshot(s, snap)
			}

			data, err := os.ReadFile(src)
			if err != nil {
				return fmt.Errorf("read %s: %w", src, err)
			}

			switch strings.ToLower(filepath.Ext(src)) {
			case ".xlsx":
				u := cfg.Display.Unit
				if unit != "" {
					if u, err = domain.ParseUnit(unit); err != nil {
						return err
					}
				}
				return importSheet(s, data, u)
			case ".json":
				snap, err := fetcher.DecodeSnapshot(data)
				if err != nil {
					return err
				}
				return importSnapshot(s, snap)
			}
			return fmt.Errorf("unsupported file type %q, want .json or .xlsx", filepath.Ext(src))
		},
	}

	cmd.Flags().StringVar(&unit, "in", "", "unit for sheet rows without one (defaults to the display unit)")
	return cmd
}

func importSnapshot(s *store.Store, snap *domain.Snapshot) error {
	stats, err := s.ImportSnapshot(snap)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"clubs":      stats.Clubs,
		"shots":      stats.Shots,
		"bags":       stats.Bags,
		"categories": stats.Categories,
		"shot_types": stats.ShotTypes,
	}).Info("Imported snapshot")
	return nil
}

// importSheet adds every parsed row as a new shot, creating clubs by name
func importSheet(s *store.Store, data []byte, unit domain.Unit) error {
	rows, err := sheet.ParseShots(data, unit)
	if err != nil {
		return err
	}

	clubs := make(map[string]*domain.Club)
	for _, row := range rows {
		club, ok := clubs[row.Club]
		if !ok {
			if club, err = s.GetOrCreateClub(row.Club); err != nil {
				return fmt.Errorf("row %d: %w", row.Row, err)
			}
			clubs[row.Club] = club
		}

		shot := row.Shot
		shot.ClubID = club.ID
		if _, err := s.AddShot(shot); err != nil {
			return fmt.Errorf("row %d: %w", row.Row, err)
		}
	}

	log.WithFields(logrus.Fields{"clubs": len(clubs), "shots": len(rows)}).Info("Imported sheet")
	return nil
}

func exportCmd() *cobra.Command {
	var sel selection

	cmd := &cobra.Command{
		Use:   "export [file.xlsx]",
		Short: "Write the gap chart and every shot to a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := sel.compute()
			if err != nil {
				return err
			}

			report := sheet.Report{
				Unit:    res.unit,
				Metric:  res.metric,
				Gaps:    res.gaps,
				Catalog: res.catalog,
			}
			for _, c := range res.clubs {
				report.Clubs = append(report.Clubs, sheet.ClubShots{
					Club:  c,
					Shots: gapping.SortShots(c.Shots, res.catalog, res.unit, gapping.ByCategoryDistance, gapping.Asc),
				})
			}

			data, err := sheet.Export(report)
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[0], data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", args[0], err)
			}
			log.WithFields(logrus.Fields{"file": args[0], "clubs": len(report.Clubs)}).Info("Exported workbook")
			return nil
		},
	}

	sel.bind(cmd)
	return cmd
}
