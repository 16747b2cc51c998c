package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pbaille/clubgap/internal/chart"
	"github.com/pbaille/clubgap/internal/domain"
	"github.com/pbaille/clubgap/internal/gapping"
)

// selection holds the flags shared by commands that build a gap chart
type selection struct {
	bag        string
	metric     string
	categories []string
}

func (sel *selection) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&sel.bag, "bag", "b", "", `bag to use, "all" for every club (defaults to the default bag)`)
	cmd.Flags().StringVarP(&sel.metric, "metric", "m", string(domain.Carry), "carry or total")
	cmd.Flags().StringSliceVarP(&sel.categories, "category", "c", nil, "category to include, repeatable (defaults from config)")
}

type selectionResult struct {
	unit    domain.Unit
	metric  domain.Metric
	catalog *gapping.Catalog
	clubs   []domain.Club
	gaps    []gapping.Gap
}

func (sel *selection) compute() (*selectionResult, error) {
	metric, err := domain.ParseMetric(sel.metric)
	if err != nil {
		return nil, err
	}
	snap, err := loadSnapshot()
	if err != nil {
		return nil, err
	}
	bag, err := selectBag(snap, sel.bag)
	if err != nil {
		return nil, err
	}

	opts := cfg.Options()
	catalog := gapping.CatalogFor(snap)
	selected, unknown := opts.SelectCategories(catalog, sel.categories)
	if len(unknown) > 0 {
		log.WithField("categories", unknown).Warn("Ignoring unknown categories")
	}

	clubs := gapping.ClubsInBag(snap.Clubs, bag)
	return &selectionResult{
		unit:    opts.Unit,
		metric:  metric,
		catalog: catalog,
		clubs:   clubs,
		gaps:    gapping.Gaps(clubs, selected, metric, opts.Unit, catalog),
	}, nil
}

func gapsCmd() *cobra.Command {
	var sel selection

	cmd := &cobra.Command{
		Use:   "gaps",
		Short: "Show the distance range of each club, longest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := sel.compute()
			if err != nil {
				return err
			}
			if len(res.gaps) == 0 {
				fmt.Println("No shots in the selected categories.")
				return nil
			}

			spacing := gapping.GapSpacing(res.gaps)
			fmt.Printf("%-16s %6s %6s %6s %6s  (%s %s)\n", "Club", "Min", "Mid", "Max", "Gap", res.metric, res.unit)
			for i, g := range res.gaps {
				gap := ""
				if i < len(spacing) {
					gap = fmtDistance(spacing[i].Distance)
				}
				fmt.Printf("%-16s %6s %6s %6s %6s\n", g.Name, fmtDistance(g.Min), fmtDistance(g.Central), fmtDistance(g.Max), gap)
			}
			return nil
		},
	}

	sel.bind(cmd)
	return cmd
}

func lookupCmd() *cobra.Command {
	var carry, total float64
	var bagRef string

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Suggest shots for a target distance",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := gapping.NewQuery(carry, total)
			if err != nil {
				return err
			}
			snap, err := loadSnapshot()
			if err != nil {
				return err
			}
			bag, err := selectBag(snap, bagRef)
			if err != nil {
				return err
			}

			unit := cfg.Display.Unit
			matches := gapping.Lookup(q, gapping.ClubsInBag(snap.Clubs, bag), unit)
			if len(matches) == 0 {
				fmt.Println("No shots found.")
				return nil
			}

			catalog := gapping.CatalogFor(snap)
			fmt.Printf("%s %s %s:\n", q.Metric, fmtDistance(q.Distance), unit)
			for _, m := range matches {
				label := "exact"
				if !m.IsExact {
					label = strings.ToLower(m.Label)
				}
				fmt.Printf("  %-16s %-14s %-12s %s (%s-%s)  %s\n",
					m.ClubName, m.Shot.ShotType, catalog.FirstCategoryName(m.Shot.ShotType),
					fmtDistance(m.Median), fmtDistance(m.Low), fmtDistance(m.High), label)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&carry, "carry", 0, "target carry distance")
	cmd.Flags().Float64Var(&total, "total", 0, "target total distance")
	cmd.Flags().StringVarP(&bagRef, "bag", "b", "", `bag to use, "all" for every club (defaults to the default bag)`)
	cmd.MarkFlagsMutuallyExclusive("carry", "total")
	cmd.MarkFlagsOneRequired("carry", "total")
	return cmd
}

func shotsCmd() *cobra.Command {
	var sortKey, dir string

	cmd := &cobra.Command{
		Use:   "shots [club]",
		Short: "List a club's shots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := gapping.ParseSortKey(sortKey)
			if err != nil {
				return err
			}
			direction, err := gapping.ParseDirection(dir)
			if err != nil {
				return err
			}
			snap, err := loadSnapshot()
			if err != nil {
				return err
			}
			club, err := findClub(snap, args[0])
			if err != nil {
				return err
			}
			if len(club.Shots) == 0 {
				fmt.Printf("No shots logged for %s.\n", club.Name)
				return nil
			}

			unit := cfg.Display.Unit
			catalog := gapping.CatalogFor(snap)
			for _, sh := range gapping.SortShots(club.Shots, catalog, unit, key, direction) {
				carry, carryVar := sh.Distance(domain.Carry)
				total, totalVar := sh.Distance(domain.Total)
				conv := func(d float64) string { return fmtDistance(gapping.Convert(d, sh.Unit, unit)) }
				fmt.Printf("%s  %-14s %-12s carry %4s±%-3s total %4s±%-3s\n",
					shortID(sh.ID), sh.ShotType, catalog.FirstCategoryName(sh.ShotType),
					conv(carry), conv(carryVar), conv(total), conv(totalVar))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&sortKey, "sort", "s", string(gapping.ByDistance), "distance, category, category_distance or distance_category")
	cmd.Flags().StringVarP(&dir, "dir", "d", string(gapping.Desc), "asc or desc")
	return cmd
}

func rangeCmd() *cobra.Command {
	var metricName string

	cmd := &cobra.Command{
		Use:   "range [club]",
		Short: "Show a club's overall and per-category distance range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			metric, err := domain.ParseMetric(metricName)
			if err != nil {
				return err
			}
			snap, err := loadSnapshot()
			if err != nil {
				return err
			}
			club, err := findClub(snap, args[0])
			if err != nil {
				return err
			}

			unit := cfg.Display.Unit
			overall := gapping.Aggregate(club.Shots, metric, unit)
			if overall == nil {
				fmt.Printf("No shots logged for %s.\n", club.Name)
				return nil
			}

			printRange := func(name string, r gapping.Range) {
				fmt.Printf("  %-16s %s-%s, mid %s\n", name,
					fmtDistance(r.LowerBound), fmtDistance(r.UpperBound), fmtDistance(r.Central))
			}
			fmt.Printf("%s %s (%s):\n", club.Name, metric, unit)
			printRange("All shots", *overall)
			for _, cr := range gapping.CategoryRanges(*club, gapping.CatalogFor(snap), metric, unit) {
				printRange(cr.Name, cr.Range)
			}
			scale := gapping.ChartRange(club.Shots, unit)
			fmt.Printf("  chart scale %s-%s\n", fmtDistance(scale.Min), fmtDistance(scale.Max))
			return nil
		},
	}

	cmd.Flags().StringVarP(&metricName, "metric", "m", string(domain.Carry), "carry or total")
	return cmd
}

func chartCmd() *cobra.Command {
	var sel selection
	var output string
	var gapsChart bool

	cmd := &cobra.Command{
		Use:   "chart [club]",
		Short: "Render a club's shots, or the gap chart with --gaps, to PNG",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var png []byte
			switch {
			case gapsChart:
				res, err := sel.compute()
				if err != nil {
					return err
				}
				if png, err = chart.RenderGaps(res.gaps, res.unit, chart.DefaultPalette); err != nil {
					return err
				}
			case len(args) == 1:
				snap, err := loadSnapshot()
				if err != nil {
					return err
				}
				club, err := findClub(snap, args[0])
				if err != nil {
					return err
				}
				unit := cfg.Display.Unit
				shots := gapping.SortShots(club.Shots, gapping.CatalogFor(snap), unit, gapping.ByDistance, gapping.Desc)
				if png, err = chart.RenderClubShots(*club, shots, unit, chart.DefaultPalette); err != nil {
					return err
				}
			default:
				return fmt.Errorf("name a club or pass --gaps")
			}

			if err := os.WriteFile(output, png, 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			log.WithField("file", output).Info("Wrote chart")
			return nil
		},
	}

	sel.bind(cmd)
	cmd.Flags().BoolVar(&gapsChart, "gaps", false, "render the gap chart instead of one club")
	cmd.Flags().StringVarP(&output, "output", "o", "chart.png", "PNG file to write")
	return cmd
}
