package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pbaille/clubgap/internal/domain"
	"github.com/pbaille/clubgap/internal/gapping"
)

func clubCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "club",
		Short: "Manage clubs",
	}

	var clubType string
	var loft float64
	add := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a club",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			var loftPtr *float64
			if cmd.Flags().Changed("loft") {
				loftPtr = &loft
			}
			club, err := s.AddClub(strings.Join(args, " "), clubType, loftPtr)
			if err != nil {
				return err
			}
			fmt.Printf("Added club: %s  %s\n", shortID(club.ID), club.Name)
			return nil
		},
	}
	add.Flags().StringVarP(&clubType, "type", "t", "", "club type, e.g. iron or wedge")
	add.Flags().Float64Var(&loft, "loft", 0, "loft in degrees")

	list := &cobra.Command{
		Use:   "list",
		Short: "List clubs",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			clubs, err := s.ListClubs()
			if err != nil {
				return err
			}
			if len(clubs) == 0 {
				fmt.Println("No clubs yet. Use 'clubgap club add' to create one.")
				return nil
			}
			for _, c := range clubs {
				fmt.Printf("%s  %-16s %2d shots", shortID(c.ID), c.Name, len(c.Shots))
				if c.Loft != nil {
					fmt.Printf("  %.1f°", *c.Loft)
				}
				fmt.Println()
			}
			return nil
		},
	}

	rm := &cobra.Command{
		Use:   "rm [club]",
		Short: "Delete a club and its shots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			club, err := s.ResolveClub(args[0])
			if err != nil {
				return err
			}
			if err := s.DeleteClub(club.ID); err != nil {
				return err
			}
			log.WithField("club", club.Name).Info("Deleted club")
			return nil
		},
	}

	cmd.AddCommand(add, list, rm)
	return cmd
}

func shotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shot",
		Short: "Manage logged shots",
	}

	var (
		shotType                     string
		carry, carryVar, total, tVar float64
		unit, launch, roll           string
		tendencies, swingKeys        []string
	)
	add := &cobra.Command{
		Use:   "add [club]",
		Short: "Log a shot for a club",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u := cfg.Display.Unit
			if unit != "" {
				var err error
				if u, err = domain.ParseUnit(unit); err != nil {
					return err
				}
			}

			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			club, err := s.ResolveClub(args[0])
			if err != nil {
				return err
			}
			shot, err := s.AddShot(domain.Shot{
				ClubID:        club.ID,
				ShotType:      shotType,
				CarryMedian:   carry,
				CarryVariance: carryVar,
				TotalMedian:   total,
				TotalVariance: tVar,
				Unit:          u,
				Tendencies:    domain.NewStringSet(tendencies...),
				SwingKeys:     domain.NewStringSet(swingKeys...),
				Launch:        domain.Launch(launch),
				Roll:          domain.Roll(roll),
			})
			if err != nil {
				return err
			}
			fmt.Printf("Added shot: %s  %s %s  carry %s±%s  total %s±%s %s\n",
				shortID(shot.ID), club.Name, shot.ShotType,
				fmtDistance(carry), fmtDistance(carryVar), fmtDistance(total), fmtDistance(tVar), u)
			return nil
		},
	}
	add.Flags().StringVarP(&shotType, "type", "t", "", "shot type, e.g. full or punch")
	add.Flags().Float64Var(&carry, "carry", 0, "median carry distance")
	add.Flags().Float64Var(&carryVar, "carry-var", 0, "carry variance (+/-)")
	add.Flags().Float64Var(&total, "total", 0, "median total distance")
	add.Flags().Float64Var(&tVar, "total-var", 0, "total variance (+/-)")
	add.Flags().StringVar(&unit, "in", "", "unit the distances are given in (defaults to the display unit)")
	add.Flags().StringVar(&launch, "launch", "", "launch height: low, mid or high")
	add.Flags().StringVar(&roll, "roll", "", "roll out: minimal, moderate or lots")
	add.Flags().StringSliceVar(&tendencies, "tendency", nil, "miss tendency, repeatable")
	add.Flags().StringSliceVar(&swingKeys, "swing-key", nil, "swing thought, repeatable")
	add.MarkFlagRequired("type")

	rm := &cobra.Command{
		Use:   "rm [shot-id]",
		Short: "Delete a shot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()
			return s.DeleteShot(args[0])
		},
	}

	cmd.AddCommand(add, rm)
	return cmd
}

func bagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bag",
		Short: "Manage bags",
	}

	var isDefault bool
	add := &cobra.Command{
		Use:   "add [name]",
		Short: "Create a bag",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			bag, err := s.AddBag(strings.Join(args, " "), isDefault)
			if err != nil {
				return err
			}
			fmt.Printf("Added bag: %s  %s\n", shortID(bag.ID), bag.Name)
			return nil
		},
	}
	add.Flags().BoolVar(&isDefault, "default", false, "make this the default bag")

	list := &cobra.Command{
		Use:   "list",
		Short: "List bags and their clubs",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot()
			if err != nil {
				return err
			}
			if len(snap.Bags) == 0 {
				fmt.Println("No bags yet. Use 'clubgap bag add' to create one.")
				return nil
			}
			for _, b := range snap.Bags {
				marker := " "
				if b.IsDefault {
					marker = "*"
				}
				fmt.Printf("%s %s  %s\n", marker, shortID(b.ID), b.Name)
				for _, c := range gapping.ClubsInBag(snap.Clubs, &b) {
					fmt.Printf("    %s\n", c.Name)
				}
			}
			return nil
		},
	}

	setDefault := &cobra.Command{
		Use:   "default [bag]",
		Short: "Make a bag the default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			bag, err := s.ResolveBag(args[0])
			if err != nil {
				return err
			}
			return s.SetDefaultBag(bag.ID)
		},
	}

	var remove bool
	addClub := &cobra.Command{
		Use:   "add-club [bag] [club...]",
		Short: "Put clubs in a bag",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			bag, err := s.ResolveBag(args[0])
			if err != nil {
				return err
			}
			for _, ref := range args[1:] {
				club, err := s.ResolveClub(ref)
				if err != nil {
					return err
				}
				if remove {
					err = s.RemoveClubFromBag(bag.ID, club.ID)
				} else {
					err = s.AddClubToBag(bag.ID, club.ID)
				}
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
	addClub.Flags().BoolVar(&remove, "remove", false, "take the clubs out instead")

	cmd.AddCommand(add, list, setDefault, addClub)
	return cmd
}

func categoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage shot categories",
	}

	add := &cobra.Command{
		Use:   "add [name]",
		Short: "Create a category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			c, err := s.GetOrCreateCategory(strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Printf("%s  %s\n", shortID(c.ID), c.Name)
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			categories, err := s.ListCategories()
			if err != nil {
				return err
			}
			if len(categories) == 0 {
				fmt.Println("No categories yet.")
				return nil
			}
			for _, c := range categories {
				fmt.Printf("%s  %s\n", shortID(c.ID), c.Name)
			}
			return nil
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}

func shotTypeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shottype",
		Short: "Map shot types to categories",
	}

	define := &cobra.Command{
		Use:   "define [shot-type] [category...]",
		Short: "Set the categories of a shot type, first one is primary",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			ids := make([]string, 0, len(args)-1)
			for _, name := range args[1:] {
				c, err := s.GetOrCreateCategory(name)
				if err != nil {
					return err
				}
				ids = append(ids, c.ID)
			}
			return s.DefineShotType(args[0], ids)
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List shot types",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot()
			if err != nil {
				return err
			}
			catalog := gapping.CatalogFor(snap)
			for _, st := range snap.ShotTypes {
				names := make([]string, len(st.CategoryIDs))
				for i, id := range st.CategoryIDs {
					names[i] = catalog.CategoryName(id)
				}
				fmt.Printf("%-16s %s\n", st.ShotType, strings.Join(names, ", "))
			}
			return nil
		},
	}

	cmd.AddCommand(define, list)
	return cmd
}
