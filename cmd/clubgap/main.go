package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pbaille/clubgap/internal/api"
	"github.com/pbaille/clubgap/internal/config"
	"github.com/pbaille/clubgap/internal/domain"
	"github.com/pbaille/clubgap/internal/gapping"
	"github.com/pbaille/clubgap/internal/logging"
	"github.com/pbaille/clubgap/internal/store"
)

var (
	cfgFile  string
	dbPath   string
	unitFlag string

	cfg *config.Config
	log *logrus.Logger
)

func main() {
	home, _ := os.UserHomeDir()
	defaultConfig := filepath.Join(home, ".clubgap", "config.yaml")

	rootCmd := &cobra.Command{
		Use:           "clubgap",
		Short:         "Club distance gapping and shot suggestions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.LoadConfig(cfgFile)
			if err != nil {
				return err
			}
			if dbPath != "" {
				c.Database.Path = dbPath
			}
			if unitFlag != "" {
				u, err := domain.ParseUnit(unitFlag)
				if err != nil {
					return err
				}
				c.Display.Unit = u
			}
			cfg = c
			log = logging.New(c.Log.Level, c.Log.Format)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", defaultConfig, "config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&unitFlag, "unit", "u", "", "display unit: yards or meters")

	rootCmd.AddCommand(clubCmd())
	rootCmd.AddCommand(shotCmd())
	rootCmd.AddCommand(bagCmd())
	rootCmd.AddCommand(categoryCmd())
	rootCmd.AddCommand(shotTypeCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(gapsCmd())
	rootCmd.AddCommand(lookupCmd())
	rootCmd.AddCommand(shotsCmd())
	rootCmd.AddCommand(rangeCmd())
	rootCmd.AddCommand(chartCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func getStore() (*store.Store, error) {
	dir := filepath.Dir(cfg.Database.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	return store.New(cfg.Database.Path)
}

// loadSnapshot opens the store just long enough to read every record
func loadSnapshot() (*domain.Snapshot, error) {
	s, err := getStore()
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.Snapshot()
}

// selectBag resolves --bag: empty is the default bag, "all" is every club
func selectBag(snap *domain.Snapshot, ref string) (*domain.Bag, error) {
	switch ref {
	case "":
		return gapping.DefaultBag(snap.Bags), nil
	case "all":
		return nil, nil
	}
	if b := gapping.FindBag(snap.Bags, ref); b != nil {
		return b, nil
	}
	return nil, fmt.Errorf("bag %s: %w", ref, store.ErrNotFound)
}

// findClub accepts the same references as store.ResolveClub, short ids included
func findClub(snap *domain.Snapshot, ref string) (*domain.Club, error) {
	if c := gapping.FindClub(snap.Clubs, ref); c != nil {
		return c, nil
	}
	return nil, fmt.Errorf("club %s: %w", ref, store.ErrNotFound)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func fmtDistance(d float64) string {
	return fmt.Sprintf("%.0f", gapping.RoundDistance(d))
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			// the server runs until the process exits

			if addr == "" {
				addr = cfg.Server.Addr
			}
			server := api.New(s, cfg.Options(), log)
			return server.Run(addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "server address (overrides config)")
	return cmd
}
