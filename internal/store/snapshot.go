package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/pbaille/clubgap/internal/domain"
)

// Snapshot loads every record the engine needs for one computation
func (s *Store) Snapshot() (*domain.Snapshot, error) {
	clubs, err := s.ListClubs()
	if err != nil {
		return nil, err
	}
	bags, err := s.ListBags()
	if err != nil {
		return nil, err
	}
	shotTypes, err := s.ListShotTypes()
	if err != nil {
		return nil, err
	}
	categories, err := s.ListCategories()
	if err != nil {
		return nil, err
	}
	return &domain.Snapshot{
		Clubs:      clubs,
		Bags:       bags,
		ShotTypes:  shotTypes,
		Categories: categories,
	}, nil
}

// ImportStats counts what an import wrote
type ImportStats struct {
	Clubs      int
	Shots      int
	Bags       int
	Categories int
	ShotTypes  int
}

// ImportSnapshot upserts a validated snapshot by ID in one transaction.
// Upserts keep existing children; REPLACE would cascade-delete them.
// A default bag in the snapshot replaces the current default.
func (s *Store) ImportSnapshot(snap *domain.Snapshot) (ImportStats, error) {
	var stats ImportStats
	if err := snap.Validate(); err != nil {
		return stats, err
	}

	now := time.Now().UTC()
	stamp := func(t time.Time) time.Time {
		if t.IsZero() {
			return now
		}
		return t
	}

	err := s.withTx(func(tx *sql.Tx) error {
		for _, c := range snap.Categories {
			if _, err := tx.Exec("INSERT INTO categories (id, name) VALUES (?, ?) ON CONFLICT(id) DO UPDATE SET name = excluded.name", c.ID, c.Name); err != nil {
				return fmt.Errorf("import category: %w", err)
			}
			stats.Categories++
		}
		for _, st := range snap.ShotTypes {
			if err := defineShotType(tx, st.ShotType, st.CategoryIDs); err != nil {
				return err
			}
			stats.ShotTypes++
		}

		for _, c := range snap.Clubs {
			_, err := tx.Exec(
				`INSERT INTO clubs (id, name, type, loft, created_at) VALUES (?, ?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET name = excluded.name, type = excluded.type, loft = excluded.loft`,
				c.ID, c.Name, c.Type, c.Loft, stamp(c.CreatedAt),
			)
			if err != nil {
				return fmt.Errorf("import club %s: %w", c.Name, err)
			}
			stats.Clubs++
			for _, shot := range c.Shots {
				shot.ClubID = c.ID
				if shot.ID == "" {
					return fmt.Errorf("%w: club %s has a shot without id", domain.ErrInvalid, c.Name)
				}
				shot.CreatedAt = stamp(shot.CreatedAt)
				if err := insertShot(tx, shot); err != nil {
					return err
				}
				stats.Shots++
			}
		}

		for _, b := range snap.Bags {
			if b.IsDefault {
				if _, err := tx.Exec("UPDATE bags SET is_default = 0"); err != nil {
					return fmt.Errorf("clear default bag: %w", err)
				}
			}
			_, err := tx.Exec(
				`INSERT INTO bags (id, name, is_default, created_at) VALUES (?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET name = excluded.name, is_default = excluded.is_default`,
				b.ID, b.Name, b.IsDefault, stamp(b.CreatedAt),
			)
			if err != nil {
				return fmt.Errorf("import bag %s: %w", b.Name, err)
			}
			for clubID := range b.ClubIDs {
				if _, err := tx.Exec("INSERT OR IGNORE INTO bag_clubs (bag_id, club_id) VALUES (?, ?)", b.ID, clubID); err != nil {
					return fmt.Errorf("import bag club: %w", err)
				}
			}
			stats.Bags++
		}
		return nil
	})
	return stats, err
}
