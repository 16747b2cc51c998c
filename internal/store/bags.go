package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pbaille/clubgap/internal/domain"
)

// AddBag creates a bag. Making it the default clears the flag on every other bag.
func (s *Store) AddBag(name string, isDefault bool) (*domain.Bag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: bag name is required", domain.ErrInvalid)
	}

	bag := &domain.Bag{
		ID:        uuid.New().String(),
		Name:      name,
		ClubIDs:   domain.NewStringSet(),
		IsDefault: isDefault,
		CreatedAt: time.Now().UTC(),
	}

	err := s.withTx(func(tx *sql.Tx) error {
		if isDefault {
			if _, err := tx.Exec("UPDATE bags SET is_default = 0"); err != nil {
				return fmt.Errorf("clear default bag: %w", err)
			}
		}
		_, err := tx.Exec(
			"INSERT INTO bags (id, name, is_default, created_at) VALUES (?, ?, ?, ?)",
			bag.ID, bag.Name, isDefault, bag.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert bag: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bag, nil
}

// AddClubToBag records a club as a member of a bag
func (s *Store) AddClubToBag(bagID, clubID string) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO bag_clubs (bag_id, club_id) VALUES (?, ?)",
		bagID, clubID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY") {
			return fmt.Errorf("bag %s or club %s: %w", bagID, clubID, ErrNotFound)
		}
		return fmt.Errorf("link bag club: %w", err)
	}
	return nil
}

// RemoveClubFromBag drops a club from a bag without touching the club
func (s *Store) RemoveClubFromBag(bagID, clubID string) error {
	if _, err := s.db.Exec("DELETE FROM bag_clubs WHERE bag_id = ? AND club_id = ?", bagID, clubID); err != nil {
		return fmt.Errorf("unlink bag club: %w", err)
	}
	return nil
}

// SetDefaultBag makes one bag the default, clearing every other
func (s *Store) SetDefaultBag(bagID string) error {
	return s.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("UPDATE bags SET is_default = 0"); err != nil {
			return fmt.Errorf("clear default bag: %w", err)
		}
		res, err := tx.Exec("UPDATE bags SET is_default = 1 WHERE id = ?", bagID)
		if err != nil {
			return fmt.Errorf("set default bag: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("bag %s: %w", bagID, ErrNotFound)
		}
		return nil
	})
}

// ListBags returns every bag with its members
func (s *Store) ListBags() ([]domain.Bag, error) {
	rows, err := s.db.Query("SELECT id, name, is_default, created_at FROM bags ORDER BY created_at, rowid")
	if err != nil {
		return nil, fmt.Errorf("list bags: %w", err)
	}
	defer rows.Close()

	var bags []domain.Bag
	index := make(map[string]int)
	for rows.Next() {
		b := domain.Bag{ClubIDs: domain.NewStringSet()}
		if err := rows.Scan(&b.ID, &b.Name, &b.IsDefault, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bag: %w", err)
		}
		index[b.ID] = len(bags)
		bags = append(bags, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bags: %w", err)
	}

	members, err := s.db.Query("SELECT bag_id, club_id FROM bag_clubs")
	if err != nil {
		return nil, fmt.Errorf("list bag clubs: %w", err)
	}
	defer members.Close()

	for members.Next() {
		var bagID, clubID string
		if err := members.Scan(&bagID, &clubID); err != nil {
			return nil, fmt.Errorf("scan bag club: %w", err)
		}
		if i, ok := index[bagID]; ok {
			bags[i].ClubIDs.Add(clubID)
		}
	}
	return bags, members.Err()
}

// ResolveBag finds a bag by ID or name
func (s *Store) ResolveBag(ref string) (*domain.Bag, error) {
	bags, err := s.ListBags()
	if err != nil {
		return nil, err
	}
	for i := range bags {
		if bags[i].ID == ref || bags[i].Name == ref {
			return &bags[i], nil
		}
	}
	return nil, fmt.Errorf("bag %s: %w", ref, ErrNotFound)
}

// GetOrCreateCategory finds a category by name, case-insensitively, or creates it
func (s *Store) GetOrCreateCategory(name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", domain.ErrInvalid)
	}

	var c domain.Category
	err := s.db.QueryRow("SELECT id, name FROM categories WHERE name = ?", name).Scan(&c.ID, &c.Name)
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find category: %w", err)
	}

	c = domain.Category{ID: uuid.New().String(), Name: name}
	if _, err := s.db.Exec("INSERT INTO categories (id, name) VALUES (?, ?)", c.ID, c.Name); err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return &c, nil
}

// ListCategories returns all categories by name
func (s *Store) ListCategories() ([]domain.Category, error) {
	rows, err := s.db.Query("SELECT id, name FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// DefineShotType replaces the category mapping of a shot type
func (s *Store) DefineShotType(name string, categoryIDs []string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: shot type name is required", domain.ErrInvalid)
	}
	if len(categoryIDs) == 0 {
		return fmt.Errorf("%w: shot type %q needs at least one category", domain.ErrInvalid, name)
	}
	return s.withTx(func(tx *sql.Tx) error {
		return defineShotType(tx, name, categoryIDs)
	})
}

func defineShotType(tx *sql.Tx, name string, categoryIDs []string) error {
	if _, err := tx.Exec("INSERT OR IGNORE INTO shot_types (name) VALUES (?)", name); err != nil {
		return fmt.Errorf("insert shot type: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM shot_type_categories WHERE shot_type = ?", name); err != nil {
		return fmt.Errorf("clear shot type categories: %w", err)
	}
	for i, id := range categoryIDs {
		_, err := tx.Exec(
			"INSERT OR IGNORE INTO shot_type_categories (shot_type, category_id, position) VALUES (?, ?, ?)",
			name, id, i,
		)
		if err != nil {
			if strings.Contains(err.Error(), "FOREIGN KEY") {
				return fmt.Errorf("category %s: %w", id, ErrNotFound)
			}
			return fmt.Errorf("link shot type category: %w", err)
		}
	}
	return nil
}

// ListShotTypes returns every shot type with its categories in definition order
func (s *Store) ListShotTypes() ([]domain.ShotTypeDefinition, error) {
	rows, err := s.db.Query(`
		SELECT st.name, stc.category_id
		FROM shot_types st
		JOIN shot_type_categories stc ON stc.shot_type = st.name
		ORDER BY st.name, stc.position
	`)
	if err != nil {
		return nil, fmt.Errorf("list shot types: %w", err)
	}
	defer rows.Close()

	var defs []domain.ShotTypeDefinition
	for rows.Next() {
		var name, categoryID string
		if err := rows.Scan(&name, &categoryID); err != nil {
			return nil, fmt.Errorf("scan shot type: %w", err)
		}
		if n := len(defs); n > 0 && defs[n-1].ShotType == name {
			defs[n-1].CategoryIDs = append(defs[n-1].CategoryIDs, categoryID)
			continue
		}
		defs = append(defs, domain.ShotTypeDefinition{ShotType: name, CategoryIDs: []string{categoryID}})
	}
	return defs, rows.Err()
}
