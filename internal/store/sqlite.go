package store

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pbaille/clubgap/internal/domain"
)

//go:embed schema.sql
var schema string

// ErrNotFound is returned when a referenced record does not exist
var ErrNotFound = errors.New("not found")

// Store handles database operations
type Store struct {
	db *sql.DB
}

// New creates a new Store with the given database path
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Initialize schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// AddClub creates a new club
func (s *Store) AddClub(name, clubType string, loft *float64) (*domain.Club, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: club name is required", domain.ErrInvalid)
	}

	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.Exec(
		"INSERT INTO clubs (id, name, type, loft, created_at) VALUES (?, ?, ?, ?, ?)",
		id, name, clubType, loft, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert club: %w", err)
	}

	return &domain.Club{
		ID:        id,
		Name:      name,
		Type:      clubType,
		Loft:      loft,
		CreatedAt: now,
	}, nil
}

// GetOrCreateClub finds a club by name or creates it
func (s *Store) GetOrCreateClub(name string) (*domain.Club, error) {
	club, err := s.FindClubByName(name)
	if err == nil {
		return club, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return s.AddClub(name, "", nil)
}

const clubColumns = "id, name, type, loft, created_at"

func scanClub(row interface{ Scan(...any) error }) (domain.Club, error) {
	var c domain.Club
	var loft sql.NullFloat64
	if err := row.Scan(&c.ID, &c.Name, &c.Type, &loft, &c.CreatedAt); err != nil {
		return c, err
	}
	if loft.Valid {
		c.Loft = &loft.Float64
	}
	return c, nil
}

// GetClub retrieves a club by ID with its shots
func (s *Store) GetClub(id string) (*domain.Club, error) {
	return s.getClub("SELECT "+clubColumns+" FROM clubs WHERE id = ?", id)
}

// FindClubByName retrieves a club by exact name with its shots
func (s *Store) FindClubByName(name string) (*domain.Club, error) {
	return s.getClub("SELECT "+clubColumns+" FROM clubs WHERE name = ?", strings.TrimSpace(name))
}

func (s *Store) getClub(query string, arg string) (*domain.Club, error) {
	c, err := scanClub(s.db.QueryRow(query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("club %s: %w", arg, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get club: %w", err)
	}

	shots, err := s.listShots("WHERE club_id = ?", c.ID)
	if err != nil {
		return nil, err
	}
	c.Shots = shots
	return &c, nil
}

// ResolveClub finds a club by ID, unique ID prefix, or name
func (s *Store) ResolveClub(ref string) (*domain.Club, error) {
	if c, err := s.GetClub(ref); err == nil || !errors.Is(err, ErrNotFound) {
		return c, err
	}
	if c, err := s.FindClubByName(ref); err == nil || !errors.Is(err, ErrNotFound) {
		return c, err
	}

	rows, err := s.db.Query("SELECT id FROM clubs WHERE id LIKE ?", ref+"%")
	if err != nil {
		return nil, fmt.Errorf("resolve club: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan club id: %w", err)
		}
		matches = append(matches, id)
	}
	if len(matches) != 1 {
		return nil, fmt.Errorf("club %s: %w", ref, ErrNotFound)
	}
	return s.GetClub(matches[0])
}

// ListClubs returns every club with its shots, in creation order
func (s *Store) ListClubs() ([]domain.Club, error) {
	rows, err := s.db.Query("SELECT " + clubColumns + " FROM clubs ORDER BY created_at, rowid")
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	defer rows.Close()

	var clubs []domain.Club
	index := make(map[string]int)
	for rows.Next() {
		c, err := scanClub(rows)
		if err != nil {
			return nil, fmt.Errorf("scan club: %w", err)
		}
		index[c.ID] = len(clubs)
		clubs = append(clubs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}

	shots, err := s.listShots("")
	if err != nil {
		return nil, err
	}
	for _, shot := range shots {
		if i, ok := index[shot.ClubID]; ok {
			clubs[i].Shots = append(clubs[i].Shots, shot)
		}
	}
	return clubs, nil
}

// DeleteClub removes a club, its shots and its bag memberships
func (s *Store) DeleteClub(id string) error {
	return s.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM shots WHERE club_id = ?", id); err != nil {
			return fmt.Errorf("delete shots: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM bag_clubs WHERE club_id = ?", id); err != nil {
			return fmt.Errorf("delete bag clubs: %w", err)
		}
		res, err := tx.Exec("DELETE FROM clubs WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("delete club: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("club %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

const shotColumns = `id, club_id, shot_type, carry_median, carry_variance, total_median,
	total_variance, unit, tendencies, swing_keys, launch, roll, created_at`

// AddShot validates and stores a shot for an existing club
func (s *Store) AddShot(shot domain.Shot) (*domain.Shot, error) {
	if err := shot.Validate(); err != nil {
		return nil, err
	}
	if shot.ID == "" {
		shot.ID = uuid.New().String()
	}
	if shot.CreatedAt.IsZero() {
		shot.CreatedAt = time.Now().UTC()
	}

	if err := insertShot(s.db, shot); err != nil {
		return nil, err
	}
	return &shot, nil
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insertShot(db execer, shot domain.Shot) error {
	tendencies, err := json.Marshal(shot.Tendencies)
	if err != nil {
		return fmt.Errorf("marshal tendencies: %w", err)
	}
	swingKeys, err := json.Marshal(shot.SwingKeys)
	if err != nil {
		return fmt.Errorf("marshal swing keys: %w", err)
	}

	_, err = db.Exec(
		"INSERT OR REPLACE INTO shots ("+shotColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		shot.ID, shot.ClubID, shot.ShotType,
		shot.CarryMedian, shot.CarryVariance, shot.TotalMedian, shot.TotalVariance,
		string(shot.Unit), string(tendencies), string(swingKeys),
		string(shot.Launch), string(shot.Roll), shot.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY") {
			return fmt.Errorf("club %s: %w", shot.ClubID, ErrNotFound)
		}
		return fmt.Errorf("insert shot: %w", err)
	}
	return nil
}

// DeleteShot removes a single shot
func (s *Store) DeleteShot(id string) error {
	res, err := s.db.Exec("DELETE FROM shots WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete shot: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("shot %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Store) listShots(where string, args ...any) ([]domain.Shot, error) {
	rows, err := s.db.Query("SELECT "+shotColumns+" FROM shots "+where+" ORDER BY created_at, rowid", args...)
	if err != nil {
		return nil, fmt.Errorf("list shots: %w", err)
	}
	defer rows.Close()

	var shots []domain.Shot
	for rows.Next() {
		var sh domain.Shot
		var unit, tendencies, swingKeys, launch, roll string
		if err := rows.Scan(
			&sh.ID, &sh.ClubID, &sh.ShotType,
			&sh.CarryMedian, &sh.CarryVariance, &sh.TotalMedian, &sh.TotalVariance,
			&unit, &tendencies, &swingKeys, &launch, &roll, &sh.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan shot: %w", err)
		}
		sh.Unit = domain.Unit(unit)
		sh.Launch = domain.Launch(launch)
		sh.Roll = domain.Roll(roll)
		if err := json.Unmarshal([]byte(tendencies), &sh.Tendencies); err != nil {
			return nil, fmt.Errorf("decode tendencies: %w", err)
		}
		if err := json.Unmarshal([]byte(swingKeys), &sh.SwingKeys); err != nil {
			return nil, fmt.Errorf("decode swing keys: %w", err)
		}
		shots = append(shots, sh)
	}
	return shots, rows.Err()
}
